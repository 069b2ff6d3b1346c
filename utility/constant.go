package utility

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"sync"

	"gopkg.in/yaml.v3"
)

// Registry holds named runtime constants. A constant can be defined only
// once; later definitions of the same name are ignored.
//
// A Registry is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{values: map[string]any{}}
}

// defaultRegistry backs the package-level Define, Defined, Constant and
// IfUndefined functions.
var defaultRegistry = NewRegistry()

// Define registers value under name. It returns false, leaving the stored
// value untouched, if name is already defined.
func (r *Registry) Define(name string, value any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.values[name]; ok {
		return false
	}
	r.values[name] = value
	return true
}

// Defined reports whether name has been defined.
func (r *Registry) Defined(name string) bool {
	_, ok := r.Constant(name)
	return ok
}

// Constant returns the value registered under name.
func (r *Registry) Constant(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[name]
	return v, ok
}

// DefineFromFile reads a YAML or JSON document whose top level is a
// mapping and defines every key of it. Keys that are already defined keep
// their value.
func (r *Registry) DefineFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read constants file: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var consts map[string]any
	if err := yaml.Unmarshal(data, &consts); err != nil {
		return fmt.Errorf("failed to parse constants file %q: %w", path, err)
	}

	for name, value := range consts {
		r.Define(name, value)
	}

	return nil
}

// Define registers value under name in the default registry.
func Define(name string, value any) bool {
	return defaultRegistry.Define(name, value)
}

// Defined reports whether name is defined in the default registry.
func Defined(name string) bool {
	return defaultRegistry.Defined(name)
}

// Constant returns the value registered under name in the default registry.
func Constant(name string) (any, bool) {
	return defaultRegistry.Constant(name)
}

// DefineFromFile defines every key of a YAML or JSON file in the default
// registry. It is the LoadFunc used by IncludeIfExists and
// IncludeOnceIfExists when none is given.
func DefineFromFile(path string) error {
	return defaultRegistry.DefineFromFile(path)
}

// IfUndefined returns the constant registered under name in the default
// registry, or fallback if there is none.
//
// A registered value that cannot be assigned to T is ignored. When T is a
// string type and name is not registered, the environment variable called
// name is used if it is set.
//
// Example:
//
//	Define("APP_NAME", "shop")
//	IfUndefined("APP_NAME", "app")   // "shop"
//	IfUndefined("APP_LOCALE", "en")  // "en", unless $APP_LOCALE is set
func IfUndefined[T any](name string, fallback T) T {
	return IfUndefinedIn(defaultRegistry, name, fallback)
}

// IfUndefinedIn is IfUndefined over a specific Registry.
func IfUndefinedIn[T any](r *Registry, name string, fallback T) T {
	if v, ok := r.Constant(name); ok {
		if tv, ok := assignTo[T](v); ok {
			return tv
		}
		return fallback
	}

	if env, ok := os.LookupEnv(name); ok {
		if tv, ok := assignTo[T](env); ok && reflect.TypeFor[T]().Kind() == reflect.String {
			return tv
		}
	}

	return fallback
}

// assignTo converts v to T when v's dynamic type is assignable or, for
// strings, convertible to T. A nil v is assignable only to interface types.
func assignTo[T any](v any) (T, bool) {
	var zero T

	if tv, ok := v.(T); ok {
		return tv, true
	}
	if v == nil {
		return zero, reflect.TypeFor[T]().Kind() == reflect.Interface
	}

	target := reflect.TypeFor[T]()
	rv := reflect.ValueOf(v)
	if target.Kind() == reflect.String && rv.Kind() == reflect.String {
		return rv.Convert(target).Interface().(T), true
	}

	return zero, false
}
