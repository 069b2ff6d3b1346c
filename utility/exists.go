package utility

import "reflect"

// Ptr is a helper that returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Get returns v if it is set, nil otherwise.
//
// A nil pointer is not set. A pointer to a nil pointer, interface, map,
// slice, func or channel is not set either, so Get(&err) with a nil error
// reports absent. Zero values such as 0, false and "" are set.
//
// Example:
//
//	var timeout *time.Duration
//	if d := Get(timeout); d != nil {
//		client.Timeout = *d
//	}
func Get[T any](v *T) *T {
	if v == nil || isNil(reflect.ValueOf(v).Elem()) {
		return nil
	}
	return v
}

// NullGet returns v if it is set and truthy, nil otherwise.
// See Truthy for the values that count as falsy.
func NullGet[T any](v *T) *T {
	if g := Get(v); g != nil && Truthy(*g) {
		return g
	}
	return nil
}

// IfNull returns the value v points to if it is available, fallback if it
// is not. When useTruthyCheck is true availability is decided by NullGet,
// otherwise by Get.
//
// Example:
//
//	IfNull(Ptr(0), 10, false) // 0
//	IfNull(Ptr(0), 10, true)  // 10
func IfNull[T any](v *T, fallback T, useTruthyCheck bool) T {
	var got *T
	if useTruthyCheck {
		got = NullGet(v)
	} else {
		got = Get(v)
	}

	if got == nil {
		return fallback
	}
	return *got
}

// Truthy reports whether v counts as true.
//
// Falsy values are nil, false, numeric zeros (integers, unsigned integers,
// floats and complex numbers), the empty string and empty slices, maps and
// arrays. Everything else is truthy, including the string "0", non-nil
// pointers and structs.
func Truthy(v any) bool {
	if v == nil {
		return false
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() != 0
	case reflect.Complex64, reflect.Complex128:
		return rv.Complex() != 0
	case reflect.String, reflect.Array:
		return rv.Len() > 0
	case reflect.Slice, reflect.Map:
		return !rv.IsNil() && rv.Len() > 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return !rv.IsNil()
	default:
		return true
	}
}

func isNil(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
