package utility

import (
	"reflect"
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// EscapeHTML escapes &, <, >, " and ' in s with their HTML entities.
// Byte sequences that are not valid UTF-8 are replaced with U+FFFD.
func EscapeHTML(s string) string {
	valid, _, err := transform.String(runes.ReplaceIllFormed(), s)
	if err != nil {
		valid = strings.ToValidUTF8(s, "�")
	}
	return htmlReplacer.Replace(valid)
}

// UnXSS escapes every string reachable from v with EscapeHTML and returns
// v with the same shape.
//
// Slices, arrays and maps are walked recursively and modified in place;
// map keys are kept as they are. Interface values are unwrapped and
// pointers are followed. Structs and non-string scalars are returned
// unchanged. v must not contain reference cycles.
//
// Example:
//
//	UnXSS(map[string]any{"q": "<b>", "tags": []string{"a&b"}})
//	// map[q:&lt;b&gt; tags:[a&amp;b]]
func UnXSS[T any](v T) T {
	unXSSValue(reflect.ValueOf(&v).Elem())
	return v
}

func unXSSValue(rv reflect.Value) {
	switch rv.Kind() {
	case reflect.String:
		if rv.CanSet() {
			rv.SetString(EscapeHTML(rv.String()))
		}
	case reflect.Slice, reflect.Array:
		for i := range rv.Len() {
			unXSSValue(rv.Index(i))
		}
	case reflect.Map:
		if rv.IsNil() {
			return
		}
		iter := rv.MapRange()
		for iter.Next() {
			elem := reflect.New(rv.Type().Elem()).Elem()
			elem.Set(iter.Value())
			unXSSValue(elem)
			rv.SetMapIndex(iter.Key(), elem)
		}
	case reflect.Interface:
		if rv.IsNil() || !rv.CanSet() {
			return
		}
		inner := rv.Elem()
		elem := reflect.New(inner.Type()).Elem()
		elem.Set(inner)
		unXSSValue(elem)
		rv.Set(elem)
	case reflect.Pointer:
		if !rv.IsNil() {
			unXSSValue(rv.Elem())
		}
	}
}
