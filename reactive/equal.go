package reactive

import (
	"math"
	"reflect"
)

type EqualFunc[T any] func(a, b T) bool

// DefaultEquals compares values by identity. Pointers, maps, slices,
// functions and channels are never equal unless both are nil, so replacing
// a reference always propagates even when it points at the same data.
// Floats follow same-value semantics: NaN equals NaN and 0 differs from -0.
func DefaultEquals[T any](a, b T) bool {
	return sameValue(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func sameValue(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return a.IsNil() && b.IsNil()
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() && b.IsNil()
		}
		ea, eb := a.Elem(), b.Elem()
		if ea.Type() != eb.Type() {
			return false
		}
		return sameValue(ea, eb)
	case reflect.Float32, reflect.Float64:
		x, y := a.Float(), b.Float()
		if math.IsNaN(x) && math.IsNaN(y) {
			return true
		}
		return x == y && math.Signbit(x) == math.Signbit(y)
	}
	if !a.Comparable() || !b.Comparable() {
		return false
	}
	return a.Equal(b)
}

// StrictEquals compares with ==.
func StrictEquals[T comparable](a, b T) bool {
	return a == b
}
