// Package flatten normalizes nested, loosely typed collections into a flat
// slice of one element type.
package flatten

import (
	"reflect"

	"github.com/on-the-ground/funcwrap/shared/helper"
)

// Flatten walks collection depth-first, left to right, and returns every
// element that is or converts to T.
//
// Slices, arrays, pointers and interfaces are descended into. Elements are
// kept when their type is T (or implements T, for an interface T). Numeric
// elements convert to a numeric T, strings to a string-kinded T, bools to a
// bool-kinded T. Everything else, nils, maps, structs and funcs included, is
// dropped without error.
func Flatten[T any](collection any) []T {
	var res []T
	appendFlat(&res, reflect.ValueOf(collection), reflect.TypeFor[T]())
	return res
}

func appendFlat[T any](res *[]T, v reflect.Value, target reflect.Type) {
	if !v.IsValid() {
		return
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return
		}
		appendFlat(res, v.Elem(), target)
		return
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		if matches(v.Type(), target) {
			keep(res, v)
			return
		}
		appendFlat(res, v.Elem(), target)
		return
	case reflect.Slice, reflect.Array:
		if v.Type() == target {
			keep(res, v)
			return
		}
		for i := 0; i < v.Len(); i++ {
			appendFlat(res, v.Index(i), target)
		}
		return
	}

	if matches(v.Type(), target) {
		keep(res, v)
		return
	}
	if converted, ok := convert(v, target); ok {
		keep(res, converted)
	}
}

func matches(t, target reflect.Type) bool {
	return t == target || (target.Kind() == reflect.Interface && t.Implements(target))
}

func keep[T any](res *[]T, v reflect.Value) {
	if !v.CanInterface() {
		return
	}
	if val, ok := helper.TypedValueOf[T](v.Interface()); ok {
		*res = append(*res, val)
	}
}

type family int

const (
	familyNone family = iota
	familyNumeric
	familyString
	familyBool
)

func familyOf(k reflect.Kind) family {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return familyNumeric
	case reflect.String:
		return familyString
	case reflect.Bool:
		return familyBool
	default:
		return familyNone
	}
}

// convert converts v to target within a kind family. Cross-family
// conversions such as int to string are refused.
func convert(v reflect.Value, target reflect.Type) (reflect.Value, bool) {
	f := familyOf(v.Kind())
	if f == familyNone || f != familyOf(target.Kind()) || !v.CanConvert(target) {
		return reflect.Value{}, false
	}
	return v.Convert(target), true
}
