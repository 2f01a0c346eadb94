package propsutil

import "reflect"

// Spread returns a new T assembled from layers, where later layers take precedence.
// A field is taken from a layer only when it is non-zero there, which for CDK props
// (all pointers or interfaces) means "set". Anonymous struct fields are spread field by
// field; every other field is copied as a whole, so no layer is ever written through.
// Nil layers are skipped.
//
//	merged := propsutil.Spread(&libraryDefaults, &staticDefaults, instanceProps)
func Spread[T any](layers ...*T) T {
	var out T
	dst := reflect.ValueOf(&out).Elem()
	for _, layer := range layers {
		if layer == nil {
			continue
		}
		spreadInto(dst, reflect.ValueOf(layer).Elem())
	}
	return out
}

func spreadInto(dst, src reflect.Value) {
	if dst.Kind() != reflect.Struct {
		if !src.IsZero() {
			dst.Set(src)
		}
		return
	}
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			spreadInto(dst.Field(i), src.Field(i))
			continue
		}
		if v := src.Field(i); !v.IsZero() {
			dst.Field(i).Set(v)
		}
	}
}

// FirstSet returns the first non-nil pointer's value, or fallback when all are nil.
func FirstSet[T any](fallback T, values ...*T) T {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return fallback
}
