// Copyright (c) 2026, Velt Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reflectx provides reflection-based helpers used by the
// collection packages for item identity.
package reflectx

import "reflect"

// Same reports whether a and b are the same item. Reference kinds
// (pointers, maps, slices, functions, channels) compare by identity
// of the referenced data; comparable value kinds compare by equality;
// uncomparable values of other kinds are never the same. Unlike the
// == operator on interface values, Same never panics.
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	av := reflect.ValueOf(a)
	bv := reflect.ValueOf(b)
	switch av.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return av.Pointer() == bv.Pointer()
	case reflect.Slice:
		return av.Len() == bv.Len() && av.Pointer() == bv.Pointer()
	}
	if !av.Comparable() {
		return false
	}
	return av.Equal(bv)
}
