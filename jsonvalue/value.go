// Copyright 2025 The JSON Schema Go Project Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package jsonvalue implements the JSON value domain type that the
// schema compiler and validator operate on: a sum over null, boolean,
// integer, unsigned integer, floating-point, string, array, and an
// order-preserving object, plus an Undefined sentinel meaning "no value
// here".
package jsonvalue

import (
	"fmt"
	"iter"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the underlying representation of a Value.
type Kind int

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindInt, KindUint, KindFloat:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON value. The zero Value is Undefined.
type Value struct {
	Kind   Kind
	Bool   bool
	Int    int64
	Uint   uint64
	Float  float64
	Str    string
	Array  []Value
	Object *Object
}

// Undefined is the sentinel value denoting "no value here". The loaders
// return it alongside an error, and DecodeYAML returns it for an empty
// document.
var Undefined = Value{Kind: KindUndefined}

// Null is the JSON null value.
var Null = Value{Kind: KindNull}

func Bool(b bool) Value          { return Value{Kind: KindBool, Bool: b} }
func Int(i int64) Value          { return Value{Kind: KindInt, Int: i} }
func Uint(u uint64) Value        { return Value{Kind: KindUint, Uint: u} }
func Float(f float64) Value      { return Value{Kind: KindFloat, Float: f} }
func String(s string) Value      { return Value{Kind: KindString, Str: s} }
func Array(vs ...Value) Value    { return Value{Kind: KindArray, Array: vs} }
func ObjectValue(o *Object) Value { return Value{Kind: KindObject, Object: o} }

// IsNumber reports whether v holds any of the numeric kinds.
func (v Value) IsNumber() bool {
	return v.Kind == KindInt || v.Kind == KindUint || v.Kind == KindFloat
}

// AsFloat64 returns v's numeric value as a float64. It panics if v is not
// numeric; callers must check IsNumber first.
func (v Value) AsFloat64() float64 {
	switch v.Kind {
	case KindInt:
		return float64(v.Int)
	case KindUint:
		return float64(v.Uint)
	case KindFloat:
		return v.Float
	default:
		panic("jsonvalue: AsFloat64 of non-numeric value")
	}
}

// IsIntegerValued reports whether v is a number with no fractional part.
func (v Value) IsIntegerValued() bool {
	switch v.Kind {
	case KindInt, KindUint:
		return true
	case KindFloat:
		return v.Float == float64(int64(v.Float))
	default:
		return false
	}
}

// UTF16Len reports the number of Unicode code units (UTF-16) in a string value,
// which is the length unit draft 2019-09's minLength/maxLength use.
func (v Value) UTF16Len() int {
	if v.Kind != KindString {
		return 0
	}
	n := 0
	for _, r := range v.Str {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// Equal reports whether a and b are deeply equal as JSON values: numbers
// compare by value regardless of representation, object key order is
// irrelevant, array order and length matter.
func Equal(a, b Value) bool {
	if a.Kind == KindUndefined || b.Kind == KindUndefined {
		return a.Kind == b.Kind
	}
	if a.IsNumber() && b.IsNumber() {
		return a.AsFloat64() == b.AsFloat64()
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNull:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindString:
		return a.Str == b.Str
	case KindArray:
		if len(a.Array) != len(b.Array) {
			return false
		}
		for i := range a.Array {
			if !Equal(a.Array[i], b.Array[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.Object.Len() != b.Object.Len() {
			return false
		}
		for k, av := range a.Object.All() {
			bv, ok := b.Object.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Canonical renders v as a deterministic string, used by Preview for
// error-message fragments: object keys are sorted even though Object
// otherwise preserves insertion order, so objects that differ only in
// member order render identically.
func Canonical(v Value) string {
	var b strings.Builder
	writeCanonical(&b, v)
	return b.String()
}

func writeCanonical(b *strings.Builder, v Value) {
	switch v.Kind {
	case KindUndefined:
		b.WriteString("<undefined>")
	case KindNull:
		b.WriteString("null")
	case KindBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindInt:
		b.WriteString(strconv.FormatInt(v.Int, 10))
	case KindUint:
		b.WriteString(strconv.FormatUint(v.Uint, 10))
	case KindFloat:
		b.WriteString(strconv.FormatFloat(v.Float, 'g', -1, 64))
	case KindString:
		b.WriteString(strconv.Quote(v.Str))
	case KindArray:
		b.WriteByte('[')
		for i, e := range v.Array {
			if i > 0 {
				b.WriteByte(',')
			}
			writeCanonical(b, e)
		}
		b.WriteByte(']')
	case KindObject:
		keys := append([]string(nil), v.Object.Keys()...)
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
			val, _ := v.Object.Get(k)
			writeCanonical(b, val)
		}
		b.WriteByte('}')
	}
}

// Preview renders a short, human-readable fragment of v for error messages.
// Long strings, arrays and objects are truncated.
func Preview(v Value) string {
	const maxLen = 60
	s := Canonical(v)
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

// Object is an order-preserving, duplicate-key-rejecting JSON object.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set inserts key with value v, appending key to the key order. It returns
// an error and leaves o unchanged if key is already present, since JSON
// object keys must be unique (spec.md §3).
func (o *Object) Set(key string, v Value) error {
	if _, exists := o.vals[key]; exists {
		return fmt.Errorf("duplicate object key %q", key)
	}
	o.keys = append(o.keys, key)
	o.vals[key] = v
	return nil
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.vals[key]
	return v, ok
}

// Len returns the number of members.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the member names in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// All iterates members in insertion order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for _, k := range o.keys {
			if !yield(k, o.vals[k]) {
				return
			}
		}
	}
}
