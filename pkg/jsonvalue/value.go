/*
Copyright 2026 the API Check Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package jsonvalue provides an immutable, ordered representation of a
// decoded JSON document.
package jsonvalue

import (
	"encoding/json"
	"math/big"
	"slices"
	"strings"
)

// Kind identifies which variant of the union a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	}

	return "unknown"
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is a JSON value. The zero value is JSON null.
// Values are never modified after construction, accessors that return
// collections return copies.
type Value struct {
	kind    Kind
	boolean bool
	number  json.Number
	str     string
	items   []Value
	members []Member
	index   map[string]int
}

// NullValue returns JSON null.
func NullValue() Value {
	return Value{}
}

// BoolValue returns a JSON boolean.
func BoolValue(b bool) Value {
	return Value{kind: Bool, boolean: b}
}

// NumberValue returns a JSON number, keeping its textual representation.
func NumberValue(n json.Number) Value {
	return Value{kind: Number, number: n}
}

// StringValue returns a JSON string.
func StringValue(s string) Value {
	return Value{kind: String, str: s}
}

// ArrayValue returns a JSON array holding the given elements.
func ArrayValue(items ...Value) Value {
	return Value{kind: Array, items: slices.Clone(items)}
}

// ObjectValue returns a JSON object. Later duplicate keys replace earlier
// ones but keep the position of the first occurrence, as decoders do.
func ObjectValue(members ...Member) Value {
	v := Value{
		kind:    Object,
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}

	for _, m := range members {
		if i, ok := v.index[m.Key]; ok {
			v.members[i].Value = m.Value
			continue
		}

		v.index[m.Key] = len(v.members)
		v.members = append(v.members, m)
	}

	return v
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == Null
}

// AsBool returns the boolean and whether the value is one.
func (v Value) AsBool() (bool, bool) {
	return v.boolean, v.kind == Bool
}

// AsNumber returns the number and whether the value is one.
func (v Value) AsNumber() (json.Number, bool) {
	return v.number, v.kind == Number
}

// AsString returns the string and whether the value is one.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == String
}

// Elements returns the elements of an array, or nil for any other kind.
func (v Value) Elements() []Value {
	if v.kind != Array {
		return nil
	}

	return slices.Clone(v.items)
}

// Members returns the members of an object in document order, or nil for
// any other kind.
func (v Value) Members() []Member {
	if v.kind != Object {
		return nil
	}

	return slices.Clone(v.members)
}

// Keys returns the keys of an object in document order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.members))
	for _, m := range v.members {
		keys = append(keys, m.Key)
	}

	return keys
}

// Get looks up a key on an object. It returns false if the value is not an
// object or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != Object {
		return Value{}, false
	}

	i, ok := v.index[key]
	if !ok {
		return Value{}, false
	}

	return v.members[i].Value, true
}

// Index returns the i'th element of an array. Negative indices count from
// the end.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != Array {
		return Value{}, false
	}

	if i < 0 {
		i += len(v.items)
	}

	if i < 0 || i >= len(v.items) {
		return Value{}, false
	}

	return v.items[i], true
}

// Len returns the number of elements or members, the byte length of a
// string, and zero for everything else.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.items)
	case Object:
		return len(v.members)
	case String:
		return len(v.str)
	}

	return 0
}

// Truthy reports whether the value is present in the sense used by
// collection filters: null, false, zero, empty strings and empty
// collections are false.
func (v Value) Truthy() bool {
	switch v.kind {
	case Bool:
		return v.boolean
	case Number:
		f, ok := toFloat(v.number)
		return !ok || f.Sign() != 0
	case String, Array, Object:
		return v.Len() > 0
	}

	return false
}

// Equal reports structural equality. Numbers compare by value, so 1 and 1.0
// are equal. Object member order is not significant.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.boolean == o.boolean
	case Number:
		return numbersEqual(v.number, o.number)
	case String:
		return v.str == o.str
	case Array:
		return slices.EqualFunc(v.items, o.items, Value.Equal)
	case Object:
		if len(v.members) != len(o.members) {
			return false
		}

		for _, m := range v.members {
			other, ok := o.Get(m.Key)
			if !ok || !m.Value.Equal(other) {
				return false
			}
		}

		return true
	}

	return false
}

// Key returns a canonical encoding such that two values have the same key
// if and only if they are Equal.
func (v Value) Key() string {
	var b strings.Builder

	v.writeKey(&b, false)

	return b.String()
}

// ExactKey is like Key but numbers keep their literal text, so 1 and 1.0
// have different exact keys.
func (v Value) ExactKey() string {
	var b strings.Builder

	v.writeKey(&b, true)

	return b.String()
}

func (v Value) writeKey(b *strings.Builder, exact bool) {
	switch v.kind {
	case Number:
		if f, ok := toFloat(v.number); ok && !exact {
			b.WriteString(f.Text('g', -1))
			return
		}

		b.WriteString(v.number.String())
	case Array:
		b.WriteByte('[')

		for i, item := range v.items {
			if i > 0 {
				b.WriteByte(',')
			}

			item.writeKey(b, exact)
		}

		b.WriteByte(']')
	case Object:
		keys := v.Keys()
		slices.Sort(keys)

		b.WriteByte('{')

		for i, key := range keys {
			if i > 0 {
				b.WriteByte(',')
			}

			encoded, _ := json.Marshal(key)
			b.Write(encoded)
			b.WriteByte(':')

			member, _ := v.Get(key)
			member.writeKey(b, exact)
		}

		b.WriteByte('}')
	default:
		b.WriteString(v.String())
	}
}

// String returns the compact JSON encoding of the value.
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return "<invalid>"
	}

	return string(data)
}

// Interface converts the value to the plain Go types produced by
// encoding/json with UseNumber. Object member order is lost.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.boolean
	case Number:
		return v.number
	case String:
		return v.str
	case Array:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}

		return out
	case Object:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}

		return out
	}

	return nil
}

// CompareNumbers orders two numbers. It returns false if either is not a valid
// number.
func CompareNumbers(a, b json.Number) (int, bool) {
	fa, ok := toFloat(a)
	if !ok {
		return 0, false
	}

	fb, ok := toFloat(b)
	if !ok {
		return 0, false
	}

	return fa.Cmp(fb), true
}

func numbersEqual(a, b json.Number) bool {
	if a == b {
		return true
	}

	c, ok := CompareNumbers(a, b)

	return ok && c == 0
}

func toFloat(n json.Number) (*big.Float, bool) {
	f, _, err := big.ParseFloat(n.String(), 10, 256, big.ToNearestEven)
	if err != nil {
		return nil, false
	}

	return f, true
}
