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

package jsonvalue

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"slices"
	"strconv"
)

var (
	// ErrInvalidJSON is returned when a document cannot be decoded.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrUnsupportedType is returned by From for Go values that have no
	// JSON equivalent.
	ErrUnsupportedType = errors.New("unsupported type")
)

// Parse decodes a complete JSON document, preserving object key order and
// the textual form of numbers.
func Parse(data []byte) (Value, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	v, err := decode(decoder)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return Value{}, fmt.Errorf("%w: trailing data after document", ErrInvalidJSON)
	}

	return v, nil
}

// MustParse is like Parse but panics on error. It is intended for literals
// in tests and fixtures.
func MustParse(data string) Value {
	v, err := Parse([]byte(data))
	if err != nil {
		panic(err)
	}

	return v
}

func decode(decoder *json.Decoder) (Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := token.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Delim:
		switch t {
		case '[':
			var items []Value

			for decoder.More() {
				item, err := decode(decoder)
				if err != nil {
					return Value{}, err
				}

				items = append(items, item)
			}

			if _, err := decoder.Token(); err != nil {
				return Value{}, err
			}

			return Value{kind: Array, items: items}, nil
		case '{':
			var members []Member

			for decoder.More() {
				keyToken, err := decoder.Token()
				if err != nil {
					return Value{}, err
				}

				key, ok := keyToken.(string)
				if !ok {
					return Value{}, fmt.Errorf("object key %v is not a string", keyToken)
				}

				member, err := decode(decoder)
				if err != nil {
					return Value{}, err
				}

				members = append(members, Member{Key: key, Value: member})
			}

			if _, err := decoder.Token(); err != nil {
				return Value{}, err
			}

			return ObjectValue(members...), nil
		}
	}

	return Value{}, fmt.Errorf("unexpected token %v", token)
}

// MarshalJSON encodes the value, keeping object member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	if err := v.encode(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case Number:
		buf.WriteString(v.number.String())
	case String:
		encoded, err := json.Marshal(v.str)
		if err != nil {
			return err
		}

		buf.Write(encoded)
	case Array:
		buf.WriteByte('[')

		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := item.encode(buf); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')

		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}

			key, err := json.Marshal(m.Key)
			if err != nil {
				return err
			}

			buf.Write(key)
			buf.WriteByte(':')

			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	}

	return nil
}

// UnmarshalJSON decodes into the value, replacing it.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// From converts a plain Go value into a Value. Maps have their keys sorted
// since Go does not preserve insertion order. Structs are converted through
// encoding/json.
func From(in any) (Value, error) {
	switch t := in.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t, nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		return NumberValue(t), nil
	case int:
		return NumberValue(json.Number(strconv.Itoa(t))), nil
	case int64:
		return NumberValue(json.Number(strconv.FormatInt(t, 10))), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Value{}, fmt.Errorf("%w: non-finite number %v", ErrUnsupportedType, t)
		}

		return NumberValue(json.Number(strconv.FormatFloat(t, 'g', -1, 64))), nil
	case []Value:
		return ArrayValue(t...), nil
	case []any:
		items := make([]Value, len(t))

		for i := range t {
			item, err := From(t[i])
			if err != nil {
				return Value{}, err
			}

			items[i] = item
		}

		return Value{kind: Array, items: items}, nil
	case []string:
		items := make([]Value, len(t))
		for i := range t {
			items[i] = StringValue(t[i])
		}

		return Value{kind: Array, items: items}, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}

		slices.Sort(keys)

		members := make([]Member, len(keys))

		for i, key := range keys {
			member, err := From(t[key])
			if err != nil {
				return Value{}, err
			}

			members[i] = Member{Key: key, Value: member}
		}

		return ObjectValue(members...), nil
	}

	switch reflect.ValueOf(in).Kind() { //nolint:exhaustive
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer,
		reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint, reflect.Uint8,
		reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Float32:
		data, err := json.Marshal(in)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrUnsupportedType, err)
		}

		return Parse(data)
	}

	return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, in)
}

// MustFrom is like From but panics on error.
func MustFrom(in any) Value {
	v, err := From(in)
	if err != nil {
		panic(err)
	}

	return v
}
