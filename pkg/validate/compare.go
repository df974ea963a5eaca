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

package validate

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/cbt-testing/apicheck/pkg/jsonpath"
	"github.com/cbt-testing/apicheck/pkg/jsonvalue"
)

// ErrNotString is returned by key functions that only apply to strings.
var ErrNotString = errors.New("value is not a string")

// Comparator orders two values, returning a negative number, zero or a
// positive number.
type Comparator func(a, b jsonvalue.Value) int

// KeyFunc derives the value a sort check compares from an element.
type KeyFunc func(jsonvalue.Value) (jsonvalue.Value, error)

// Identity compares elements as they are.
func Identity(v jsonvalue.Value) (jsonvalue.Value, error) {
	return v, nil
}

// ByPath compares elements on the value at a path within each element.
func ByPath(path jsonpath.Path) KeyFunc {
	return func(v jsonvalue.Value) (jsonvalue.Value, error) {
		return path.Eval(v)
	}
}

// Truncate compares strings on the part before the first separator. The
// whole string is used if the separator does not occur.
func Truncate(separator string) KeyFunc {
	return func(v jsonvalue.Value) (jsonvalue.Value, error) {
		s, ok := v.AsString()
		if !ok {
			return jsonvalue.Value{}, fmt.Errorf("%w: %s", ErrNotString, v.Kind())
		}

		prefix, _, _ := strings.Cut(s, separator)

		return jsonvalue.StringValue(prefix), nil
	}
}

// Reverse inverts a comparator.
func Reverse(compare Comparator) Comparator {
	return func(a, b jsonvalue.Value) int {
		return compare(b, a)
	}
}

// Natural orders values of different kinds by kind, then by value within a
// kind: false before true, numbers numerically, strings by bytes, arrays
// element-wise and objects by their canonical encoding.
func Natural(a, b jsonvalue.Value) int {
	if a.Kind() != b.Kind() {
		return cmp.Compare(a.Kind(), b.Kind())
	}

	switch a.Kind() {
	case jsonvalue.Null:
		return 0
	case jsonvalue.Bool:
		x, _ := a.AsBool()
		y, _ := b.AsBool()

		switch {
		case x == y:
			return 0
		case !x:
			return -1
		}

		return 1
	case jsonvalue.Number:
		x, _ := a.AsNumber()
		y, _ := b.AsNumber()

		if c, ok := jsonvalue.CompareNumbers(x, y); ok {
			return c
		}

		return strings.Compare(x.String(), y.String())
	case jsonvalue.String:
		x, _ := a.AsString()
		y, _ := b.AsString()

		return strings.Compare(x, y)
	case jsonvalue.Array:
		x := a.Elements()
		y := b.Elements()

		for i := 0; i < len(x) && i < len(y); i++ {
			if c := Natural(x[i], y[i]); c != 0 {
				return c
			}
		}

		return cmp.Compare(len(x), len(y))
	case jsonvalue.Object:
	}

	return strings.Compare(a.Key(), b.Key())
}

// Lexicographic orders values by their text: the content of strings and
// the JSON encoding of anything else. Numbers therefore order as text, so
// "10" sorts before "9".
func Lexicographic(a, b jsonvalue.Value) int {
	return strings.Compare(text(a), text(b))
}

func text(v jsonvalue.Value) string {
	if s, ok := v.AsString(); ok {
		return s
	}

	return v.String()
}

// Numeric orders numbers, and strings holding numbers, by value. Anything
// else falls back to Natural.
func Numeric(a, b jsonvalue.Value) int {
	x, xok := number(a)
	y, yok := number(b)

	if xok && yok {
		if c, ok := jsonvalue.CompareNumbers(x, y); ok {
			return c
		}
	}

	return Natural(a, b)
}

func number(v jsonvalue.Value) (json.Number, bool) {
	if n, ok := v.AsNumber(); ok {
		return n, true
	}

	if s, ok := v.AsString(); ok {
		n := json.Number(strings.TrimSpace(s))
		if _, err := n.Float64(); err == nil {
			return n, true
		}
	}

	return "", false
}

// DateOnly orders timestamps such as "2021-05-01T10:00:00Z" on their date
// portion only, so that two timestamps on the same day compare equal.
func DateOnly(a, b jsonvalue.Value) int {
	x, xerr := Truncate("T")(a)
	y, yerr := Truncate("T")(b)

	if xerr != nil || yerr != nil {
		return Natural(a, b)
	}

	return Natural(x, y)
}
