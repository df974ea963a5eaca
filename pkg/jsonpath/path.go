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

// Package jsonpath addresses values inside a jsonvalue.Value.
//
// A Path is a sequence of segments evaluated left to right:
//
//   - Field("owner") on an object selects the member. On an array it
//     projects: every element that is an object with that member
//     contributes one value, other elements are skipped.
//   - Index(0) selects an element of an array, negative indices count from
//     the end.
//   - Wildcard() turns an array or the values of an object into an array,
//     so that a following Field projects across it.
//   - Where(sub, value) keeps the array elements whose sub path equals
//     value, Has(sub) keeps the elements whose sub path is truthy.
//
// The textual form accepted by Parse is
//
//	owner.id
//	[0].name
//	members[0]._id
//	[?(name == 'Gryffindor')]._id
//	[?(house)].house
//	*.id
package jsonpath

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cbt-testing/apicheck/pkg/jsonvalue"
)

var (
	// ErrFieldNotFound is returned when a path does not address anything in
	// the document.
	ErrFieldNotFound = errors.New("field not found")

	// ErrSyntax is returned when a path expression cannot be parsed.
	ErrSyntax = errors.New("path syntax error")
)

// NotFoundError describes where evaluation of a path stopped.
type NotFoundError struct {
	// Path is the full path being evaluated.
	Path Path
	// At is the prefix of Path up to and including the failing segment.
	At Path
	// Reason is a short explanation, e.g. the kind that was found instead.
	Reason string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %q at %q: %s", ErrFieldNotFound, e.Path.String(), e.At.String(), e.Reason)
}

func (e *NotFoundError) Unwrap() error {
	return ErrFieldNotFound
}

// Segment is a single step of a path.
type Segment interface {
	fmt.Stringer

	eval(v jsonvalue.Value) (jsonvalue.Value, string, bool)
}

// Path is an immutable sequence of segments. The empty path addresses the
// root of the document.
type Path []Segment

// Root is the empty path.
var Root = Path(nil) //nolint:gochecknoglobals

func (p Path) with(s Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)

	return append(out, s)
}

// Field appends a member access.
func (p Path) Field(name string) Path {
	return p.with(FieldSegment{Name: name})
}

// Index appends an array index.
func (p Path) Index(i int) Path {
	return p.with(IndexSegment{Index: i})
}

// Wildcard appends a projection across all elements.
func (p Path) Wildcard() Path {
	return p.with(WildcardSegment{})
}

// Where appends a filter keeping elements whose sub path equals value.
func (p Path) Where(sub Path, value jsonvalue.Value) Path {
	return p.with(FilterSegment{Sub: sub, Op: OpEqual, Value: value})
}

// WhereNot appends a filter keeping elements whose sub path is present and
// differs from value.
func (p Path) WhereNot(sub Path, value jsonvalue.Value) Path {
	return p.with(FilterSegment{Sub: sub, Op: OpNotEqual, Value: value})
}

// Has appends a filter keeping elements whose sub path is truthy.
func (p Path) Has(sub Path) Path {
	return p.with(FilterSegment{Sub: sub, Op: OpTruthy})
}

func (p Path) String() string {
	var b strings.Builder

	for i, s := range p {
		if f, ok := s.(FieldSegment); ok && i > 0 && f.plain() {
			b.WriteByte('.')
		}

		b.WriteString(s.String())
	}

	return b.String()
}

// Eval resolves the path against a document.
func (p Path) Eval(root jsonvalue.Value) (jsonvalue.Value, error) {
	current := root

	for i, s := range p {
		next, reason, ok := s.eval(current)
		if !ok {
			return jsonvalue.Value{}, &NotFoundError{
				Path:   p,
				At:     p[:i+1],
				Reason: reason,
			}
		}

		current = next
	}

	return current, nil
}

//nolint:gochecknoglobals
var nameEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// FieldSegment selects or projects an object member.
type FieldSegment struct {
	Name string
}

func (s FieldSegment) plain() bool {
	return s.Name != "" && !strings.ContainsAny(s.Name, ".[]'\"\\ \t\n\r")
}

func (s FieldSegment) String() string {
	if s.plain() {
		return s.Name
	}

	return "['" + nameEscaper.Replace(s.Name) + "']"
}

func (s FieldSegment) eval(v jsonvalue.Value) (jsonvalue.Value, string, bool) {
	switch v.Kind() { //nolint:exhaustive
	case jsonvalue.Object:
		member, ok := v.Get(s.Name)
		if !ok {
			return jsonvalue.Value{}, "no member " + strconv.Quote(s.Name), false
		}

		return member, "", true
	case jsonvalue.Array:
		var projected []jsonvalue.Value

		for _, element := range v.Elements() {
			if member, ok := element.Get(s.Name); ok {
				projected = append(projected, member)
			}
		}

		return jsonvalue.ArrayValue(projected...), "", true
	}

	return jsonvalue.Value{}, "cannot select member " + strconv.Quote(s.Name) + " of " + v.Kind().String(), false
}

// IndexSegment selects an array element.
type IndexSegment struct {
	Index int
}

func (s IndexSegment) String() string {
	return "[" + strconv.Itoa(s.Index) + "]"
}

func (s IndexSegment) eval(v jsonvalue.Value) (jsonvalue.Value, string, bool) {
	if v.Kind() != jsonvalue.Array {
		return jsonvalue.Value{}, "cannot index " + v.Kind().String(), false
	}

	element, ok := v.Index(s.Index)
	if !ok {
		return jsonvalue.Value{}, fmt.Sprintf("index %d out of range for length %d", s.Index, v.Len()), false
	}

	return element, "", true
}

// WildcardSegment projects across every element of an array or every value
// of an object.
type WildcardSegment struct{}

func (WildcardSegment) String() string {
	return "[*]"
}

func (WildcardSegment) eval(v jsonvalue.Value) (jsonvalue.Value, string, bool) {
	switch v.Kind() { //nolint:exhaustive
	case jsonvalue.Array:
		return v, "", true
	case jsonvalue.Object:
		members := v.Members()
		values := make([]jsonvalue.Value, len(members))

		for i, m := range members {
			values[i] = m.Value
		}

		return jsonvalue.ArrayValue(values...), "", true
	}

	return jsonvalue.Value{}, "cannot project across " + v.Kind().String(), false
}

// Op is a filter comparison.
type Op int

const (
	OpTruthy Op = iota
	OpEqual
	OpNotEqual
)

// FilterSegment keeps the array elements matching a predicate on a sub
// path. Elements where the sub path does not resolve never match.
type FilterSegment struct {
	Sub   Path
	Op    Op
	Value jsonvalue.Value
}

func (s FilterSegment) String() string {
	switch s.Op {
	case OpEqual:
		return fmt.Sprintf("[?(%s == %s)]", s.Sub, s.Value)
	case OpNotEqual:
		return fmt.Sprintf("[?(%s != %s)]", s.Sub, s.Value)
	case OpTruthy:
	}

	return fmt.Sprintf("[?(%s)]", s.Sub)
}

// Match reports whether a single element satisfies the filter.
func (s FilterSegment) Match(element jsonvalue.Value) bool {
	v, err := s.Sub.Eval(element)
	if err != nil {
		return false
	}

	switch s.Op {
	case OpEqual:
		return v.Equal(s.Value)
	case OpNotEqual:
		return !v.Equal(s.Value)
	case OpTruthy:
	}

	return v.Truthy()
}

func (s FilterSegment) eval(v jsonvalue.Value) (jsonvalue.Value, string, bool) {
	if v.Kind() != jsonvalue.Array {
		return jsonvalue.Value{}, "cannot filter " + v.Kind().String(), false
	}

	var selected []jsonvalue.Value

	for _, element := range v.Elements() {
		if s.Match(element) {
			selected = append(selected, element)
		}
	}

	return jsonvalue.ArrayValue(selected...), "", true
}
