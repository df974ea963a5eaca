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
	"fmt"

	"github.com/cbt-testing/apicheck/pkg/jsonvalue"
)

// Predicate is a described boolean test over a single value.
type Predicate interface {
	fmt.Stringer

	Match(v jsonvalue.Value) bool
}

type predicate struct {
	description string
	match       func(jsonvalue.Value) bool
}

func (p predicate) Match(v jsonvalue.Value) bool {
	return p.match(v)
}

func (p predicate) String() string {
	return p.description
}

// Satisfies wraps an arbitrary function as a Predicate.
func Satisfies(description string, match func(jsonvalue.Value) bool) Predicate {
	return predicate{description: description, match: match}
}

// EqualTo matches values equal to expected.
func EqualTo(expected jsonvalue.Value) Predicate {
	return Satisfies("equal to "+expected.String(), expected.Equal)
}

// OneOf matches values that are members of allowed.
func OneOf(allowed ...jsonvalue.Value) Predicate {
	set := keySet(allowed)

	return Satisfies("one of "+list(allowed), func(v jsonvalue.Value) bool {
		return set.Has(v.Key())
	})
}

// AtMost matches values ordered at or before limit under compare.
func AtMost(limit jsonvalue.Value, compare Comparator) Predicate {
	return Satisfies("at most "+limit.String(), func(v jsonvalue.Value) bool {
		return compare(v, limit) <= 0
	})
}

// AtLeast matches values ordered at or after limit under compare.
func AtLeast(limit jsonvalue.Value, compare Comparator) Predicate {
	return Satisfies("at least "+limit.String(), func(v jsonvalue.Value) bool {
		return compare(v, limit) >= 0
	})
}

// NonEmpty matches strings, arrays and objects with content, and every
// number and boolean. Null never matches.
func NonEmpty() Predicate {
	return Satisfies("not empty", func(v jsonvalue.Value) bool {
		switch v.Kind() { //nolint:exhaustive
		case jsonvalue.Null:
			return false
		case jsonvalue.String, jsonvalue.Array, jsonvalue.Object:
			return v.Len() > 0
		}

		return true
	})
}

// OfKind matches values of the given kind.
func OfKind(kind jsonvalue.Kind) Predicate {
	return Satisfies("of kind "+kind.String(), func(v jsonvalue.Value) bool {
		return v.Kind() == kind
	})
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return Satisfies("not "+p.String(), func(v jsonvalue.Value) bool {
		return !p.Match(v)
	})
}
