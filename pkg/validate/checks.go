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
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/spjmurray/go-util/pkg/set"

	"github.com/cbt-testing/apicheck/pkg/jsonpath"
	"github.com/cbt-testing/apicheck/pkg/jsonvalue"

	"k8s.io/apimachinery/pkg/util/sets"
)

// maxListed bounds how many offending elements a failure message lists.
const maxListed = 10

// ExtractField resolves a path. On failure the returned value is null and
// the verdict carries FieldNotFound along with the resolved prefix.
func ExtractField(tree jsonvalue.Value, path jsonpath.Path) (jsonvalue.Value, Verdict) {
	const check = "extractField"

	v, err := path.Eval(tree)
	if err != nil {
		verdict := Verdict{
			Check:   check,
			Reason:  FieldNotFound,
			Message: err.Error(),
			Path:    path.String(),
		}

		var notFound *jsonpath.NotFoundError
		if errors.As(err, &notFound) {
			verdict.Message = notFound.Reason
			verdict.Expected = notFound.At.String()
		}

		return jsonvalue.NullValue(), verdict
	}

	return v, pass(check).WithPath(path.String())
}

// ExtractAll resolves a path and returns the addressed values as a list.
// A projected or array result yields its elements, any other result yields
// a single element.
func ExtractAll(tree jsonvalue.Value, path jsonpath.Path) ([]jsonvalue.Value, Verdict) {
	v, verdict := ExtractField(tree, path)
	if verdict.Failed() {
		return nil, verdict
	}

	if v.Kind() == jsonvalue.Array {
		return v.Elements(), verdict
	}

	return []jsonvalue.Value{v}, verdict
}

// Equals checks structural equality. Numbers compare by value regardless of
// representation, strings compare exactly.
func Equals(expected, actual jsonvalue.Value) Verdict {
	const check = "equals"

	if expected.Equal(actual) {
		return pass(check)
	}

	return mismatch(check, expected, actual, "values differ (-expected +actual):\n%s", diff(expected, actual))
}

// HasLength checks the number of values.
func HasLength(values []jsonvalue.Value, n int) Verdict {
	const check = "hasLength"

	if len(values) == n {
		return pass(check)
	}

	return mismatch(check, n, len(values), "expected %d values, got %d", n, len(values))
}

// AllUnique checks that no two values are identical. Numbers compare on
// their literal text, so 1 and 1.0 are distinct. Every duplicated value is
// reported once, in order of first repetition.
func AllUnique(values []jsonvalue.Value) Verdict {
	const check = "allUnique"

	seen := sets.New[string]()
	reported := sets.New[string]()

	var duplicates []jsonvalue.Value

	for _, v := range values {
		key := v.ExactKey()

		if !seen.Has(key) {
			seen.Insert(key)
			continue
		}

		if !reported.Has(key) {
			reported.Insert(key)

			duplicates = append(duplicates, v)
		}
	}

	if len(duplicates) == 0 {
		return pass(check)
	}

	return mismatch(check, len(values), seen.Len(), "%d distinct values among %d, duplicated: %s", seen.Len(), len(values), list(duplicates))
}

// SortedAscending checks that the keys of values are in non-decreasing
// order under compare, i.e. that the key sequence equals its own stable sort.
func SortedAscending(values []jsonvalue.Value, key KeyFunc, compare Comparator) Verdict {
	return sorted("sortedAscending", values, key, compare)
}

// SortedDescending checks that the keys of values are in non-increasing
// order under compare. Equal keys may appear in any order.
func SortedDescending(values []jsonvalue.Value, key KeyFunc, compare Comparator) Verdict {
	return sorted("sortedDescending", values, key, Reverse(compare))
}

func sorted(check string, values []jsonvalue.Value, key KeyFunc, compare Comparator) Verdict {
	if key == nil {
		key = Identity
	}

	keys := make([]jsonvalue.Value, len(values))

	for i, v := range values {
		k, err := key(v)
		if err != nil {
			if errors.Is(err, jsonpath.ErrFieldNotFound) {
				verdict := Verdict{
					Check:   check,
					Reason:  FieldNotFound,
					Message: fmt.Sprintf("element %d: %v", i, err),
					Actual:  v,
				}

				var notFound *jsonpath.NotFoundError
				if errors.As(err, &notFound) {
					verdict.Path = notFound.Path.String()
					verdict.Expected = notFound.At.String()
				}

				return verdict
			}

			return mismatch(check, nil, v, "element %d: %v", i, err)
		}

		keys[i] = k
	}

	for i := 1; i < len(keys); i++ {
		if compare(keys[i-1], keys[i]) > 0 {
			expected := slices.Clone(keys)
			slices.SortStableFunc(expected, compare)

			return mismatch(check, expected, keys, "element %d (%s) is out of order after element %d (%s)", i, keys[i], i-1, keys[i-1])
		}
	}

	return pass(check)
}

// Every checks that the predicate holds for all values.
func Every(values []jsonvalue.Value, predicate Predicate) Verdict {
	const check = "every"

	var failed []string

	for i, v := range values {
		if !predicate.Match(v) {
			failed = append(failed, fmt.Sprintf("[%d]=%s", i, v))
		}
	}

	if len(failed) == 0 {
		return pass(check)
	}

	count := len(failed)
	if count > maxListed {
		failed = append(failed[:maxListed], "...")
	}

	return mismatch(check, predicate.String(), values, "%d of %d values do not satisfy %s: %s", count, len(values), predicate, strings.Join(failed, ", "))
}

// MemberOf checks that value is one of allowed.
func MemberOf(value jsonvalue.Value, allowed []jsonvalue.Value) Verdict {
	const check = "memberOf"

	if keySet(allowed).Has(value.Key()) {
		return pass(check)
	}

	return mismatch(check, allowed, value, "%s is not one of %s", value, list(allowed))
}

// CrossReference checks that two independently derived sequences are
// equal, element by element and in order.
func CrossReference(primary, secondary []jsonvalue.Value) Verdict {
	const check = "crossReference"

	if slices.EqualFunc(primary, secondary, jsonvalue.Value.Equal) {
		return pass(check)
	}

	return mismatch(check, primary, secondary, "sequences differ (-primary +secondary):\n%s",
		diff(jsonvalue.ArrayValue(primary...), jsonvalue.ArrayValue(secondary...)))
}

// SameFields checks that two objects have the same members with equal
// values. The failure lists missing, unexpected and differing members.
func SameFields(expected, actual jsonvalue.Value) Verdict {
	const check = "sameFields"

	if expected.Kind() != jsonvalue.Object || actual.Kind() != jsonvalue.Object {
		return mismatch(check, expected.Kind().String(), actual.Kind().String(), "both values must be objects")
	}

	if expected.Equal(actual) {
		return pass(check)
	}

	expectedKeys := set.New[string](expected.Keys()...)
	actualKeys := set.New[string](actual.Keys()...)

	var problems []string

	for key := range expectedKeys.Difference(actualKeys).All() {
		problems = append(problems, "missing "+key)
	}

	for key := range actualKeys.Difference(expectedKeys).All() {
		problems = append(problems, "unexpected "+key)
	}

	for key := range expectedKeys.Intersection(actualKeys).All() {
		e, _ := expected.Get(key)
		a, _ := actual.Get(key)

		if !e.Equal(a) {
			problems = append(problems, fmt.Sprintf("%s: %s != %s", key, e, a))
		}
	}

	slices.Sort(problems)

	return mismatch(check, expected, actual, "%s", strings.Join(problems, "; "))
}

// StatusCode checks an HTTP status code.
func StatusCode(expected, actual int) Verdict {
	const check = "statusCode"

	if expected == actual {
		return pass(check)
	}

	return mismatch(check, expected, actual, "expected status %d, got %d", expected, actual)
}

// HeaderEquals checks a header value exactly, e.g. a content type.
func HeaderEquals(name, expected, actual string) Verdict {
	check := "header " + name

	if expected == actual {
		return pass(check)
	}

	return mismatch(check, expected, actual, "expected %s %q, got %q", name, expected, actual)
}

// Contains checks that text includes a substring, e.g. a raw body or a
// status line.
func Contains(text, substring string) Verdict {
	const check = "contains"

	if strings.Contains(text, substring) {
		return pass(check)
	}

	return mismatch(check, substring, text, "text does not contain %q", substring)
}

func keySet(values []jsonvalue.Value) sets.Set[string] {
	out := sets.New[string]()

	for _, v := range values {
		out.Insert(v.Key())
	}

	return out
}

func list(values []jsonvalue.Value) string {
	return jsonvalue.ArrayValue(values...).String()
}

func diff(expected, actual jsonvalue.Value) string {
	return cmp.Diff(expected.Interface(), actual.Interface())
}
