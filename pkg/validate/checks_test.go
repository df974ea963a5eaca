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

package validate_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cbt-testing/apicheck/pkg/jsonpath"
	"github.com/cbt-testing/apicheck/pkg/jsonvalue"
	"github.com/cbt-testing/apicheck/pkg/validate"
)

var houses = []string{"Gryffindor", "Ravenclaw", "Slytherin", "Hufflepuff"} //nolint:gochecknoglobals

func values(t *testing.T, doc string) []jsonvalue.Value {
	t.Helper()

	v, err := jsonvalue.Parse([]byte(doc))
	require.NoError(t, err)
	require.Equal(t, jsonvalue.Array, v.Kind())

	return v.Elements()
}

func strs(in ...string) []jsonvalue.Value {
	out := make([]jsonvalue.Value, len(in))
	for i := range in {
		out[i] = jsonvalue.StringValue(in[i])
	}

	return out
}

func TestExtractField(t *testing.T) {
	t.Parallel()

	v, verdict := validate.ExtractField(jsonvalue.MustParse(`{"owner":{"id":5}}`), jsonpath.MustParse("owner.id"))
	require.True(t, verdict.Passed, verdict.String())
	require.Equal(t, `5`, v.String())
}

func TestExtractFieldNotFound(t *testing.T) {
	t.Parallel()

	v, verdict := validate.ExtractField(jsonvalue.MustParse(`{"a":1}`), jsonpath.MustParse("b"))
	require.True(t, verdict.Failed())
	require.Equal(t, validate.FieldNotFound, verdict.Reason)
	require.Equal(t, "b", verdict.Path)
	require.True(t, v.IsNull())
	require.Contains(t, verdict.String(), `FieldNotFound at "b"`)
}

func TestExtractAll(t *testing.T) {
	t.Parallel()

	tree := jsonvalue.MustParse(`[{"id":1},{"id":2},{"name":"x"}]`)

	ids, verdict := validate.ExtractAll(tree, jsonpath.MustParse("id"))
	require.True(t, verdict.Passed)
	require.Len(t, ids, 2)

	single, verdict := validate.ExtractAll(tree, jsonpath.MustParse("[2].name"))
	require.True(t, verdict.Passed)
	require.Equal(t, strs("x"), single)
}

func TestEquals(t *testing.T) {
	t.Parallel()

	require.True(t, validate.Equals(jsonvalue.MustParse(`320565`), jsonvalue.MustParse(`320565.0`)).Passed)
	require.True(t, validate.Equals(jsonvalue.MustParse(`{"a":[1,"x"]}`), jsonvalue.MustParse(`{"a":[1,"x"]}`)).Passed)

	verdict := validate.Equals(jsonvalue.StringValue("cucumber"), jsonvalue.StringValue("Cucumber"))
	require.True(t, verdict.Failed())
	require.Equal(t, validate.ValueMismatch, verdict.Reason)
	require.Equal(t, jsonvalue.StringValue("cucumber"), verdict.Expected)
	require.Equal(t, jsonvalue.StringValue("Cucumber"), verdict.Actual)
}

func TestHasLength(t *testing.T) {
	t.Parallel()

	require.True(t, validate.HasLength(strs("a", "b"), 2).Passed)

	verdict := validate.HasLength(strs("a"), 194)
	require.True(t, verdict.Failed())
	require.Equal(t, 194, verdict.Expected)
	require.Equal(t, 1, verdict.Actual)
}

func TestAllUnique(t *testing.T) {
	t.Parallel()

	require.True(t, validate.AllUnique(values(t, `[1,2,3]`)).Passed)
	require.True(t, validate.AllUnique(nil).Passed)
	require.True(t, validate.AllUnique(strs("abc", "ABC")).Passed)

	verdict := validate.AllUnique(values(t, `[1,2,2]`))
	require.True(t, verdict.Failed())
	require.Equal(t, validate.ValueMismatch, verdict.Reason)
	require.Contains(t, verdict.Message, "duplicated: [2]")

	require.True(t, validate.AllUnique(values(t, `[1,1.0,"1"]`)).Passed)

	verdict = validate.AllUnique(values(t, `[1.0,1,1.0]`))
	require.True(t, verdict.Failed())
	require.Contains(t, verdict.Message, "2 distinct values among 3, duplicated: [1.0]")
}

func TestAllUniqueMatchesSetCardinality(t *testing.T) {
	t.Parallel()

	inputs := []string{`[]`, `[1]`, `[1,2,1,3,2]`, `["a","b","c"]`, `[{"a":1},{"a":1}]`, `[null,null]`}

	for _, input := range inputs {
		vs := values(t, input)

		distinct := map[string]struct{}{}
		for _, v := range vs {
			distinct[v.ExactKey()] = struct{}{}
		}

		require.Equal(t, len(distinct) == len(vs), validate.AllUnique(vs).Passed, input)
	}
}

func TestSortedAscending(t *testing.T) {
	t.Parallel()

	require.True(t, validate.SortedAscending(strs("cucumber/aruba", "cucumber/cucumber", "cucumber/gherkin"), validate.Identity, validate.Lexicographic).Passed)
	require.True(t, validate.SortedAscending(nil, nil, validate.Lexicographic).Passed)

	verdict := validate.SortedAscending(strs("b", "a", "c"), validate.Identity, validate.Lexicographic)
	require.True(t, verdict.Failed())
	require.Equal(t, strs("a", "b", "c"), verdict.Expected)
	require.Equal(t, strs("b", "a", "c"), verdict.Actual)
}

func TestSortedDescending(t *testing.T) {
	t.Parallel()

	require.True(t, validate.SortedDescending(strs("c", "b", "b", "a"), validate.Identity, validate.Lexicographic).Passed)

	verdict := validate.SortedDescending(strs("a", "b"), validate.Identity, validate.Lexicographic)
	require.True(t, verdict.Failed())
	require.Equal(t, strs("b", "a"), verdict.Expected)
}

func TestSortedMatchesStableSort(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{},
		{"a"},
		{"a", "b", "c"},
		{"c", "b", "a"},
		{"a", "a", "b"},
		{"b", "a", "a"},
		{"a", "c", "b"},
	}

	for _, input := range inputs {
		vs := strs(input...)

		ascending := slices.Clone(input)
		slices.Sort(ascending)

		descending := slices.Clone(ascending)
		slices.Reverse(descending)

		require.Equal(t, slices.Equal(input, ascending), validate.SortedAscending(vs, nil, validate.Lexicographic).Passed, input)
		require.Equal(t, slices.Equal(input, descending), validate.SortedDescending(vs, nil, validate.Lexicographic).Passed, input)
	}
}

func TestSortedDateOnly(t *testing.T) {
	t.Parallel()

	timestamps := strs("2021-05-01T10:00:00", "2021-05-01T03:00:00")

	require.True(t, validate.SortedDescending(timestamps, validate.Identity, validate.DateOnly).Passed)
	require.True(t, validate.SortedAscending(timestamps, validate.Identity, validate.DateOnly).Passed)

	// The full timestamp comparator must see the difference.
	require.True(t, validate.SortedAscending(timestamps, validate.Identity, validate.Lexicographic).Failed())

	verdict := validate.SortedDescending(strs("2021-05-01T10:00:00Z", "2021-06-01T00:00:00Z"), validate.Identity, validate.DateOnly)
	require.True(t, verdict.Failed())
}

func TestSortedTruncateKey(t *testing.T) {
	t.Parallel()

	timestamps := strs("2021-05-02T01:00:00Z", "2021-05-01T10:00:00Z", "2021-05-01T23:00:00Z")

	require.True(t, validate.SortedDescending(timestamps, validate.Truncate("T"), validate.Lexicographic).Passed)
	require.True(t, validate.SortedDescending(timestamps, validate.Identity, validate.Lexicographic).Failed())

	verdict := validate.SortedDescending(values(t, `[1]`), validate.Truncate("T"), validate.Lexicographic)
	require.True(t, verdict.Failed())
	require.Contains(t, verdict.Message, "not a string")
}

func TestSortedByPath(t *testing.T) {
	t.Parallel()

	repos := values(t, `[{"full_name":"a"},{"full_name":"b"},{"name":"c"}]`)

	require.True(t, validate.SortedAscending(repos[:2], validate.ByPath(jsonpath.MustParse("full_name")), validate.Lexicographic).Passed)

	verdict := validate.SortedAscending(repos, validate.ByPath(jsonpath.MustParse("full_name")), validate.Lexicographic)
	require.True(t, verdict.Failed())
	require.Equal(t, validate.FieldNotFound, verdict.Reason)
	require.Contains(t, verdict.Message, "element 2")
	require.Equal(t, "full_name", verdict.Path)

	verdict = validate.SortedDescending(values(t, `["2020-01-01T00:00:00Z",7]`), validate.Truncate("T"), validate.Lexicographic)
	require.True(t, verdict.Failed())
	require.Equal(t, validate.ValueMismatch, verdict.Reason)
}

func TestComparators(t *testing.T) {
	t.Parallel()

	require.Negative(t, validate.Lexicographic(jsonvalue.MustParse(`10`), jsonvalue.MustParse(`9`)))
	require.Positive(t, validate.Numeric(jsonvalue.MustParse(`10`), jsonvalue.MustParse(`9`)))
	require.Positive(t, validate.Numeric(jsonvalue.StringValue("10"), jsonvalue.StringValue("9")))
	require.Zero(t, validate.Numeric(jsonvalue.MustParse(`1`), jsonvalue.MustParse(`1.0`)))
	require.Negative(t, validate.Natural(jsonvalue.NullValue(), jsonvalue.BoolValue(false)))
	require.Negative(t, validate.Natural(jsonvalue.BoolValue(false), jsonvalue.BoolValue(true)))
	require.Negative(t, validate.Natural(jsonvalue.MustParse(`[1,2]`), jsonvalue.MustParse(`[1,3]`)))
	require.Negative(t, validate.Natural(jsonvalue.MustParse(`[1]`), jsonvalue.MustParse(`[1,0]`)))
	require.Zero(t, validate.DateOnly(jsonvalue.StringValue("2020-01-01T00:00:00Z"), jsonvalue.StringValue("2020-01-01T23:59:59Z")))
}

func TestEvery(t *testing.T) {
	t.Parallel()

	ownerIDs := values(t, `[320565,320565,320565.0]`)
	require.True(t, validate.Every(ownerIDs, validate.EqualTo(jsonvalue.MustParse(`320565`))).Passed)
	require.True(t, validate.Every(nil, validate.EqualTo(jsonvalue.MustParse(`1`))).Passed)

	verdict := validate.Every(values(t, `[1,2,3]`), validate.EqualTo(jsonvalue.MustParse(`1`)))
	require.True(t, verdict.Failed())
	require.Contains(t, verdict.Message, "2 of 3 values do not satisfy equal to 1: [1]=2, [2]=3")
}

func TestEveryTruncatesLongFailures(t *testing.T) {
	t.Parallel()

	vs := make([]jsonvalue.Value, 25)
	for i := range vs {
		vs[i] = jsonvalue.BoolValue(false)
	}

	verdict := validate.Every(vs, validate.EqualTo(jsonvalue.BoolValue(true)))
	require.True(t, verdict.Failed())
	require.Contains(t, verdict.Message, "25 of 25")
	require.Contains(t, verdict.Message, ", ...")
}

func TestPredicates(t *testing.T) {
	t.Parallel()

	require.True(t, validate.Every(strs(houses...), validate.OneOf(strs(houses...)...)).Passed)
	require.True(t, validate.Every(strs("Durmstrang"), validate.OneOf(strs(houses...)...)).Failed())

	sizes := values(t, `[10,12,40]`)
	require.True(t, validate.Every(sizes, validate.AtMost(jsonvalue.MustParse(`40`), validate.Numeric)).Passed)
	require.True(t, validate.Every(sizes, validate.AtMost(jsonvalue.MustParse(`39`), validate.Numeric)).Failed())
	require.True(t, validate.Every(sizes, validate.AtLeast(jsonvalue.MustParse(`10`), validate.Numeric)).Passed)

	require.True(t, validate.Every(strs("5a0fa4daae5bc100213c232e"), validate.NonEmpty()).Passed)
	require.True(t, validate.Every(values(t, `["", null]`), validate.NonEmpty()).Failed())
	require.True(t, validate.Every(values(t, `[0, false]`), validate.NonEmpty()).Passed)

	flags := values(t, `[true,false,true]`)
	require.True(t, validate.Every(flags, validate.OfKind(jsonvalue.Bool)).Passed)
	require.True(t, validate.Every(values(t, `[true,"false"]`), validate.OfKind(jsonvalue.Bool)).Failed())

	require.True(t, validate.Every(strs("x"), validate.Not(validate.EqualTo(jsonvalue.StringValue("y")))).Passed)
	require.Equal(t, "not equal to \"y\"", validate.Not(validate.EqualTo(jsonvalue.StringValue("y"))).String())
}

func TestMemberOf(t *testing.T) {
	t.Parallel()

	require.True(t, validate.MemberOf(jsonvalue.StringValue("Gryffindor"), strs(houses...)).Passed)

	verdict := validate.MemberOf(jsonvalue.StringValue("Durmstrang"), strs(houses...))
	require.True(t, verdict.Failed())
	require.Equal(t, jsonvalue.StringValue("Durmstrang"), verdict.Actual)
	require.Equal(t, strs(houses...), verdict.Expected)
	require.Contains(t, verdict.Message, `"Durmstrang" is not one of ["Gryffindor","Ravenclaw","Slytherin","Hufflepuff"]`)

	require.True(t, validate.MemberOf(jsonvalue.StringValue("gryffindor"), strs(houses...)).Failed())
}

func TestCrossReference(t *testing.T) {
	t.Parallel()

	require.True(t, validate.CrossReference(strs("a", "b", "c"), strs("a", "b", "c")).Passed)
	require.True(t, validate.CrossReference(nil, nil).Passed)

	verdict := validate.CrossReference(strs("a", "b"), strs("b", "a"))
	require.True(t, verdict.Failed())
	require.Equal(t, strs("a", "b"), verdict.Expected)
	require.Equal(t, strs("b", "a"), verdict.Actual)
	require.Contains(t, verdict.Message, "sequences differ")

	require.True(t, validate.CrossReference(strs("a"), strs("a", "b")).Failed())
}

func TestSameFields(t *testing.T) {
	t.Parallel()

	a := jsonvalue.MustParse(`{"_id":"1","name":"Harry Potter","house":"Gryffindor"}`)
	b := jsonvalue.MustParse(`{"house":"Gryffindor","name":"Harry Potter","_id":"1"}`)
	require.True(t, validate.SameFields(a, b).Passed)

	c := jsonvalue.MustParse(`{"_id":"1","name":"Harry James Potter","school":"Hogwarts"}`)

	verdict := validate.SameFields(a, c)
	require.True(t, verdict.Failed())
	require.Equal(t, `missing house; name: "Harry Potter" != "Harry James Potter"; unexpected school`, verdict.Message)

	require.True(t, validate.SameFields(a, jsonvalue.MustParse(`[]`)).Failed())
}

func TestResponseChecks(t *testing.T) {
	t.Parallel()

	require.True(t, validate.StatusCode(200, 200).Passed)
	require.True(t, validate.StatusCode(200, 415).Failed())

	require.True(t, validate.HeaderEquals("Content-Type", "application/json; charset=utf-8", "application/json; charset=utf-8").Passed)
	require.True(t, validate.HeaderEquals("Content-Type", "application/json; charset=utf-8", "application/json").Failed())

	require.True(t, validate.Contains("415 Unsupported Media Type", "Unsupported Media Type").Passed)
	require.True(t, validate.Contains("200 OK", "Unauthorized").Failed())
}

func TestIdempotent(t *testing.T) {
	t.Parallel()

	vs := values(t, `["b","a","a"]`)

	checks := []func() validate.Verdict{
		func() validate.Verdict { return validate.AllUnique(vs) },
		func() validate.Verdict { return validate.SortedAscending(vs, nil, validate.Lexicographic) },
		func() validate.Verdict { return validate.CrossReference(vs, strs("a", "b")) },
		func() validate.Verdict { return validate.Every(vs, validate.OneOf(strs("a")...)) },
	}

	for _, check := range checks {
		require.Equal(t, check(), check())
	}

	require.Equal(t, `["b","a","a"]`, jsonvalue.ArrayValue(vs...).String())
}
