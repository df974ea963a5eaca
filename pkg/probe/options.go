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

package probe

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/cbt-testing/apicheck/pkg/client"
	"github.com/cbt-testing/apicheck/pkg/jsonpath"
	"github.com/cbt-testing/apicheck/pkg/jsonvalue"
	"github.com/cbt-testing/apicheck/pkg/validate"
)

// ErrInvalidOption is returned when a check flag cannot be parsed.
var ErrInvalidOption = errors.New("invalid option")

// Options describe a single request and the checks applied to its body.
type Options struct {
	Client client.Config

	Path       string
	PathParams map[string]string
	Query      map[string]string
	Headers    map[string]string
	Status     int

	Present    []string
	Unique     []string
	Length     []string
	SortedAsc  []string
	SortedDesc []string
	EveryEqual []string
	OneOf      []string
}

func (o *Options) AddFlags(f *pflag.FlagSet) {
	o.Client.AddFlags(f)

	f.StringVar(&o.Path, "path", "/", "Request path, {name} placeholders are filled from --path-param")
	f.StringToStringVar(&o.PathParams, "path-param", nil, "Path parameters as name=value")
	f.StringToStringVar(&o.Query, "query", nil, "Query parameters as name=value")
	f.StringToStringVar(&o.Headers, "header", nil, "Request headers as name=value")
	f.IntVar(&o.Status, "status", http.StatusOK, "Expected status code, 0 accepts any")

	f.StringArrayVar(&o.Present, "present", nil, "Path that must resolve")
	f.StringArrayVar(&o.Unique, "unique", nil, "Path whose values must be unique")
	f.StringArrayVar(&o.Length, "length", nil, "Value count as path=n")
	f.StringArrayVar(&o.SortedAsc, "sorted-asc", nil, "Path sorted ascending, as path[:natural|lexicographic|numeric|date]")
	f.StringArrayVar(&o.SortedDesc, "sorted-desc", nil, "Path sorted descending, as path[:natural|lexicographic|numeric|date]")
	f.StringArrayVar(&o.EveryEqual, "every-equal", nil, "Every value equals a literal, as path=value")
	f.StringArrayVar(&o.OneOf, "one-of", nil, "Every value is one of a list, as path=a,b,c")
}

// Request renders the options as a client request.
func (o *Options) Request() client.Request {
	request := client.Request{
		Path:        o.Path,
		PathParams:  map[string]any{},
		QueryParams: map[string]any{},
		Header:      http.Header{},
	}

	for k, v := range o.PathParams {
		request.PathParams[k] = v
	}

	for k, v := range o.Query {
		request.QueryParams[k] = v
	}

	for k, v := range o.Headers {
		request.Header.Set(k, v)
	}

	return request
}

// Check is a named check on a response body.
type Check struct {
	Name  string
	Apply func(body jsonvalue.Value) validate.Verdict
}

// Checks parses the check flags in a fixed order: presence, uniqueness,
// length, ordering, equality, membership.
//
//nolint:cyclop
func (o *Options) Checks() ([]Check, error) {
	var checks []Check

	for _, expr := range o.Present {
		path, err := jsonpath.Parse(expr)
		if err != nil {
			return nil, err
		}

		checks = append(checks, Check{
			Name: "present " + expr,
			Apply: func(body jsonvalue.Value) validate.Verdict {
				_, verdict := validate.ExtractField(body, path)
				return verdict
			},
		})
	}

	for _, expr := range o.Unique {
		path, err := jsonpath.Parse(expr)
		if err != nil {
			return nil, err
		}

		checks = append(checks, values("unique "+expr, path, validate.AllUnique))
	}

	for _, arg := range o.Length {
		expr, value, err := split(arg)
		if err != nil {
			return nil, err
		}

		path, err := jsonpath.Parse(expr)
		if err != nil {
			return nil, err
		}

		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%w: length %q: %w", ErrInvalidOption, arg, err)
		}

		checks = append(checks, values("length "+expr, path, func(v []jsonvalue.Value) validate.Verdict {
			return validate.HasLength(v, n)
		}))
	}

	for _, group := range []struct {
		args       []string
		descending bool
	}{
		{args: o.SortedAsc},
		{args: o.SortedDesc, descending: true},
	} {
		for _, arg := range group.args {
			check, err := sortCheck(arg, group.descending)
			if err != nil {
				return nil, err
			}

			checks = append(checks, check)
		}
	}

	for _, arg := range o.EveryEqual {
		expr, value, err := split(arg)
		if err != nil {
			return nil, err
		}

		path, err := jsonpath.Parse(expr)
		if err != nil {
			return nil, err
		}

		predicate := validate.EqualTo(literal(value))

		checks = append(checks, values("every "+arg, path, func(v []jsonvalue.Value) validate.Verdict {
			return validate.Every(v, predicate)
		}))
	}

	for _, arg := range o.OneOf {
		expr, value, err := split(arg)
		if err != nil {
			return nil, err
		}

		path, err := jsonpath.Parse(expr)
		if err != nil {
			return nil, err
		}

		var allowed []jsonvalue.Value

		for _, item := range strings.Split(value, ",") {
			allowed = append(allowed, literal(strings.TrimSpace(item)))
		}

		predicate := validate.OneOf(allowed...)

		checks = append(checks, values("one of "+arg, path, func(v []jsonvalue.Value) validate.Verdict {
			return validate.Every(v, predicate)
		}))
	}

	return checks, nil
}

// values lifts a check over the values addressed by path.
func values(name string, path jsonpath.Path, check func([]jsonvalue.Value) validate.Verdict) Check {
	return Check{
		Name: name,
		Apply: func(body jsonvalue.Value) validate.Verdict {
			v, verdict := validate.ExtractAll(body, path)
			if verdict.Failed() {
				return verdict
			}

			return check(v).WithPath(path.String())
		},
	}
}

//nolint:gochecknoglobals
var orderings = map[string]struct {
	key     validate.KeyFunc
	compare validate.Comparator
}{
	"natural":       {validate.Identity, validate.Natural},
	"lexicographic": {validate.Identity, validate.Lexicographic},
	"numeric":       {validate.Identity, validate.Numeric},
	"date":          {validate.Truncate("T"), validate.Lexicographic},
}

func sortCheck(arg string, descending bool) (Check, error) {
	expr, ordering := arg, "lexicographic"

	if i := strings.LastIndexByte(arg, ':'); i >= 0 {
		if _, ok := orderings[arg[i+1:]]; ok {
			expr, ordering = arg[:i], arg[i+1:]
		}
	}

	path, err := jsonpath.Parse(expr)
	if err != nil {
		return Check{}, err
	}

	o := orderings[ordering]

	sorted, direction := validate.SortedAscending, "ascending"
	if descending {
		sorted, direction = validate.SortedDescending, "descending"
	}

	return values(fmt.Sprintf("sorted %s %s by %s", direction, expr, ordering), path, func(v []jsonvalue.Value) validate.Verdict {
		return sorted(v, o.key, o.compare)
	}), nil
}

// split separates path=value on the last '=' so filters such as
// [?(@.a == 1)] survive in the path.
func split(arg string) (string, string, error) {
	i := strings.LastIndexByte(arg, '=')
	if i <= 0 {
		return "", "", fmt.Errorf("%w: %q is not path=value", ErrInvalidOption, arg)
	}

	return arg[:i], arg[i+1:], nil
}

// literal reads a JSON scalar, anything unparsable is taken as a string.
func literal(s string) jsonvalue.Value {
	v, err := jsonvalue.Parse([]byte(s))
	if err != nil {
		return jsonvalue.StringValue(s)
	}

	return v
}
