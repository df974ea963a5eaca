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
	"strings"
)

// ErrChecksFailed is wrapped by Report.Err when any verdict failed.
var ErrChecksFailed = errors.New("checks failed")

// Report collects the verdicts of a scenario in the order they were made.
type Report struct {
	Name     string
	Verdicts []Verdict
}

// NewReport returns an empty report.
func NewReport(name string) *Report {
	return &Report{
		Name: name,
	}
}

// Add appends verdicts and returns the report for chaining.
func (r *Report) Add(verdicts ...Verdict) *Report {
	r.Verdicts = append(r.Verdicts, verdicts...)

	return r
}

// Passed is true when every verdict passed. An empty report passes.
func (r *Report) Passed() bool {
	return len(r.Failures()) == 0
}

// Failures returns the failed verdicts.
func (r *Report) Failures() []Verdict {
	var failures []Verdict

	for _, v := range r.Verdicts {
		if v.Failed() {
			failures = append(failures, v)
		}
	}

	return failures
}

// Err returns nil if the report passed, otherwise an error describing
// every failure.
func (r *Report) Err() error {
	failures := r.Failures()
	if len(failures) == 0 {
		return nil
	}

	messages := make([]string, len(failures))
	for i, f := range failures {
		messages[i] = f.String()
	}

	return fmt.Errorf("%w: %s: %d of %d\n%s", ErrChecksFailed, r.Name, len(failures), len(r.Verdicts), strings.Join(messages, "\n"))
}

func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s: %d/%d passed\n", r.Name, len(r.Verdicts)-len(r.Failures()), len(r.Verdicts))

	for _, v := range r.Verdicts {
		b.WriteString(v.String())
		b.WriteByte('\n')
	}

	return b.String()
}
