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

// Package validate implements pure checks over decoded API responses.
//
// Every check returns a Verdict instead of an error so that a scenario can
// run all of its checks and report every failure at once. Checks never
// modify their inputs and hold no state, so calling one twice with the same
// arguments gives the same Verdict.
package validate

import (
	"fmt"
	"strings"
)

// Reason classifies a failed check.
type Reason string

const (
	// FieldNotFound means the response did not contain the addressed
	// field, usually because the API changed shape.
	FieldNotFound Reason = "FieldNotFound"

	// ValueMismatch means the field was there but held the wrong value,
	// order, multiplicity or membership.
	ValueMismatch Reason = "ValueMismatch"
)

// Verdict is the outcome of a single check.
type Verdict struct {
	// Check names the check that produced the verdict.
	Check string
	// Passed is true when the check held.
	Passed bool
	// Reason is set on failure.
	Reason Reason
	// Message describes the failure.
	Message string
	// Path is the addressed field, if any.
	Path string
	// Expected and Actual hold the compared values on failure. They are
	// jsonvalue.Value, slices of them, or derived Go values.
	Expected any
	Actual   any
}

func pass(check string) Verdict {
	return Verdict{
		Check:  check,
		Passed: true,
	}
}

func mismatch(check string, expected, actual any, format string, args ...any) Verdict {
	return Verdict{
		Check:    check,
		Reason:   ValueMismatch,
		Message:  fmt.Sprintf(format, args...),
		Expected: expected,
		Actual:   actual,
	}
}

// Failed is the inverse of Passed.
func (v Verdict) Failed() bool {
	return !v.Passed
}

// WithPath records the field a verdict was computed from.
func (v Verdict) WithPath(path string) Verdict {
	v.Path = path

	return v
}

// Named replaces the check name, used to label a verdict within a scenario.
func (v Verdict) Named(check string) Verdict {
	v.Check = check

	return v
}

func (v Verdict) String() string {
	if v.Passed {
		return "PASS " + v.Check
	}

	var b strings.Builder

	fmt.Fprintf(&b, "FAIL %s: %s", v.Check, v.Reason)

	if v.Path != "" {
		fmt.Fprintf(&b, " at %q", v.Path)
	}

	if v.Message != "" {
		fmt.Fprintf(&b, ": %s", v.Message)
	}

	if v.Expected != nil || v.Actual != nil {
		fmt.Fprintf(&b, "\n  expected: %v\n  actual:   %v", v.Expected, v.Actual)
	}

	return b.String()
}
