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

// Package matchers adapts verdicts to Gomega.
//
//	Expect(validate.AllUnique(ids)).To(matchers.Pass())
//	Expect(report).To(matchers.Pass())
package matchers

import (
	"fmt"

	"github.com/onsi/gomega/types"

	"github.com/cbt-testing/apicheck/pkg/validate"
)

type passMatcher struct{}

// Pass succeeds for a passing validate.Verdict or validate.Report. The
// failure message is the verdict or report diagnostic.
func Pass() types.GomegaMatcher {
	return &passMatcher{}
}

func (m *passMatcher) Match(actual any) (bool, error) {
	switch t := actual.(type) {
	case validate.Verdict:
		return t.Passed, nil
	case *validate.Verdict:
		return t != nil && t.Passed, nil
	case validate.Report:
		return t.Passed(), nil
	case *validate.Report:
		return t != nil && t.Passed(), nil
	}

	return false, fmt.Errorf("Pass matcher expects a validate.Verdict or validate.Report, got %T", actual) //nolint:err113
}

func (m *passMatcher) FailureMessage(actual any) string {
	return "Expected checks to pass:\n" + describe(actual)
}

func (m *passMatcher) NegatedFailureMessage(actual any) string {
	return "Expected checks to fail:\n" + describe(actual)
}

// FailWith succeeds for a failed validate.Verdict with the given reason.
func FailWith(reason validate.Reason) types.GomegaMatcher {
	return &failMatcher{reason: reason}
}

type failMatcher struct {
	reason validate.Reason
}

func (m *failMatcher) Match(actual any) (bool, error) {
	switch t := actual.(type) {
	case validate.Verdict:
		return t.Failed() && t.Reason == m.reason, nil
	case *validate.Verdict:
		return t != nil && t.Failed() && t.Reason == m.reason, nil
	}

	return false, fmt.Errorf("FailWith matcher expects a validate.Verdict, got %T", actual) //nolint:err113
}

func (m *failMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("Expected a %s failure:\n%s", m.reason, describe(actual))
}

func (m *failMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected anything but a %s failure:\n%s", m.reason, describe(actual))
}

func describe(actual any) string {
	switch t := actual.(type) {
	case validate.Report:
		return t.String()
	case fmt.Stringer:
		return t.String()
	}

	return fmt.Sprintf("%v", actual)
}
