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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cbt-testing/apicheck/pkg/client"
	"github.com/cbt-testing/apicheck/pkg/jsonpath"
	"github.com/cbt-testing/apicheck/pkg/jsonvalue"
	"github.com/cbt-testing/apicheck/pkg/validate"
	"github.com/cbt-testing/apicheck/pkg/validate/matchers"
)

// JSONContentType is what both APIs declare on every JSON response.
const JSONContentType = "application/json; charset=utf-8"

// HouseNames are the four Hogwarts houses.
//
//nolint:gochecknoglobals
var HouseNames = []string{"Gryffindor", "Ravenclaw", "Slytherin", "Hufflepuff"}

// Houses returns HouseNames as JSON strings.
func Houses() []jsonvalue.Value {
	houses := make([]jsonvalue.Value, len(HouseNames))

	for i, name := range HouseNames {
		houses[i] = jsonvalue.StringValue(name)
	}

	return houses
}

// ExpectJSONResponse asserts the request succeeded with the expected status
// and JSON content type, and returns the decoded body.
func ExpectJSONResponse(response *client.Response, err error, status int) jsonvalue.Value {
	GinkgoHelper()

	Expect(err).NotTo(HaveOccurred())

	report := validate.NewReport("response").Add(
		validate.StatusCode(status, response.StatusCode),
		validate.HeaderEquals("Content-Type", JSONContentType, response.ContentType),
	)

	Expect(report).To(matchers.Pass(), "trace ID: %s", response.TraceID)

	return response.Body
}

// ExpectStatusLine asserts the reason phrase of the status line.
func ExpectStatusLine(response *client.Response, reason string) {
	GinkgoHelper()

	Expect(validate.Contains(response.Status, reason)).To(matchers.Pass())
}

// Extract resolves a path expression and fails the test if it cannot.
func Extract(tree jsonvalue.Value, expr string) jsonvalue.Value {
	GinkgoHelper()

	value, verdict := validate.ExtractField(tree, jsonpath.MustParse(expr))
	Expect(verdict).To(matchers.Pass())

	return value
}

// ExtractAll resolves a path expression to a list of values.
func ExtractAll(tree jsonvalue.Value, expr string) []jsonvalue.Value {
	GinkgoHelper()

	values, verdict := validate.ExtractAll(tree, jsonpath.MustParse(expr))
	Expect(verdict).To(matchers.Pass())

	return values
}

// Pick returns an element chosen from the Ginkgo random seed so a failing
// choice can be replayed with --seed.
func Pick(values []jsonvalue.Value) (int, jsonvalue.Value) {
	GinkgoHelper()

	Expect(values).NotTo(BeEmpty())

	//nolint:gosec // reproducibility matters, not unpredictability
	random := rand.New(rand.NewPCG(uint64(GinkgoRandomSeed()), 0))
	i := random.IntN(len(values))

	return i, values[i]
}
