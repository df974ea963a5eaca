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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cbt-testing/apicheck/pkg/jsonvalue"
	"github.com/cbt-testing/apicheck/pkg/validate"
	"github.com/cbt-testing/apicheck/pkg/validate/matchers"
	"github.com/cbt-testing/apicheck/test/api"
)

var _ = Describe("GitHub Organization", func() {
	var organization jsonvalue.Value

	BeforeEach(func() {
		response, err := github.Organization(ctx, config.GitHubOrg)
		organization = api.ExpectJSONResponse(response, err, http.StatusOK)
	})

	Context("When fetching organization information", func() {
		It("should describe the organization", func() {
			name, ok := api.Extract(organization, "name").AsString()
			Expect(ok).To(BeTrue())

			report := validate.NewReport("organization").Add(
				validate.Equals(jsonvalue.StringValue(config.GitHubOrg), api.Extract(organization, "login")),
				validate.Contains(strings.ToLower(name), config.GitHubOrg),
				validate.Equals(jsonvalue.MustFrom(config.GitHubOrgID), api.Extract(organization, "id")),
			)

			Expect(report).To(matchers.Pass())
		})
	})

	Context("When requesting an unsupported media type", func() {
		It("should reject the request with 415", func() {
			response, err := github.OrganizationAccepting(ctx, config.GitHubOrg, "application/xml")
			api.ExpectJSONResponse(response, err, http.StatusUnsupportedMediaType)
			api.ExpectStatusLine(response, "Unsupported Media Type")
		})
	})

	Context("When listing the organization's repositories", func() {
		var repositories jsonvalue.Value

		BeforeEach(func() {
			response, err := github.Repos(ctx, config.GitHubOrg, api.NewRepoQuery().PerPage(100))
			repositories = api.ExpectJSONResponse(response, err, http.StatusOK)
		})

		It("should list as many repositories as public_repos", func() {
			count, ok := api.Extract(organization, "public_repos").AsNumber()
			Expect(ok).To(BeTrue())

			n, err := count.Int64()
			Expect(err).NotTo(HaveOccurred())

			Expect(validate.HasLength(api.ExtractAll(repositories, "id"), int(n))).To(matchers.Pass())
		})

		It("should have unique repository identifiers", func() {
			report := validate.NewReport("repository ids").Add(
				validate.AllUnique(api.ExtractAll(repositories, "id")).WithPath("id"),
				validate.AllUnique(api.ExtractAll(repositories, "node_id")).WithPath("node_id"),
			)

			Expect(report).To(matchers.Pass())
		})

		It("should be owned by the organization", func() {
			id := api.Extract(organization, "id")

			Expect(validate.Every(api.ExtractAll(repositories, "owner.id"), validate.EqualTo(id))).To(matchers.Pass())
		})
	})

	Context("When sorting repositories by full_name", func() {
		It("should list them in ascending order", func() {
			response, err := github.Repos(ctx, config.GitHubOrg, api.NewRepoQuery().SortBy("full_name"))
			repositories := api.ExpectJSONResponse(response, err, http.StatusOK)

			names := api.ExtractAll(repositories, "full_name")

			Expect(validate.SortedAscending(names, validate.Identity, validate.Lexicographic)).To(matchers.Pass())
		})

		It("should list them in descending order", func() {
			response, err := github.Repos(ctx, config.GitHubOrg, api.NewRepoQuery().SortBy("full_name").Descending())
			repositories := api.ExpectJSONResponse(response, err, http.StatusOK)

			names := api.ExtractAll(repositories, "full_name")

			Expect(validate.SortedDescending(names, validate.Identity, validate.Lexicographic)).To(matchers.Pass())
		})
	})

	Context("When listing repositories with the default sort", func() {
		It("should list the newest first", func() {
			response, err := github.Repos(ctx, config.GitHubOrg, nil)
			repositories := api.ExpectJSONResponse(response, err, http.StatusOK)

			created := api.ExtractAll(repositories, "created_at")

			report := validate.NewReport("default sort").Add(
				validate.SortedDescending(created, validate.Truncate("T"), validate.Lexicographic).Named("creation date"),
				validate.SortedDescending(created, validate.Identity, validate.DateOnly).Named("creation date comparator"),
			)

			Expect(report).To(matchers.Pass())
		})
	})
})
