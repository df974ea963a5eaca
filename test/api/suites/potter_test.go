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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/cbt-testing/apicheck/pkg/jsonvalue"
	"github.com/cbt-testing/apicheck/pkg/validate"
	"github.com/cbt-testing/apicheck/pkg/validate/matchers"
	"github.com/cbt-testing/apicheck/test/api"
)

const (
	characterCount = 194
	gryffindorID   = "5a05e2b252f721a3cf2ea33f"
)

var _ = Describe("Potter Sorting Hat", func() {
	It("should sort into one of the four houses", func() {
		response, err := potter.SortingHat(ctx)
		house := api.ExpectJSONResponse(response, err, http.StatusOK)

		Expect(validate.MemberOf(house, api.Houses())).To(matchers.Pass())
	})
})

var _ = Describe("Potter API Keys", func() {
	Context("When the key is invalid", func() {
		It("should respond 401 Unauthorized", func() {
			response, err := potter.WithAPIKey("invalid").Characters(ctx, nil)
			body := api.ExpectJSONResponse(response, err, http.StatusUnauthorized)

			api.ExpectStatusLine(response, "Unauthorized")
			Expect(validate.Equals(jsonvalue.StringValue("API Key Not Found"), api.Extract(body, "error"))).To(matchers.Pass())
		})
	})

	Context("When the key is missing", func() {
		It("should respond 409 Conflict", func() {
			response, err := potter.WithoutAPIKey().Characters(ctx, nil)
			body := api.ExpectJSONResponse(response, err, http.StatusConflict)

			api.ExpectStatusLine(response, "Conflict")
			Expect(validate.Equals(jsonvalue.StringValue("Must pass API key for request"), api.Extract(body, "error"))).To(matchers.Pass())
		})
	})
})

var _ = Describe("Potter Characters", func() {
	var characters jsonvalue.Value

	BeforeEach(func() {
		response, err := potter.Characters(ctx, nil)
		characters = api.ExpectJSONResponse(response, err, http.StatusOK)
		Expect(characters.Kind()).To(Equal(jsonvalue.Array))
	})

	It("should list every character", func() {
		Expect(validate.HasLength(api.ExtractAll(characters, "_id"), characterCount)).To(matchers.Pass())
	})

	It("should have well formed characters", func() {
		ids := api.ExtractAll(characters, "_id")
		armies := api.ExtractAll(characters, "dumbledoresArmy")
		houses := api.ExtractAll(characters, "[?(@.house)].house")

		report := validate.NewReport("characters").Add(
			validate.Every(ids, validate.NonEmpty()).WithPath("_id"),
			validate.HasLength(armies, characters.Len()).Named("dumbledoresArmy present"),
			validate.Every(armies, validate.OfKind(jsonvalue.Bool)).WithPath("dumbledoresArmy"),
			validate.Every(houses, validate.OneOf(api.Houses()...)).WithPath("house"),
		)

		Expect(report).To(matchers.Pass())
	})

	It("should find a random character by name", func() {
		_, character := api.Pick(characters.Elements())

		name, ok := api.Extract(character, "name").AsString()
		Expect(ok).To(BeTrue())

		By("searching for " + name)

		response, err := potter.Characters(ctx, api.NewCharacterQuery().Named(name))
		found := api.ExpectJSONResponse(response, err, http.StatusOK)

		Expect(validate.SameFields(character, api.Extract(found, "[0]"))).To(matchers.Pass())
	})

	Context("When searching by name", func() {
		It("should find Harry Potter", func() {
			response, err := potter.Characters(ctx, api.NewCharacterQuery().Named("Harry Potter"))
			found := api.ExpectJSONResponse(response, err, http.StatusOK)

			Expect(validate.Equals(jsonvalue.StringValue("Harry Potter"), api.Extract(found, "[0].name"))).To(matchers.Pass())
		})

		It("should find nobody called Marry Potter", func() {
			response, err := potter.Characters(ctx, api.NewCharacterQuery().Named("Marry Potter"))
			found := api.ExpectJSONResponse(response, err, http.StatusOK)

			Expect(found.Kind()).To(Equal(jsonvalue.Array))
			Expect(validate.HasLength(found.Elements(), 0)).To(matchers.Pass())
		})
	})
})

var _ = Describe("Potter Houses", func() {
	var houses jsonvalue.Value

	BeforeEach(func() {
		response, err := potter.Houses(ctx)
		houses = api.ExpectJSONResponse(response, err, http.StatusOK)
	})

	membersOf := func(house string) string {
		return "[?(@.name == '" + house + "')][0].members"
	}

	It("should list the same members as the house itself", func() {
		id, ok := api.Extract(houses, "[?(@.name == 'Gryffindor')][0]._id").AsString()
		Expect(ok).To(BeTrue())

		expected := api.ExtractAll(houses, membersOf("Gryffindor"))

		response, err := potter.House(ctx, id)
		house := api.ExpectJSONResponse(response, err, http.StatusOK)

		Expect(validate.CrossReference(expected, api.ExtractAll(house, "[0].members._id"))).To(matchers.Pass())
	})

	It("should list the same members as a character search by house", func() {
		response, err := potter.House(ctx, gryffindorID)
		house := api.ExpectJSONResponse(response, err, http.StatusOK)

		expected := api.ExtractAll(house, "[0].members._id")

		response, err = potter.Characters(ctx, api.NewCharacterQuery().InHouse("Gryffindor"))
		characters := api.ExpectJSONResponse(response, err, http.StatusOK)

		Expect(validate.CrossReference(expected, api.ExtractAll(characters, "_id"))).To(matchers.Pass())
	})

	It("should have the most members in Gryffindor", func() {
		gryffindor := jsonvalue.MustFrom(api.Extract(houses, membersOf("Gryffindor")).Len())

		var others []jsonvalue.Value

		for _, name := range api.HouseNames[1:] {
			others = append(others, jsonvalue.MustFrom(api.Extract(houses, membersOf(name)).Len()))
		}

		Expect(validate.Every(others, validate.AtMost(gryffindor, validate.Numeric))).To(matchers.Pass())
	})
})
