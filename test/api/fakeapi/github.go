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

package fakeapi

import (
	"cmp"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cbt-testing/apicheck/test/api"
)

const (
	defaultPerPage = 30
	maxPerPage     = 100
)

type githubError struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url"`
	Status           string `json:"status"`
}

type github struct {
	catalogue *Catalogue
}

// NewGitHubHandler serves the organization endpoints of the GitHub REST API.
func NewGitHubHandler(catalogue *Catalogue) http.Handler {
	g := &github{
		catalogue: catalogue,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(acceptJSON)

	router.Get(api.PathOrganization, g.organization)
	router.Get(api.PathOrganizationRepos, g.repos)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, githubError{Message: "Not Found", Status: "404"})
	})

	return router
}

// acceptJSON rejects requests that cannot accept a JSON representation.
func acceptJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept := r.Header.Get("Accept")

		if accept != "" && !strings.Contains(accept, "json") && !strings.Contains(accept, "*/*") {
			writeJSON(w, http.StatusUnsupportedMediaType, githubError{
				Message:          "Unsupported 'Accept' header: [\"" + accept + "\"]. Must accept 'application/json'.",
				DocumentationURL: "https://docs.github.com/v3/media",
				Status:           "415",
			})

			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *github) organization(w http.ResponseWriter, r *http.Request) {
	if !strings.EqualFold(chi.URLParam(r, "org"), g.catalogue.Organization.Login) {
		writeJSON(w, http.StatusNotFound, githubError{Message: "Not Found", Status: "404"})
		return
	}

	writeJSON(w, http.StatusOK, g.catalogue.Organization)
}

// repos follows the documented defaults: sort by created, ascending for
// full_name and descending otherwise.
func (g *github) repos(w http.ResponseWriter, r *http.Request) {
	if !strings.EqualFold(chi.URLParam(r, "org"), g.catalogue.Organization.Login) {
		writeJSON(w, http.StatusNotFound, githubError{Message: "Not Found", Status: "404"})
		return
	}

	query := r.URL.Query()

	sortBy := query.Get("sort")
	if sortBy == "" {
		sortBy = "created"
	}

	direction := query.Get("direction")
	if direction == "" {
		direction = "desc"

		if sortBy == "full_name" {
			direction = "asc"
		}
	}

	if direction != "asc" && direction != "desc" {
		writeJSON(w, http.StatusUnprocessableEntity, githubError{Message: "Validation Failed", Status: "422"})
		return
	}

	repositories := slices.Clone(g.catalogue.Repositories)

	slices.SortStableFunc(repositories, func(a, b Repository) int {
		var result int

		switch sortBy {
		case "full_name":
			result = cmp.Compare(strings.ToLower(a.FullName), strings.ToLower(b.FullName))
		case "updated", "pushed":
			result = cmp.Compare(a.UpdatedAt, b.UpdatedAt)
		default:
			result = cmp.Compare(a.CreatedAt, b.CreatedAt)
		}

		if direction == "desc" {
			return -result
		}

		return result
	})

	perPage := intParam(query.Get("per_page"), defaultPerPage)
	perPage = min(max(perPage, 1), maxPerPage)

	page := max(intParam(query.Get("page"), 1), 1)

	start := min((page-1)*perPage, len(repositories))
	end := min(start+perPage, len(repositories))

	writeJSON(w, http.StatusOK, repositories[start:end])
}

func intParam(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return i
}
