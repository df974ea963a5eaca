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

package api

import (
	"k8s.io/utils/ptr"
)

// RepoQuery builds query parameters for organization repository listings.
// Unset fields are left to the server default.
type RepoQuery struct {
	sort      *string
	direction *string
	perPage   *int
}

// NewRepoQuery creates an empty repository query.
func NewRepoQuery() *RepoQuery {
	return &RepoQuery{}
}

// SortBy sets the sort field, e.g. full_name or created.
func (q *RepoQuery) SortBy(field string) *RepoQuery {
	q.sort = ptr.To(field)
	return q
}

func (q *RepoQuery) Ascending() *RepoQuery {
	q.direction = ptr.To("asc")
	return q
}

func (q *RepoQuery) Descending() *RepoQuery {
	q.direction = ptr.To("desc")
	return q
}

// PerPage sets the page size, GitHub caps it at 100.
func (q *RepoQuery) PerPage(n int) *RepoQuery {
	q.perPage = ptr.To(n)
	return q
}

// Build returns the query parameters, nil receivers yield none.
func (q *RepoQuery) Build() map[string]any {
	if q == nil {
		return nil
	}

	params := map[string]any{}

	if q.sort != nil {
		params["sort"] = *q.sort
	}

	if q.direction != nil {
		params["direction"] = *q.direction
	}

	if q.perPage != nil {
		params["per_page"] = *q.perPage
	}

	return params
}

// CharacterQuery builds query parameters for character searches.
type CharacterQuery struct {
	name  *string
	house *string
}

// NewCharacterQuery creates an empty character query.
func NewCharacterQuery() *CharacterQuery {
	return &CharacterQuery{}
}

// Named filters by exact character name.
func (q *CharacterQuery) Named(name string) *CharacterQuery {
	q.name = ptr.To(name)
	return q
}

// InHouse filters by house name.
func (q *CharacterQuery) InHouse(house string) *CharacterQuery {
	q.house = ptr.To(house)
	return q
}

func (q *CharacterQuery) Build() map[string]any {
	if q == nil {
		return nil
	}

	params := map[string]any{}

	if q.name != nil {
		params["name"] = *q.name
	}

	if q.house != nil {
		params["house"] = *q.house
	}

	return params
}
