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
	"github.com/cbt-testing/apicheck/pkg/client"
)

// Path templates, shared with the fake servers so routes cannot drift.
const (
	PathOrganization      = "/orgs/{org}"
	PathOrganizationRepos = "/orgs/{org}/repos"
	PathSortingHat        = "/sortingHat"
	PathCharacters        = "/characters"
	PathHouses            = "/houses"
	PathHouse             = "/houses/{id}"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// GitHub endpoints.
func (e *Endpoints) Organization(org string) client.Request {
	return client.Request{
		Path:       PathOrganization,
		PathParams: map[string]any{"org": org},
	}
}

func (e *Endpoints) OrganizationRepos(org string, query *RepoQuery) client.Request {
	return client.Request{
		Path:        PathOrganizationRepos,
		PathParams:  map[string]any{"org": org},
		QueryParams: query.Build(),
	}
}

// Potter endpoints.
func (e *Endpoints) SortingHat() client.Request {
	return client.Request{
		Path: PathSortingHat,
	}
}

func (e *Endpoints) Characters(query *CharacterQuery) client.Request {
	return client.Request{
		Path:        PathCharacters,
		QueryParams: query.Build(),
	}
}

func (e *Endpoints) Houses() client.Request {
	return client.Request{
		Path: PathHouses,
	}
}

func (e *Endpoints) House(id string) client.Request {
	return client.Request{
		Path:       PathHouse,
		PathParams: map[string]any{"id": id},
	}
}
