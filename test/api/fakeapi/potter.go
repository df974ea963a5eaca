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
	"math/rand/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cbt-testing/apicheck/test/api"
)

// PotterBasePath is where the Potter API is mounted.
const PotterBasePath = "/v1"

type potterError struct {
	Error string `json:"error"`
}

type potter struct {
	catalogue *Catalogue
	apiKey    string
}

// NewPotterHandler serves the Potter API under PotterBasePath. Everything but
// the sorting hat requires apiKey as the key query parameter.
func NewPotterHandler(catalogue *Catalogue, apiKey string) http.Handler {
	p := &potter{
		catalogue: catalogue,
		apiKey:    apiKey,
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Route(PotterBasePath, func(r chi.Router) {
		r.Get(api.PathSortingHat, p.sortingHat)

		r.Group(func(r chi.Router) {
			r.Use(p.requireKey)

			r.Get(api.PathCharacters, p.characters)
			r.Get(api.PathHouses, p.houses)
			r.Get(api.PathHouse, p.house)
		})
	})

	return router
}

func (p *potter) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		if !query.Has("key") {
			writeJSON(w, http.StatusConflict, potterError{Error: "Must pass API key for request"})
			return
		}

		if query.Get("key") != p.apiKey {
			writeJSON(w, http.StatusUnauthorized, potterError{Error: "API Key Not Found"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (p *potter) sortingHat(w http.ResponseWriter, r *http.Request) {
	//nolint:gosec
	writeJSON(w, http.StatusOK, p.catalogue.Houses[rand.IntN(len(p.catalogue.Houses))].Name)
}

// characters filters on exact name and house, preserving catalogue order.
func (p *potter) characters(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	characters := []Character{}

	for _, c := range p.catalogue.Characters {
		if query.Has("name") && c.Name != query.Get("name") {
			continue
		}

		if query.Has("house") && c.House != query.Get("house") {
			continue
		}

		characters = append(characters, c)
	}

	writeJSON(w, http.StatusOK, characters)
}

func (p *potter) houses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, p.catalogue.Houses)
}

// house returns a single element list, as the real API does.
func (p *potter) house(w http.ResponseWriter, r *http.Request) {
	house, ok := p.catalogue.FindHouse(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, potterError{Error: "House Not Found"})
		return
	}

	writeJSON(w, http.StatusOK, []HouseDetail{p.catalogue.Detail(house)})
}
