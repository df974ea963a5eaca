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

// Package fakeapi serves in-process stand-ins for the GitHub and Potter
// APIs so the suites run without network access or credentials.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
)

// APIKey is the only key the fake Potter API accepts.
const APIKey = "$2a$10$fake.potter.api.key"

// Servers are the running fakes.
type Servers struct {
	Catalogue *Catalogue
	GitHub    *httptest.Server
	Potter    *httptest.Server
}

// Start serves both APIs on loopback ports.
func Start() *Servers {
	catalogue := NewCatalogue()

	return &Servers{
		Catalogue: catalogue,
		GitHub:    httptest.NewServer(NewGitHubHandler(catalogue)),
		Potter:    httptest.NewServer(NewPotterHandler(catalogue, APIKey)),
	}
}

// GitHubURL is the GitHub base URL.
func (s *Servers) GitHubURL() string {
	return s.GitHub.URL
}

// PotterURL is the Potter base URL, including the version prefix.
func (s *Servers) PotterURL() string {
	return s.Potter.URL + PotterBasePath
}

func (s *Servers) Close() {
	s.GitHub.Close()
	s.Potter.Close()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}
