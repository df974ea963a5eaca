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

// Package api provides black-box test utilities for the GitHub and Potter
// APIs.
//
// # Clients
//
// GitHubClient and PotterClient are thin wrappers over pkg/client that know
// the endpoint layout of each API. They return raw responses, all judgement
// is left to pkg/validate so a failing test prints a verdict rather than a
// bare boolean.
//
// # Live and Offline Runs
//
// By default the suites run against the fakes in the fakeapi package, which
// reproduce the shape and invariants of the real services. Set
// LIVE_API_TESTS=true and POTTER_API_KEY to run against the real endpoints:
//   - GITHUB_BASE_URL and POTTER_BASE_URL override the endpoints
//   - GITHUB_ORG and GITHUB_ORG_ID select the organization under test
//   - LOG_REQUESTS and LOG_RESPONSES write traffic to GinkgoWriter
//
// # Future Improvements
//
// * GitHub paginates at 100 repositories. Organizations larger than that
// need Link header traversal before the repository count check is
// meaningful.
package api
