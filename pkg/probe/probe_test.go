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

package probe_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/cbt-testing/apicheck/pkg/client"
	"github.com/cbt-testing/apicheck/pkg/client/mock"
	"github.com/cbt-testing/apicheck/pkg/jsonpath"
	"github.com/cbt-testing/apicheck/pkg/probe"
	"github.com/cbt-testing/apicheck/pkg/validate"
)

const repos = `[
	{"id": 3, "node_id": "c", "full_name": "cucumber/godog", "language": "Go", "created_at": "2021-03-01T18:00:00Z", "owner": {"id": 320565}},
	{"id": 2, "node_id": "b", "full_name": "cucumber/aruba", "language": "Ruby", "created_at": "2021-03-01T09:00:00Z", "owner": {"id": 320565}},
	{"id": 1, "node_id": "a", "full_name": "cucumber/cucumber-ruby", "language": "Ruby", "created_at": "2020-01-01T12:00:00Z", "owner": {"id": 320565}}
]`

var errConnectionRefused = errors.New("connection refused")

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	router := chi.NewRouter()
	router.Get("/orgs/{org}/repos", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "org") != "cucumber" || r.URL.Query().Get("per_page") != "100" {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = io.WriteString(w, repos)
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func parse(t *testing.T, args ...string) *probe.Options {
	t.Helper()

	options := &probe.Options{}

	flags := pflag.NewFlagSet("apicheck", pflag.ContinueOnError)
	options.AddFlags(flags)

	require.NoError(t, flags.Parse(args))

	return options
}

func run(t *testing.T, options *probe.Options, clientOptions ...client.Option) *validate.Report {
	t.Helper()

	p, err := probe.New(options, logr.Discard(), clientOptions...)
	require.NoError(t, err)

	report, err := p.Run(t.Context())
	require.NoError(t, err)

	return report
}

func TestProbePasses(t *testing.T) {
	t.Parallel()

	server := newServer(t)

	report := run(t, parse(t,
		"--base-url", server.URL,
		"--path", "/orgs/{org}/repos",
		"--path-param", "org=cucumber",
		"--query", "per_page=100",
		"--present", "[0].owner",
		"--unique", "id",
		"--unique", "node_id",
		"--length", "id=3",
		"--sorted-desc", "created_at:date",
		"--sorted-desc", "id:numeric",
		"--every-equal", "owner.id=320565",
		"--one-of", "language=Go,Ruby",
	))

	require.True(t, report.Passed(), report.String())
	require.Len(t, report.Verdicts, 9)
	require.NoError(t, report.Err())
}

func TestProbeFails(t *testing.T) {
	t.Parallel()

	server := newServer(t)

	report := run(t, parse(t,
		"--base-url", server.URL,
		"--path", "/orgs/{org}/repos",
		"--path-param", "org=cucumber",
		"--query", "per_page=100",
		"--unique", "owner.id",
		"--sorted-asc", "full_name",
		"--sorted-desc", "created_at",
		"--one-of", "language=Go",
		"--present", "[0].license",
	))

	require.False(t, report.Passed())

	failures := report.Failures()
	require.Len(t, failures, 4)
	require.Equal(t, "present [0].license", failures[0].Check)
	require.Equal(t, validate.FieldNotFound, failures[0].Reason)
	require.Equal(t, "unique owner.id", failures[1].Check)
	require.Equal(t, validate.ValueMismatch, failures[1].Reason)
	require.Equal(t, "sorted ascending full_name by lexicographic", failures[2].Check)
	require.Equal(t, "one of language=Go", failures[3].Check)
	require.ErrorIs(t, report.Err(), validate.ErrChecksFailed)
}

func TestProbeStatus(t *testing.T) {
	t.Parallel()

	server := newServer(t)

	report := run(t, parse(t,
		"--base-url", server.URL,
		"--path", "/orgs/gherkin/repos",
		"--unique", "id",
	))

	require.False(t, report.Passed())
	require.Contains(t, report.Failures()[0].Message, "expected status 200, got 404")

	report = run(t, parse(t,
		"--base-url", server.URL,
		"--path", "/orgs/gherkin/repos",
		"--status", "404",
	))

	require.True(t, report.Passed(), report.String())
}

func TestInvalidOptions(t *testing.T) {
	t.Parallel()

	_, err := probe.New(parse(t, "--base-url", "http://localhost", "--length", "id=three"), logr.Discard())
	require.ErrorIs(t, err, probe.ErrInvalidOption)

	_, err = probe.New(parse(t, "--base-url", "http://localhost", "--every-equal", "owner.id"), logr.Discard())
	require.ErrorIs(t, err, probe.ErrInvalidOption)

	_, err = probe.New(parse(t, "--base-url", "http://localhost", "--unique", "[0"), logr.Discard())
	require.ErrorIs(t, err, jsonpath.ErrSyntax)
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)

	doer := mock.NewMockDoer(ctrl)
	doer.EXPECT().Do(gomock.Any()).Return(nil, errConnectionRefused)

	options := parse(t, "--base-url", "http://localhost:1", "--max-retries", "0", "--unique", "id")

	p, err := probe.New(options, logr.Discard(), client.WithDoer(doer))
	require.NoError(t, err)

	_, err = p.Run(t.Context())

	var transportError *client.TransportError

	require.ErrorAs(t, err, &transportError)
	require.ErrorIs(t, err, errConnectionRefused)
}
