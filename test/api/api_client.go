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
	"context"
	"fmt"
	"maps"
	"net/http"

	"github.com/onsi/ginkgo/v2"

	"github.com/cbt-testing/apicheck/pkg/client"
	"github.com/cbt-testing/apicheck/pkg/constants"
)

// newClient builds a client that logs through Ginkgo so output is attached
// to the test that made the request.
func newClient(config *TestConfig, baseURL, name string) (*client.Client, error) {
	c, err := client.New(client.Config{
		BaseURL:           baseURL,
		Timeout:           config.RequestTimeout,
		MaxRetries:        config.MaxRetries,
		RequestsPerSecond: config.RequestsPerSecond,
		UserAgent:         constants.VersionString(),
		LogRequests:       config.LogRequests,
		LogResponses:      config.LogResponses,
	}, client.WithLogger(ginkgo.GinkgoLogr.WithName(name)))
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", name, err)
	}

	return c, nil
}

// GitHubClient wraps the GitHub REST API.
type GitHubClient struct {
	client    *client.Client
	endpoints *Endpoints
}

func NewGitHubClient(config *TestConfig) (*GitHubClient, error) {
	c, err := newClient(config, config.GitHubBaseURL, "github")
	if err != nil {
		return nil, err
	}

	return &GitHubClient{
		client:    c,
		endpoints: NewEndpoints(),
	}, nil
}

// Organization fetches an organization with the default JSON Accept header.
func (c *GitHubClient) Organization(ctx context.Context, org string) (*client.Response, error) {
	return c.client.Get(ctx, c.endpoints.Organization(org))
}

// OrganizationAccepting fetches an organization asking for a specific media
// type, used to provoke content negotiation errors.
func (c *GitHubClient) OrganizationAccepting(ctx context.Context, org, accept string) (*client.Response, error) {
	request := c.endpoints.Organization(org)
	request.Header = http.Header{"Accept": []string{accept}}

	return c.client.Get(ctx, request)
}

// Repos lists an organization's repositories, a nil query uses the server
// defaults.
func (c *GitHubClient) Repos(ctx context.Context, org string, query *RepoQuery) (*client.Response, error) {
	return c.client.Get(ctx, c.endpoints.OrganizationRepos(org, query))
}

// PotterClient wraps the Potter API. The API key travels as a query
// parameter on every request.
type PotterClient struct {
	client    *client.Client
	endpoints *Endpoints
	key       *string
}

func NewPotterClient(config *TestConfig) (*PotterClient, error) {
	c, err := newClient(config, config.PotterBaseURL, "potter")
	if err != nil {
		return nil, err
	}

	key := config.PotterAPIKey

	return &PotterClient{
		client:    c,
		endpoints: NewEndpoints(),
		key:       &key,
	}, nil
}

// WithAPIKey returns a client sending a different key.
func (c *PotterClient) WithAPIKey(key string) *PotterClient {
	clone := *c
	clone.key = &key

	return &clone
}

// WithoutAPIKey returns a client that sends no key at all.
func (c *PotterClient) WithoutAPIKey() *PotterClient {
	clone := *c
	clone.key = nil

	return &clone
}

func (c *PotterClient) get(ctx context.Context, request client.Request) (*client.Response, error) {
	if c.key != nil {
		query := maps.Clone(request.QueryParams)
		if query == nil {
			query = map[string]any{}
		}

		query["key"] = *c.key
		request.QueryParams = query
	}

	return c.client.Get(ctx, request)
}

func (c *PotterClient) SortingHat(ctx context.Context) (*client.Response, error) {
	return c.get(ctx, c.endpoints.SortingHat())
}

// Characters lists characters, a nil query lists all of them.
func (c *PotterClient) Characters(ctx context.Context, query *CharacterQuery) (*client.Response, error) {
	return c.get(ctx, c.endpoints.Characters(query))
}

func (c *PotterClient) Houses(ctx context.Context) (*client.Response, error) {
	return c.get(ctx, c.endpoints.Houses())
}

func (c *PotterClient) House(ctx context.Context, id string) (*client.Response, error) {
	return c.get(ctx, c.endpoints.House(id))
}
