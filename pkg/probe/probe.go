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

// Package probe runs a one-shot request against an API and validates the
// response with checks described on the command line.
package probe

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"

	"github.com/cbt-testing/apicheck/pkg/client"
	"github.com/cbt-testing/apicheck/pkg/validate"
)

// Probe is a configured request and its checks.
type Probe struct {
	client  *client.Client
	request client.Request
	status  int
	checks  []Check
	logger  logr.Logger
}

// New validates the options and builds the client.
func New(options *Options, logger logr.Logger, clientOptions ...client.Option) (*Probe, error) {
	checks, err := options.Checks()
	if err != nil {
		return nil, err
	}

	c, err := client.New(options.Client, append([]client.Option{client.WithLogger(logger)}, clientOptions...)...)
	if err != nil {
		return nil, err
	}

	return &Probe{
		client:  c,
		request: options.Request(),
		status:  options.Status,
		checks:  checks,
		logger:  logger,
	}, nil
}

// Run performs the request and returns a report of every check. An error
// means no report could be made, a failing check is reported, not returned.
func (p *Probe) Run(ctx context.Context) (*validate.Report, error) {
	u, err := p.client.URL(p.request)
	if err != nil {
		return nil, err
	}

	p.logger.Info("probing", "url", u.Redacted(), "checks", len(p.checks))

	response, err := p.client.Get(ctx, p.request)
	if err != nil {
		return nil, fmt.Errorf("probing %s: %w", u.Redacted(), err)
	}

	report := validate.NewReport("GET " + u.Redacted())

	if p.status != 0 {
		report.Add(validate.StatusCode(p.status, response.StatusCode))
	}

	for _, check := range p.checks {
		report.Add(check.Apply(response.Body).Named(check.Name))
	}

	p.logger.V(1).Info("probe complete", "traceID", response.TraceID, "passed", report.Passed())

	return report, nil
}
