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

package client

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/cbt-testing/apicheck/pkg/constants"
)

func (c *Config) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&c.BaseURL, "base-url", "", "Base URL of the API, e.g. https://api.github.com")
	f.DurationVar(&c.Timeout, "timeout", 30*time.Second, "Timeout for a single request attempt")
	f.Uint64Var(&c.MaxRetries, "max-retries", 2, "Retries after a transport error or 5xx response")
	f.DurationVar(&c.RetryInterval, "retry-interval", 500*time.Millisecond, "Initial retry backoff interval")
	f.Float64Var(&c.RequestsPerSecond, "requests-per-second", 0, "Client side rate limit, 0 disables it")
	f.StringVar(&c.UserAgent, "user-agent", constants.VersionString(), "User-Agent header value")
	f.BoolVar(&c.LogRequests, "log-requests", false, "Log every request")
	f.BoolVar(&c.LogResponses, "log-responses", false, "Log every response body")
}
