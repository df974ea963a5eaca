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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingAPIKey = errors.New("POTTER_API_KEY must be set when LIVE_API_TESTS is enabled")

type TestConfig struct {
	GitHubBaseURL     string
	PotterBaseURL     string
	GitHubOrg         string
	GitHubOrgID       int64
	PotterAPIKey      string
	RequestTimeout    time.Duration
	TestTimeout       time.Duration
	LiveAPITests      bool
	LogRequests       bool
	LogResponses      bool
	MaxRetries        uint64
	RequestsPerSecond float64
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Live runs need an API key, offline runs are served by in-process fakes.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	config := &TestConfig{
		GitHubBaseURL:     getStringWithDefault("GITHUB_BASE_URL", "https://api.github.com"),
		PotterBaseURL:     getStringWithDefault("POTTER_BASE_URL", "https://www.potterapi.com/v1"),
		GitHubOrg:         getStringWithDefault("GITHUB_ORG", "cucumber"),
		GitHubOrgID:       getIntWithDefault("GITHUB_ORG_ID", 320565),
		PotterAPIKey:      os.Getenv("POTTER_API_KEY"),
		RequestTimeout:    getDurationWithDefault("REQUEST_TIMEOUT", 30*time.Second),
		TestTimeout:       getDurationWithDefault("TEST_TIMEOUT", 5*time.Minute),
		LiveAPITests:      getBoolWithDefault("LIVE_API_TESTS", false),
		LogRequests:       getBoolWithDefault("LOG_REQUESTS", false),
		LogResponses:      getBoolWithDefault("LOG_RESPONSES", false),
		MaxRetries:        uint64(max(getIntWithDefault("MAX_RETRIES", 2), 0)), //nolint:gosec
		RequestsPerSecond: getFloatWithDefault("REQUESTS_PER_SECOND", 5),
	}

	if config.LiveAPITests && config.PotterAPIKey == "" {
		return nil, ErrMissingAPIKey
	}

	return config, nil
}

// UseFakes points the configuration at locally served APIs.
func (c *TestConfig) UseFakes(githubURL, potterURL, apiKey string) {
	c.GitHubBaseURL = githubURL
	c.PotterBaseURL = potterURL
	c.PotterAPIKey = apiKey
	c.RequestsPerSecond = 0
}

func getStringWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationWithDefault gets a duration from environment variable or returns default.
func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}

	return duration
}

// getBoolWithDefault gets a boolean from environment variable or returns default.
func getBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return boolValue
}

func getIntWithDefault(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getFloatWithDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}

	return floatValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../../test/.env", // From test/api/suites directory
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// .env file not found - this is OK in CI/CD where env vars are set directly
		return
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
