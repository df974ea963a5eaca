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
	"fmt"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// expandPath substitutes {name} placeholders with simple style, path escaped
// parameters.
func expandPath(template string, params map[string]any) (string, error) {
	var out strings.Builder

	rest := template

	for {
		start := strings.IndexByte(rest, '{')
		if start < 0 {
			out.WriteString(rest)
			break
		}

		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated placeholder in %q", ErrMissingPathParam, template)
		}

		end += start
		name := rest[start+1 : end]

		value, ok := params[name]
		if !ok || value == nil {
			return "", fmt.Errorf("%w: %q in %q", ErrMissingPathParam, name, template)
		}

		rendered, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
		if err != nil {
			return "", fmt.Errorf("rendering path parameter %q: %w", name, err)
		}

		out.WriteString(rest[:start])
		out.WriteString(rendered)

		rest = rest[end+1:]
	}

	path := out.String()
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return path, nil
}

// encodeQuery renders form style, exploded query parameters. Nil values are
// omitted.
func encodeQuery(params map[string]any) (url.Values, error) {
	query := url.Values{}

	for name, value := range params {
		if value == nil {
			continue
		}

		fragment, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
		if err != nil {
			return nil, fmt.Errorf("rendering query parameter %q: %w", name, err)
		}

		parsed, err := url.ParseQuery(fragment)
		if err != nil {
			return nil, fmt.Errorf("parsing query parameter %q: %w", name, err)
		}

		for k, v := range parsed {
			query[k] = append(query[k], v...)
		}
	}

	return query, nil
}
