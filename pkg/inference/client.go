/*
 *     Copyright 2025 The tunectl Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the default timeout for completion requests. Generation
// on a cold endpoint can take a while.
const DefaultTimeout = 5 * time.Minute

// Client is a minimal client for OpenAI-compatible chat completion servers
// (serverless endpoints, Ollama, Together, OpenRouter).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option is a function that configures the client.
type Option func(*Client)

// NewClient creates a new inference client. baseURL is the API root up to
// and including the version segment, e.g. "http://localhost:11434/v1".
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// UnmarshalJSON accepts both the object form and the bare string form of the
// error field, since not every server agrees on the shape.
func (e *APIError) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		e.Message = s
		return nil
	}

	type alias APIError
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*e = APIError(a)
	return nil
}

// ChatCompletion posts a chat completion request. The raw response body is
// always returned alongside the parsed response so callers can fall back to
// printing it verbatim when the shape is unexpected; a nil response with a
// nil error means the body did not parse as a completion at all.
func (c *Client) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, []byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var completion ChatCompletionResponse
	if err := json.Unmarshal(raw, &completion); err != nil {
		return nil, raw, nil
	}

	return &completion, raw, nil
}
