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

package runpod

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultGraphQLURL is the control plane query endpoint.
	DefaultGraphQLURL = "https://api.runpod.io/graphql"

	// DefaultAPIBaseURL is the base URL for per-endpoint paths (health, inference).
	DefaultAPIBaseURL = "https://api.runpod.ai/v2"

	// DefaultTimeout is the default timeout for HTTP requests.
	DefaultTimeout = 2 * time.Minute
)

// Client talks to the serverless control plane. Lifecycle operations go
// through the GraphQL endpoint with the API key embedded in the URL, reads
// of per-endpoint paths use bearer authentication.
type Client struct {
	graphqlURL string
	apiBaseURL string
	apiKey     string
	httpClient *http.Client
}

// Option is a function that configures the client.
type Option func(*Client)

// NewClient creates a new control plane client with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		graphqlURL: DefaultGraphQLURL,
		apiBaseURL: DefaultAPIBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithGraphQLURL sets a custom control plane URL.
func WithGraphQLURL(u string) Option {
	return func(c *Client) {
		c.graphqlURL = u
	}
}

// WithAPIBaseURL sets a custom base URL for per-endpoint paths.
func WithAPIBaseURL(u string) Option {
	return func(c *Client) {
		c.apiBaseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// OpenAIBaseURL returns the OpenAI-compatible API base for an endpoint.
func (c *Client) OpenAIBaseURL(id string) string {
	return fmt.Sprintf("%s/%s/openai/v1", c.apiBaseURL, strings.TrimSuffix(id, "/"))
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// Do posts a GraphQL query to the control plane and returns the data payload
// together with the raw response body. The raw body is returned even on
// failure so callers can surface it for diagnostics.
func (c *Client) Do(ctx context.Context, query string) (json.RawMessage, []byte, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	u := fmt.Sprintf("%s?api_key=%s", c.graphqlURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("control plane request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, raw, fmt.Errorf("response is not valid JSON: %w", err)
	}

	if len(envelope.Errors) > 0 {
		msgs := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			msgs = append(msgs, e.Message)
		}

		return nil, raw, fmt.Errorf("control plane returned errors: %s", strings.Join(msgs, "; "))
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil, raw, fmt.Errorf("response has no data field")
	}

	return envelope.Data, raw, nil
}

// Endpoints lists all serverless endpoints owned by the authenticated account.
func (c *Client) Endpoints(ctx context.Context) ([]Endpoint, []byte, error) {
	const query = `query Endpoints { myself { endpoints { id name gpuIds workersMin workersMax idleTimeout templateId } } }`

	logrus.Debugf("runpod: querying endpoints")
	data, raw, err := c.Do(ctx, query)
	if err != nil {
		return nil, raw, err
	}

	var payload struct {
		Myself *struct {
			Endpoints []Endpoint `json:"endpoints"`
		} `json:"myself"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Myself == nil {
		return nil, raw, fmt.Errorf("unexpected endpoints response shape")
	}

	return payload.Myself.Endpoints, raw, nil
}

// UpdateEndpointWorkers mutates an endpoint's autoscaling bounds. The control
// plane requires the full endpoint config on save, so the caller passes the
// current endpoint and only min/max change.
func (c *Client) UpdateEndpointWorkers(ctx context.Context, ep Endpoint, min, max int) (Endpoint, []byte, error) {
	query := fmt.Sprintf(
		`mutation { saveEndpoint(input: { id: %q, name: %q, gpuIds: %q, templateId: %q, idleTimeout: %d, workersMin: %d, workersMax: %d }) { id name workersMin workersMax } }`,
		ep.ID, ep.Name, ep.GpuIDs, ep.TemplateID, ep.IdleTimeout, min, max,
	)

	logrus.Infof("runpod: setting endpoint %s workers to %d-%d", ep.ID, min, max)
	data, raw, err := c.Do(ctx, query)
	if err != nil {
		return Endpoint{}, raw, err
	}

	var payload struct {
		SaveEndpoint *Endpoint `json:"saveEndpoint"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.SaveEndpoint == nil {
		return Endpoint{}, raw, fmt.Errorf("unexpected saveEndpoint response shape")
	}

	return *payload.SaveEndpoint, raw, nil
}

// DeleteEndpoint deletes an endpoint by id. The deletion field must be
// present and non-null for the call to count as a success.
func (c *Client) DeleteEndpoint(ctx context.Context, id string) ([]byte, error) {
	query := fmt.Sprintf(`mutation { deleteEndpoint(id: %q) }`, id)

	logrus.Infof("runpod: deleting endpoint %s", id)
	data, raw, err := c.Do(ctx, query)
	if err != nil {
		return raw, err
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		return raw, fmt.Errorf("unexpected deleteEndpoint response shape")
	}

	result, ok := payload["deleteEndpoint"]
	if !ok || string(result) == "null" {
		return raw, fmt.Errorf("deletion was not acknowledged")
	}

	return raw, nil
}
