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
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient("test-key", WithGraphQLURL(srv.URL+"/graphql"), WithAPIBaseURL(srv.URL))
}

func readQuery(t *testing.T, r *http.Request) string {
	t.Helper()

	var payload struct {
		Query string `json:"query"`
	}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	return payload.Query
}

func TestEndpoints(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Contains(t, readQuery(t, r), "myself { endpoints")

		w.Write([]byte(`{"data":{"myself":{"endpoints":[
			{"id":"abc123","name":"gerbil-coder","gpuIds":"AMPERE_24","workersMin":0,"workersMax":1,"idleTimeout":5,"templateId":"tpl1"}
		]}}}`))
	})

	endpoints, _, err := c.Endpoints(context.Background())
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "abc123", endpoints[0].ID)
	assert.Equal(t, "gerbil-coder", endpoints[0].Name)
	assert.Equal(t, "AMPERE_24", endpoints[0].GpuIDs)
	assert.Equal(t, 0, endpoints[0].WorkersMin)
	assert.Equal(t, 1, endpoints[0].WorkersMax)
	assert.Equal(t, 5, endpoints[0].IdleTimeout)
	assert.Equal(t, "tpl1", endpoints[0].TemplateID)
}

func TestEndpointsUnexpectedShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"something":"else"}}`))
	})

	_, raw, err := c.Endpoints(context.Background())
	assert.Error(t, err)
	assert.Contains(t, string(raw), "something")
}

func TestDoGraphQLErrors(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"errors":[{"message":"Unauthorized"}]}`))
	})

	_, raw, err := c.Do(context.Background(), "query { myself { id } }")
	assert.ErrorContains(t, err, "Unauthorized")
	assert.NotEmpty(t, raw)
}

func TestDoNotJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, raw, err := c.Do(context.Background(), "query { myself { id } }")
	assert.ErrorContains(t, err, "not valid JSON")
	assert.Equal(t, "<html>bad gateway</html>", string(raw))
}

func TestUpdateEndpointWorkers(t *testing.T) {
	var query string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = readQuery(t, r)
		w.Write([]byte(`{"data":{"saveEndpoint":{"id":"abc123","name":"gerbil-coder","workersMin":0,"workersMax":0}}}`))
	})

	ep := Endpoint{ID: "abc123", Name: "gerbil-coder", GpuIDs: "AMPERE_24", TemplateID: "tpl1", IdleTimeout: 5}
	updated, _, err := c.UpdateEndpointWorkers(context.Background(), ep, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.WorkersMin)
	assert.Equal(t, 0, updated.WorkersMax)
	assert.Contains(t, query, `id: "abc123"`)
	assert.Contains(t, query, "workersMin: 0")
	assert.Contains(t, query, "workersMax: 0")
	assert.Contains(t, query, `templateId: "tpl1"`)
}

func TestDeleteEndpointAcknowledged(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, readQuery(t, r), `deleteEndpoint(id: "abc123")`)
		w.Write([]byte(`{"data":{"deleteEndpoint":{"id":"abc123"}}}`))
	})

	_, err := c.DeleteEndpoint(context.Background(), "abc123")
	assert.NoError(t, err)
}

func TestDeleteEndpointNotAcknowledged(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"deleteEndpoint":null}}`))
	})

	raw, err := c.DeleteEndpoint(context.Background(), "gone123")
	assert.ErrorContains(t, err, "not acknowledged")
	assert.NotEmpty(t, raw)
}

func TestOpenAIBaseURL(t *testing.T) {
	c := NewClient("test-key")
	assert.Equal(t, "https://api.runpod.ai/v2/abc123/openai/v1", c.OpenAIBaseURL("abc123"))
}
