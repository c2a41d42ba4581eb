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

	return NewClient(srv.URL+"/v1", "test-key")
}

func TestChatCompletion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gerbil-qwen2.5-coder-7b", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, RoleSystem, req.Messages[0].Role)

		w.Write([]byte(`{"id":"cmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"(for ((values k v) (in-hash ht)) ...)"},"finish_reason":"stop"}]}`))
	})

	resp, _, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{
		Model: "gerbil-qwen2.5-coder-7b",
		Messages: []Message{
			{Role: RoleSystem, Content: "system"},
			{Role: RoleUser, Content: "user"},
		},
		MaxTokens:   1024,
		Temperature: 0.2,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Len(t, resp.Choices, 1)
	assert.Contains(t, resp.Choices[0].Message.Content, "in-hash")
}

func TestChatCompletionErrorObject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"model not loaded","type":"invalid_request_error"}}`))
	})

	resp, _, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "model not loaded", resp.Error.Message)
}

func TestChatCompletionErrorString(t *testing.T) {
	// Some servers return the error field as a bare string.
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"worker exited unexpectedly"}`))
	})

	resp, _, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "worker exited unexpectedly", resp.Error.Message)
}

func TestChatCompletionNotJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>502</html>"))
	})

	resp, raw, err := c.ChatCompletion(context.Background(), ChatCompletionRequest{Model: "m"})
	require.NoError(t, err)
	assert.Nil(t, resp)
	assert.Equal(t, "<html>502</html>", string(raw))
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c := NewClient("http://localhost:11434/v1/", "")
	assert.Equal(t, "http://localhost:11434/v1", c.baseURL)
}
