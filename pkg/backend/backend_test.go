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

package backend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gerbil-llm/tunectl/pkg/runpod"
)

// newTestBackend wires a backend against a fake control plane. The same
// server answers GraphQL (on /graphql), health and inference paths.
func newTestBackend(t *testing.T, handler http.Handler, opts ...Option) (Backend, *bytes.Buffer) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rp := runpod.NewClient("test-key",
		runpod.WithGraphQLURL(srv.URL+"/graphql"),
		runpod.WithAPIBaseURL(srv.URL),
	)

	var buf bytes.Buffer
	b, err := New("test-key", append([]Option{WithControlPlane(rp), WithOutput(&buf)}, opts...)...)
	require.NoError(t, err)

	return b, &buf
}

func graphqlQuery(t *testing.T, r *http.Request) string {
	t.Helper()

	var payload struct {
		Query string `json:"query"`
	}
	require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	return payload.Query
}

// failOnRequest fails the test on any network call, for checking that
// precondition errors short-circuit before the transport.
func failOnRequest(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	})
}
