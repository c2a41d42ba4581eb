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
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var workersRe = regexp.MustCompile(`workersMin: (\d+), workersMax: (\d+)`)

// workersRecorder answers endpoint listings and records saveEndpoint bounds.
type workersRecorder struct {
	t        *testing.T
	min, max int
	saves    int
}

func (h *workersRecorder) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := graphqlQuery(h.t, r)

	if strings.Contains(query, "myself { endpoints") {
		fmt.Fprintf(w, `{"data":{"myself":{"endpoints":[
			{"id":"abc123","name":"gerbil-coder","gpuIds":"AMPERE_24","workersMin":%d,"workersMax":%d,"idleTimeout":5,"templateId":"tpl1"}
		]}}}`, h.min, h.max)
		return
	}

	if strings.Contains(query, "saveEndpoint") {
		m := workersRe.FindStringSubmatch(query)
		require.NotNil(h.t, m, "saveEndpoint mutation missing worker bounds: %s", query)
		h.min, _ = strconv.Atoi(m[1])
		h.max, _ = strconv.Atoi(m[2])
		h.saves++

		fmt.Fprintf(w, `{"data":{"saveEndpoint":{"id":"abc123","name":"gerbil-coder","workersMin":%d,"workersMax":%d}}}`, h.min, h.max)
		return
	}

	h.t.Errorf("unexpected query: %s", query)
}

func TestPurgeThenRestore(t *testing.T) {
	h := &workersRecorder{t: t, min: 1, max: 3}
	b, out := newTestBackend(t, h)

	require.NoError(t, b.Purge(context.Background(), "abc123"))
	assert.Equal(t, 0, h.min)
	assert.Equal(t, 0, h.max)
	assert.Contains(t, out.String(), "Endpoint abc123 workers set to 0-0")
	assert.Contains(t, out.String(), "tunectl restore abc123")

	out.Reset()

	// Restore is a fixed reset to (0,1), not an inverse of purge.
	require.NoError(t, b.Restore(context.Background(), "abc123"))
	assert.Equal(t, 0, h.min)
	assert.Equal(t, 1, h.max)
	assert.Equal(t, 2, h.saves)
	assert.Contains(t, out.String(), "Endpoint abc123 workers set to 0-1")
}

func TestPurgeIdempotent(t *testing.T) {
	h := &workersRecorder{t: t, min: 0, max: 0}
	b, _ := newTestBackend(t, h)

	// Purging an already purged endpoint reapplies the same bounds.
	require.NoError(t, b.Purge(context.Background(), "abc123"))
	require.NoError(t, b.Purge(context.Background(), "abc123"))
	assert.Equal(t, 0, h.min)
	assert.Equal(t, 0, h.max)
	assert.Equal(t, 2, h.saves)
}

func TestPurgeUnknownEndpoint(t *testing.T) {
	b, _ := newTestBackend(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"myself":{"endpoints":[]}}}`))
	}))

	err := b.Purge(context.Background(), "nosuch")
	assert.ErrorContains(t, err, "endpoint nosuch not found")
}

func TestRestoreEmptyID(t *testing.T) {
	b, _ := newTestBackend(t, failOnRequest(t))

	err := b.Restore(context.Background(), "")
	assert.ErrorContains(t, err, "endpoint id is required")
}
