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
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Health fetches a worker and job queue snapshot for an endpoint. Unlike the
// lifecycle operations this is a plain bearer-authenticated GET on the
// per-endpoint path.
func (c *Client) Health(ctx context.Context, id string) (Health, []byte, error) {
	u := fmt.Sprintf("%s/%s/health", c.apiBaseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Health{}, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	logrus.Debugf("runpod: fetching health for endpoint %s", id)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Health{}, nil, fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Health{}, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var health Health
	if err := json.Unmarshal(raw, &health); err != nil {
		return Health{}, raw, fmt.Errorf("unexpected health response shape: %w", err)
	}

	return health, raw, nil
}
