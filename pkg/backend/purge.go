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

	"github.com/sirupsen/logrus"

	"github.com/gerbil-llm/tunectl/pkg/runpod"
)

// Purge scales an endpoint to zero workers so the remote scheduler drops any
// stale in-flight jobs. Whether the workers have actually drained is not
// verified.
func (b *backend) Purge(ctx context.Context, id string) error {
	updated, err := b.setWorkers(ctx, id, 0, 0)
	if err != nil {
		return err
	}

	fmt.Fprintf(b.out, "Endpoint %s workers set to %d-%d\n", updated.ID, updated.WorkersMin, updated.WorkersMax)
	fmt.Fprintf(b.out, "Run \"tunectl restore %s\" to re-enable scaling.\n", id)
	return nil
}

// Restore re-enables scale-to-zero elasticity. This is a fixed reset to
// (0,1), not an inverse of purge.
func (b *backend) Restore(ctx context.Context, id string) error {
	updated, err := b.setWorkers(ctx, id, 0, 1)
	if err != nil {
		return err
	}

	fmt.Fprintf(b.out, "Endpoint %s workers set to %d-%d\n", updated.ID, updated.WorkersMin, updated.WorkersMax)
	return nil
}

// setWorkers looks the endpoint up and saves it back with new autoscaling
// bounds. The control plane wants the full config on save, so the current
// endpoint is fetched first.
func (b *backend) setWorkers(ctx context.Context, id string, min, max int) (runpod.Endpoint, error) {
	if id == "" {
		return runpod.Endpoint{}, fmt.Errorf("endpoint id is required")
	}

	endpoints, raw, err := b.rp.Endpoints(ctx)
	if err != nil {
		if len(raw) > 0 {
			fmt.Fprintln(b.out, string(raw))
		}

		return runpod.Endpoint{}, fmt.Errorf("failed to list endpoints: %w", err)
	}

	var found *runpod.Endpoint
	for i := range endpoints {
		if endpoints[i].ID == id {
			found = &endpoints[i]
			break
		}
	}
	if found == nil {
		return runpod.Endpoint{}, fmt.Errorf("endpoint %s not found", id)
	}

	logrus.Infof("purge/restore: updating endpoint %s workers to %d-%d", id, min, max)
	updated, raw, err := b.rp.UpdateEndpointWorkers(ctx, *found, min, max)
	if err != nil {
		if len(raw) > 0 {
			fmt.Fprintln(b.out, string(raw))
		}

		return runpod.Endpoint{}, fmt.Errorf("failed to update endpoint %s: %w", id, err)
	}

	return updated, nil
}
