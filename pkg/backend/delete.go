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
	"strings"

	"github.com/dustin/go-humanize/english"
	"github.com/sirupsen/logrus"

	"github.com/gerbil-llm/tunectl/pkg/config"
	"github.com/gerbil-llm/tunectl/pkg/runpod"
)

// nameMarker identifies this project's endpoints. DeleteAll refuses to touch
// endpoints whose name does not contain it, so unrelated deployments on the
// same account survive a sweep.
const nameMarker = "gerbil"

// Delete deletes an endpoint by id.
func (b *backend) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("endpoint id is required")
	}

	raw, err := b.rp.DeleteEndpoint(ctx, id)
	if err != nil {
		if len(raw) > 0 {
			fmt.Fprintln(b.out, string(raw))
		}

		return fmt.Errorf("failed to delete endpoint %s: %w", id, err)
	}

	fmt.Fprintf(b.out, "Deleted endpoint %s\n", id)
	return nil
}

// DeleteAll deletes every endpoint of this project after confirmation.
// Deletions are sequential and independent: one failure does not stop the
// rest, and nothing already deleted is rolled back.
func (b *backend) DeleteAll(ctx context.Context, cfg *config.DeleteAll) error {
	endpoints, raw, err := b.rp.Endpoints(ctx)
	if err != nil {
		if len(raw) > 0 {
			fmt.Fprintln(b.out, string(raw))
		}

		return fmt.Errorf("failed to list endpoints: %w", err)
	}

	var candidates []runpod.Endpoint
	for _, ep := range endpoints {
		if strings.Contains(strings.ToLower(ep.Name), nameMarker) {
			candidates = append(candidates, ep)
		}
	}

	if len(candidates) == 0 {
		fmt.Fprintf(b.out, "No %s endpoints to delete.\n", nameMarker)
		return nil
	}

	fmt.Fprintf(b.out, "The following %s will be deleted:\n", english.Plural(len(candidates), "endpoint", ""))
	for _, ep := range candidates {
		fmt.Fprintf(b.out, "  %s  %s\n", ep.ID, ep.Name)
	}

	if !cfg.Yes && !b.confirm("Proceed? [y/N] ") {
		fmt.Fprintln(b.out, "Aborted.")
		return nil
	}

	var failed int
	for _, ep := range candidates {
		if err := b.Delete(ctx, ep.ID); err != nil {
			logrus.Errorf("delete-all: failed to delete endpoint %s: %v", ep.ID, err)
			fmt.Fprintf(b.out, "Failed to delete endpoint %s: %v\n", ep.ID, err)
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d deletions failed", failed, len(candidates))
	}

	return nil
}
