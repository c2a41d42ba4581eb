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
)

// Health prints a worker and job queue snapshot for an endpoint.
func (b *backend) Health(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("endpoint id is required")
	}

	logrus.Infof("health: checking endpoint %s", id)
	health, raw, err := b.rp.Health(ctx, id)
	if err != nil {
		if len(raw) > 0 {
			fmt.Fprintln(b.out, string(raw))
		}

		return fmt.Errorf("failed to check endpoint %s: %w", id, err)
	}

	fmt.Fprintf(b.out, "Ready workers: %d\n", health.Workers.Ready)
	fmt.Fprintf(b.out, "Running workers: %d\n", health.Workers.Running)
	fmt.Fprintf(b.out, "Throttled workers: %d\n", health.Workers.Throttled)
	fmt.Fprintf(b.out, "Initializing workers: %d\n", health.Workers.Initializing)
	fmt.Fprintf(b.out, "Completed jobs: %d\n", health.Jobs.Completed)
	fmt.Fprintf(b.out, "Failed jobs: %d\n", health.Jobs.Failed)
	fmt.Fprintf(b.out, "Jobs in progress: %d\n", health.Jobs.InProgress)
	fmt.Fprintf(b.out, "Jobs in queue: %d\n", health.Jobs.InQueue)
	fmt.Fprintf(b.out, "Retried jobs: %d\n", health.Jobs.Retried)
	return nil
}
