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
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/sirupsen/logrus"
)

// List lists all serverless endpoints on the account.
func (b *backend) List(ctx context.Context) error {
	logrus.Infof("list: fetching endpoints")
	endpoints, raw, err := b.rp.Endpoints(ctx)
	if err != nil {
		if len(raw) > 0 {
			fmt.Fprintln(b.out, string(raw))
		}

		return fmt.Errorf("failed to list endpoints: %w", err)
	}

	if len(endpoints) == 0 {
		fmt.Fprintln(b.out, "No endpoints found.")
		return nil
	}

	tw := tabwriter.NewWriter(b.out, 0, 0, 4, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tGPU\tWORKERS\tIDLE TIMEOUT")

	for _, ep := range endpoints {
		idle := (time.Duration(ep.IdleTimeout) * time.Second).String()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d-%d\t%s\n", ep.ID, ep.Name, ep.GpuIDs, ep.WorkersMin, ep.WorkersMax, idle)
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(b.out, "\n%s\n", english.Plural(len(endpoints), "endpoint", ""))
	return nil
}
