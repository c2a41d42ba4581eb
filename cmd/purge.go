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

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// purgeCmd represents the tunectl command for purge.
var purgeCmd = &cobra.Command{
	Use:                "purge <endpoint-id>",
	Short:              "Scale an endpoint to zero workers to drop stale jobs",
	Args:               cobra.ExactArgs(1),
	DisableAutoGenTag:  true,
	SilenceUsage:       true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPurge(context.Background(), args[0])
	},
}

// init initializes purge command.
func init() {
	flags := purgeCmd.Flags()

	if err := viper.BindPFlags(flags); err != nil {
		panic(fmt.Errorf("bind purge flags to viper: %w", err))
	}
}

// runPurge runs the purge tunectl.
func runPurge(ctx context.Context, id string) error {
	b, err := newBackend()
	if err != nil {
		return err
	}

	return b.Purge(ctx, id)
}
