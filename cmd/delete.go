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

// deleteCmd represents the tunectl command for delete.
var deleteCmd = &cobra.Command{
	Use:                "delete <endpoint-id>",
	Short:              "Delete an endpoint",
	Args:               cobra.ExactArgs(1),
	DisableAutoGenTag:  true,
	SilenceUsage:       true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(context.Background(), args[0])
	},
}

// init initializes delete command.
func init() {
	flags := deleteCmd.Flags()

	if err := viper.BindPFlags(flags); err != nil {
		panic(fmt.Errorf("bind delete flags to viper: %w", err))
	}
}

// runDelete runs the delete tunectl.
func runDelete(ctx context.Context, id string) error {
	b, err := newBackend()
	if err != nil {
		return err
	}

	return b.Delete(ctx, id)
}
