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

	"github.com/gerbil-llm/tunectl/pkg/config"
)

var deleteAllConfig = config.NewDeleteAll()

// deleteAllCmd represents the tunectl command for delete-all.
var deleteAllCmd = &cobra.Command{
	Use:                "delete-all",
	Short:              "Delete every endpoint of this project after confirmation",
	Args:               cobra.NoArgs,
	DisableAutoGenTag:  true,
	SilenceUsage:       true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDeleteAll(context.Background())
	},
}

// init initializes delete-all command.
func init() {
	flags := deleteAllCmd.Flags()
	flags.BoolVarP(&deleteAllConfig.Yes, "yes", "y", deleteAllConfig.Yes, "skip the confirmation prompt")

	if err := viper.BindPFlags(flags); err != nil {
		panic(fmt.Errorf("bind delete-all flags to viper: %w", err))
	}
}

// runDeleteAll runs the delete-all tunectl.
func runDeleteAll(ctx context.Context) error {
	b, err := newBackend()
	if err != nil {
		return err
	}

	return b.DeleteAll(ctx, deleteAllConfig)
}
