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

var testConfig = config.NewTest()

// testCmd represents the tunectl command for test.
var testCmd = &cobra.Command{
	Use:                "test <endpoint-id>",
	Short:              "Send a sample chat completion to an endpoint",
	Args:               cobra.ExactArgs(1),
	DisableAutoGenTag:  true,
	SilenceUsage:       true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTest(context.Background(), args[0])
	},
}

// init initializes test command.
func init() {
	flags := testCmd.Flags()
	flags.StringVar(&testConfig.Model, "model", testConfig.Model, "specify the model name served by the endpoint")
	flags.IntVar(&testConfig.MaxTokens, "max-tokens", testConfig.MaxTokens, "specify the completion token limit")
	flags.Float64Var(&testConfig.Temperature, "temperature", testConfig.Temperature, "specify the sampling temperature")

	if err := viper.BindPFlags(flags); err != nil {
		panic(fmt.Errorf("bind test flags to viper: %w", err))
	}
}

// runTest runs the test tunectl.
func runTest(ctx context.Context, id string) error {
	if err := testConfig.Validate(); err != nil {
		return err
	}

	b, err := newBackend()
	if err != nil {
		return err
	}

	return b.Test(ctx, id, testConfig)
}
