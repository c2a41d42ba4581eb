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

	"github.com/gerbil-llm/tunectl/pkg/backend"
	"github.com/gerbil-llm/tunectl/pkg/config"
)

var verifyConfig = config.NewVerify()

// verifyCmd represents the tunectl command for verify.
var verifyCmd = &cobra.Command{
	Use:                "verify [endpoint-id]",
	Short:              "Run the Gerbil Scheme verification prompt suite against a model",
	Args:               cobra.MaximumNArgs(1),
	DisableAutoGenTag:  true,
	SilenceUsage:       true,
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE: func(cmd *cobra.Command, args []string) error {
		id := ""
		if len(args) > 0 {
			id = args[0]
		}

		return runVerify(context.Background(), id)
	},
}

// init initializes verify command.
func init() {
	flags := verifyCmd.Flags()
	flags.StringVar(&verifyConfig.BaseURL, "base-url", verifyConfig.BaseURL, "specify an OpenAI-compatible API base URL instead of the managed endpoint")
	flags.StringVar(&verifyConfig.Model, "model", verifyConfig.Model, "specify the model name to verify")
	flags.IntVar(&verifyConfig.MaxTokens, "max-tokens", verifyConfig.MaxTokens, "specify the completion token limit")
	flags.Float64Var(&verifyConfig.Temperature, "temperature", verifyConfig.Temperature, "specify the sampling temperature")
	flags.IntVar(&verifyConfig.Concurrency, "concurrency", verifyConfig.Concurrency, "specify the number of concurrent verification requests")
	flags.BoolVarP(&verifyConfig.Verbose, "verbose", "v", verifyConfig.Verbose, "show a truncated model response for every case")

	if err := viper.BindPFlags(flags); err != nil {
		panic(fmt.Errorf("bind verify flags to viper: %w", err))
	}
}

// runVerify runs the verify tunectl.
func runVerify(ctx context.Context, id string) error {
	if err := verifyConfig.Validate(); err != nil {
		return err
	}

	// A --base-url target may not need a credential at all (Ollama), so the
	// hard API key precondition applies only to the managed endpoint path.
	if verifyConfig.BaseURL != "" {
		verifyConfig.APIKey = rootConfig.APIKey
		b, err := backend.New(rootConfig.APIKey)
		if err != nil {
			return err
		}

		return b.Verify(ctx, id, verifyConfig)
	}

	b, err := newBackend()
	if err != nil {
		return err
	}

	return b.Verify(ctx, id, verifyConfig)
}
