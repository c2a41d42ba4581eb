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
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gerbil-llm/tunectl/pkg/config"
	"github.com/gerbil-llm/tunectl/pkg/inference"
)

// systemPrompt primes the model the same way the training data did.
const systemPrompt = "You are an expert in Gerbil Scheme, a dialect of Scheme built on Gambit. " +
	"You provide accurate, idiomatic Gerbil code with correct imports, function names, and arities."

// testPrompt is the fixed sample question for the test command.
const testPrompt = "How do I iterate over a hash table in Gerbil Scheme?"

// Test sends a sample chat completion to an endpoint and prints the reply.
// The response shape is never assumed: a completion prints only the generated
// text, a remote error prints that error, anything else is pretty-printed raw.
func (b *backend) Test(ctx context.Context, id string, cfg *config.Test) error {
	if id == "" {
		return fmt.Errorf("endpoint id is required")
	}

	client := inference.NewClient(b.rp.OpenAIBaseURL(id), b.apiKey)
	req := inference.ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []inference.Message{
			{Role: inference.RoleSystem, Content: systemPrompt},
			{Role: inference.RoleUser, Content: testPrompt},
		},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	logrus.Infof("test: sending sample completion to endpoint %s [model: %s]", id, cfg.Model)
	resp, raw, err := client.ChatCompletion(ctx, req)
	if err != nil {
		return fmt.Errorf("failed to test endpoint %s: %w", id, err)
	}

	switch {
	case resp != nil && len(resp.Choices) > 0:
		fmt.Fprintln(b.out, resp.Choices[0].Message.Content)
		return nil
	case resp != nil && resp.Error != nil:
		fmt.Fprintln(b.out, resp.Error.Message)
		return fmt.Errorf("endpoint %s returned an error", id)
	default:
		fmt.Fprintln(b.out, prettyRaw(raw))
		return fmt.Errorf("unexpected response from endpoint %s", id)
	}
}

// prettyRaw indents a raw JSON body for display, falling back to the bytes
// as-is when they are not JSON.
func prettyRaw(raw []byte) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}

	pretty, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return string(raw)
	}

	return string(pretty)
}
