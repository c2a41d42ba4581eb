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

	retry "github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	internalpb "github.com/gerbil-llm/tunectl/internal/pb"
	"github.com/gerbil-llm/tunectl/pkg/config"
	"github.com/gerbil-llm/tunectl/pkg/inference"
)

// verifyCase is one prompt with substring expectations on the reply.
type verifyCase struct {
	prompt         string
	mustContain    []string
	mustNotContain []string
}

// verifySuite checks that the fine-tune actually learned Gerbil Scheme
// idioms instead of answering with generic Scheme or Racket.
var verifySuite = []verifyCase{
	{
		prompt:         "How do I iterate over a hash table in Gerbil Scheme?",
		mustContain:    []string{"import", "in-hash", "for"},
		mustNotContain: []string{"hash-table-for-each"},
	},
	{
		prompt:      "What's the difference between hash-get and hash-ref in Gerbil?",
		mustContain: []string{"hash-get", "hash-ref", "#f"},
	},
	{
		prompt:         "Show me how to parse JSON in Gerbil Scheme.",
		mustContain:    []string{":std/text/json", "read-json"},
		mustNotContain: []string{"require", "json-parse"},
	},
	{
		prompt:         "How do I define a custom error class in Gerbil?",
		mustContain:    []string{"deferror-class", ":std/error"},
		mustNotContain: []string{"define-condition-type"},
	},
	{
		prompt:      "What's wrong with passing u8vector to a (pointer void) FFI parameter in Gerbil?",
		mustContain: []string{"scheme-object"},
	},
	{
		prompt:         "How do I spawn an actor in Gerbil Scheme?",
		mustContain:    []string{"spawn"},
		mustNotContain: []string{"make-actor", "create-actor"},
	},
	{
		prompt:      "Show me pattern matching with struct destructuring in Gerbil.",
		mustContain: []string{"match", "defstruct"},
	},
	{
		prompt:      "How do I write unit tests in Gerbil Scheme?",
		mustContain: []string{":std/test", "test-suite", "check"},
	},
	{
		prompt:      "What imports do I need to use channels in Gerbil?",
		mustContain: []string{":std/misc/channel"},
	},
	{
		prompt:      "How do I use the for/collect macro in Gerbil?",
		mustContain: []string{":std/iter", "for/collect"},
	},
}

type verifyResult struct {
	reply     string
	missing   []string
	forbidden []string
	err       error
}

func (r verifyResult) passed() bool {
	return r.err == nil && len(r.missing) == 0 && len(r.forbidden) == 0
}

// Verify runs the verification prompt suite against a model. By default it
// targets the managed endpoint's OpenAI-compatible path, --base-url switches
// to any other compatible server. Cases run with bounded concurrency and
// transport failures are retried, a wrong answer is not.
func (b *backend) Verify(ctx context.Context, id string, cfg *config.Verify) error {
	if cfg.BaseURL == "" && id == "" {
		return fmt.Errorf("endpoint id is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = b.rp.OpenAIBaseURL(id)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = b.apiKey
	}

	client := inference.NewClient(baseURL, apiKey)
	logrus.Infof("verify: running %d checks against %s [model: %s]", len(verifySuite), baseURL, cfg.Model)

	bar := internalpb.NewProgressBar(b.out)
	bar.Start("Verifying", int64(len(verifySuite)))

	results := make([]verifyResult, len(verifySuite))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Concurrency)

	for i, tc := range verifySuite {
		i, tc := i, tc
		g.Go(func() error {
			defer bar.Increment()

			reply, err := retry.DoWithData(func() (string, error) {
				return b.askModel(gctx, client, cfg, tc.prompt)
			}, append(retryOpts, retry.Context(gctx))...)
			if err != nil {
				results[i] = verifyResult{err: err}
				return nil
			}

			results[i] = evaluateReply(tc, reply)
			return nil
		})
	}

	// Workers stash results instead of failing the group, a broken case must
	// not cancel the rest of the suite.
	_ = g.Wait()
	bar.Wait()

	passed := 0
	for i, tc := range verifySuite {
		result := results[i]
		if result.passed() {
			passed++
			fmt.Fprintf(b.out, "PASS  %s\n", tc.prompt)
		} else {
			fmt.Fprintf(b.out, "FAIL  %s\n", tc.prompt)
			if result.err != nil {
				fmt.Fprintf(b.out, "      %v\n", result.err)
			}
			for _, want := range result.missing {
				fmt.Fprintf(b.out, "      missing %q\n", want)
			}
			for _, got := range result.forbidden {
				fmt.Fprintf(b.out, "      found forbidden %q\n", got)
			}
		}

		if cfg.Verbose && result.reply != "" {
			fmt.Fprintf(b.out, "      Response: %s\n", truncateReply(result.reply))
		}
	}

	fmt.Fprintf(b.out, "\nPassed %d of %d checks.\n", passed, len(verifySuite))

	if passed < len(verifySuite) {
		return fmt.Errorf("%d of %d checks failed", len(verifySuite)-passed, len(verifySuite))
	}

	return nil
}

// askModel sends one verification prompt and returns the generated text.
// Remote errors and unexpected shapes are unrecoverable, retrying them would
// just replay the same answer.
func (b *backend) askModel(ctx context.Context, client *inference.Client, cfg *config.Verify, prompt string) (string, error) {
	req := inference.ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []inference.Message{
			{Role: inference.RoleSystem, Content: systemPrompt},
			{Role: inference.RoleUser, Content: prompt},
		},
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
	}

	resp, raw, err := client.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	switch {
	case resp != nil && len(resp.Choices) > 0:
		return resp.Choices[0].Message.Content, nil
	case resp != nil && resp.Error != nil:
		return "", retry.Unrecoverable(fmt.Errorf("server error: %s", resp.Error.Message))
	default:
		return "", retry.Unrecoverable(fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(raw))))
	}
}

// verboseReplyLimit caps per-case response output in verbose mode.
const verboseReplyLimit = 200

func truncateReply(reply string) string {
	if len(reply) > verboseReplyLimit {
		return reply[:verboseReplyLimit] + "..."
	}

	return reply
}

// evaluateReply matches case-insensitively, a reply answering in different
// casing still counts.
func evaluateReply(tc verifyCase, reply string) verifyResult {
	replyLower := strings.ToLower(reply)

	result := verifyResult{reply: reply}
	for _, want := range tc.mustContain {
		if !strings.Contains(replyLower, strings.ToLower(want)) {
			result.missing = append(result.missing, want)
		}
	}

	for _, banned := range tc.mustNotContain {
		if strings.Contains(replyLower, strings.ToLower(banned)) {
			result.forbidden = append(result.forbidden, banned)
		}
	}

	return result
}
