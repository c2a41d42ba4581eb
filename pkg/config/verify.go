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

package config

import "fmt"

const (
	// defaultVerifyConcurrency is the default number of concurrent verification requests.
	defaultVerifyConcurrency = 2
)

type Verify struct {
	// BaseURL targets any OpenAI-compatible server instead of the managed
	// endpoint, e.g. http://localhost:11434/v1 for Ollama.
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Concurrency int

	// Verbose prints a truncated model response for every case.
	Verbose bool
}

func NewVerify() *Verify {
	return &Verify{
		BaseURL:     "",
		APIKey:      "",
		Model:       defaultModel,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
		Concurrency: defaultVerifyConcurrency,
		Verbose:     false,
	}
}

func (v *Verify) Validate() error {
	if len(v.Model) == 0 {
		return fmt.Errorf("missing model")
	}

	if v.MaxTokens < 1 {
		return fmt.Errorf("invalid max tokens: %d", v.MaxTokens)
	}

	if v.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency: %d", v.Concurrency)
	}

	return nil
}
