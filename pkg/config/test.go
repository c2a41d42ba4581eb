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
	// defaultModel is the model name the fine-tuned endpoint serves.
	defaultModel = "gerbil-qwen2.5-coder-7b"

	defaultMaxTokens   = 1024
	defaultTemperature = 0.2
)

type Test struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

func NewTest() *Test {
	return &Test{
		Model:       defaultModel,
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	}
}

func (t *Test) Validate() error {
	if len(t.Model) == 0 {
		return fmt.Errorf("missing model")
	}

	if t.MaxTokens < 1 {
		return fmt.Errorf("invalid max tokens: %d", t.MaxTokens)
	}

	return nil
}
