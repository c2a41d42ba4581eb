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

import (
	"os"
	"path/filepath"
)

// APIKeyEnv is the environment variable holding the control plane API key.
const APIKeyEnv = "RUNPOD_API_KEY"

type Root struct {
	APIKey          string
	LogDir          string
	LogLevel        string
	Pprof           bool
	PprofAddr       string
	DisableProgress bool
}

func NewRoot() (*Root, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	return &Root{
		APIKey:          os.Getenv(APIKeyEnv),
		LogDir:          filepath.Join(home, ".tunectl", "logs"),
		LogLevel:        "info",
		Pprof:           false,
		PprofAddr:       "localhost:6060",
		DisableProgress: false,
	}, nil
}
