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
	"io"
	"os"

	"github.com/gerbil-llm/tunectl/pkg/config"
	"github.com/gerbil-llm/tunectl/pkg/runpod"
)

// Backend is the interface to represent the backend.
type Backend interface {
	// List lists all serverless endpoints on the account.
	List(ctx context.Context) error

	// Health prints a worker and job queue snapshot for an endpoint.
	Health(ctx context.Context, id string) error

	// Test sends a sample chat completion to an endpoint and prints the reply.
	Test(ctx context.Context, id string, cfg *config.Test) error

	// Delete deletes an endpoint by id.
	Delete(ctx context.Context, id string) error

	// DeleteAll deletes every endpoint of this project after confirmation.
	DeleteAll(ctx context.Context, cfg *config.DeleteAll) error

	// Purge scales an endpoint to zero workers to drop stale jobs.
	Purge(ctx context.Context, id string) error

	// Restore re-enables scale-to-zero elasticity on a purged endpoint.
	Restore(ctx context.Context, id string) error

	// Verify runs the Gerbil Scheme verification prompt suite against a model.
	Verify(ctx context.Context, id string, cfg *config.Verify) error
}

// backend is the implementation of Backend.
type backend struct {
	rp      *runpod.Client
	apiKey  string
	out     io.Writer
	confirm ConfirmFunc
}

// Option is a function that configures the backend.
type Option func(*backend)

// New creates a new backend authenticated with the given API key.
func New(apiKey string, opts ...Option) (Backend, error) {
	b := &backend{
		rp:      runpod.NewClient(apiKey),
		apiKey:  apiKey,
		out:     os.Stdout,
		confirm: StdinConfirm,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b, nil
}

// WithControlPlane overrides the control plane client.
func WithControlPlane(rp *runpod.Client) Option {
	return func(b *backend) {
		b.rp = rp
	}
}

// WithOutput overrides the writer for user-facing output.
func WithOutput(w io.Writer) Option {
	return func(b *backend) {
		b.out = w
	}
}

// WithConfirm overrides the confirmation callback.
func WithConfirm(confirm ConfirmFunc) Option {
	return func(b *backend) {
		b.confirm = confirm
	}
}
