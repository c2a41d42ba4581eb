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

package runpod

// Endpoint is a serverless endpoint as reported by the control plane.
// The control plane is the sole source of truth, nothing here is cached
// across invocations.
type Endpoint struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	GpuIDs      string `json:"gpuIds"`
	WorkersMin  int    `json:"workersMin"`
	WorkersMax  int    `json:"workersMax"`
	IdleTimeout int    `json:"idleTimeout"`
	TemplateID  string `json:"templateId"`
}

// Health is a point-in-time snapshot of an endpoint's workers and job queue.
type Health struct {
	Workers WorkerCounts `json:"workers"`
	Jobs    JobCounts    `json:"jobs"`
}

// WorkerCounts holds the worker states of an endpoint. Counters absent from
// the response decode to zero.
type WorkerCounts struct {
	Ready        int `json:"ready"`
	Running      int `json:"running"`
	Throttled    int `json:"throttled"`
	Initializing int `json:"initializing"`
}

// JobCounts holds the job queue counters of an endpoint.
type JobCounts struct {
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
	InProgress int `json:"inProgress"`
	InQueue    int `json:"inQueue"`
	Retried    int `json:"retried"`
}
