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

package pb

import (
	"io"

	mpbv8 "github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var disableProgress bool

// SetDisableProgress disables progress bar rendering globally.
func SetDisableProgress(disable bool) {
	disableProgress = disable
}

// ProgressBar renders a task counter for a batch of uniform operations.
type ProgressBar struct {
	mpb *mpbv8.Progress
	bar *mpbv8.Bar
}

// NewProgressBar creates a new progress bar writing to w.
func NewProgressBar(w io.Writer) *ProgressBar {
	if disableProgress {
		w = io.Discard
	}

	return &ProgressBar{
		mpb: mpbv8.New(mpbv8.WithWidth(60), mpbv8.WithOutput(w)),
	}
}

// Start adds the bar with the given task total.
func (p *ProgressBar) Start(name string, total int64) {
	p.bar = p.mpb.New(total,
		mpbv8.BarStyle(),
		mpbv8.BarFillerOnComplete("|"),
		mpbv8.PrependDecorators(
			decor.Name(name, decor.WCSyncSpaceR),
		),
		mpbv8.AppendDecorators(
			decor.OnComplete(decor.CountersNoUnit("%d / %d"), "done"),
		),
	)
}

// Increment marks one task as finished.
func (p *ProgressBar) Increment() {
	if p.bar != nil {
		p.bar.Increment()
	}
}

// Wait waits for the progress bar to finish rendering.
func (p *ProgressBar) Wait() {
	if p.bar != nil && !p.bar.Completed() {
		p.bar.Abort(true)
	}

	p.mpb.Wait()
}
