// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package commandtest provides a scripted command.Runner for tests.
package commandtest

import (
	"context"
	"sync"

	"github.com/jettox/diagnostics/pkg/command"
)

// Runner returns canned results instead of spawning processes.
// Lookups try the exact command line first, then the logical name; anything
// else succeeds with empty output.
type Runner struct {
	ByLine map[string]command.Result
	ByName map[string]command.Result
	Tools  map[string]bool
	// Before is called with every spec before its result is returned.
	Before func(spec command.Spec)

	mu    sync.Mutex
	calls []command.Spec
}

// New creates an empty scripted runner.
func New() *Runner {
	return &Runner{
		ByLine: make(map[string]command.Result),
		ByName: make(map[string]command.Result),
		Tools:  make(map[string]bool),
	}
}

// On scripts the result for a logical command name and returns r.
func (r *Runner) On(name, stdout string, rc int) *Runner {
	r.ByName[name] = command.Result{RC: rc, Stdout: stdout}
	return r
}

// Run implements command.Runner.
func (r *Runner) Run(ctx context.Context, spec command.Spec) command.Result {
	r.mu.Lock()
	r.calls = append(r.calls, spec)
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return command.Failed("CANCELED: " + spec.Line + ": " + err.Error())
	}
	if r.Before != nil {
		r.Before(spec)
	}
	if res, ok := r.ByLine[spec.Line]; ok {
		return res
	}
	if res, ok := r.ByName[spec.Name]; ok {
		return res
	}
	return command.Result{}
}

// LookPath implements command.Runner.
func (r *Runner) LookPath(name string) bool {
	return r.Tools[name]
}

// Calls returns the specs run so far, in order.
func (r *Runner) Calls() []command.Spec {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]command.Spec(nil), r.calls...)
}

// Lines returns the command lines run so far, in order.
func (r *Runner) Lines() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Line
	}
	return out
}
