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

package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/jettox/diagnostics/pkg/parser"
)

// Spec describes one catalogue entry: a literal shell command line and how
// its output is read. Specs are static and never mutated at runtime.
type Spec struct {
	// Domain groups the command under a collector (system, hardware, ...).
	Domain string `json:"domain" yaml:"domain"`
	// Name is the logical name used in raw block headers and summary keys.
	Name string `json:"name" yaml:"name"`
	// Line is the literal command line handed to the host shell.
	Line string `json:"line" yaml:"line"`
	// Timeout bounds the command's wall-clock time.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
	// Format is how tabular output is read; empty for non-tabular output.
	Format parser.Format `json:"format,omitempty" yaml:"format,omitempty"`
	// Delimiter separates keys from values in attribute listings; empty means "=".
	Delimiter string `json:"delimiter,omitempty" yaml:"delimiter,omitempty"`
	// Marker is the substring counted when output is only counted, not parsed.
	Marker string `json:"marker,omitempty" yaml:"marker,omitempty"`
	// SideFile is a file the command writes its report to instead of stdout.
	SideFile string `json:"sideFile,omitempty" yaml:"sideFile,omitempty"`
	// Tool is an optional executable that must be on PATH for the command to run.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`
}

// Expand returns a copy of s with Line formatted using args.
// Used for per-device commands such as "smartctl -H %s".
func (s Spec) Expand(args ...any) Spec {
	s.Line = fmt.Sprintf(s.Line, args...)
	return s
}

// KVOptions returns the parser options matching the spec's delimiter.
func (s Spec) KVOptions() []parser.Option {
	if s.Delimiter == "" {
		return nil
	}
	return []parser.Option{parser.WithKVDelimiter(s.Delimiter)}
}

// Outcome labels used for metrics and logs.
const (
	OutcomeOK         = "ok"
	OutcomeExitError  = "exit_error"
	OutcomeTimeout    = "timeout"
	OutcomeSpawnError = "spawn_error"
)

// Result is the outcome of one invocation.
//
// RC is the process exit code, or -1 when the command timed out or could not
// be run at all; in that case Stderr holds a human-readable reason.
type Result struct {
	RC       int           `json:"rc" yaml:"rc"`
	Stdout   string        `json:"stdout" yaml:"stdout"`
	Stderr   string        `json:"stderr" yaml:"stderr"`
	TimedOut bool          `json:"timedOut,omitempty" yaml:"timedOut,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// OK reports whether the command exited with status 0.
func (r Result) OK() bool {
	return r.RC == 0
}

// RunnerFailed reports whether the command timed out or never ran.
func (r Result) RunnerFailed() bool {
	return r.RC == -1
}

// Outcome classifies the result for metrics.
func (r Result) Outcome() string {
	switch {
	case r.TimedOut:
		return OutcomeTimeout
	case r.RunnerFailed():
		return OutcomeSpawnError
	case r.OK():
		return OutcomeOK
	default:
		return OutcomeExitError
	}
}

// Transcript renders the result as a raw block body: stdout, an "ERR:"
// separator line, then stderr.
func (r Result) Transcript() string {
	var b strings.Builder
	b.Grow(len(r.Stdout) + len(r.Stderr) + 6)
	b.WriteString(r.Stdout)
	b.WriteString("\nERR:\n")
	b.WriteString(r.Stderr)
	return b.String()
}

// Failed builds a runner-failure result with the given reason.
func Failed(reason string) Result {
	return Result{RC: -1, Stderr: reason}
}
