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
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/time/rate"

	"github.com/jettox/diagnostics/pkg/defaults"
)

// Runner executes catalogue commands. Implementations never return an
// error: every failure is folded into the Result.
type Runner interface {
	// Run executes spec and blocks until it completes or times out.
	Run(ctx context.Context, spec Spec) Result
	// LookPath reports whether an executable is available on PATH.
	LookPath(name string) bool
}

// Option configures a ShellRunner.
type Option func(*ShellRunner)

// WithLogger sets the logger used for per-command log lines.
func WithLogger(l *slog.Logger) Option {
	return func(r *ShellRunner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRateLimit enforces a minimum interval between command launches.
// Zero or negative means unlimited.
func WithRateLimit(every time.Duration) Option {
	return func(r *ShellRunner) {
		if every > 0 {
			r.limiter = rate.NewLimiter(rate.Every(every), 1)
		}
	}
}

// WithFallbackEncoding overrides the code page used for output that is not
// valid UTF-8.
func WithFallbackEncoding(enc encoding.Encoding) Option {
	return func(r *ShellRunner) {
		r.decoder = NewDecoder(enc)
	}
}

// WithWaitDelay bounds how long Run waits for output pipes after the
// process has been killed.
func WithWaitDelay(d time.Duration) Option {
	return func(r *ShellRunner) {
		r.waitDelay = d
	}
}

// ShellRunner runs command lines through the host shell.
type ShellRunner struct {
	logger    *slog.Logger
	limiter   *rate.Limiter
	decoder   *Decoder
	waitDelay time.Duration
}

// NewShellRunner creates a runner with the given options.
func NewShellRunner(opts ...Option) *ShellRunner {
	r := &ShellRunner{
		logger:    slog.Default(),
		decoder:   PlatformDecoder(),
		waitDelay: defaults.CommandWaitDelay,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs a literal command line with the given timeout.
func (r *ShellRunner) Execute(ctx context.Context, line string, timeout time.Duration) Result {
	return r.Run(ctx, Spec{Name: line, Line: line, Timeout: timeout})
}

// Run executes spec.Line through the shell. Output captured before a
// timeout is kept. A non-zero exit is a normal completion carrying its code.
func (r *ShellRunner) Run(ctx context.Context, spec Spec) Result {
	timeout := spec.Timeout
	if timeout <= 0 {
		timeout = defaults.CommandTimeout
	}

	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			res := Failed(fmt.Sprintf("CANCELED: %s: %v", spec.Line, err))
			r.logger.Error("command not started", "name", spec.Name, "error", err)
			observe(spec.Name, res)
			return res
		}
	}

	r.logger.Info("running command", "name", spec.Name, "command", spec.Line, "timeout", timeout)

	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := shellCommand(cctx, spec.Line)
	cmd.WaitDelay = r.waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	res := Result{
		Stdout:   r.decoder.Decode(stdout.Bytes()),
		Stderr:   r.decoder.Decode(stderr.Bytes()),
		Duration: time.Since(start),
	}

	res = r.classify(ctx, cctx, spec, timeout, err, res)

	r.logger.Debug("command finished", "name", spec.Name, "rc", res.RC, "elapsed", res.Duration)
	observe(spec.Name, res)
	return res
}

// classify sets RC and the failure reason from the outcome of cmd.Run.
// A clean exit wins over a parent cancellation that arrived after it.
func (r *ShellRunner) classify(ctx, cctx context.Context, spec Spec, timeout time.Duration, err error, res Result) Result {
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.RC = 0
	case ctx.Err() != nil:
		res.RC = -1
		res.Stderr = fmt.Sprintf("CANCELED: %s: %v", spec.Line, ctx.Err())
		r.logger.Warn("command canceled", "name", spec.Name, "elapsed", res.Duration)
	case errors.Is(cctx.Err(), context.DeadlineExceeded):
		res.RC = -1
		res.TimedOut = true
		res.Stderr = fmt.Sprintf("TIMEOUT: %s exceeded %s", spec.Line, timeout)
		r.logger.Warn("command timed out", "name", spec.Name, "command", spec.Line, "timeout", timeout)
	case errors.As(err, &exitErr):
		res.RC = exitErr.ExitCode()
		if res.RC == -1 {
			// killed by a signal we did not send
			res.Stderr = fmt.Sprintf("%sterminated: %v", res.Stderr, err)
		}
	default:
		d := res.Duration
		res = Failed(err.Error())
		res.Duration = d
		r.logger.Error("command failed to start", "name", spec.Name, "command", spec.Line, "error", err)
	}
	return res
}

// LookPath reports whether name resolves to an executable on PATH.
func (r *ShellRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
