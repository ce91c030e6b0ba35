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

package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jettox/diagnostics/pkg/artifact"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/errors"
	"github.com/jettox/diagnostics/pkg/hostmetrics"
	"github.com/jettox/diagnostics/pkg/summary"
)

// RawHeader is the first line of every raw transcript.
const RawHeader = "==== RAW OUTPUT ===="

// HostMetricsMissing is the raw block header written by domains that read
// host metrics when no provider is configured.
const HostMetricsMissing = "host metrics not available"

// RawBlock is one section of a domain's raw transcript.
type RawBlock struct {
	Header string
	Body   string
}

// String renders the block as "### <header>" followed by its body.
func (b RawBlock) String() string {
	return "### " + b.Header + "\n" + b.Body
}

// RenderRaw renders blocks into raw.txt content: the banner line, then each
// block terminated by a newline (added if missing) and a "----" separator.
func RenderRaw(blocks []RawBlock) []byte {
	var sb strings.Builder
	sb.WriteString(RawHeader)
	sb.WriteByte('\n')
	for _, b := range blocks {
		s := b.String()
		sb.WriteString(s)
		if !strings.HasSuffix(s, "\n") {
			sb.WriteByte('\n')
		}
		sb.WriteString("\n----\n\n")
	}
	return []byte(sb.String())
}

// Deps are the collaborators shared by all domain collectors.
type Deps struct {
	// Runner executes catalogue commands. Required.
	Runner command.Runner
	// Catalog resolves logical command names. Defaults to the host catalogue.
	Catalog *command.Catalog
	// Store persists summary.json and raw.txt. Nil skips persistence.
	Store *artifact.Store
	// Logger receives progress lines. Defaults to slog.Default().
	Logger *slog.Logger
	// Metrics reads live host metrics. Nil means not available.
	Metrics hostmetrics.Provider
	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Session is the working state of one domain collection: the ordered raw
// transcript and the summary being built.
type Session struct {
	Domain  string
	Summary summary.Summary

	deps   Deps
	start  time.Time
	blocks []RawBlock
	log    *slog.Logger
}

// Begin starts a domain collection, seeding the summary with collected_at.
func Begin(domain string, deps Deps) *Session {
	if deps.Catalog == nil {
		deps.Catalog = command.DefaultCatalog()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	start := deps.Now()
	s := &Session{
		Domain:  domain,
		Summary: summary.New(start),
		deps:    deps,
		start:   start,
		log:     deps.Logger.With("domain", domain),
	}
	s.log.Info("collecting domain")
	return s
}

// Logger returns the domain-scoped logger.
func (s *Session) Logger() *slog.Logger {
	return s.log
}

// Metrics returns the host metrics provider, or nil.
func (s *Session) Metrics() hostmetrics.Provider {
	return s.deps.Metrics
}

// Store returns the artifact store, or nil.
func (s *Session) Store() *artifact.Store {
	return s.deps.Store
}

// Lookup resolves a logical command name within the session's domain.
func (s *Session) Lookup(name string) (command.Spec, bool) {
	return s.deps.Catalog.Lookup(s.Domain, name)
}

// LookPath reports whether a tool is installed.
func (s *Session) LookPath(tool string) bool {
	return s.deps.Runner.LookPath(tool)
}

// Exec runs spec without recording a raw block.
func (s *Session) Exec(ctx context.Context, spec command.Spec) command.Result {
	return s.deps.Runner.Run(ctx, spec)
}

// Run executes the named catalogue command and records its raw block,
// whatever the exit code. A name missing from the catalogue yields a
// runner-failure result.
func (s *Session) Run(ctx context.Context, name string) (command.Spec, command.Result) {
	spec, ok := s.Lookup(name)
	if !ok {
		res := command.Failed(fmt.Sprintf("command %q not in %s catalogue", name, s.Domain))
		s.log.Error("unknown command", "name", name)
		s.AddBlock(name, res.Transcript())
		return command.Spec{Domain: s.Domain, Name: name}, res
	}
	res := s.Exec(ctx, spec)
	s.AddBlock(name, res.Transcript())
	return spec, res
}

// AddBlock appends a raw block.
func (s *Session) AddBlock(header, body string) {
	s.blocks = append(s.blocks, RawBlock{Header: header, Body: body})
}

// Blocks returns a copy of the raw blocks recorded so far.
func (s *Session) Blocks() []RawBlock {
	return append([]RawBlock(nil), s.blocks...)
}

// Step runs one optional extraction. A returned error or a panic is
// recorded as the "<key>_error" field; the collection continues either way.
func (s *Session) Step(key string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			err := errors.NewWithContext(errors.ErrCodeInternal, fmt.Sprintf("panic: %v", r),
				map[string]any{"step": key})
			s.Summary.SetError(key, err)
			s.log.Error("step panicked", "step", key, "panic", r)
		}
	}()

	if err := fn(); err != nil {
		s.Summary.SetError(key, err)
		s.log.Warn("step failed", "step", key, "error", err)
	}
}

// Finish stamps elapsed_seconds, persists the domain artifacts and returns
// the summary. A persistence failure is logged and does not fail the
// domain; the only error returned is cancellation of ctx.
func (s *Session) Finish(ctx context.Context) (summary.Summary, error) {
	elapsed := s.deps.Now().Sub(s.start)
	s.Summary.SetElapsed(elapsed)

	if s.deps.Store != nil {
		if err := s.deps.Store.WriteDomain(s.Domain, s.Summary, RenderRaw(s.blocks)); err != nil {
			s.log.Error("failed to persist domain artifacts", "error", err)
		}
	}

	if err := ctx.Err(); err != nil {
		s.log.Warn("domain interrupted", "elapsed", fmt.Sprintf("%.2fs", elapsed.Seconds()))
		return s.Summary, errors.Wrap(errors.ErrCodeCanceled, s.Domain+" collection interrupted", err)
	}

	s.log.Info("domain done", "elapsed", fmt.Sprintf("%.2fs", elapsed.Seconds()))
	return s.Summary, nil
}
