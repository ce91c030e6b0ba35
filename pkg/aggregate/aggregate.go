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

package aggregate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jettox/diagnostics/pkg/artifact"
	"github.com/jettox/diagnostics/pkg/defaults"
	"github.com/jettox/diagnostics/pkg/errors"
	"github.com/jettox/diagnostics/pkg/header"
	"github.com/jettox/diagnostics/pkg/summary"
)

// Report keys written next to the domain entries.
const (
	KeyCollectedAt  = "collected_at"
	KeyLocalStart   = "local_start"
	KeyAdmin        = "admin"
	KeyRunID        = "run_id"
	KeyTotalElapsed = "total_elapsed_seconds"
)

// LocalStartLayout renders the run start in local time with its offset.
const LocalStartLayout = "2006-01-02T15:04:05.000000-07:00"

// Meta describes the run a report belongs to.
type Meta struct {
	// Start is when the run began.
	Start time.Time
	// Admin is the result of the privilege probe.
	Admin bool
	// Version is the tool version stamped in the header.
	Version string
	// Hostname and Platform are optional header metadata.
	Hostname string
	Platform string
	// RunID identifies the run. Empty generates a random UUID.
	RunID string
	// Logger receives persistence lines. Defaults to slog.Default().
	Logger *slog.Logger
}

// Entry is one domain's contribution to the report.
type Entry struct {
	Name    string
	Summary summary.Summary
	// Err is set when the domain produced a placeholder instead of a summary.
	Err error
}

// Aggregator merges domain summaries into one report. It is safe for
// concurrent use.
type Aggregator struct {
	mu      sync.Mutex
	meta    Meta
	header  header.Header
	entries []Entry
	index   map[string]int
	log     *slog.Logger
}

// New creates an aggregator for one run.
func New(meta Meta) *Aggregator {
	if meta.RunID == "" {
		meta.RunID = uuid.NewString()
	}
	if meta.Start.IsZero() {
		meta.Start = time.Now()
	}

	if meta.Logger == nil {
		meta.Logger = slog.Default()
	}

	a := &Aggregator{
		meta:  meta,
		index: make(map[string]int),
		log:   meta.Logger,
	}
	a.header.Init(header.KindReport, meta.Version,
		header.WithMetadata(header.MetaHostname, meta.Hostname),
		header.WithMetadata(header.MetaPlatform, meta.Platform),
	)
	a.header.Metadata[header.MetaTimestamp] = meta.Start.UTC().Format(time.RFC3339)
	return a
}

// Add records a domain result. When err is non-nil and sum is nil the
// domain is recorded as the {"error": msg} placeholder; a non-nil sum is
// kept even alongside an error (an interrupted domain still has fields).
// Adding the same name twice replaces the earlier entry in place.
func (a *Aggregator) Add(name string, sum summary.Summary, err error) {
	if sum == nil {
		sum = summary.Placeholder(err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	e := Entry{Name: name, Summary: sum, Err: err}
	if i, ok := a.index[name]; ok {
		a.entries[i] = e
		return
	}
	a.index[name] = len(a.entries)
	a.entries = append(a.entries, e)
}

// Report returns a snapshot of the aggregate with total_elapsed_seconds
// recomputed from the domain entries.
func (a *Aggregator) Report() *Report {
	a.mu.Lock()
	defer a.mu.Unlock()

	r := &Report{
		Header:      a.header,
		RunID:       a.meta.RunID,
		CollectedAt: a.meta.Start.UTC().Format(defaults.TimestampLayout),
		LocalStart:  a.meta.Start.Local().Format(LocalStartLayout),
		Admin:       a.meta.Admin,
		Domains:     append([]Entry(nil), a.entries...),
	}
	r.TotalElapsed = TotalElapsed(r.Domains)
	return r
}

// Persist writes the report to result/results_of_all_files.json and
// returns the report and the written path. The report is written even when
// ctx is canceled so an interrupted run still leaves its placeholders.
func (a *Aggregator) Persist(ctx context.Context, store *artifact.Store) (*Report, string, error) {
	r := a.Report()
	if store == nil {
		return r, "", errors.New(errors.ErrCodeInvalidRequest, "artifact store is required")
	}
	path, err := store.WriteAggregate(r)
	if err != nil {
		a.log.ErrorContext(ctx, "failed to write aggregate report", "error", err)
		return r, "", err
	}
	a.log.InfoContext(ctx, "aggregate report written", "path", path,
		"domains", len(r.Domains), "total_elapsed", fmt.Sprintf("%.2fs", r.TotalElapsed))
	return r, path, nil
}

// TotalElapsed sums elapsed_seconds over entries. A missing or non-numeric
// value, and any placeholder, counts as 0.
func TotalElapsed(entries []Entry) float64 {
	var total float64
	for _, e := range entries {
		if v, ok := e.Summary.Elapsed(); ok {
			total += v
		}
	}
	return total
}

// Report is the merged result of one run.
type Report struct {
	Header       header.Header
	RunID        string
	CollectedAt  string
	LocalStart   string
	Admin        bool
	Domains      []Entry
	TotalElapsed float64
}

// Domain returns the summary recorded for name, or nil.
func (r *Report) Domain(name string) summary.Summary {
	for _, e := range r.Domains {
		if e.Name == name {
			return e.Summary
		}
	}
	return nil
}

// Failed returns the names of domains recorded as error placeholders.
func (r *Report) Failed() []string {
	var out []string
	for _, e := range r.Domains {
		if e.Summary.Has(summary.KeyError) && !e.Summary.Has(summary.KeyCollectedAt) {
			out = append(out, e.Name)
		}
	}
	return out
}

type field struct {
	key   string
	value any
}

// fields lists the report members in output order: header, run identity,
// domains in the order they were added, then the total.
func (r *Report) fields() []field {
	out := []field{
		{"kind", r.Header.Kind},
		{"apiVersion", r.Header.APIVersion},
		{"metadata", r.Header.Metadata},
		{KeyRunID, r.RunID},
		{KeyCollectedAt, r.CollectedAt},
		{KeyLocalStart, r.LocalStart},
		{KeyAdmin, r.Admin},
	}
	for _, e := range r.Domains {
		out = append(out, field{e.Name, e.Summary})
	}
	return append(out, field{KeyTotalElapsed, r.TotalElapsed})
}

// MarshalJSON renders the report as a single object with a stable key order.
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields() {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalJSON(f.key)
		if err != nil {
			return nil, err
		}
		v, err := marshalJSON(f.value)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to encode report field", err,
				map[string]any{"field": f.key})
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalYAML renders the report as a mapping with the same key order as JSON.
func (r *Report) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range r.fields() {
		var v yaml.Node
		if err := v.Encode(f.value); err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to encode report field", err,
				map[string]any{"field": f.key})
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.key},
			&v,
		)
	}
	return node, nil
}
