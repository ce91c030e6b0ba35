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

package runlog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Line is one recorded log entry.
type Line struct {
	Level   slog.Level
	Time    time.Time
	Message string
	Attrs   []slog.Attr
}

// String renders the line as "[LEVEL] <UTC timestamp> <message> [key=value ...]".
func (l Line) String() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(l.Level.String())
	b.WriteString("] ")
	b.WriteString(l.Time.UTC().Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(l.Message)
	for _, a := range l.Attrs {
		writeAttr(&b, "", a)
	}
	return b.String()
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, key, ga)
		}
		return
	}
	b.WriteByte(' ')
	b.WriteString(key)
	b.WriteByte('=')
	v := a.Value.String()
	if strings.ContainsAny(v, " \t\n\"=") {
		fmt.Fprintf(b, "%q", v)
		return
	}
	b.WriteString(v)
}

// store is shared by every handler derived from one Sink.
type store struct {
	mu    sync.Mutex
	lines []Line
}

// Sink is an slog.Handler that records every log record of a run and
// forwards it to an optional downstream handler.
type Sink struct {
	store  *store
	next   slog.Handler
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// New creates a sink recording records at or above level. When next is not
// nil, records are forwarded to it as well.
func New(next slog.Handler, level slog.Leveler) *Sink {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Sink{store: &store{}, next: next, level: level}
}

// Logger returns a logger writing through the sink.
func (s *Sink) Logger() *slog.Logger {
	return slog.New(s)
}

// Enabled implements slog.Handler.
func (s *Sink) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= s.level.Level() {
		return true
	}
	return s.next != nil && s.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (s *Sink) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= s.level.Level() {
		line := Line{
			Level:   r.Level,
			Time:    r.Time,
			Message: r.Message,
		}
		if line.Time.IsZero() {
			line.Time = time.Now()
		}
		line.Attrs = append(line.Attrs, s.attrs...)
		var recAttrs []slog.Attr
		r.Attrs(func(a slog.Attr) bool {
			recAttrs = append(recAttrs, a)
			return true
		})
		line.Attrs = append(line.Attrs, nest(s.groups, recAttrs)...)

		s.store.mu.Lock()
		s.store.lines = append(s.store.lines, line)
		s.store.mu.Unlock()
	}

	if s.next != nil && s.next.Enabled(ctx, r.Level) {
		return s.next.Handle(ctx, r)
	}
	return nil
}

// nest wraps attrs in the open groups, innermost last.
func nest(groups []string, attrs []slog.Attr) []slog.Attr {
	if len(attrs) == 0 {
		return nil
	}
	for i := len(groups) - 1; i >= 0; i-- {
		attrs = []slog.Attr{{Key: groups[i], Value: slog.GroupValue(attrs...)}}
	}
	return attrs
}

// WithAttrs implements slog.Handler.
func (s *Sink) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := s.clone()
	c.attrs = append(c.attrs, nest(s.groups, attrs)...)
	if s.next != nil {
		c.next = s.next.WithAttrs(attrs)
	}
	return c
}

// WithGroup implements slog.Handler.
func (s *Sink) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	c := s.clone()
	c.groups = append(c.groups, name)
	if s.next != nil {
		c.next = s.next.WithGroup(name)
	}
	return c
}

func (s *Sink) clone() *Sink {
	return &Sink{
		store:  s.store,
		next:   s.next,
		level:  s.level,
		attrs:  append([]slog.Attr(nil), s.attrs...),
		groups: append([]string(nil), s.groups...),
	}
}

// Lines returns a snapshot of the recorded lines.
func (s *Sink) Lines() []Line {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return append([]Line(nil), s.store.lines...)
}

// Len returns the number of recorded lines.
func (s *Sink) Len() int {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	return len(s.store.lines)
}

// Text renders the recorded lines joined by newlines.
func (s *Sink) Text() string {
	lines := s.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}
