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

package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jettox/diagnostics/pkg/defaults"
	"github.com/jettox/diagnostics/pkg/errors"
	"github.com/jettox/diagnostics/pkg/serializer"
	"github.com/jettox/diagnostics/pkg/summary"
)

// Store owns the artifact root: one directory per domain plus result/ and
// logs/. Writes replace whole files atomically.
type Store struct {
	root string
	lock *flock.Flock
}

// New returns a store rooted at root, resolved to an absolute path.
// An empty root means the current working directory.
func New(root string) (*Store, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid artifact root", err)
	}
	return &Store{
		root: abs,
		lock: flock.New(filepath.Join(abs, defaults.LockFile)),
	}, nil
}

// Root returns the absolute artifact root.
func (s *Store) Root() string {
	return s.root
}

// Path joins elem onto the artifact root.
func (s *Store) Path(elem ...string) string {
	return filepath.Join(append([]string{s.root}, elem...)...)
}

// ResultDir returns the directory holding the aggregate report.
func (s *Store) ResultDir() string {
	return s.Path(defaults.ResultDir)
}

// LogsDir returns the directory holding run logs.
func (s *Store) LogsDir() string {
	return s.Path(defaults.LogsDir)
}

// EnsureLayout creates the root, one directory per domain, result/ and logs/.
// It is idempotent.
func (s *Store) EnsureLayout(domains ...string) error {
	dirs := make([]string, 0, len(domains)+3)
	dirs = append(dirs, s.root)
	for _, d := range domains {
		dirs = append(dirs, s.Path(d))
	}
	dirs = append(dirs, s.ResultDir(), s.LogsDir())

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return errors.WrapWithContext(errors.ErrCodeIO, "failed to create artifact directory", err,
				map[string]any{"path": d})
		}
	}
	return nil
}

// Lock takes the run lock on the root, polling until ctx is done or
// defaults.LockTimeout elapses.
func (s *Store) Lock(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaults.LockTimeout)
	defer cancel()

	ok, err := s.lock.TryLockContext(ctx, defaults.LockRetryInterval)
	if err != nil && ctx.Err() == nil {
		return errors.Wrap(errors.ErrCodeIO, "failed to acquire run lock", err)
	}
	if !ok {
		return errors.NewWithContext(errors.ErrCodeUnavailable,
			"another run is writing to this artifact root",
			map[string]any{"lock": s.lock.Path()})
	}
	return nil
}

// Unlock releases the run lock.
func (s *Store) Unlock() error {
	if err := s.lock.Unlock(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, "failed to release run lock", err)
	}
	return nil
}

// WriteDomain writes <domain>/summary.json and <domain>/raw.txt.
func (s *Store) WriteDomain(domain string, sum summary.Summary, raw []byte) error {
	b, err := serializer.Marshal(serializer.FormatJSON, sum)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to encode summary", err)
	}
	if err := s.write(s.Path(domain, defaults.SummaryFile), b); err != nil {
		return err
	}
	return s.write(s.Path(domain, defaults.RawFile), raw)
}

// WriteAggregate writes result/results_of_all_files.json, overwriting any
// previous report, and returns its path.
func (s *Store) WriteAggregate(v any) (string, error) {
	b, err := serializer.Marshal(serializer.FormatJSON, v)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to encode aggregate report", err)
	}
	path := filepath.Join(s.ResultDir(), defaults.AggregateFile)
	return path, s.write(path, b)
}

// WriteRunLog writes the run log to logs/run_<start>.txt.
func (s *Store) WriteRunLog(start time.Time, text string) (string, error) {
	path := filepath.Join(s.LogsDir(), start.Format(defaults.LogFileLayout))
	return path, s.write(path, []byte(text))
}

// WriteMetrics writes the gathered metrics in Prometheus text format to
// result/metrics.prom.
func (s *Store) WriteMetrics(g prometheus.Gatherer) (string, error) {
	path := filepath.Join(s.ResultDir(), defaults.MetricsFile)
	if err := os.MkdirAll(s.ResultDir(), 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeIO, "failed to create result directory", err)
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeIO, "failed to write metrics", err,
			map[string]any{"path": path})
	}
	return path, nil
}

// RemoveSideFile deletes a command side file so a stale report is never
// mistaken for fresh output.
func (s *Store) RemoveSideFile(name string) error {
	err := os.Remove(s.Path(name))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeIO, "failed to remove side file", err)
	}
	return nil
}

// ReadSideFile returns the contents of a command side file and whether it
// exists. Unreadable files yield a placeholder body.
func (s *Store) ReadSideFile(name string) (string, bool) {
	path := s.Path(name)
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		return strings.ToValidUTF8(string(b), "\uFFFD"), true
	case os.IsNotExist(err):
		return "", false
	default:
		return fmt.Sprintf("<error reading %s>", path), true
	}
}

func (s *Store) write(path string, data []byte) error {
	if err := AtomicWrite(path, data); err != nil {
		return errors.WrapWithContext(errors.ErrCodeIO, "failed to write artifact", err,
			map[string]any{"path": path})
	}
	return nil
}
