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
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jettox/diagnostics/pkg/errors"
	"github.com/jettox/diagnostics/pkg/summary"
)

func TestStore_EnsureLayout(t *testing.T) {
	root := filepath.Join(t.TempDir(), "out")
	s, err := New(root)
	require.NoError(t, err)

	require.NoError(t, s.EnsureLayout("system", "storage"))
	require.NoError(t, s.EnsureLayout("system", "storage"), "idempotent")

	for _, d := range []string{"system", "storage", "result", "logs"} {
		fi, err := os.Stat(filepath.Join(root, d))
		require.NoError(t, err, d)
		assert.True(t, fi.IsDir(), d)
	}
}

func TestStore_EnsureLayout_Fails(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s, err := New(blocker)
	require.NoError(t, err)

	err = s.EnsureLayout("system")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeIO))
}

func TestStore_WriteDomain(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	sum := summary.New(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	sum.Set("bios", summary.Map{"Vendor": "A&B <x>"})
	raw := []byte("==== RAW OUTPUT ====\n")

	require.NoError(t, s.WriteDomain("firmware", sum, raw))

	b, err := os.ReadFile(s.Path("firmware", "summary.json"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"Vendor": "A&B <x>"`)
	assert.Contains(t, string(b), `"collected_at": "2025-01-02T03:04:05Z"`)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))

	got, err := os.ReadFile(s.Path("firmware", "raw.txt"))
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestStore_WriteAggregate_Overwrites(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.WriteAggregate(map[string]int{"first": 1})
	require.NoError(t, err)
	path, err := s.WriteAggregate(map[string]int{"second": 2})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(s.Root(), "result", "results_of_all_files.json"), path)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "first")
	assert.Contains(t, string(b), "second")
}

func TestStore_WriteRunLog(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	start := time.Date(2025, 3, 4, 5, 6, 7, 0, time.Local)
	path, err := s.WriteRunLog(start, "[INFO] a\n[WARN] b")
	require.NoError(t, err)

	assert.Equal(t, "run_2025-03-04_050607.txt", filepath.Base(path))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[INFO] a\n[WARN] b", string(b))
}

func TestStore_WriteMetrics(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "jettox_test_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	path, err := s.WriteMetrics(reg)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "jettox_test_total 1")
}

func TestStore_SideFile(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, ok := s.ReadSideFile("dx.txt")
	assert.False(t, ok)
	require.NoError(t, s.RemoveSideFile("dx.txt"), "missing file is not an error")

	require.NoError(t, os.WriteFile(s.Path("dx.txt"), []byte("DirectX\xff report"), 0o644))
	body, ok := s.ReadSideFile("dx.txt")
	assert.True(t, ok)
	assert.Equal(t, "DirectX� report", body)

	require.NoError(t, s.RemoveSideFile("dx.txt"))
	_, ok = s.ReadSideFile("dx.txt")
	assert.False(t, ok)
}

func TestStore_Lock(t *testing.T) {
	root := t.TempDir()
	a, err := New(root)
	require.NoError(t, err)
	b, err := New(root)
	require.NoError(t, err)

	require.NoError(t, a.Lock(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	err = b.Lock(ctx)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeUnavailable))

	require.NoError(t, a.Unlock())
	require.NoError(t, b.Lock(context.Background()))
	require.NoError(t, b.Unlock())
}

func TestAtomicWrite_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.json")

	require.NoError(t, AtomicWrite(path, []byte("{}")))
	require.NoError(t, AtomicWrite(path, []byte(`{"a":1}`)))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), ".tmp-"))
}
