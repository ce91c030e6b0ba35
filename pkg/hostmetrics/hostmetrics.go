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

package hostmetrics

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/jettox/diagnostics/pkg/errors"
)

// CPU describes processor counts and clock frequencies.
type CPU struct {
	LogicalCPUs  int
	PhysicalCPUs int
	Freq         Frequency
}

// Frequency holds clock speeds in MHz. Zero means unknown.
type Frequency struct {
	Current float64
	Min     float64
	Max     float64
}

// Memory describes physical memory in bytes.
type Memory struct {
	Total     uint64
	Available uint64
}

// Partition is one mounted filesystem with its usage.
type Partition struct {
	Device     string
	Mountpoint string
	Fstype     string
	Total      uint64
	Used       uint64
	Free       uint64
	Percent    float64
}

// Provider reads live host metrics.
type Provider interface {
	CPU(ctx context.Context) (CPU, error)
	Memory(ctx context.Context) (Memory, error)
	Partitions(ctx context.Context) ([]Partition, error)
}

// DefaultCPUFreqRoot is the Linux sysfs directory holding per-CPU cpufreq data.
const DefaultCPUFreqRoot = "/sys/devices/system/cpu"

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger that receives skipped-partition lines.
func WithLogger(l *slog.Logger) Option {
	return func(h *Host) {
		if l != nil {
			h.log = l
		}
	}
}

// WithCPUFreqRoot overrides the cpufreq sysfs directory.
func WithCPUFreqRoot(dir string) Option {
	return func(h *Host) {
		h.freqRoot = dir
	}
}

// Host is the Provider backed by gopsutil.
type Host struct {
	log      *slog.Logger
	freqRoot string

	partitions func(ctx context.Context, all bool) ([]disk.PartitionStat, error)
	usage      func(ctx context.Context, path string) (*disk.UsageStat, error)
}

// New returns the gopsutil-backed provider.
func New(opts ...Option) *Host {
	h := &Host{
		log:        slog.Default(),
		freqRoot:   DefaultCPUFreqRoot,
		partitions: disk.PartitionsWithContext,
		usage:      disk.UsageWithContext,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// CPU returns logical and physical core counts and clock speeds.
//
// gopsutil reports one nominal MHz value per processor, so on most hosts
// current, min and max derived from it are identical. Where the cpufreq
// sysfs files of cpu0 exist (scaling_cur_freq, cpuinfo_min_freq,
// cpuinfo_max_freq) they replace the nominal values.
func (h *Host) CPU(ctx context.Context) (CPU, error) {
	var out CPU

	logical, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return out, errors.Wrap(errors.ErrCodeUnavailable, "failed to count logical cpus", err)
	}
	physical, err := cpu.CountsWithContext(ctx, false)
	if err != nil {
		return out, errors.Wrap(errors.ErrCodeUnavailable, "failed to count physical cpus", err)
	}
	out.LogicalCPUs = logical
	out.PhysicalCPUs = physical

	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return out, errors.Wrap(errors.ErrCodeUnavailable, "failed to read cpu info", err)
	}
	out.Freq = frequency(infos)
	if f, ok := readCPUFreq(h.freqRoot); ok {
		out.Freq = mergeFrequency(out.Freq, f)
	}
	return out, nil
}

// readCPUFreq reads cpu0's cpufreq values in MHz. ok is false when none of
// the files could be read.
func readCPUFreq(root string) (Frequency, bool) {
	var f Frequency
	if root == "" {
		return f, false
	}
	dir := filepath.Join(root, "cpu0", "cpufreq")
	read := func(name string) float64 {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return 0
		}
		khz, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
		if err != nil || khz < 0 {
			return 0
		}
		return khz / 1000
	}
	f.Current = read("scaling_cur_freq")
	f.Min = read("cpuinfo_min_freq")
	f.Max = read("cpuinfo_max_freq")
	return f, f.Current > 0 || f.Min > 0 || f.Max > 0
}

// mergeFrequency prefers each non-zero value of override.
func mergeFrequency(base, override Frequency) Frequency {
	if override.Current > 0 {
		base.Current = override.Current
	}
	if override.Min > 0 {
		base.Min = override.Min
	}
	if override.Max > 0 {
		base.Max = override.Max
	}
	return base
}

func frequency(infos []cpu.InfoStat) Frequency {
	var f Frequency
	for i, info := range infos {
		if i == 0 {
			f.Current = info.Mhz
			f.Min = info.Mhz
			f.Max = info.Mhz
			continue
		}
		f.Min = min(f.Min, info.Mhz)
		f.Max = max(f.Max, info.Mhz)
	}
	return f
}

// Memory returns total and available physical memory.
func (h *Host) Memory(ctx context.Context) (Memory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Memory{}, errors.Wrap(errors.ErrCodeUnavailable, "failed to read memory", err)
	}
	return Memory{Total: vm.Total, Available: vm.Available}, nil
}

// Partitions returns mounted physical filesystems with usage. Mountpoints
// whose usage cannot be read (empty optical drives, revoked mounts) are
// skipped.
func (h *Host) Partitions(ctx context.Context) ([]Partition, error) {
	parts, err := h.partitions(ctx, false)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to list partitions", err)
	}

	out := make([]Partition, 0, len(parts))
	for _, p := range parts {
		u, err := h.usage(ctx, p.Mountpoint)
		if err != nil {
			h.log.Info("skipping partition without usage", "mountpoint", p.Mountpoint, "error", err)
			continue
		}
		out = append(out, Partition{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			Fstype:     p.Fstype,
			Total:      u.Total,
			Used:       u.Used,
			Free:       u.Free,
			Percent:    u.UsedPercent,
		})
	}
	return out, nil
}
