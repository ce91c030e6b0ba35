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

package hardware

import (
	"context"

	"github.com/jettox/diagnostics/pkg/collector/session"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/parser"
	"github.com/jettox/diagnostics/pkg/summary"
)

// Summary keys. The attribute dumps are stored under their command names
// (cpu, bios, baseboard, video).
const (
	KeyVideoRawLength  = "video_raw_length"
	KeyLogicalCPUs     = "logical_cpus"
	KeyPhysicalCPUs    = "physical_cpus"
	KeyCPUFreq         = "cpu_freq_mhz"
	KeyMemoryTotal     = "memory_total_bytes"
	KeyMemoryAvailable = "memory_available_bytes"

	// KeyHostMetrics prefixes the error field of the host metrics step.
	KeyHostMetrics = "psutil"

	// HostMetricsMissing is the raw block header written when no host
	// metrics provider is configured.
	HostMetricsMissing = session.HostMetricsMissing
)

var attributeCommands = []string{
	command.NameCPU,
	command.NameBIOS,
	command.NameBaseboard,
	command.NameVideo,
}

// Collector gathers processor, BIOS, baseboard and video controller
// attributes plus live CPU and memory figures.
type Collector struct {
	session.Deps
}

// Collect runs the attribute dumps in order, then reads host metrics.
func (c *Collector) Collect(ctx context.Context) (summary.Summary, error) {
	s := session.Begin(command.DomainHardware, c.Deps)

	var video command.Result
	for _, name := range attributeCommands {
		spec, res := s.Run(ctx, name)
		s.Summary.Set(name, summary.Map(parser.ParseKV(res.Stdout, spec.KVOptions()...)))
		if name == command.NameVideo {
			video = res
		}
	}
	s.Summary.Set(KeyVideoRawLength, summary.Int(parser.Length(video.Stdout)))

	hm := s.Metrics()
	if hm == nil {
		s.AddBlock(HostMetricsMissing, "")
		return s.Finish(ctx)
	}

	s.Step(KeyHostMetrics, func() error {
		cpu, err := hm.CPU(ctx)
		if err != nil {
			return err
		}
		s.Summary.Set(KeyLogicalCPUs, summary.Int(cpu.LogicalCPUs))
		s.Summary.Set(KeyPhysicalCPUs, summary.Int(cpu.PhysicalCPUs))
		if cpu.Freq.Current > 0 || cpu.Freq.Max > 0 {
			s.Summary.Set(KeyCPUFreq, summary.Fields{
				"current": summary.Float64(cpu.Freq.Current),
				"min":     summary.Float64(cpu.Freq.Min),
				"max":     summary.Float64(cpu.Freq.Max),
			})
		}

		mem, err := hm.Memory(ctx)
		if err != nil {
			return err
		}
		s.Summary.Set(KeyMemoryTotal, summary.Uint64(mem.Total))
		s.Summary.Set(KeyMemoryAvailable, summary.Uint64(mem.Available))
		return nil
	})

	return s.Finish(ctx)
}
