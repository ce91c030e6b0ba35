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
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jettox/diagnostics/pkg/artifact"
	"github.com/jettox/diagnostics/pkg/collector/session"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/command/commandtest"
	"github.com/jettox/diagnostics/pkg/errors"
	"github.com/jettox/diagnostics/pkg/hostmetrics"
	"github.com/jettox/diagnostics/pkg/hostmetrics/hostmetricstest"
	"github.com/jettox/diagnostics/pkg/summary"
)

const (
	cpuOut   = "\r\n\r\nName=Intel(R) Core(TM) i7\r\nNumberOfCores=8\r\nNumberOfLogicalProcessors=16\r\n\r\n"
	biosOut  = "Manufacturer=Dell Inc.\r\nSMBIOSBIOSVersion=1.2.3\r\n"
	boardOut = "Product=0ABC\r\n"
	videoOut = "Name=NVIDIA RTX\r\nDriverVersion=31.0\r\n"
)

func scriptedRunner() *commandtest.Runner {
	return commandtest.New().
		On(command.NameCPU, cpuOut, 0).
		On(command.NameBIOS, biosOut, 0).
		On(command.NameBaseboard, boardOut, 0).
		On(command.NameVideo, videoOut, 0)
}

func metrics() *hostmetricstest.Static {
	return &hostmetricstest.Static{
		CPUInfo: hostmetrics.CPU{
			LogicalCPUs:  16,
			PhysicalCPUs: 8,
			Freq:         hostmetrics.Frequency{Current: 2400, Min: 800, Max: 4800},
		},
		MemoryInfo: hostmetrics.Memory{Total: 32 << 30, Available: 20 << 30},
	}
}

func TestCollector_Collect(t *testing.T) {
	c := &Collector{Deps: session.Deps{
		Runner:  scriptedRunner(),
		Catalog: command.Windows(),
		Metrics: metrics(),
	}}

	sum, err := c.Collect(context.Background())
	require.NoError(t, err)
	require.NoError(t, sum.Validate())

	cpu := sum.Get("cpu").(summary.Map)
	assert.Equal(t, "Intel(R) Core(TM) i7", cpu["Name"])
	assert.Len(t, cpu, 3)
	assert.Equal(t, "Dell Inc.", sum.Get("bios").(summary.Map)["Manufacturer"])
	assert.Equal(t, "0ABC", sum.Get("baseboard").(summary.Map)["Product"])
	assert.Equal(t, "31.0", sum.Get("video").(summary.Map)["DriverVersion"])
	assert.Equal(t, len(videoOut), sum.Get(KeyVideoRawLength).Any())

	assert.Equal(t, 16, sum.Get(KeyLogicalCPUs).Any())
	assert.Equal(t, 8, sum.Get(KeyPhysicalCPUs).Any())
	freq := sum.Get(KeyCPUFreq).(summary.Fields)
	assert.Equal(t, 4800.0, freq["max"].Any())
	assert.Equal(t, uint64(32<<30), sum.Get(KeyMemoryTotal).Any())
	assert.Equal(t, uint64(20<<30), sum.Get(KeyMemoryAvailable).Any())
	assert.False(t, sum.Has(KeyHostMetrics+summary.ErrorSuffix))
}

func TestCollector_NoHostMetrics(t *testing.T) {
	store, err := artifact.New(t.TempDir())
	require.NoError(t, err)

	c := &Collector{Deps: session.Deps{
		Runner:  scriptedRunner(),
		Catalog: command.Windows(),
		Store:   store,
	}}

	sum, err := c.Collect(context.Background())
	require.NoError(t, err)
	assert.False(t, sum.Has(KeyLogicalCPUs))
	assert.False(t, sum.Has(KeyHostMetrics+summary.ErrorSuffix))

	raw, err := os.ReadFile(store.Path("hardware", "raw.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(raw), "### host metrics not available\n\n----\n\n"))
}

func TestCollector_HostMetricsErrors(t *testing.T) {
	tests := []struct {
		name    string
		metrics *hostmetricstest.Static
		present []string
	}{
		{
			name:    "cpu error",
			metrics: &hostmetricstest.Static{CPUErr: errors.New(errors.ErrCodeUnavailable, "no cpu info")},
		},
		{
			name: "memory error keeps cpu figures",
			metrics: &hostmetricstest.Static{
				CPUInfo:   hostmetrics.CPU{LogicalCPUs: 4, PhysicalCPUs: 2},
				MemoryErr: errors.New(errors.ErrCodeUnavailable, "no memory info"),
			},
			present: []string{KeyLogicalCPUs, KeyPhysicalCPUs},
		},
		{
			name:    "panic",
			metrics: &hostmetricstest.Static{Panic: "provider exploded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Collector{Deps: session.Deps{
				Runner:  scriptedRunner(),
				Catalog: command.Windows(),
				Metrics: tt.metrics,
			}}

			sum, err := c.Collect(context.Background())
			require.NoError(t, err)
			assert.True(t, sum.Has("psutil_error"))
			assert.False(t, sum.Has(KeyMemoryTotal))
			assert.False(t, sum.Has(KeyCPUFreq), "zero frequency is not reported")
			for _, k := range tt.present {
				assert.True(t, sum.Has(k), k)
			}
		})
	}
}

func TestCollector_RunsInOrder(t *testing.T) {
	r := scriptedRunner()
	c := &Collector{Deps: session.Deps{Runner: r, Catalog: command.Unix()}}

	_, err := c.Collect(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, 4)
	for _, s := range r.Calls() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"cpu", "bios", "baseboard", "video"}, names)
}
