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

package system

import (
	"context"

	"github.com/jettox/diagnostics/pkg/collector/session"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/defaults"
	"github.com/jettox/diagnostics/pkg/parser"
	"github.com/jettox/diagnostics/pkg/summary"
)

// Summary keys.
const (
	KeySystemInfo     = "systeminfo_parsed"
	KeyProcessSample  = "process_sample"
	KeyDriversCount   = "drivers_count"
	KeyServicesLength = "services_length"
	KeySystemdUnits   = "systemd_units"
)

// Collector gathers operating system identity, running processes, recent
// event log entries, drivers and services.
type Collector struct {
	session.Deps

	// Units lists service units. Nil uses systemd over D-Bus.
	Units UnitLister
}

// Collect runs the system commands in catalogue order and summarizes them.
func (c *Collector) Collect(ctx context.Context) (summary.Summary, error) {
	s := session.Begin(command.DomainSystem, c.Deps)

	_, res := s.Run(ctx, command.NameSystemInfo)
	s.Summary.Set(KeySystemInfo, summary.Map(parser.ParseKV(res.Stdout, parser.WithKVDelimiter(":"))))

	spec, res := s.Run(ctx, command.NameTaskList)
	format := spec.Format
	if format == "" {
		format = parser.FormatCSV
	}
	rows, err := parser.ParseTable(res.Stdout, format, defaults.ProcessSampleLimit)
	if err != nil {
		s.Summary.SetParseError(KeyProcessSample, err)
		s.Logger().Warn("process listing not parsed", "error", err)
	} else {
		s.Summary.Set(KeyProcessSample, summary.RecordsFromRows(rows))
	}

	s.Run(ctx, command.NameEventSystem)
	s.Run(ctx, command.NameEventApp)

	spec, res = s.Run(ctx, command.NameDriverQuery)
	s.Summary.Set(KeyDriversCount, summary.Int(parser.CountEntries(res.Stdout, spec.Marker)))

	_, res = s.Run(ctx, command.NameServices)
	s.Summary.Set(KeyServicesLength, summary.Int(parser.Length(res.Stdout)))

	s.Step(KeySystemdUnits, func() error {
		units := c.Units
		if units == nil {
			units = SystemdUnits{}
		}
		counts, err := CountUnits(ctx, units)
		if err != nil {
			return err
		}
		s.Summary.Set(KeySystemdUnits, counts)
		return nil
	})

	return s.Finish(ctx)
}
