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

package firmware

import (
	"context"

	"github.com/jettox/diagnostics/pkg/collector/session"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/parser"
	"github.com/jettox/diagnostics/pkg/summary"
)

// BIOSFields are lifted from the BIOS attribute dump into the summary
// when present.
var BIOSFields = []string{
	"Manufacturer",
	"SMBIOSBIOSVersion",
	"BIOSVersion",
	"SerialNumber",
	"ReleaseDate",
	"Version",
}

// Collector gathers BIOS identity, boot configuration, power settings,
// the graphics diagnostics report and firmware-related events.
type Collector struct {
	session.Deps
}

// Collect runs the firmware commands in catalogue order.
func (c *Collector) Collect(ctx context.Context) (summary.Summary, error) {
	s := session.Begin(command.DomainFirmware, c.Deps)

	spec, bios := s.Run(ctx, command.NameBIOS)
	attrs := parser.ParseKV(bios.Stdout, spec.KVOptions()...)
	for k, v := range summary.FilterIn(attrs, BIOSFields) {
		s.Summary.Set(k, summary.Str(v))
	}

	s.Run(ctx, command.NameBootConfig)
	s.Run(ctx, command.NamePowerCfg)

	runGraphicsReport(ctx, s)

	s.Run(ctx, command.NameFirmwareEvents)

	return s.Finish(ctx)
}

// runGraphicsReport runs the graphics diagnostics command. When it writes a
// side file, a stale copy is removed first and the fresh file's contents
// replace stdout in the raw transcript.
func runGraphicsReport(ctx context.Context, s *session.Session) {
	spec, ok := s.Lookup(command.NameDxDiag)
	if !ok {
		s.Run(ctx, command.NameDxDiag)
		return
	}

	store := s.Store()
	if spec.SideFile == "" || store == nil {
		if spec.SideFile != "" {
			spec = spec.Expand(spec.SideFile)
		}
		s.AddBlock(spec.Name, s.Exec(ctx, spec).Transcript())
		return
	}

	if err := store.RemoveSideFile(spec.SideFile); err != nil {
		s.Logger().Warn("stale side file not removed", "file", spec.SideFile, "error", err)
	}

	res := s.Exec(ctx, spec.Expand(store.Path(spec.SideFile)))

	body, exists := store.ReadSideFile(spec.SideFile)
	if !exists {
		body = res.Transcript()
	}
	s.AddBlock(spec.Name, body)
}
