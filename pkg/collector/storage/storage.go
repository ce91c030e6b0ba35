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

package storage

import (
	"context"
	"regexp"
	"strings"

	"github.com/jettox/diagnostics/pkg/collector/session"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/parser"
	"github.com/jettox/diagnostics/pkg/summary"
)

// Summary keys.
const (
	KeySmartHealth = "smart_health"
	KeyPartitions  = "partitions"
	KeySample      = "partitions_sample"

	// SmartMissing is the raw block header written when the disk health
	// tool is not installed.
	SmartMissing = "smartctl not found"
)

var listingCommands = []string{
	command.NameDiskDrive,
	command.NamePhysicalDisk,
	command.NamePartition,
}

// devicePattern matches device names reported by a disk scan.
var devicePattern = regexp.MustCompile(`^[A-Za-z0-9_./:\\-]+$`)

// Collector gathers disk, physical disk and partition listings, SMART
// health when the tool is installed, and per-partition usage.
type Collector struct {
	session.Deps
}

// Collect runs the storage commands in catalogue order.
func (c *Collector) Collect(ctx context.Context) (summary.Summary, error) {
	s := session.Begin(command.DomainStorage, c.Deps)

	for _, name := range listingCommands {
		s.Run(ctx, name)
	}

	collectSmart(ctx, s)

	if hm := s.Metrics(); hm != nil {
		s.Step(KeyPartitions, func() error {
			parts, err := hm.Partitions(ctx)
			if err != nil {
				return err
			}
			records := make(summary.Records, 0, len(parts))
			for _, p := range parts {
				records = append(records, summary.Fields{
					"device":     summary.Str(p.Device),
					"mountpoint": summary.Str(p.Mountpoint),
					"fstype":     summary.Str(p.Fstype),
					"total":      summary.Uint64(p.Total),
					"used":       summary.Uint64(p.Used),
					"free":       summary.Uint64(p.Free),
					"percent":    summary.Float64(p.Percent),
				})
			}
			s.Summary.Set(KeySample, records)
			return nil
		})
	} else {
		s.AddBlock(session.HostMetricsMissing, "")
	}

	return s.Finish(ctx)
}

// collectSmart scans for devices and checks the health of each one. When
// the tool is missing only a marker block is recorded.
func collectSmart(ctx context.Context, s *session.Session) {
	scan, ok := s.Lookup(command.NameSmartScan)
	if !ok || (scan.Tool != "" && !s.LookPath(scan.Tool)) {
		s.AddBlock(SmartMissing, "")
		return
	}

	res := s.Exec(ctx, scan)
	s.AddBlock(scan.Name, res.Transcript())

	health, ok := s.Lookup(command.NameSmartHealth)
	if !ok {
		return
	}

	records := make(summary.Records, 0)
	for _, dev := range parser.FirstFields(res.Stdout) {
		if !devicePattern.MatchString(dev) {
			s.Logger().Warn("skipping unexpected device name", "device", dev)
			continue
		}
		r := s.Exec(ctx, health.Expand(dev))
		s.AddBlock("smartctl "+dev, r.Transcript())
		records = append(records, summary.Fields{
			"device": summary.Str(dev),
			"passed": summary.Bool(healthPassed(r.Stdout)),
			"rc":     summary.Int(r.RC),
		})
	}
	s.Summary.Set(KeySmartHealth, records)
}

// healthPassed reports whether smartctl -H output shows a passing verdict
// (ATA "PASSED" or SCSI/NVMe "OK").
func healthPassed(out string) bool {
	for _, line := range strings.Split(out, "\n") {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		k = strings.ToLower(strings.TrimSpace(k))
		if !strings.Contains(k, "health") {
			continue
		}
		v = strings.TrimSpace(v)
		return v == "PASSED" || v == "OK"
	}
	return false
}
