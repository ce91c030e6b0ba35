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

// Package collector defines the domain Collector interface and the factory
// that wires the five domain collectors to their shared dependencies.
//
// # Core Interface
//
//	type Collector interface {
//	    Collect(ctx context.Context) (summary.Summary, error)
//	}
//
// A collector never fails because a command failed: non-zero exits,
// timeouts and missing tools end up in raw.txt and in "*_error" summary
// fields. The error return is reserved for cancellation.
//
// # Factory Pattern
//
// The Factory interface abstracts collector creation for testing:
//
//	factory := collector.NewDefaultFactory(
//	    collector.WithStore(store),
//	    collector.WithLogger(sink.Logger()),
//	)
//	for _, d := range collector.Domains(factory) {
//	    sum, err := d.Collector.Collect(ctx)
//	    ...
//	}
//
// # Domains
//
// system: system information, process sample, event logs, drivers, services,
// systemd unit states.
//
// hardware: CPU, BIOS, baseboard and video attributes; CPU counts and
// frequency; memory totals.
//
// firmware: BIOS identity, boot configuration, power settings, graphics
// diagnostics report, firmware events.
//
// storage: disk and partition listings, SMART health, filesystem usage.
//
// peripherals: USB, plug-and-play, network adapter, logical device and
// Bluetooth listings.
package collector
