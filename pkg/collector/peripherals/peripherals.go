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

package peripherals

import (
	"context"

	"github.com/jettox/diagnostics/pkg/collector/session"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/parser"
	"github.com/jettox/diagnostics/pkg/summary"
)

// LengthSuffix is appended to a command name to form its summary key.
const LengthSuffix = "_entries_length"

var listingCommands = []string{
	command.NameUSB,
	command.NamePnP,
	command.NameNetAdapter,
	command.NameLogicalDevice,
	command.NameBluetooth,
}

// Collector gathers USB, plug-and-play, network adapter, logical device
// and Bluetooth listings.
type Collector struct {
	session.Deps
}

// Collect runs each listing and records the character length of its own
// output under "<name>_entries_length".
func (c *Collector) Collect(ctx context.Context) (summary.Summary, error) {
	s := session.Begin(command.DomainPeripherals, c.Deps)

	for _, name := range listingCommands {
		_, res := s.Run(ctx, name)
		s.Summary.Set(name+LengthSuffix, summary.Int(parser.Length(res.Stdout)))
	}

	return s.Finish(ctx)
}
