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
	"runtime"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/jettox/diagnostics/pkg/errors"
	"github.com/jettox/diagnostics/pkg/summary"
)

// UnitLister lists the units known to the service manager.
type UnitLister interface {
	ListUnits(ctx context.Context) ([]dbus.UnitStatus, error)
}

// SystemdUnits lists units over the systemd D-Bus API.
type SystemdUnits struct{}

// ListUnits connects to the system bus and lists loaded units.
func (SystemdUnits) ListUnits(ctx context.Context) ([]dbus.UnitStatus, error) {
	if runtime.GOOS != "linux" {
		return nil, errors.New(errors.ErrCodeUnavailable, "systemd is not available on "+runtime.GOOS)
	}

	conn, err := dbus.NewSystemdConnectionContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to connect to systemd", err)
	}
	defer conn.Close()

	units, err := conn.ListUnitsContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, "failed to list units", err)
	}
	return units, nil
}

// CountUnits returns service unit counts keyed by active state plus a
// "total" entry. Failed units are listed under "failed_units" with their
// sub-state.
func CountUnits(ctx context.Context, l UnitLister) (summary.Fields, error) {
	units, err := l.ListUnits(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	failed := make(summary.Fields)
	total := 0
	for _, u := range units {
		if !strings.HasSuffix(u.Name, ".service") {
			continue
		}
		total++
		counts[u.ActiveState]++
		if u.ActiveState == "failed" {
			failed[u.Name] = summary.Str(u.SubState)
		}
	}

	out := summary.Fields{"total": summary.Int(total)}
	for state, n := range counts {
		out[state] = summary.Int(n)
	}
	if len(failed) > 0 {
		out["failed_units"] = failed
	}
	return out, nil
}
