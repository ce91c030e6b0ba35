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

package collector

import (
	"context"
	"testing"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/jettox/diagnostics/pkg/collector/firmware"
	"github.com/jettox/diagnostics/pkg/collector/system"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/command/commandtest"
	"github.com/jettox/diagnostics/pkg/hostmetrics"
)

func TestNewDefaultFactory_Defaults(t *testing.T) {
	f := NewDefaultFactory()

	if f.Deps.Runner == nil {
		t.Error("Expected default runner")
	}
	if f.Deps.Catalog == nil {
		t.Error("Expected default catalog")
	}
	if f.Deps.Logger == nil {
		t.Error("Expected default logger")
	}
	if _, ok := f.Deps.Metrics.(*hostmetrics.Host); !ok {
		t.Errorf("Expected gopsutil host metrics, got %T", f.Deps.Metrics)
	}
}

func TestNewDefaultFactory_DisableHostMetrics(t *testing.T) {
	f := NewDefaultFactory(WithHostMetrics(nil))
	if f.Deps.Metrics != nil {
		t.Errorf("Expected nil host metrics, got %T", f.Deps.Metrics)
	}
}

func TestDefaultFactory_CreateCollectors(t *testing.T) {
	runner := commandtest.New()
	f := NewDefaultFactory(WithRunner(runner), WithCatalog(command.Windows()))

	sys, ok := f.CreateSystemCollector().(*system.Collector)
	if !ok {
		t.Fatal("Expected *system.Collector")
	}
	if sys.Runner != runner {
		t.Error("system collector must share the factory runner")
	}

	fw, ok := f.CreateFirmwareCollector().(*firmware.Collector)
	if !ok {
		t.Fatal("Expected *firmware.Collector")
	}
	if fw.Catalog != f.Deps.Catalog {
		t.Error("firmware collector must share the factory catalog")
	}
}

func TestDomains_Order(t *testing.T) {
	f := NewDefaultFactory(WithRunner(commandtest.New()), WithHostMetrics(nil))

	domains := Domains(f)
	want := command.Domains()
	if len(domains) != len(want) {
		t.Fatalf("Expected %d domains, got %d", len(want), len(domains))
	}
	for i, d := range domains {
		if d.Name != want[i] {
			t.Errorf("domain %d = %q, want %q", i, d.Name, want[i])
		}
		if d.Collector == nil {
			t.Errorf("domain %q has nil collector", d.Name)
		}
	}
}

func TestDomains_CollectWithScriptedRunner(t *testing.T) {
	f := NewDefaultFactory(
		WithRunner(commandtest.New()),
		WithCatalog(command.Windows()),
		WithHostMetrics(nil),
		WithUnitLister(noUnits{}),
	)

	for _, d := range Domains(f) {
		sum, err := d.Collector.Collect(context.Background())
		if err != nil {
			t.Fatalf("%s: Collect returned error: %v", d.Name, err)
		}
		if err := sum.Validate(); err != nil {
			t.Errorf("%s: invalid summary: %v", d.Name, err)
		}
	}
}

type noUnits struct{}

func (noUnits) ListUnits(context.Context) ([]dbus.UnitStatus, error) {
	return nil, nil
}
