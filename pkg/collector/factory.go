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
	"log/slog"

	"github.com/jettox/diagnostics/pkg/artifact"
	"github.com/jettox/diagnostics/pkg/collector/firmware"
	"github.com/jettox/diagnostics/pkg/collector/hardware"
	"github.com/jettox/diagnostics/pkg/collector/peripherals"
	"github.com/jettox/diagnostics/pkg/collector/session"
	"github.com/jettox/diagnostics/pkg/collector/storage"
	"github.com/jettox/diagnostics/pkg/collector/system"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/hostmetrics"
)

// Factory creates the domain collectors.
type Factory interface {
	CreateSystemCollector() Collector
	CreateHardwareCollector() Collector
	CreateFirmwareCollector() Collector
	CreateStorageCollector() Collector
	CreatePeripheralsCollector() Collector
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithRunner sets the command runner.
func WithRunner(r command.Runner) Option {
	return func(f *DefaultFactory) {
		f.Deps.Runner = r
	}
}

// WithCatalog sets the command catalogue.
func WithCatalog(c *command.Catalog) Option {
	return func(f *DefaultFactory) {
		f.Deps.Catalog = c
	}
}

// WithStore sets the artifact store collectors persist into.
func WithStore(s *artifact.Store) Option {
	return func(f *DefaultFactory) {
		f.Deps.Store = s
	}
}

// WithLogger sets the logger passed to collectors and the default runner.
func WithLogger(l *slog.Logger) Option {
	return func(f *DefaultFactory) {
		f.Deps.Logger = l
	}
}

// WithHostMetrics sets the host metrics provider. Nil disables host metrics.
func WithHostMetrics(p hostmetrics.Provider) Option {
	return func(f *DefaultFactory) {
		f.Deps.Metrics = p
		f.metricsSet = true
	}
}

// WithUnitLister sets the service unit source used by the system domain.
func WithUnitLister(l system.UnitLister) Option {
	return func(f *DefaultFactory) {
		f.Units = l
	}
}

// DefaultFactory creates collectors sharing one set of dependencies.
type DefaultFactory struct {
	Deps  session.Deps
	Units system.UnitLister

	metricsSet bool
}

// NewDefaultFactory creates a factory with production defaults: the host
// catalogue, a shell runner and gopsutil host metrics.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{}
	for _, opt := range opts {
		opt(f)
	}

	if f.Deps.Logger == nil {
		f.Deps.Logger = slog.Default()
	}
	if f.Deps.Catalog == nil {
		f.Deps.Catalog = command.DefaultCatalog()
	}
	if f.Deps.Runner == nil {
		f.Deps.Runner = command.NewShellRunner(command.WithLogger(f.Deps.Logger))
	}
	if !f.metricsSet {
		f.Deps.Metrics = hostmetrics.New(hostmetrics.WithLogger(f.Deps.Logger))
	}
	return f
}

// CreateSystemCollector creates the system domain collector.
func (f *DefaultFactory) CreateSystemCollector() Collector {
	return &system.Collector{Deps: f.Deps, Units: f.Units}
}

// CreateHardwareCollector creates the hardware domain collector.
func (f *DefaultFactory) CreateHardwareCollector() Collector {
	return &hardware.Collector{Deps: f.Deps}
}

// CreateFirmwareCollector creates the firmware domain collector.
func (f *DefaultFactory) CreateFirmwareCollector() Collector {
	return &firmware.Collector{Deps: f.Deps}
}

// CreateStorageCollector creates the storage domain collector.
func (f *DefaultFactory) CreateStorageCollector() Collector {
	return &storage.Collector{Deps: f.Deps}
}

// CreatePeripheralsCollector creates the peripherals domain collector.
func (f *DefaultFactory) CreatePeripheralsCollector() Collector {
	return &peripherals.Collector{Deps: f.Deps}
}

// Domain pairs a domain name with its collector.
type Domain struct {
	Name      string
	Collector Collector
}

// Domains returns every domain collector in the fixed collection order.
func Domains(f Factory) []Domain {
	return []Domain{
		{Name: command.DomainSystem, Collector: f.CreateSystemCollector()},
		{Name: command.DomainHardware, Collector: f.CreateHardwareCollector()},
		{Name: command.DomainFirmware, Collector: f.CreateFirmwareCollector()},
		{Name: command.DomainStorage, Collector: f.CreateStorageCollector()},
		{Name: command.DomainPeripherals, Collector: f.CreatePeripheralsCollector()},
	}
}
