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

// Package hostmetricstest provides a canned hostmetrics.Provider for tests.
package hostmetricstest

import (
	"context"

	"github.com/jettox/diagnostics/pkg/hostmetrics"
)

// Static returns fixed values, or the configured error for each call.
type Static struct {
	CPUInfo       hostmetrics.CPU
	MemoryInfo    hostmetrics.Memory
	PartitionList []hostmetrics.Partition

	CPUErr        error
	MemoryErr     error
	PartitionsErr error

	// Panic makes every call panic with this value when non-nil.
	Panic any
}

// CPU implements hostmetrics.Provider.
func (s *Static) CPU(context.Context) (hostmetrics.CPU, error) {
	s.maybePanic()
	return s.CPUInfo, s.CPUErr
}

// Memory implements hostmetrics.Provider.
func (s *Static) Memory(context.Context) (hostmetrics.Memory, error) {
	s.maybePanic()
	return s.MemoryInfo, s.MemoryErr
}

// Partitions implements hostmetrics.Provider.
func (s *Static) Partitions(context.Context) ([]hostmetrics.Partition, error) {
	s.maybePanic()
	return s.PartitionList, s.PartitionsErr
}

func (s *Static) maybePanic() {
	if s.Panic != nil {
		panic(s.Panic)
	}
}
