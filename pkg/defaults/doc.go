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

// Package defaults provides centralized configuration constants for the collector.
//
// This package defines timeout values, collection limits, and artifact names
// used across the codebase. Centralizing these values ensures consistency
// and makes tuning easier.
//
// # Timeout Categories
//
//   - Command timeouts: fallback for catalogue entries and tool probes
//   - Run timeouts: whole-run bound and artifact lock wait
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.RunTimeout)
//	defer cancel()
//
// # Artifact Layout
//
//	<root>/<domain>/summary.json
//	<root>/<domain>/raw.txt
//	<root>/result/results_of_all_files.json
//	<root>/result/metrics.prom
//	<root>/logs/run_<YYYY-MM-DD_HHMMSS>.txt
package defaults
