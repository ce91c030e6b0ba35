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

// Package artifact manages the on-disk layout of a collection run.
//
// Layout under the artifact root:
//
//	<root>/
//	├── system/summary.json, system/raw.txt
//	├── hardware/ ... peripherals/
//	├── result/results_of_all_files.json
//	├── result/metrics.prom
//	├── logs/run_2006-01-02_150405.txt
//	└── .jettox.lock
//
// Every write goes through AtomicWrite (temp file + rename). Lock takes an
// advisory file lock (github.com/gofrs/flock) so two runs never interleave
// their writes into the same root.
package artifact
