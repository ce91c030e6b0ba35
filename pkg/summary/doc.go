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

// Package summary defines the domain summary document.
//
// A Summary maps field names to Readings. A Reading is a small tagged union:
//
//   - Scalar[T] for strings, integers, floats and booleans
//   - Map for flat string attributes (key/value parser output)
//   - Fields for nested mixed-kind objects (cpu_freq_mhz, one partition)
//   - Records for sequences of Fields (process sample, partition sample)
//
// Every summary carries collected_at (set at domain start) and
// elapsed_seconds (set at domain end). Recoverable failures are recorded as
// sibling "<field>_error" or "<field>_parse_error" string fields instead of
// aborting the domain.
//
// Summaries marshal to JSON and YAML with keys in sorted order, so two runs
// over identical command output produce identical documents apart from the
// two timing fields.
//
//	s := summary.New(time.Now())
//	s.Set("bios", summary.Map(parser.ParseKV(out)))
//	s.SetError("psutil", err)
//	s.SetElapsed(time.Since(start))
package summary
