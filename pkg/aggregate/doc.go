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

// Package aggregate merges the per-domain summaries of one run into the
// aggregate report written to result/results_of_all_files.json.
//
// The report carries a header (kind, apiVersion, metadata), the run id, the
// run start in UTC and local time, the privilege probe result, one entry per
// domain and total_elapsed_seconds. The total is always recomputed from the
// domain entries; an error placeholder or a missing elapsed value counts
// as 0.
//
//	agg := aggregate.New(aggregate.Meta{Start: start, Admin: admin, Version: version})
//	agg.Add("system", sum, nil)
//	agg.Add("storage", nil, err) // {"error": "..."}
//	report, path, err := agg.Persist(ctx, store)
package aggregate
