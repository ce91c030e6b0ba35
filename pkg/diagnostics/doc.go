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

// Package diagnostics orchestrates one collection run.
//
// A Run bootstraps the artifact layout, takes the run lock, probes
// privileges, collects the five domains in fixed order (or concurrently
// with Parallel), merges the summaries into the aggregate report and
// writes the metrics file and the run log.
//
//	run := &diagnostics.Run{
//	    Version: version,
//	    Store:   store,
//	    Sink:    sink,
//	    Console: console.New(os.Stdout),
//	}
//	report, err := run.Execute(ctx)
//
// A domain collector that panics is recorded as an {"error": ...}
// placeholder and the run continues. Failing to create the artifact
// layout or to take the lock is the only fatal condition.
//
// # Metrics
//
//   - jettox_run_duration_seconds: whole-run duration histogram
//   - jettox_run_total{status}: runs by outcome
//   - jettox_domain_duration_seconds{domain}: per-domain duration
//   - jettox_domain_total{domain,status}: domain outcomes
//   - jettox_domain_fields{domain}, jettox_domain_error_fields{domain}
//
// The registry is exported to result/metrics.prom at the end of the run.
package diagnostics
