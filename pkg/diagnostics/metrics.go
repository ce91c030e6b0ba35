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

package diagnostics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Domain outcome label values.
const (
	statusOK          = "ok"
	statusInterrupted = "interrupted"
	statusPanic       = "panic"
	statusSkipped     = "skipped"
	statusCanceled    = "canceled"
)

var (
	runDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jettox_run_duration_seconds",
			Help:    "Time taken by a complete diagnostics run",
			Buckets: []float64{5, 15, 30, 60, 120, 300, 600},
		},
	)

	runTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jettox_run_total",
			Help: "Total number of diagnostics runs",
		},
		[]string{"status"}, // success, canceled or error
	)

	domainDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jettox_domain_duration_seconds",
			Help:    "Time taken by individual domain collectors",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"domain"},
	)

	domainTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jettox_domain_total",
			Help: "Domain collections by outcome",
		},
		[]string{"domain", "status"},
	)

	domainFields = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "jettox_domain_fields",
			Help: "Number of fields in the last summary of each domain",
		},
		[]string{"domain"},
	)

	domainErrorFields = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "jettox_domain_error_fields",
			Help: "Number of *_error fields in the last summary of each domain",
		},
		[]string{"domain"},
	)
)
