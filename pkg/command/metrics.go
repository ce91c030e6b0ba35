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

package command

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jettox_command_duration_seconds",
			Help:    "Wall-clock time of individual inspection commands",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 20, 40, 60},
		},
		[]string{"command"},
	)

	commandTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jettox_command_total",
			Help: "Total number of command invocations by outcome",
		},
		[]string{"command", "outcome"}, // ok, exit_error, timeout, spawn_error
	)
)

func observe(name string, res Result) {
	commandDuration.WithLabelValues(name).Observe(res.Duration.Seconds())
	commandTotal.WithLabelValues(name, res.Outcome()).Inc()
}
