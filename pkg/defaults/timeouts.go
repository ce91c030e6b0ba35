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

package defaults

import "time"

// Command timeouts. Catalogue entries carry their own timeout; these are
// used when an entry leaves it unset and for ad-hoc probes.
const (
	// CommandTimeout is the default timeout for a single diagnostic command.
	CommandTimeout = 60 * time.Second

	// CommandWaitDelay bounds how long the runner waits for a killed
	// command's output pipes to drain after its timeout fires.
	CommandWaitDelay = 5 * time.Second

	// ProbeTimeout is used for quick tool probes such as "smartctl --scan".
	ProbeTimeout = 20 * time.Second
)

// Collection limits.
const (
	// ProcessSampleLimit caps the number of process rows kept in the
	// system summary.
	ProcessSampleLimit = 40

	// EventLogCount is the number of recent event-log entries requested
	// from the system and application logs.
	EventLogCount = 200
)

// Run timeouts.
const (
	// RunTimeout is the upper bound for a whole collection run. The worst
	// case is the sum of every catalogue timeout, which stays well below.
	RunTimeout = 30 * time.Minute

	// LockTimeout is how long a run waits for another run holding the
	// artifact root lock before giving up.
	LockTimeout = 10 * time.Second

	// LockRetryInterval is the polling interval while waiting for the lock.
	LockRetryInterval = 250 * time.Millisecond
)

// Artifact names, relative to the artifact root.
const (
	ResultDir     = "result"
	LogsDir       = "logs"
	SummaryFile   = "summary.json"
	RawFile       = "raw.txt"
	AggregateFile = "results_of_all_files.json"
	MetricsFile   = "metrics.prom"
	LockFile      = ".jettox.lock"

	// LogFileLayout is the time layout of the run log file name.
	LogFileLayout = "run_2006-01-02_150405.txt"

	// TimestampLayout is the UTC layout used for collected_at fields.
	TimestampLayout = "2006-01-02T15:04:05Z"
)
