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

// Package runlog records the log lines of one collection run.
//
// The Sink is an slog.Handler: components log through the *slog.Logger it
// returns, every record at or above the sink level is kept in memory, and
// records are forwarded to the structured stderr handler. At the end of the
// run the lines are flushed to logs/run_<timestamp>.txt, one per line:
//
//	[INFO] 2025-01-02T10:11:12.123456Z running command name=systeminfo
//	[WARN] 2025-01-02T10:11:42.123456Z command timed out name=systeminfo
//
// The sink is safe for concurrent use; derived handlers share its storage.
package runlog
