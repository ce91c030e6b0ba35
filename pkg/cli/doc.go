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

// Package cli implements the command-line interface of the jettox
// diagnostics collector.
//
// # Commands
//
// collect - run the read-only collection (the default command):
//
//	jettox collect [--root DIR] [--parallel] [--quiet] [--skip DOMAIN,...]
//
// Runs the system, hardware, firmware, storage and peripherals collectors and
// writes per-domain summary.json and raw.txt files, the aggregate report,
// the metrics file and the run log under --root.
//
// catalog - print the command catalogue:
//
//	jettox catalog [--platform host|windows|unix] [--domain NAME] [--format table|json|yaml]
//
// # Global Flags
//
//	--log-level    Log level: debug, info, warn, error (env LOG_LEVEL)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// # Collect Flags
//
//	--root, -r         Artifact root (env JETTOX_ROOT, default ".")
//	--parallel         Collect domains concurrently
//	--quiet, -q        No banner or progress lines
//	--print            Echo the aggregate report after the run
//	--output, -o       Write the echoed report to a file instead of stdout
//	--format, -t       Echo format: json, yaml, table
//	--command-rate     Minimum interval between command launches
//	--skip             Domains not to collect
//	--no-host-metrics  Do not read CPU, memory and partition metrics
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, artifact root not writable)
//	2  Interrupted (SIGINT/SIGTERM); artifacts are still written
package cli
