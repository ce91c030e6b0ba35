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

// Package system collects operating system identity, the process sample,
// event logs, drivers and services.
//
// Summary fields:
//   - systeminfo_parsed: "Key: Value" lines of the system information dump
//   - process_sample: up to 40 process records (or process_sample_parse_error)
//   - drivers_count: driver entries in the driver listing
//   - services_length: character length of the service listing
//   - systemd_units: service unit counts by state (Linux, via D-Bus)
package system
