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

// Package storage collects disk and partition listings, SMART health and
// filesystem usage.
//
// Summary fields:
//   - smart_health: one {device, passed, rc} record per scanned device,
//     absent when smartctl is not installed
//   - partitions_sample: {device, mountpoint, fstype, total, used, free,
//     percent} per mounted filesystem, or partitions_error
package storage
