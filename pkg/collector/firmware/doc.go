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

// Package firmware collects BIOS identity, boot configuration, power
// settings, the graphics diagnostics report and firmware events.
//
// Manufacturer, SMBIOSBIOSVersion, BIOSVersion, SerialNumber, ReleaseDate
// and Version are lifted into the summary from the BIOS attribute dump of
// the same run. Everything else is kept in raw.txt only.
package firmware
