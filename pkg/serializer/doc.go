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

// Package serializer encodes reports as JSON, YAML or a flattened table.
//
// JSON is what the collector writes to disk: two-space indentation, UTF-8,
// HTML characters left unescaped. YAML and table output are used when the
// aggregate report is echoed to the terminal.
//
// Usage:
//
//	w := serializer.NewStdoutWriter(serializer.FormatYAML)
//	if err := w.Serialize(ctx, report); err != nil {
//	    return err
//	}
//
// Marshal returns the encoded bytes without writing them:
//
//	b, err := serializer.Marshal(serializer.FormatJSON, summary)
//
// Table output flattens nested maps and slices into dotted keys
// (partitions_sample.[0].mountpoint) sorted alphabetically.
package serializer
