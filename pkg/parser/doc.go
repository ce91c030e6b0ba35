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

// Package parser turns raw command output into structured data.
//
// All parsers are pure, total functions: no input makes them panic, and
// malformed input degrades to a partial result or a typed *ParseError.
//
// # Key/Value Blocks
//
// Flat attribute listings (wmic /format:list, systeminfo, dmidecode) are read
// with ParseKV. The delimiter defaults to "=":
//
//	bios := parser.ParseKV(out)
//	info := parser.ParseKV(out, parser.WithKVDelimiter(":"))
//
// # Tables
//
// Delimited listings with a header row are read with ParseTable:
//
//	rows, err := parser.ParseTable(out, parser.FormatCSV, 40)
//
// # Free Text
//
// Count, Length and CountEntries provide a lightweight signal for output that
// is not parsed further.
package parser
