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

package parser

import (
	"strings"
	"unicode/utf8"
)

// Count returns the number of non-overlapping occurrences of marker in text.
// An empty marker counts nothing.
func Count(text, marker string) int {
	if marker == "" {
		return 0
	}
	return strings.Count(text, marker)
}

// Length returns the character length of text.
func Length(text string) int {
	return utf8.RuneCountInString(text)
}

// CountEntries counts listing entries: occurrences of marker when one is
// given, otherwise non-empty lines minus a header line.
func CountEntries(text, marker string) int {
	if marker != "" {
		return Count(text, marker)
	}
	n := 0
	for _, l := range splitLines(text) {
		if strings.TrimSpace(l) != "" {
			n++
		}
	}
	if n > 0 {
		n--
	}
	return n
}

// FirstFields returns the first whitespace-separated token of every
// non-empty line, skipping lines that start with '#'.
func FirstFields(text string) []string {
	var out []string
	for _, l := range splitLines(text) {
		f := strings.Fields(l)
		if len(f) == 0 || strings.HasPrefix(f[0], "#") {
			continue
		}
		out = append(out, f[0])
	}
	return out
}
