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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format describes how rows of a tabular listing are delimited.
type Format string

const (
	// FormatCSV reads comma-separated rows with optional quoting (tasklist /FO CSV).
	FormatCSV Format = "csv"
	// FormatFields reads whitespace-separated columns (ps, lsblk); the last
	// column absorbs the remainder of the line.
	FormatFields Format = "fields"
)

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatCSV, FormatFields:
		return false
	default:
		return true
	}
}

// ParseError reports tabular output that could not be read.
// Rows decoded before the failure are still returned alongside it.
type ParseError struct {
	Format Format
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s parse error at line %d: %v", e.Format, e.Line, e.Err)
	}
	return fmt.Sprintf("%s parse error: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseTable treats the first non-empty row as headers and zips every
// following row positionally against them. Rows shorter than the header are
// zipped up to their own length (no padding); extra cells beyond the header
// are dropped. A positive limit caps the number of returned rows.
func ParseTable(text string, format Format, limit int) ([]map[string]string, error) {
	var (
		rows [][]string
		err  error
	)

	switch format {
	case FormatCSV:
		rows, err = readCSV(text)
	case FormatFields:
		rows = readFields(text)
	default:
		return nil, &ParseError{Format: format, Err: fmt.Errorf("unsupported format %q", format)}
	}

	if len(rows) == 0 {
		return []map[string]string{}, err
	}

	header := rows[0]
	data := rows[1:]
	if limit > 0 && len(data) > limit {
		data = data[:limit]
	}

	out := make([]map[string]string, 0, len(data))
	for _, row := range data {
		out = append(out, zip(header, row))
	}

	return out, err
}

func zip(header, row []string) map[string]string {
	n := min(len(header), len(row))
	m := make(map[string]string, n)
	for i := 0; i < n; i++ {
		m[header[i]] = row[i]
	}
	return m
}

func readCSV(text string) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.StartLine
			}
			return rows, &ParseError{Format: FormatCSV, Line: line, Err: err}
		}
		if isBlankRecord(rec) {
			continue
		}
		rows = append(rows, rec)
	}
}

func isBlankRecord(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func readFields(text string) [][]string {
	var (
		rows  [][]string
		width int
	)
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if rows == nil {
			header := strings.Fields(line)
			width = len(header)
			rows = append(rows, header)
			continue
		}
		rows = append(rows, splitFieldsN(line, width))
	}
	return rows
}

// splitFieldsN splits line on whitespace into at most n fields; the last
// field keeps the rest of the line with its inner spacing.
func splitFieldsN(line string, n int) []string {
	var out []string
	rest := strings.TrimSpace(line)
	for rest != "" {
		if len(out) == n-1 {
			out = append(out, rest)
			break
		}
		i := strings.IndexAny(rest, " \t")
		if i < 0 {
			out = append(out, rest)
			break
		}
		out = append(out, rest[:i])
		rest = strings.TrimLeft(rest[i:], " \t")
	}
	return out
}
