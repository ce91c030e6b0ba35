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
	"log/slog"
	"strings"
)

// Option configures a Parser.
type Option func(*Parser)

// Parser parses flat attribute listings with customizable settings.
type Parser struct {
	kvDelimiter     string
	vTrimChars      string
	skipEmptyValues bool
}

// WithKVDelimiter sets the key-value delimiter.
// Default is "=" (wmic /format:list); use ":" for systeminfo-style output.
func WithKVDelimiter(kvDelim string) Option {
	return func(p *Parser) {
		if kvDelim != "" {
			p.kvDelimiter = kvDelim
		}
	}
}

// WithVTrimChars sets characters to trim from values after whitespace trimming.
// Default is no trimming.
func WithVTrimChars(trimChars string) Option {
	return func(p *Parser) {
		p.vTrimChars = trimChars
	}
}

// WithSkipEmptyValues sets whether keys with an empty value are dropped.
// Default is false.
func WithSkipEmptyValues(skip bool) Option {
	return func(p *Parser) {
		p.skipEmptyValues = skip
	}
}

// NewParser creates a new key/value parser with the provided options.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		kvDelimiter: "=",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseKV parses text into a map using a parser built from opts.
func ParseKV(text string, opts ...Option) map[string]string {
	return NewParser(opts...).ParseKV(text)
}

// ParseKV splits text into lines; every line containing the delimiter
// contributes strings.TrimSpace(key) = strings.TrimSpace(value), splitting on
// the first delimiter only. Lines without the delimiter or with an empty key
// are ignored. When a key repeats, the last occurrence wins.
func (p *Parser) ParseKV(text string) map[string]string {
	result := make(map[string]string)

	for _, line := range splitLines(text) {
		k, v, ok := strings.Cut(line, p.kvDelimiter)
		if !ok {
			continue
		}

		key := strings.TrimSpace(k)
		if key == "" {
			slog.Debug("skipping line with empty key", "line", line)
			continue
		}

		value := strings.TrimSpace(v)
		if p.vTrimChars != "" {
			value = strings.Trim(value, p.vTrimChars)
		}

		if p.skipEmptyValues && value == "" {
			continue
		}

		result[key] = value
	}

	return result
}

// splitLines splits on "\n" and drops a trailing "\r" from each line, so
// CRLF output from Windows tools parses the same as LF output.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
