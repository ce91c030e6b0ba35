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

package summary

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jettox/diagnostics/pkg/defaults"
)

// Keys shared by every domain summary.
const (
	KeyCollectedAt = "collected_at"
	KeyElapsed     = "elapsed_seconds"
	KeyError       = "error"

	// ErrorSuffix is appended to a field name to record a recoverable
	// failure of the step that would have produced the field.
	ErrorSuffix = "_error"

	// ParseErrorSuffix marks output that could not be parsed.
	ParseErrorSuffix = "_parse_error"
)

// Summary is the structured, derived representation of one domain's findings.
// It marshals as a flat JSON object with sorted keys.
type Summary map[string]Reading

// New creates a summary seeded with collected_at.
func New(collectedAt time.Time) Summary {
	return Summary{
		KeyCollectedAt: Str(collectedAt.UTC().Format(defaults.TimestampLayout)),
	}
}

// Set adds or updates a field.
func (s Summary) Set(key string, value Reading) {
	s[key] = value
}

// SetError records err as the "<key>_error" marker field.
func (s Summary) SetError(key string, err error) {
	if err == nil {
		return
	}
	s[key+ErrorSuffix] = Str(err.Error())
}

// SetParseError records err as the "<key>_parse_error" marker field.
func (s Summary) SetParseError(key string, err error) {
	if err == nil {
		return
	}
	s[key+ParseErrorSuffix] = Str(err.Error())
}

// SetElapsed records the wall-clock duration of the domain collection.
func (s Summary) SetElapsed(d time.Duration) {
	s[KeyElapsed] = Float64(d.Seconds())
}

// Has checks if a key exists in the summary.
func (s Summary) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Get retrieves a reading by key, returning nil if not found.
func (s Summary) Get(key string) Reading {
	return s[key]
}

// GetString attempts to retrieve a string value, returning an error if not found or wrong type.
func (s Summary) GetString(key string) (string, error) {
	r := s[key]
	if r == nil {
		return "", fmt.Errorf("key %q not found", key)
	}
	v, ok := r.Any().(string)
	if !ok {
		return "", fmt.Errorf("key %q is not a string", key)
	}
	return v, nil
}

// Elapsed returns elapsed_seconds and whether it was present as a number.
func (s Summary) Elapsed() (float64, bool) {
	r := s[KeyElapsed]
	if r == nil {
		return 0, false
	}
	switch v := r.Any().(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// Keys returns all keys in sorted order.
func (s Summary) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Errors returns the marker fields ("*_error", "*_parse_error") keyed by name.
func (s Summary) Errors() map[string]string {
	out := make(map[string]string)
	for k, v := range s {
		if hasSuffix(k, ErrorSuffix) {
			out[k] = v.String()
		}
	}
	return out
}

// Validate checks that the mandatory fields are present and well typed.
func (s Summary) Validate() error {
	if s == nil {
		return errors.New("summary is nil")
	}
	if _, err := s.GetString(KeyCollectedAt); err != nil {
		return fmt.Errorf("invalid summary: %w", err)
	}
	if _, ok := s.Elapsed(); !ok {
		return fmt.Errorf("invalid summary: %s missing or not numeric", KeyElapsed)
	}
	return nil
}

// Placeholder builds the error entry recorded in place of a domain summary
// whose collector failed outright.
func Placeholder(err error) Summary {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Summary{KeyError: Str(msg)}
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
