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
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AllowedScalar is a constraint (compile-time) for what we allow as scalar readings.
type AllowedScalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 |
		~bool |
		~string
}

// Reading is a *runtime* interface (so it can be stored in a map with mixed types).
// The concrete kinds are Scalar, Map, Fields and Records.
type Reading interface {
	isReading()
	Any() any
	String() string

	json.Marshaler
	yaml.Marshaler
}

// Scalar wraps an allowed scalar type.
// This is how we keep compile-time constraints while still using a runtime interface.
type Scalar[T AllowedScalar] struct {
	V T
}

func (Scalar[T]) isReading() {}

func (s Scalar[T]) Any() any { return s.V }

// String returns the string representation of the underlying scalar value.
func (s Scalar[T]) String() string {
	return fmt.Sprintf("%v", s.V)
}

// MarshalJSON makes the JSON value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalJSON() ([]byte, error) {
	return marshalJSON(s.V)
}

// MarshalYAML makes the YAML value be the underlying scalar (not an object wrapper).
func (s Scalar[T]) MarshalYAML() (any, error) {
	return s.V, nil
}

// Convenience constructors for each allowed scalar type.
func Int(v int) Reading         { return Scalar[int]{V: v} }
func Int64(v int64) Reading     { return Scalar[int64]{V: v} }
func Uint64(v uint64) Reading   { return Scalar[uint64]{V: v} }
func Float64(v float64) Reading { return Scalar[float64]{V: v} }
func Bool(v bool) Reading       { return Scalar[bool]{V: v} }
func Str(v string) Reading      { return Scalar[string]{V: v} }

// Map is a flat string-to-string reading, the output of the key/value parser.
type Map map[string]string

func (Map) isReading() {}

func (m Map) Any() any { return map[string]string(m) }

func (m Map) String() string { return fmt.Sprintf("%v", map[string]string(m)) }

// MarshalJSON encodes the map as a JSON object with sorted keys.
func (m Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return marshalJSON(map[string]string(m))
}

// MarshalYAML encodes the map as a YAML mapping.
func (m Map) MarshalYAML() (any, error) {
	return map[string]string(m), nil
}

// Fields is a nested reading with mixed-kind values, such as cpu_freq_mhz
// or one partition usage record.
type Fields map[string]Reading

func (Fields) isReading() {}

func (f Fields) Any() any {
	out := make(map[string]any, len(f))
	for k, v := range f {
		out[k] = v.Any()
	}
	return out
}

func (f Fields) String() string { return fmt.Sprintf("%v", f.Any()) }

// MarshalJSON encodes the fields as a JSON object with sorted keys.
func (f Fields) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("{}"), nil
	}
	return marshalJSON(map[string]Reading(f))
}

// MarshalYAML encodes the fields as a YAML mapping.
func (f Fields) MarshalYAML() (any, error) {
	return map[string]Reading(f), nil
}

// Records is a sequence of Fields, such as the process sample.
type Records []Fields

func (Records) isReading() {}

func (r Records) Any() any {
	out := make([]any, len(r))
	for i, f := range r {
		out[i] = f.Any()
	}
	return out
}

func (r Records) String() string { return fmt.Sprintf("%v", r.Any()) }

// MarshalJSON encodes the records as a JSON array; nil encodes as [].
func (r Records) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return marshalJSON([]Fields(r))
}

// MarshalYAML encodes the records as a YAML sequence.
func (r Records) MarshalYAML() (any, error) {
	if r == nil {
		return []Fields{}, nil
	}
	return []Fields(r), nil
}

// RecordsFromRows converts parsed table rows into Records of string readings.
func RecordsFromRows(rows []map[string]string) Records {
	out := make(Records, 0, len(rows))
	for _, row := range rows {
		f := make(Fields, len(row))
		for k, v := range row {
			f[k] = Str(v)
		}
		out = append(out, f)
	}
	return out
}

// ToReading creates a Reading from any allowed scalar type or collection.
// If the type is not supported, it returns a string representation.
func ToReading(v any) Reading {
	r, _ := ToReadingWithType(v)
	return r
}

// ToReadingWithType converts a value to a Reading and returns whether the conversion
// was lossless. A false result means the value was rendered via fmt.Sprintf.
func ToReadingWithType(v any) (Reading, bool) {
	switch val := v.(type) {
	case Reading:
		return val, true
	case int:
		return Int(val), true
	case int32:
		return Int64(int64(val)), true
	case int64:
		return Int64(val), true
	case uint32:
		return Uint64(uint64(val)), true
	case uint64:
		return Uint64(val), true
	case float32:
		return Float64(float64(val)), true
	case float64:
		return Float64(val), true
	case bool:
		return Bool(val), true
	case string:
		return Str(val), true
	case map[string]string:
		return Map(val), true
	case []map[string]string:
		return RecordsFromRows(val), true
	default:
		return Str(fmt.Sprintf("%v", val)), false
	}
}

// marshalJSON encodes v without HTML escaping so markers such as
// "<error reading file>" survive verbatim.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
