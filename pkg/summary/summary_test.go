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
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNew_SeedsCollectedAt(t *testing.T) {
	ts := time.Date(2025, 1, 2, 3, 4, 5, 999, time.FixedZone("X", 3600))
	s := New(ts)

	got, err := s.GetString(KeyCollectedAt)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02T02:04:05Z", got)
	assert.False(t, s.Has(KeyElapsed))
}

func TestSummary_MarshalJSON(t *testing.T) {
	s := Summary{
		"collected_at": Str("2025-01-01T00:00:00Z"),
		"cpu":          Map{"Name": "Intel", "NumberOfCores": "8"},
		"cpu_freq_mhz": Fields{"current": Float64(2400), "max": Float64(4800)},
		"process_sample": RecordsFromRows([]map[string]string{
			{"Image Name": "System", "PID": "4"},
		}),
		"drivers_count": Int(3),
		"admin":         Bool(false),
		"raw":           Str("<error reading dxdiag_output.txt>"),
	}
	s.SetElapsed(1500 * time.Millisecond)

	b, err := json.Marshal(s)
	require.NoError(t, err)

	assert.Contains(t, string(b), `"raw":"<error reading dxdiag_output.txt>"`)

	var back map[string]any
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, 1.5, back["elapsed_seconds"])
	assert.Equal(t, "Intel", back["cpu"].(map[string]any)["Name"])
	assert.Equal(t, 4800.0, back["cpu_freq_mhz"].(map[string]any)["max"])
	assert.Len(t, back["process_sample"], 1)
	assert.Equal(t, 3.0, back["drivers_count"])
}

func TestSummary_MarshalJSON_Deterministic(t *testing.T) {
	build := func() Summary {
		s := Summary{}
		for _, k := range []string{"z", "a", "m", "b"} {
			s.Set(k, Str(k))
		}
		s.Set("bios", Map{"b": "2", "a": "1"})
		return s
	}

	a, err := json.Marshal(build())
	require.NoError(t, err)
	b, err := json.Marshal(build())
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestSummary_MarshalYAML(t *testing.T) {
	s := Summary{
		"bios":  Map{"Manufacturer": "Dell"},
		"count": Int(2),
		"rows":  Records{{"pid": Str("1")}},
	}

	b, err := yaml.Marshal(s)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(b, &back))
	assert.Equal(t, 2, back["count"])
	assert.Equal(t, "Dell", back["bios"].(map[string]any)["Manufacturer"])
}

func TestSummary_Errors(t *testing.T) {
	s := Summary{}
	s.SetError("psutil", errors.New("boom"))
	s.SetParseError("process_sample", errors.New("CSV error"))
	s.SetError("ignored", nil)

	errs := s.Errors()
	assert.Equal(t, map[string]string{
		"psutil_error":               "boom",
		"process_sample_parse_error": "CSV error",
	}, errs)
}

func TestSummary_Elapsed(t *testing.T) {
	tests := []struct {
		name   string
		s      Summary
		want   float64
		wantOK bool
	}{
		{"missing", Summary{}, 0, false},
		{"float", Summary{KeyElapsed: Float64(2.5)}, 2.5, true},
		{"int", Summary{KeyElapsed: Int(3)}, 3, true},
		{"string", Summary{KeyElapsed: Str("3")}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.s.Elapsed()
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSummary_Validate(t *testing.T) {
	s := New(time.Now())
	assert.Error(t, s.Validate())

	s.SetElapsed(time.Second)
	assert.NoError(t, s.Validate())

	assert.Error(t, Summary(nil).Validate())
}

func TestPlaceholder(t *testing.T) {
	p := Placeholder(errors.New("collector panicked"))
	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"collector panicked"}`, string(b))

	_, ok := p.Elapsed()
	assert.False(t, ok)
}

func TestToReadingWithType(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		wantAny  any
		lossless bool
	}{
		{"int", 5, 5, true},
		{"int32", int32(5), int64(5), true},
		{"uint64", uint64(7), uint64(7), true},
		{"float32", float32(1.5), 1.5, true},
		{"bool", true, true, true},
		{"string", "x", "x", true},
		{"map", map[string]string{"a": "b"}, map[string]string{"a": "b"}, true},
		{"struct", struct{ A int }{1}, "{1}", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := ToReadingWithType(tt.in)
			assert.Equal(t, tt.lossless, ok)
			assert.Equal(t, tt.wantAny, r.Any())
		})
	}
}
