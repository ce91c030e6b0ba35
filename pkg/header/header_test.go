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

package header

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	h := New(WithKind(KindReport), WithMetadata("hostname", "pc-1"), WithMetadata("empty", ""))

	if h.Kind != KindReport {
		t.Errorf("Kind = %q, want %q", h.Kind, KindReport)
	}
	if h.APIVersion != APIVersion {
		t.Errorf("APIVersion = %q, want %q", h.APIVersion, APIVersion)
	}
	if h.Metadata["hostname"] != "pc-1" {
		t.Errorf("hostname = %q", h.Metadata["hostname"])
	}
	if _, ok := h.Metadata["empty"]; ok {
		t.Error("empty metadata values must be skipped")
	}
}

func TestHeader_Init(t *testing.T) {
	h := &Header{Metadata: map[string]string{"stale": "x"}}
	h.Init(KindReport, "v1.2.3", WithMetadata(MetaPlatform, "linux/amd64"))

	if _, ok := h.Metadata["stale"]; ok {
		t.Error("Init must reset metadata")
	}
	if h.Metadata[MetaVersion] != "v1.2.3" {
		t.Errorf("version = %q", h.Metadata[MetaVersion])
	}
	if h.Metadata[MetaPlatform] != "linux/amd64" {
		t.Errorf("platform = %q", h.Metadata[MetaPlatform])
	}
	if _, err := time.Parse(time.RFC3339, h.Metadata[MetaTimestamp]); err != nil {
		t.Errorf("timestamp not RFC3339: %v", err)
	}

	h.Init(KindReport, "")
	if _, ok := h.Metadata[MetaVersion]; ok {
		t.Error("empty version must not be recorded")
	}
}

func TestKind_IsValid(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindReport, true},
		{KindDomainSummary, true},
		{Kind("Snapshot"), false},
		{Kind(""), false},
	}
	for _, tt := range tests {
		if got := tt.kind.IsValid(); got != tt.want {
			t.Errorf("Kind(%q).IsValid() = %v, want %v", tt.kind, got, tt.want)
		}
	}
}
