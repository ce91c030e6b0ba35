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

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/encoding/charmap"
)

func TestDecoder_Decode(t *testing.T) {
	tests := []struct {
		name     string
		fallback *charmap.Charmap
		in       []byte
		want     string
	}{
		{
			name: "empty",
			in:   nil,
			want: "",
		},
		{
			name: "utf8 kept verbatim",
			in:   []byte("  Name=CPU  \r\n"),
			want: "  Name=CPU  \r\n",
		},
		{
			name: "utf16le with bom",
			in:   []byte{0xFF, 0xFE, 'h', 0, 'i', 0, '\n', 0},
			want: "hi\n",
		},
		{
			name: "utf16be with bom",
			in:   []byte{0xFE, 0xFF, 0, 'o', 0, 'k'},
			want: "ok",
		},
		{
			name:     "windows-1252 fallback",
			fallback: charmap.Windows1252,
			in:       []byte{'c', 'a', 'f', 0xE9},
			want:     "café",
		},
		{
			name: "invalid bytes replaced",
			in:   []byte{'a', 0xFF, 'b'},
			want: "a\uFFFDb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d *Decoder
			if tt.fallback != nil {
				d = NewDecoder(tt.fallback)
			} else {
				d = NewDecoder(nil)
			}
			assert.Equal(t, tt.want, d.Decode(tt.in))
		})
	}
}
