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
	"bytes"
	"runtime"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decoder turns captured command output into text.
type Decoder struct {
	fallback encoding.Encoding
}

// NewDecoder returns a decoder that uses fallback for output that is neither
// BOM-marked UTF-16 nor valid UTF-8. A nil fallback replaces invalid bytes
// with U+FFFD.
func NewDecoder(fallback encoding.Encoding) *Decoder {
	return &Decoder{fallback: fallback}
}

// PlatformDecoder returns the decoder for the host: Windows console tools
// fall back to code page 1252, everything else to U+FFFD replacement.
func PlatformDecoder() *Decoder {
	if runtime.GOOS == "windows" {
		return NewDecoder(charmap.Windows1252)
	}
	return NewDecoder(nil)
}

// Decode converts b to a string. Output is never trimmed.
func (d *Decoder) Decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	if bytes.HasPrefix(b, bomUTF16LE) || bytes.HasPrefix(b, bomUTF16BE) {
		dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		if out, _, err := transform.Bytes(dec, b); err == nil {
			return string(out)
		}
	}

	if utf8.Valid(b) {
		return string(b)
	}

	if d != nil && d.fallback != nil {
		if out, err := d.fallback.NewDecoder().Bytes(b); err == nil {
			return string(out)
		}
	}

	return strings.ToValidUTF8(string(b), string(utf8.RuneError))
}
