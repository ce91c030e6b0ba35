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
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestParseKV(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts []Option
		want map[string]string
	}{
		{
			name: "wmic list output",
			text: "\r\n\r\nManufacturer=Dell Inc.\r\nSMBIOSBIOSVersion=1.2.3\r\nStatus=OK\r\n\r\n",
			want: map[string]string{"Manufacturer": "Dell Inc.", "SMBIOSBIOSVersion": "1.2.3", "Status": "OK"},
		},
		{
			name: "whitespace trimmed around key and value",
			text: "  Name =  Intel(R) Core(TM)  \n",
			want: map[string]string{"Name": "Intel(R) Core(TM)"},
		},
		{
			name: "split on first delimiter only",
			text: "Path=C:\\a=b\n",
			want: map[string]string{"Path": "C:\\a=b"},
		},
		{
			name: "last occurrence wins",
			text: "Name=first\nName=second\n",
			want: map[string]string{"Name": "second"},
		},
		{
			name: "lines without delimiter ignored",
			text: "header line\nKey=Value\n-----\n",
			want: map[string]string{"Key": "Value"},
		},
		{
			name: "empty key ignored, empty value kept",
			text: "=orphan\nCaption=\n",
			want: map[string]string{"Caption": ""},
		},
		{
			name: "skip empty values",
			text: "Caption=\nName=x\n",
			opts: []Option{WithSkipEmptyValues(true)},
			want: map[string]string{"Name": "x"},
		},
		{
			name: "colon delimiter keeps times intact",
			text: "Host Name:                 DESKTOP-1\nSystem Boot Time:          1/2/2025, 10:11:12 AM\n",
			opts: []Option{WithKVDelimiter(":")},
			want: map[string]string{"Host Name": "DESKTOP-1", "System Boot Time": "1/2/2025, 10:11:12 AM"},
		},
		{
			name: "trim chars",
			text: `ID="ubuntu"`,
			opts: []Option{WithVTrimChars(`"`)},
			want: map[string]string{"ID": "ubuntu"},
		},
		{
			name: "empty input",
			text: "",
			want: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseKV(tt.text, tt.opts...)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseKV() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseKV_EveryKeyRecovered(t *testing.T) {
	var b strings.Builder
	want := make(map[string]string)
	for i := 0; i < 50; i++ {
		k := fmt.Sprintf("Key%02d", i)
		v := fmt.Sprintf("value %d", i)
		fmt.Fprintf(&b, "  %s = %s  \n", k, v)
		want[k] = v
	}

	got := ParseKV(b.String())
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseKV() recovered %d keys, want %d", len(got), len(want))
	}
}

const tasklistCSV = `"Image Name","PID","Session Name","Session#","Mem Usage","Status","User Name","CPU Time","Window Title"
"System Idle Process","0","Services","0","8 K","Unknown","NT AUTHORITY\SYSTEM","10:00:00","N/A"
"System","4","Services","0","144 K","Unknown","N/A","0:05:00","N/A"
"smss.exe","412","Services","0","1,024 K","Unknown","N/A","0:00:00","N/A"
"csrss.exe","600","Services","0","5,120 K","Unknown","N/A","0:00:01","N/A"
"explorer.exe","4242","Console","1","90,000 K","Running","PC\user","0:01:00","Program Manager"
`

func TestParseTable_CSV(t *testing.T) {
	rows, err := ParseTable(tasklistCSV, FormatCSV, 0)
	if err != nil {
		t.Fatalf("ParseTable() error: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	if rows[1]["Image Name"] != "System" || rows[1]["PID"] != "4" {
		t.Errorf("unexpected row: %v", rows[1])
	}
	if rows[2]["Mem Usage"] != "1,024 K" {
		t.Errorf("quoted comma not preserved: %q", rows[2]["Mem Usage"])
	}
	for i, r := range rows {
		if len(r) != 9 {
			t.Errorf("row %d has %d keys, want 9", i, len(r))
		}
	}
}

func TestParseTable_Limit(t *testing.T) {
	var b strings.Builder
	b.WriteString("name,pid\n")
	for i := 0; i < 100; i++ {
		fmt.Fprintf(&b, "p%d,%d\n", i, i)
	}

	rows, err := ParseTable(b.String(), FormatCSV, 40)
	if err != nil {
		t.Fatalf("ParseTable() error: %v", err)
	}
	if len(rows) != 40 {
		t.Errorf("expected 40 rows, got %d", len(rows))
	}
	if rows[39]["name"] != "p39" {
		t.Errorf("unexpected last row %v", rows[39])
	}
}

func TestParseTable_RaggedRows(t *testing.T) {
	text := "a,b,c\n1,2\n1,2,3,4\n\n5\n"
	rows, err := ParseTable(text, FormatCSV, 0)
	if err != nil {
		t.Fatalf("ParseTable() error: %v", err)
	}
	want := []map[string]string{
		{"a": "1", "b": "2"},
		{"a": "1", "b": "2", "c": "3"},
		{"a": "5"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("ParseTable() = %v, want %v", rows, want)
	}
}

func TestParseTable_Malformed(t *testing.T) {
	text := "a,b\n1,2\n\"unterminated,3\n"
	rows, err := ParseTable(text, FormatCSV, 0)
	if err == nil {
		t.Fatal("expected parse error")
	}

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Format != FormatCSV {
		t.Errorf("unexpected format %q", pe.Format)
	}
	if len(rows) != 1 {
		t.Errorf("expected rows before the error to be kept, got %d", len(rows))
	}
}

func TestParseTable_Empty(t *testing.T) {
	for _, f := range []Format{FormatCSV, FormatFields} {
		rows, err := ParseTable("\n\n", f, 0)
		if err != nil {
			t.Errorf("%s: unexpected error %v", f, err)
		}
		if rows == nil || len(rows) != 0 {
			t.Errorf("%s: expected empty non-nil rows, got %v", f, rows)
		}
	}
}

func TestParseTable_HeaderOnly(t *testing.T) {
	rows, err := ParseTable("a,b,c\n", FormatCSV, 0)
	if err != nil || len(rows) != 0 {
		t.Errorf("expected no rows and no error, got %v, %v", rows, err)
	}
}

func TestParseTable_UnknownFormat(t *testing.T) {
	_, err := ParseTable("a\n1\n", Format("xml"), 0)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if !Format("xml").IsUnknown() || FormatCSV.IsUnknown() {
		t.Error("IsUnknown mismatch")
	}
}

func TestParseTable_Fields(t *testing.T) {
	text := `USER         PID %CPU %MEM COMMAND
root           1  0.0  0.1 /sbin/init splash
www-data    1234  1.5  2.0 nginx: worker process

bob           99
`
	rows, err := ParseTable(text, FormatFields, 0)
	if err != nil {
		t.Fatalf("ParseTable() error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0]["COMMAND"] != "/sbin/init splash" {
		t.Errorf("last column should absorb the remainder, got %q", rows[0]["COMMAND"])
	}
	if rows[1]["COMMAND"] != "nginx: worker process" {
		t.Errorf("unexpected command %q", rows[1]["COMMAND"])
	}
	if !reflect.DeepEqual(rows[2], map[string]string{"USER": "bob", "PID": "99"}) {
		t.Errorf("short row should be truncated, got %v", rows[2])
	}
}

func TestCount(t *testing.T) {
	text := "Module Name: a\nDriver Name: x\nDriver Name: y\nDriver Name: z\n"
	if got := Count(text, "Driver Name"); got != 3 {
		t.Errorf("Count() = %d, want 3", got)
	}
	if got := Count(text, ""); got != 0 {
		t.Errorf("Count() with empty marker = %d, want 0", got)
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		{"日本", 2},
	}
	for _, tt := range tests {
		if got := Length(tt.in); got != tt.want {
			t.Errorf("Length(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCountEntries(t *testing.T) {
	lsmod := "Module                  Size  Used by\nnvme                   49152  3\nxfs                  2000000  1\n\n"
	if got := CountEntries(lsmod, ""); got != 2 {
		t.Errorf("CountEntries() = %d, want 2", got)
	}
	if got := CountEntries("", ""); got != 0 {
		t.Errorf("CountEntries(empty) = %d, want 0", got)
	}
	if got := CountEntries("Driver Name: a\nDriver Name: b\n", "Driver Name"); got != 2 {
		t.Errorf("CountEntries(marker) = %d, want 2", got)
	}
}

func TestFirstFields(t *testing.T) {
	scan := "/dev/sda -d scsi # /dev/sda, SCSI device\n\n/dev/nvme0 -d nvme # /dev/nvme0, NVMe device\n# comment\n"
	got := FirstFields(scan)
	want := []string{"/dev/sda", "/dev/nvme0"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FirstFields() = %v, want %v", got, want)
	}
}

func TestParsers_NeverPanic(t *testing.T) {
	inputs := []string{
		"", "\x00\xff\xfe", "\"", "=", ":", "\r\n\r\n", strings.Repeat("a,", 1000),
		"\"a\"\"b\",c\n\"", "   \t  \n\t",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("parser panicked on %q: %v", in, r)
				}
			}()
			_ = ParseKV(in)
			_ = ParseKV(in, WithKVDelimiter(":"))
			_, _ = ParseTable(in, FormatCSV, 40)
			_, _ = ParseTable(in, FormatFields, 40)
			_ = Count(in, "a")
			_ = Length(in)
			_ = CountEntries(in, "")
			_ = FirstFields(in)
		}()
	}
}
