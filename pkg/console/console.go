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

package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Title is the product name shown in the banner and the final panel.
const Title = "JettOX Pro"

// Renderer shows run progress to the operator.
type Renderer interface {
	Banner(version string)
	Admin(elevated bool)
	DomainStart(name string)
	DomainDone(name string, elapsed time.Duration, err error)
	Complete(p Panel)
}

// Panel is the end-of-run summary.
type Panel struct {
	Root      string
	ResultDir string
	LogsDir   string
	// Total is the aggregate total_elapsed_seconds.
	Total float64
	// ReportBytes is the size of the aggregate report; 0 hides the line.
	ReportBytes int64
	// Failed lists domains recorded as error placeholders.
	Failed []string
}

type scheme struct {
	title   *color.Color
	label   *color.Color
	success *color.Color
	warn    *color.Color
	fail    *color.Color
}

func newScheme(enabled bool) *scheme {
	s := &scheme{
		title:   color.New(color.FgGreen, color.Bold),
		label:   color.New(color.Bold),
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		fail:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{s.title, s.label, s.success, s.warn, s.fail} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

// Console renders to a writer, in colour when the writer is a terminal.
type Console struct {
	w      io.Writer
	mu     sync.Mutex
	colors *scheme
}

// New creates a console writing to w. Colour is enabled only for terminal
// file descriptors and honours NO_COLOR.
func New(w io.Writer) *Console {
	return &Console{w: w, colors: newScheme(isTerminal(w))}
}

// NewWithColor creates a console with colour forced on or off.
func NewWithColor(w io.Writer, enabled bool) *Console {
	return &Console{w: w, colors: newScheme(enabled)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, format, args...)
}

func rule(text string) string {
	const width = 60
	pad := width - len(text) - 2
	if pad < 2 {
		return text
	}
	left := pad / 2
	return strings.Repeat("=", left) + " " + text + " " + strings.Repeat("=", pad-left)
}

// Banner prints the product title.
func (c *Console) Banner(version string) {
	title := Title + " - Deep Diagnostics"
	if version != "" {
		title += " " + version
	}
	c.printf("%s\n\n", c.colors.title.Sprint(rule(title)))
}

// Admin reports the privilege probe result.
func (c *Console) Admin(elevated bool) {
	if elevated {
		c.printf("%s %s\n\n", c.colors.label.Sprint("Admin:"), c.colors.success.Sprint("yes"))
		return
	}
	c.printf("%s %s\n\n", c.colors.label.Sprint("Admin:"),
		c.colors.warn.Sprint("no - limited queries"))
}

// DomainStart announces a domain.
func (c *Console) DomainStart(name string) {
	c.printf("%s %s\n", c.colors.label.Sprint(strings.ToUpper(name)), "- starting (read-only)")
}

// DomainDone reports a finished domain.
func (c *Console) DomainDone(name string, elapsed time.Duration, err error) {
	if err != nil {
		c.printf("%s %s failed after %.2fs: %v\n\n", c.colors.fail.Sprint("✘"), name, elapsed.Seconds(), err)
		return
	}
	c.printf("%s %s finished in %.2fs\n\n", c.colors.success.Sprint("✔"), name, elapsed.Seconds())
}

// Complete prints the final panel.
func (c *Console) Complete(p Panel) {
	var sb strings.Builder
	sb.WriteString(c.colors.title.Sprint(rule("Run Complete")))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%s %s\n", c.colors.label.Sprint("Check folders in:"), p.Root)
	fmt.Fprintf(&sb, "%s %s\n", c.colors.label.Sprint("Results:"), p.ResultDir)
	fmt.Fprintf(&sb, "%s %s\n", c.colors.label.Sprint("Logs:"), p.LogsDir)
	if p.ReportBytes > 0 {
		fmt.Fprintf(&sb, "%s %s\n", c.colors.label.Sprint("Report size:"), humanize.Bytes(uint64(p.ReportBytes)))
	}
	if len(p.Failed) > 0 {
		fmt.Fprintf(&sb, "%s %s\n", c.colors.fail.Sprint("Failed domains:"), strings.Join(p.Failed, ", "))
	}
	fmt.Fprintf(&sb, "%s %.2fs\n", c.colors.label.Sprint("Total:"), p.Total)
	c.printf("%s", sb.String())
}

// Nop discards all output. It backs --quiet.
type Nop struct{}

func (Nop) Banner(string)                           {}
func (Nop) Admin(bool)                              {}
func (Nop) DomainStart(string)                      {}
func (Nop) DomainDone(string, time.Duration, error) {}
func (Nop) Complete(Panel)                          {}
