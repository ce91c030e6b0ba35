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

package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/errors"
	"github.com/jettox/diagnostics/pkg/logging"
	"github.com/jettox/diagnostics/pkg/serializer"
)

// Shared flag names.
const (
	flagLogLevel = "log-level"
	flagOutput   = "output"
	flagFormat   = "format"
)

func newLogLevelFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagLogLevel,
		Usage:   "log level (debug, info, warn, error)",
		Value:   "info",
		Sources: cli.EnvVars(logging.EnvLogLevel),
	}
}

func newOutputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func newFormatFlag(def serializer.Format) *cli.StringFlag {
	return &cli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"t"},
		Usage:   fmt.Sprintf("Output format (supported: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
		Value:   string(def),
	}
}

// parseOutputFormat validates the --format flag.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String(flagFormat))
	if f.IsUnknown() {
		return "", errors.New(errors.ErrCodeInvalidRequest, fmt.Sprintf("unknown output format: %q", f))
	}
	return f, nil
}

// parseDomains validates domain names given on the command line.
func parseDomains(names []string) ([]string, error) {
	known := make(map[string]bool)
	for _, d := range command.Domains() {
		known[d] = true
	}

	out := make([]string, 0, len(names))
	for _, n := range names {
		for _, part := range strings.Split(n, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			if !known[part] {
				return nil, errors.New(errors.ErrCodeInvalidRequest,
					fmt.Sprintf("unknown domain %q (supported: %s)", part, strings.Join(command.Domains(), ", ")))
			}
			out = append(out, part)
		}
	}
	return out, nil
}
