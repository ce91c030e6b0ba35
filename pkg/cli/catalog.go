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
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/errors"
	"github.com/jettox/diagnostics/pkg/serializer"
)

// Catalogue platform selectors.
const (
	platformHost    = "host"
	platformWindows = "windows"
	platformUnix    = "unix"
)

func catalogCmd() *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Print the command catalogue",
		Description: `Print the read-only commands each domain runs, with their timeouts.

# Examples

  jettox catalog
  jettox catalog --platform windows --domain storage --format yaml`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "platform",
				Usage: "Catalogue to print (host, windows, unix)",
				Value: platformHost,
			},
			&cli.StringSliceFlag{
				Name:  "domain",
				Usage: "Only print these domains",
			},
			newFormatFlag(serializer.FormatTable),
			newOutputFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			cat, err := selectCatalog(cmd.String("platform"))
			if err != nil {
				return err
			}
			domains, err := parseDomains(cmd.StringSlice("domain"))
			if err != nil {
				return err
			}
			specs := filterSpecs(cat.Specs(), domains)

			if outFormat == serializer.FormatTable {
				path := cmd.String(flagOutput)
				if path == "" {
					return writeCatalogTable(cmd.Root().Writer, specs)
				}
				f, err := os.Create(path)
				if err != nil {
					return errors.Wrap(errors.ErrCodeIO, "failed to create output file", err)
				}
				defer f.Close()
				return writeCatalogTable(f, specs)
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String(flagOutput))
			defer func() {
				if closer, ok := w.(serializer.Closer); ok {
					_ = closer.Close()
				}
			}()
			return w.Serialize(ctx, specs)
		},
	}
}

func selectCatalog(platform string) (*command.Catalog, error) {
	switch platform {
	case platformHost, "":
		return command.DefaultCatalog(), nil
	case platformWindows:
		return command.Windows(), nil
	case platformUnix:
		return command.Unix(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown platform %q (supported: host, windows, unix)", platform))
	}
}

func filterSpecs(specs []command.Spec, domains []string) []command.Spec {
	if len(domains) == 0 {
		return specs
	}
	out := make([]command.Spec, 0, len(specs))
	for _, s := range specs {
		if slices.Contains(domains, s.Domain) {
			out = append(out, s)
		}
	}
	return out
}

func writeCatalogTable(w io.Writer, specs []command.Spec) error {
	if w == nil {
		w = os.Stdout
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DOMAIN\tNAME\tTIMEOUT\tCOMMAND")
	for _, s := range specs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Domain, s.Name, s.Timeout, s.Line)
	}
	return tw.Flush()
}
