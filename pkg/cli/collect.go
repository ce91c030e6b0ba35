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
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/jettox/diagnostics/pkg/artifact"
	"github.com/jettox/diagnostics/pkg/collector"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/console"
	"github.com/jettox/diagnostics/pkg/diagnostics"
	"github.com/jettox/diagnostics/pkg/logging"
	"github.com/jettox/diagnostics/pkg/runlog"
	"github.com/jettox/diagnostics/pkg/serializer"
)

func collectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Run the read-only diagnostics collection",
		Description: `Run every domain collector and write the artifacts under --root:

  <domain>/summary.json                 derived summary per domain
  <domain>/raw.txt                      raw transcript per domain
  result/results_of_all_files.json      aggregate report
  result/metrics.prom                   run metrics (Prometheus text format)
  logs/run_<YYYY-MM-DD_HHMMSS>.txt      run log

Nothing on the inspected host is modified. Commands that fail or time out
are recorded in raw.txt and as *_error summary fields.

# Examples

Collect into the current directory:
  jettox collect

Collect into a dedicated folder, domains in parallel, echo the report:
  jettox collect --root /tmp/diag --parallel --print --format yaml

Skip the slow domains:
  jettox collect --skip firmware,storage`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Aliases: []string{"r"},
				Usage:   "Artifact root directory",
				Value:   ".",
				Sources: cli.EnvVars("JETTOX_ROOT"),
			},
			&cli.BoolFlag{
				Name:  "parallel",
				Usage: "Collect domains concurrently",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Disable the console banner and progress lines",
			},
			&cli.BoolFlag{
				Name:  "print",
				Usage: "Print the aggregate report after the run",
			},
			&cli.DurationFlag{
				Name:  "command-rate",
				Usage: "Minimum interval between command launches (0 = unlimited)",
			},
			&cli.StringSliceFlag{
				Name:  "skip",
				Usage: "Domains to skip (comma separated or repeated)",
			},
			&cli.BoolFlag{
				Name:  "no-host-metrics",
				Usage: "Do not read CPU, memory and partition metrics",
			},
			newOutputFlag(),
			newFormatFlag(serializer.FormatJSON),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			skip, err := parseDomains(cmd.StringSlice("skip"))
			if err != nil {
				return err
			}

			store, err := artifact.New(cmd.String("root"))
			if err != nil {
				return err
			}

			level := logging.ParseLogLevel(cmd.String(flagLogLevel))
			sink := runlog.New(slog.Default().Handler(), level)
			log := sink.Logger()

			runner := command.NewShellRunner(
				command.WithLogger(log),
				command.WithRateLimit(cmd.Duration("command-rate")),
			)

			opts := []collector.Option{
				collector.WithRunner(runner),
				collector.WithStore(store),
				collector.WithLogger(log),
			}
			if cmd.Bool("no-host-metrics") {
				opts = append(opts, collector.WithHostMetrics(nil))
			}

			run := &diagnostics.Run{
				Version:  version,
				Store:    store,
				Factory:  collector.NewDefaultFactory(opts...),
				Sink:     sink,
				Console:  newRenderer(cmd.Bool("quiet")),
				Parallel: cmd.Bool("parallel"),
				Skip:     skip,
			}

			if cmd.Bool("print") || cmd.String(flagOutput) != "" {
				printer := serializer.NewFileWriterOrStdout(outFormat, cmd.String(flagOutput))
				defer func() {
					if closer, ok := printer.(serializer.Closer); ok {
						if err := closer.Close(); err != nil {
							slog.Warn("failed to close output", "error", err)
						}
					}
				}()
				run.Printer = printer
			}

			_, err = run.Execute(ctx)
			return err
		},
	}
}

func newRenderer(quiet bool) console.Renderer {
	if quiet {
		return console.Nop{}
	}
	return console.New(os.Stdout)
}
