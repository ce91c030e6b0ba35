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

package diagnostics

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/jettox/diagnostics/pkg/aggregate"
	"github.com/jettox/diagnostics/pkg/artifact"
	"github.com/jettox/diagnostics/pkg/collector"
	"github.com/jettox/diagnostics/pkg/command"
	"github.com/jettox/diagnostics/pkg/console"
	"github.com/jettox/diagnostics/pkg/errors"
	"github.com/jettox/diagnostics/pkg/privilege"
	"github.com/jettox/diagnostics/pkg/runlog"
	"github.com/jettox/diagnostics/pkg/serializer"
	"github.com/jettox/diagnostics/pkg/summary"
)

// Run is one diagnostics collection over every domain.
type Run struct {
	// Version is stamped into the report header and banner.
	Version string

	// Store is the artifact root. Required.
	Store *artifact.Store

	// Factory creates the domain collectors. If nil, the default factory is
	// used with Store and the sink's logger.
	Factory collector.Factory

	// Sink records the run log flushed to logs/run_<ts>.txt. If nil, a sink
	// forwarding to slog.Default() is created.
	Sink *runlog.Sink

	// Console renders progress. If nil, output is discarded.
	Console console.Renderer

	// Elevated probes for administrative rights. Defaults to privilege.IsElevated.
	Elevated func() bool

	// Parallel collects domains concurrently. The report keeps domain order.
	Parallel bool

	// Skip lists domains that are not collected.
	Skip []string

	// Printer, if set, receives the aggregate report after it is persisted.
	Printer serializer.Serializer

	// Gatherer is exported to result/metrics.prom. Defaults to the
	// Prometheus default registry.
	Gatherer prometheus.Gatherer

	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

type outcome struct {
	sum     summary.Summary
	err     error
	elapsed time.Duration
}

func (r *Run) init() error {
	if r.Store == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "artifact store is required")
	}
	if r.Sink == nil {
		r.Sink = runlog.New(slog.Default().Handler(), slog.LevelInfo)
	}
	if r.Console == nil {
		r.Console = console.Nop{}
	}
	if r.Elevated == nil {
		r.Elevated = privilege.IsElevated
	}
	if r.Gatherer == nil {
		r.Gatherer = prometheus.DefaultGatherer
	}
	if r.Now == nil {
		r.Now = time.Now
	}
	if r.Factory == nil {
		r.Factory = collector.NewDefaultFactory(
			collector.WithStore(r.Store),
			collector.WithLogger(r.Sink.Logger()),
		)
	}
	return nil
}

// Execute collects every domain, writes the aggregate report, the metrics
// file and the run log, and returns the report.
//
// Only a failure to create the artifact layout or to take the run lock is
// fatal. Domain failures become error placeholders. When ctx is canceled
// the remaining domains are recorded as placeholders, every artifact is
// still written and a CANCELED error is returned alongside the report.
func (r *Run) Execute(ctx context.Context) (*aggregate.Report, error) {
	if err := r.init(); err != nil {
		return nil, err
	}

	log := r.Sink.Logger()
	start := r.Now()
	defer func() {
		runDuration.Observe(r.Now().Sub(start).Seconds())
	}()

	r.Console.Banner(r.Version)

	if err := r.Store.EnsureLayout(command.Domains()...); err != nil {
		log.Error("failed to create artifact layout", "error", err)
		runTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	if err := r.Store.Lock(ctx); err != nil {
		log.Error("failed to take run lock", "error", err)
		runTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	defer func() {
		if err := r.Store.Unlock(); err != nil {
			log.Warn("failed to release run lock", "error", err)
		}
	}()

	log.Info("run started", "root", r.Store.Root(), "version", r.Version, "parallel", r.Parallel)

	admin := r.Elevated()
	log.Info("privilege probe", "admin", admin)
	if !admin {
		log.Warn("not elevated - limited queries")
	}
	r.Console.Admin(admin)

	hostname, _ := os.Hostname()
	agg := aggregate.New(aggregate.Meta{
		Start:    start,
		Admin:    admin,
		Version:  r.Version,
		Hostname: hostname,
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Logger:   log,
	})

	domains := collector.Domains(r.Factory)
	outcomes := r.collect(ctx, log, domains)
	for i, d := range domains {
		agg.Add(d.Name, outcomes[i].sum, outcomes[i].err)
	}

	report, path, err := agg.Persist(ctx, r.Store)
	if err != nil {
		log.Error("aggregate report not written", "error", err)
	}

	if r.Printer != nil {
		if err := r.Printer.Serialize(context.WithoutCancel(ctx), report); err != nil {
			log.Error("failed to print report", "error", err)
		}
	}

	status := "success"
	if ctx.Err() != nil {
		status = statusCanceled
	}
	runTotal.WithLabelValues(status).Inc()

	if mpath, err := r.Store.WriteMetrics(r.Gatherer); err != nil {
		log.Error("failed to write metrics", "error", err)
	} else {
		log.Info("metrics written", "path", mpath)
	}

	var reportBytes int64
	if path != "" {
		if fi, err := os.Stat(path); err == nil {
			reportBytes = fi.Size()
		}
	}

	log.Info("run complete", "total_elapsed", fmt.Sprintf("%.2fs", report.TotalElapsed),
		"failed", len(report.Failed()))

	if lpath, err := r.Store.WriteRunLog(start, r.Sink.Text()); err != nil {
		log.Error("failed to write run log", "error", err)
	} else {
		log.Debug("run log written", "path", lpath)
	}

	r.Console.Complete(console.Panel{
		Root:        r.Store.Root(),
		ResultDir:   r.Store.ResultDir(),
		LogsDir:     r.Store.LogsDir(),
		Total:       report.TotalElapsed,
		ReportBytes: reportBytes,
		Failed:      report.Failed(),
	})

	if err := ctx.Err(); err != nil {
		return report, errors.Wrap(errors.ErrCodeCanceled, "run interrupted", err)
	}
	return report, nil
}

// collect runs the domains and returns their outcomes in domain order.
func (r *Run) collect(ctx context.Context, log *slog.Logger, domains []collector.Domain) []outcome {
	outcomes := make([]outcome, len(domains))

	run := func(i int) {
		d := domains[i]
		switch {
		case slices.Contains(r.Skip, d.Name):
			log.Info("domain skipped", "domain", d.Name)
			domainTotal.WithLabelValues(d.Name, statusSkipped).Inc()
			outcomes[i] = outcome{err: errors.New(errors.ErrCodeInvalidRequest, "skipped by request")}
		case ctx.Err() != nil:
			log.Warn("domain not started", "domain", d.Name, "error", ctx.Err())
			domainTotal.WithLabelValues(d.Name, statusCanceled).Inc()
			outcomes[i] = outcome{err: errors.Wrap(errors.ErrCodeCanceled, "run interrupted before "+d.Name, ctx.Err())}
		default:
			outcomes[i] = r.collectOne(ctx, log, d)
		}
	}

	if !r.Parallel {
		for i := range domains {
			run(i)
		}
		return outcomes
	}

	// Domains never fail the group; each outcome slot is written by one
	// goroutine only.
	var g errgroup.Group
	for i := range domains {
		g.Go(func() error {
			run(i)
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

// collectOne runs a single domain, converting a panic into a placeholder.
func (r *Run) collectOne(ctx context.Context, log *slog.Logger, d collector.Domain) (out outcome) {
	r.Console.DomainStart(d.Name)
	start := r.Now()

	defer func() {
		if p := recover(); p != nil {
			log.Error("domain collector panicked", "domain", d.Name, "panic", p)
			domainTotal.WithLabelValues(d.Name, statusPanic).Inc()
			out = outcome{err: errors.NewWithContext(errors.ErrCodeInternal, fmt.Sprintf("panic: %v", p),
				map[string]any{"domain": d.Name})}
		}
		out.elapsed = r.Now().Sub(start)
		domainDuration.WithLabelValues(d.Name).Observe(out.elapsed.Seconds())
		r.Console.DomainDone(d.Name, out.elapsed, out.err)
	}()

	sum, err := d.Collector.Collect(ctx)
	out = outcome{sum: sum, err: err}

	status := statusOK
	if err != nil {
		status = statusInterrupted
	}
	domainTotal.WithLabelValues(d.Name, status).Inc()
	if sum != nil {
		domainFields.WithLabelValues(d.Name).Set(float64(len(sum)))
		domainErrorFields.WithLabelValues(d.Name).Set(float64(len(sum.Errors())))
	}
	return out
}
