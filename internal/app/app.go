package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tendant/photo-days/internal/capture"
	"github.com/tendant/photo-days/internal/chrono"
	"github.com/tendant/photo-days/internal/config"
	"github.com/tendant/photo-days/internal/report"
)

// App runs one photo-days invocation: capture lookup, day counts and report.
type App struct {
	cfg      config.Config
	log      *zap.Logger
	resolver CaptureResolver
	renderer report.Renderer
}

// New returns an App rendering in cfg.Format. A non-positive worker count
// falls back to one.
func New(cfg config.Config, log *zap.Logger, resolver CaptureResolver) (*App, error) {
	r, err := report.New(cfg.Format)
	if err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &App{cfg: cfg, log: log, resolver: resolver, renderer: r}, nil
}

// Run resolves every file under paths, computes day counts and writes the
// report to out.
func (a *App) Run(ctx context.Context, paths []string, out io.Writer) error {
	files, err := capture.Expand(paths)
	if err != nil {
		return fmt.Errorf("expand paths: %w", err)
	}
	if len(files) == 0 {
		return ErrNoInput
	}

	started := time.Now()
	records, err := a.resolveAll(ctx, files)
	if err != nil {
		return err
	}
	a.log.Info("capture times resolved",
		zap.Int("files", len(records)),
		zap.Int("resolved", countResolved(records)),
		zap.Duration("took", time.Since(started)),
	)

	cal := a.calendar(records)
	results := DayCounts(cal, records)

	if a.cfg.Summary {
		doc := report.Document{
			Birthday:    cal.Reference,
			HasBirthday: cal.HasReference,
			Summary:     chrono.Summarize(results),
		}
		if err := a.renderer.Summary(out, doc); err != nil {
			return fmt.Errorf("%w: %v", ErrRender, err)
		}
		return nil
	}

	entries := make([]report.Entry, len(records))
	for i, rec := range records {
		entries[i] = report.Entry{
			File:     rec.File,
			Days:     results[i].Days,
			Captured: rec.Captured,
			Resolved: rec.Resolved,
			Method:   string(rec.Method),
		}
	}
	if err := a.renderer.Plain(out, entries); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// resolveAll looks up capture times concurrently. Records keep the order of
// files.
func (a *App) resolveAll(ctx context.Context, files []string) ([]capture.Record, error) {
	records := make([]capture.Record, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = a.resolver.Resolve(gctx, f)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, ctx.Err()
}

// calendar picks the reference date: the configured birthday, else the
// earliest capture date when auto-detection is on.
func (a *App) calendar(records []capture.Record) chrono.Calendar {
	if a.cfg.HasBirthday {
		return chrono.NewCalendar(a.cfg.Birthday, a.cfg.Offset)
	}
	if !a.cfg.AutoDetectBirthday {
		a.log.Warn("no birthday given, every day count is unknown")
		return chrono.Calendar{Offset: a.cfg.Offset}
	}

	ref, ok := chrono.InferReferenceDate(Instants(records))
	if !ok {
		a.log.Warn("can't detect birthday, no capture time could be resolved")
		return chrono.Calendar{Offset: a.cfg.Offset}
	}
	a.log.Info("birthday detected", zap.String("birthday", ref.Format(config.BirthdayLayout)))
	return chrono.NewCalendar(ref, a.cfg.Offset)
}

// Instants extracts the capture instants of records, in order.
func Instants(records []capture.Record) []chrono.Instant {
	out := make([]chrono.Instant, len(records))
	for i, rec := range records {
		out[i] = chrono.Instant{At: rec.Captured, OK: rec.Resolved}
	}
	return out
}

// DayCounts computes one result per record, in order.
func DayCounts(cal chrono.Calendar, records []capture.Record) []chrono.DayCountResult {
	out := make([]chrono.DayCountResult, len(records))
	for i, rec := range records {
		out[i] = chrono.DayCountResult{
			File: rec.File,
			Days: cal.DayCount(chrono.Instant{At: rec.Captured, OK: rec.Resolved}),
		}
	}
	return out
}

func countResolved(records []capture.Record) int {
	n := 0
	for _, rec := range records {
		if rec.Resolved {
			n++
		}
	}
	return n
}
