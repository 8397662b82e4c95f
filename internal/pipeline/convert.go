// Package pipeline reads text columns from CSV files, converts them with
// package temporal and writes the results.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ajitpratap0/strtemporal/pkg/columnar"
	"github.com/ajitpratap0/strtemporal/pkg/errors"
	"github.com/ajitpratap0/strtemporal/pkg/logger"
	"github.com/ajitpratap0/strtemporal/pkg/observability"
	"github.com/ajitpratap0/strtemporal/pkg/strptime"
	"github.com/ajitpratap0/strtemporal/pkg/temporal"
)

// Job describes one conversion run over a CSV file.
type Job struct {
	Input   string
	Columns []string
	Kind    temporal.Kind
	Options temporal.Options
}

// Result holds the converted columns of a Job.
type Result struct {
	Store    *columnar.Store
	Stats    temporal.Stats
	Duration time.Duration
}

// Release releases the converted columns.
func (r *Result) Release() { r.Store.Release() }

// Run reads the job's columns and converts them concurrently, one goroutine
// per column. Columns share nothing but the allocator.
func Run(ctx context.Context, job Job, mem memory.Allocator) (*Result, error) {
	ctx, span := observability.StartSpan(ctx, "pipeline.run")
	defer span.End()
	span.SetAttribute("input", job.Input)
	span.SetAttribute("columns", len(job.Columns))

	log := logger.WithContext(ctx).With(zap.String("input", job.Input), zap.String("kind", job.Kind.String()))
	start := time.Now()

	if mem == nil {
		mem = memory.DefaultAllocator
	}
	cols, err := ReadCSV(ctx, job.Input, job.Columns, mem)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	results, stats, err := convertAll(ctx, cols, job.Kind, job.Options, mem)
	if err != nil {
		span.RecordError(err)
		log.Error("conversion failed", zap.Error(err), zap.Any("details", errors.Details(err)))
		return nil, err
	}

	store := columnar.NewStore()
	for i, out := range results {
		if err := store.Add(out); err != nil {
			for _, rest := range results[i:] {
				rest.Release()
			}
			store.Release()
			return nil, errors.Wrap(err, errors.ErrorTypeInternal, "failed to collect converted column")
		}
	}

	res := &Result{Store: store, Duration: time.Since(start)}
	for _, st := range stats {
		res.Stats.Add(st)
	}
	log.Info("conversion complete",
		zap.Int("rows", store.Rows()),
		zap.Int("columns", len(results)),
		zap.Int("nulls", res.Stats.Nulls),
		zap.Int("cache_hits", res.Stats.CacheHits),
		zap.Duration("duration", res.Duration))
	return res, nil
}

func convertAll(ctx context.Context, cols []*columnar.ArrowStrings, kind temporal.Kind, opts temporal.Options, mem memory.Allocator) ([]*columnar.TemporalColumn, []temporal.Stats, error) {
	results := make([]*columnar.TemporalColumn, len(cols))
	stats := make([]temporal.Stats, len(cols))

	g, gctx := errgroup.WithContext(ctx)
	for i, col := range cols {
		g.Go(func() error {
			o := opts
			o.Allocator = mem
			o.Stats = &stats[i]
			o.Logger = logger.Get().With(zap.String(string(logger.ColumnKey), col.Name()))
			out, err := temporal.Convert(gctx, col, kind, o)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for _, r := range results {
			if r != nil {
				r.Release()
			}
		}
		return nil, nil, err
	}
	return results, stats, nil
}

// SniffResult is the format inferred for one column.
type SniffResult struct {
	Column string `json:"column"`
	Sample string `json:"sample,omitempty"`
	Format string `json:"format,omitempty"`
	Found  bool   `json:"found"`
}

// Sniff infers the format of each column from its first non-null value.
func Sniff(ctx context.Context, path string, columns []string, kind temporal.Kind, mem memory.Allocator) ([]SniffResult, error) {
	cols, err := ReadCSV(ctx, path, columns, mem)
	if err != nil {
		return nil, err
	}
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	out := make([]SniffResult, 0, len(cols))
	for _, col := range cols {
		res := SniffResult{Column: col.Name()}
		if idx, ok := columnar.FirstNonNull(col); ok {
			res.Sample = strings.Clone(col.Value(idx))
			res.Format, res.Found = strptime.Sniff(kind, res.Sample)
		}
		out = append(out, res)
	}
	return out, nil
}
