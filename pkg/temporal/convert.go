// Package temporal converts string columns into date, time and datetime
// columns.
//
// A conversion resolves a format (explicit, or sniffed from the first
// non-null value), compiles it, and decodes every value. Fixed-width formats
// are decoded by a fast offset-based parser that falls back to the general
// parser on a miss. Duplicate strings are memoized when the column is long
// enough for the cache to pay off. Values that do not parse become nulls; the
// call as a whole only fails when no format can be established or when a
// timezone is requested from a build without zone support.
package temporal

import (
	"context"
	"errors"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"go.uber.org/zap"

	"github.com/ajitpratap0/strtemporal/pkg/columnar"
	nerrors "github.com/ajitpratap0/strtemporal/pkg/errors"
	"github.com/ajitpratap0/strtemporal/pkg/metrics"
	"github.com/ajitpratap0/strtemporal/pkg/observability"
	pstrings "github.com/ajitpratap0/strtemporal/pkg/strings"
	"github.com/ajitpratap0/strtemporal/pkg/strptime"
)

// Convert converts col to kind, dispatching to the exact or non-exact
// conversion selected by opts. It records a trace span and latency metrics
// around the call.
func Convert(ctx context.Context, col columnar.StringColumn, kind Kind, opts Options) (*columnar.TemporalColumn, error) {
	_, span := observability.StartSpan(ctx, "temporal.convert")
	defer span.End()
	span.SetAttribute("column", col.Name())
	span.SetAttribute("kind", kind.String())
	span.SetAttribute("rows", col.Len())
	span.SetAttribute("exact", !opts.NonExact)

	collector := metrics.NewCollector(kind.String())
	timer := metrics.NewTimer("temporal.convert")

	var (
		out *columnar.TemporalColumn
		err error
	)
	switch {
	case kind == KindDate && opts.NonExact:
		out, err = ToDateNonExact(col, opts)
	case kind == KindDate:
		out, err = ToDate(col, opts)
	case kind == KindTime:
		out, err = ToTime(col, opts)
	case kind == KindDatetime && opts.NonExact:
		out, err = ToDatetimeNonExact(col, opts)
	case kind == KindDatetime:
		out, err = ToDatetime(col, opts)
	default:
		err = nerrors.New(nerrors.ErrorTypeValidation, "unknown temporal kind").
			WithDetail("column", col.Name()).
			WithDetail("kind", int(kind))
	}
	collector.ObserveLatency(timer.Stop())

	if err != nil {
		span.RecordError(err)
		collector.Error(errorType(err))
		return nil, err
	}
	span.SetAttribute("nulls", out.NullN())
	return out, nil
}

// ToDate converts col to a Date32 column of days since 1970-01-01.
func ToDate(col columnar.StringColumn, opts Options) (*columnar.TemporalColumn, error) {
	format, err := resolveFormat(col, KindDate, opts.Format)
	if err != nil {
		return nil, err
	}

	var st Stats
	dec := newDecoder(format, (*strptime.Parsed).Date, true, &st)
	values, valid := collect(col, opts.Cache, &st, func(s string) (arrow.Date32, bool) {
		dt, ok := dec.decode(s)
		return arrow.Date32(dt.EpochDays()), ok
	})

	b := array.NewDate32Builder(opts.allocator())
	defer b.Release()
	b.AppendValues(values, valid)

	finish(KindDate, col, format, opts, st)
	return columnar.NewTemporalColumn(col.Name(), b.NewArray()), nil
}

// ToTime converts col to a Time64 column of nanoseconds since midnight.
func ToTime(col columnar.StringColumn, opts Options) (*columnar.TemporalColumn, error) {
	format, err := resolveFormat(col, KindTime, opts.Format)
	if err != nil {
		return nil, err
	}

	var st Stats
	dec := newDecoder(format, (*strptime.Parsed).Time, true, &st)
	values, valid := collect(col, opts.Cache, &st, func(s string) (arrow.Time64, bool) {
		dt, ok := dec.decode(s)
		return arrow.Time64(dt.NanosOfDay()), ok
	})

	b := array.NewTime64Builder(opts.allocator(), &arrow.Time64Type{Unit: arrow.Nanosecond})
	defer b.Release()
	b.AppendValues(values, valid)

	finish(KindTime, col, format, opts, st)
	return columnar.NewTemporalColumn(col.Name(), b.NewArray()), nil
}

// ToDatetime converts col to a Timestamp column at opts.Unit.
//
// With TimezoneAware the offset in each value is applied and the output is
// tagged UTC; this path always uses the general parser. Otherwise values are
// naive, and a non-empty Timezone attaches that zone afterwards. A format
// without time fields yields midnight of the parsed date.
func ToDatetime(col columnar.StringColumn, opts Options) (*columnar.TemporalColumn, error) {
	if err := checkZoneSupport(col, opts); err != nil {
		return nil, err
	}
	format, err := resolveFormat(col, KindDatetime, opts.Format)
	if err != nil {
		return nil, err
	}

	build, fast := (*strptime.Parsed).DateTimeOrMidnight, true
	if opts.TimezoneAware {
		build, fast = (*strptime.Parsed).UTC, false
	}

	var st Stats
	dec := newDecoder(format, build, fast, &st)
	toTicks := transformFor(opts.Unit)
	values, valid := collect(col, opts.Cache, &st, func(s string) (arrow.Timestamp, bool) {
		dt, ok := dec.decode(s)
		if !ok {
			return 0, false
		}
		v, ok := toTicks(dt)
		return arrow.Timestamp(v), ok
	})

	finish(KindDatetime, col, format, opts, st)
	return buildTimestamps(col.Name(), values, valid, opts)
}

// buildTimestamps assembles datetime output and applies the zone mode of
// opts.
func buildTimestamps(name string, values []arrow.Timestamp, valid []bool, opts Options) (*columnar.TemporalColumn, error) {
	tz := ""
	if opts.TimezoneAware {
		tz = "UTC"
	}
	b := array.NewTimestampBuilder(opts.allocator(), &arrow.TimestampType{Unit: opts.Unit.Arrow(), TimeZone: tz})
	defer b.Release()
	b.AppendValues(values, valid)
	out := columnar.NewTemporalColumn(name, b.NewArray())

	if opts.TimezoneAware || opts.Timezone == "" {
		return out, nil
	}
	defer out.Release()
	return AttachZone(out, opts.Timezone, opts.Ambiguous, opts.allocator())
}

func checkZoneSupport(col columnar.StringColumn, opts Options) error {
	if zoneSupport || (!opts.TimezoneAware && opts.Timezone == "") {
		return nil
	}
	return zoneSupportMissing(col.Name())
}

// resolveFormat compiles pattern, sniffing it from col when empty.
func resolveFormat(col columnar.StringColumn, kind Kind, pattern string) (*strptime.Format, error) {
	if pattern == "" {
		idx, ok := columnar.FirstNonNull(col)
		if !ok {
			return nil, formatUndeterminable(col.Name(), kind, "all values are null")
		}
		if pattern, ok = strptime.Sniff(kind, col.Value(idx)); !ok {
			return nil, formatUndeterminable(col.Name(), kind, "no known pattern matches the first value").
				WithDetail("sample", col.Value(idx))
		}
	}
	return strptime.Compile(pattern)
}

// decoder turns one string into a calendar value, preferring the fast
// parser when the format allows it.
type decoder struct {
	format *strptime.Format
	build  func(*strptime.Parsed) (strptime.DateTime, error)
	fast   bool
	stats  *Stats
}

func newDecoder(format *strptime.Format, build func(*strptime.Parsed) (strptime.DateTime, error), allowFast bool, st *Stats) *decoder {
	_, fixed := format.FixedLen()
	return &decoder{format: format, build: build, fast: allowFast && fixed, stats: st}
}

func (d *decoder) decode(s string) (strptime.DateTime, bool) {
	if d.fast {
		if p, ok := d.format.ParseFast(pstrings.StringToBytes(s)); ok {
			d.stats.FastPath++
			dt, err := d.build(&p)
			return dt, err == nil
		}
		d.stats.Fallback++
	}
	p, err := d.format.Parse(s)
	if err != nil {
		return strptime.DateTime{}, false
	}
	dt, err := d.build(&p)
	return dt, err == nil
}

// collect runs compute over every non-null value of col, through a parse
// cache when enabled and worthwhile.
func collect[T any](col columnar.StringColumn, useCache bool, st *Stats, compute func(string) (T, bool)) ([]T, []bool) {
	n := col.Len()
	values := make([]T, n)
	valid := make([]bool, n)
	cache := newParseCache[T](useCache, n)

	if col.NullN() == 0 {
		for i := 0; i < n; i++ {
			values[i], valid[i] = cache.getOrParse(col.Value(i), compute)
		}
	} else {
		for i := 0; i < n; i++ {
			if col.IsNull(i) {
				continue
			}
			values[i], valid[i] = cache.getOrParse(col.Value(i), compute)
		}
	}

	st.Values += n - col.NullN()
	st.CacheHits += cache.hits
	st.CacheMisses += cache.misses
	for _, ok := range valid {
		if !ok {
			st.Nulls++
		}
	}
	return values, valid
}

// finish publishes the counters of a call to opts.Stats, the metrics
// registry and the debug log.
func finish(kind Kind, col columnar.StringColumn, format *strptime.Format, opts Options, st Stats) {
	if opts.Stats != nil {
		opts.Stats.Add(st)
	}

	c := metrics.NewCollector(kind.String())
	c.Parsed(st.Values - (st.Nulls - col.NullN()))
	c.Nulls(st.Nulls)
	c.FastPath(st.FastPath)
	c.Fallback(st.Fallback)
	c.CacheHit(st.CacheHits)
	c.CacheMiss(st.CacheMisses)
	c.ScanMiss(st.ScanMisses)

	if log := opts.logger(); log.Core().Enabled(zap.DebugLevel) {
		fixedLen, fixed := format.FixedLen()
		fields := append([]zap.Field{
			zap.String("column", col.Name()),
			zap.String("kind", kind.String()),
			zap.String("format", format.String()),
			zap.Bool("fixed_width", fixed),
			zap.Int("fixed_len", fixedLen),
			zap.Bool("exact", !opts.NonExact),
		}, st.fields()...)
		log.Debug("converted column", fields...)
	}
}

func errorType(err error) string {
	var e *nerrors.Error
	if errors.As(err, &e) {
		return string(e.Type)
	}
	return string(nerrors.ErrorTypeInternal)
}
