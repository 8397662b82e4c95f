package temporal

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/ajitpratap0/strtemporal/pkg/columnar"
	"github.com/ajitpratap0/strtemporal/pkg/strptime"
)

// scanState is the position of a non-exact scan over one value.
type scanState uint8

const (
	scanning scanState = iota
	matched
	exhausted
)

// scanner locates a value matching format inside a longer string. It slides
// a window over the input, steered by the failure of each attempt: input
// left over after a complete match (TooLong) drops the last byte of the
// window, any other failure drops the first.
//
// The number of attempts is bounded by len(s)-len(format) where the format
// length is that of the pattern text. Inputs at most one byte longer than the
// pattern text are never matched, and variable-width fields shorter than
// their directive can exhaust the budget early.
type scanner struct {
	format *strptime.Format
	build  func(*strptime.Parsed) (strptime.DateTime, error)
}

type scan struct {
	window  string
	budget  int
	state   scanState
	value   strptime.DateTime
	attempt int
}

func (sc *scanner) start(s string) *scan {
	return &scan{window: s, budget: len(s) - len(sc.format.String()) - 1}
}

// step makes one attempt and moves the scan to its next state.
func (sc *scanner) step(st *scan) {
	if st.attempt >= st.budget || st.window == "" {
		st.state = exhausted
		return
	}
	st.attempt++

	dt, err := sc.try(st.window)
	if err == nil {
		st.value, st.state = dt, matched
		return
	}
	if strptime.Classify(err) == strptime.TooLong {
		// shrink right
		st.window = st.window[:len(st.window)-1]
	} else {
		// advance left
		st.window = st.window[1:]
	}
}

func (sc *scanner) try(s string) (strptime.DateTime, error) {
	p, err := sc.format.Parse(s)
	if err != nil {
		return strptime.DateTime{}, err
	}
	return sc.build(&p)
}

// find runs the scan over s to a terminal state.
func (sc *scanner) find(s string) (strptime.DateTime, bool) {
	st := sc.start(s)
	for st.state == scanning {
		sc.step(st)
	}
	return st.value, st.state == matched
}

// scanColumn runs the scanner over every non-null value of col. It uses
// neither the fast parser nor the parse cache.
func scanColumn[T any](col columnar.StringColumn, sc *scanner, st *Stats, convert func(strptime.DateTime) (T, bool)) ([]T, []bool) {
	n := col.Len()
	values := make([]T, n)
	valid := make([]bool, n)
	for i := 0; i < n; i++ {
		if col.IsNull(i) {
			st.Nulls++
			continue
		}
		st.Values++
		dt, ok := sc.find(col.Value(i))
		if ok {
			values[i], ok = convert(dt)
		}
		valid[i] = ok
		if !ok {
			st.ScanMisses++
			st.Nulls++
		}
	}
	return values, valid
}

// ToDateNonExact converts col to dates, accepting values that contain a
// date embedded in other text, e.g. "foo-2021-01-01-bar".
func ToDateNonExact(col columnar.StringColumn, opts Options) (*columnar.TemporalColumn, error) {
	format, err := resolveFormat(col, KindDate, opts.Format)
	if err != nil {
		return nil, err
	}

	var st Stats
	sc := &scanner{format: format, build: (*strptime.Parsed).Date}
	values, valid := scanColumn(col, sc, &st, func(dt strptime.DateTime) (arrow.Date32, bool) {
		return arrow.Date32(dt.EpochDays()), true
	})

	b := array.NewDate32Builder(opts.allocator())
	defer b.Release()
	b.AppendValues(values, valid)

	finish(KindDate, col, format, opts, st)
	return columnar.NewTemporalColumn(col.Name(), b.NewArray()), nil
}

// ToDatetimeNonExact is the datetime counterpart of ToDateNonExact. Zone
// handling follows ToDatetime.
func ToDatetimeNonExact(col columnar.StringColumn, opts Options) (*columnar.TemporalColumn, error) {
	if err := checkZoneSupport(col, opts); err != nil {
		return nil, err
	}
	format, err := resolveFormat(col, KindDatetime, opts.Format)
	if err != nil {
		return nil, err
	}

	build := (*strptime.Parsed).DateTimeOrMidnight
	if opts.TimezoneAware {
		build = (*strptime.Parsed).UTC
	}

	var st Stats
	sc := &scanner{format: format, build: build}
	toTicks := transformFor(opts.Unit)
	values, valid := scanColumn(col, sc, &st, func(dt strptime.DateTime) (arrow.Timestamp, bool) {
		v, ok := toTicks(dt)
		return arrow.Timestamp(v), ok
	})

	finish(KindDatetime, col, format, opts, st)
	return buildTimestamps(col.Name(), values, valid, opts)
}
