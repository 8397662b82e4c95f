package temporal

import (
	"errors"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/ajitpratap0/strtemporal/pkg/columnar"
	nerrors "github.com/ajitpratap0/strtemporal/pkg/errors"
)

const secondsPerDay = 86_400

// AttachZone reinterprets the naive wall-clock timestamps of col as local
// times in zone and returns them as UTC instants tagged with zone.
//
// A wall time repeated by a clock transition resolves to the earlier or
// later instant according to ambiguous. A wall time skipped by a transition
// does not exist in zone and becomes null. The input is not released.
func AttachZone(col *columnar.TemporalColumn, zone string, ambiguous Ambiguous, mem memory.Allocator) (*columnar.TemporalColumn, error) {
	ts, ok := col.Array().(*array.Timestamp)
	if !ok || col.TimeZone() != "" {
		return nil, nerrors.New(nerrors.ErrorTypeValidation, "zone attachment needs a naive timestamp column").
			WithDetail("column", col.Name()).
			WithDetail("type", col.DataType().String())
	}
	loc, err := loadLocation(zone)
	if err != nil {
		if errors.Is(err, ErrZoneSupport) {
			return nil, zoneSupportMissing(col.Name())
		}
		return nil, nerrors.Wrap(err, nerrors.ErrorTypeConfig, "unknown timezone").
			WithDetail("column", col.Name()).
			WithDetail("timezone", zone)
	}
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	unit := col.Unit()
	perSecond := unitOf(unit).ticksPerSecond()
	b := array.NewTimestampBuilder(mem, &arrow.TimestampType{Unit: unit, TimeZone: zone})
	defer b.Release()
	b.Reserve(ts.Len())

	for i := 0; i < ts.Len(); i++ {
		if ts.IsNull(i) {
			b.AppendNull()
			continue
		}
		wall, sub := splitTicks(int64(ts.Value(i)), perSecond)
		utc, ok := resolveLocal(loc, wall, ambiguous)
		if !ok {
			b.AppendNull()
			continue
		}
		v, ok := joinTicks(utc, sub, perSecond)
		if !ok {
			b.AppendNull()
			continue
		}
		b.Append(arrow.Timestamp(v))
	}
	return columnar.NewTemporalColumn(col.Name(), b.NewArray()), nil
}

// resolveLocal returns the UTC second at which loc shows wall, where wall
// counts seconds since the epoch as if the clock were UTC.
//
// Candidate offsets are those in effect a day either side of wall, plus at
// wall itself; a candidate is kept when loc really uses that offset at the
// instant it implies. Zero survivors is a gap, two is a fold.
func resolveLocal(loc *time.Location, wall int64, ambiguous Ambiguous) (int64, bool) {
	var (
		found      bool
		lo, hi     int64
		candidates = [...]int64{wall - secondsPerDay, wall, wall + secondsPerDay}
	)
	for _, at := range candidates {
		_, off := time.Unix(at, 0).In(loc).Zone()
		utc := wall - int64(off)
		if _, actual := time.Unix(utc, 0).In(loc).Zone(); actual != off {
			continue
		}
		if !found {
			lo, hi, found = utc, utc, true
			continue
		}
		lo = min(lo, utc)
		hi = max(hi, utc)
	}
	if !found {
		return 0, false
	}
	if ambiguous == Latest {
		return hi, true
	}
	return lo, true
}

func unitOf(u arrow.TimeUnit) TimeUnit {
	switch u {
	case arrow.Microsecond:
		return Microseconds
	case arrow.Millisecond:
		return Milliseconds
	default:
		return Nanoseconds
	}
}
