package temporal

import (
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"go.uber.org/zap"

	nerrors "github.com/ajitpratap0/strtemporal/pkg/errors"
	"github.com/ajitpratap0/strtemporal/pkg/logger"
	"github.com/ajitpratap0/strtemporal/pkg/strptime"
)

// Kind is the temporal type a column is converted to.
type Kind = strptime.Kind

const (
	KindDate     = strptime.KindDate
	KindTime     = strptime.KindTime
	KindDatetime = strptime.KindDatetime
)

// TimeUnit is the tick size of a datetime column.
type TimeUnit uint8

const (
	Nanoseconds TimeUnit = iota
	Microseconds
	Milliseconds
)

func (u TimeUnit) String() string {
	switch u {
	case Microseconds:
		return "us"
	case Milliseconds:
		return "ms"
	default:
		return "ns"
	}
}

// Arrow returns the matching Arrow time unit.
func (u TimeUnit) Arrow() arrow.TimeUnit {
	switch u {
	case Microseconds:
		return arrow.Microsecond
	case Milliseconds:
		return arrow.Millisecond
	default:
		return arrow.Nanosecond
	}
}

// ParseTimeUnit accepts ns, us and ms. An empty string means ns.
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ns":
		return Nanoseconds, nil
	case "us", "μs":
		return Microseconds, nil
	case "ms":
		return Milliseconds, nil
	}
	return 0, nerrors.New(nerrors.ErrorTypeValidation, "unknown time unit").WithDetail("unit", s)
}

// Ambiguous selects which instant a wall-clock time repeated by a clock
// transition resolves to.
type Ambiguous uint8

const (
	Earliest Ambiguous = iota
	Latest
)

func (a Ambiguous) String() string {
	if a == Latest {
		return "latest"
	}
	return "earliest"
}

// ParseAmbiguous accepts earliest and latest. An empty string means earliest.
func ParseAmbiguous(s string) (Ambiguous, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "earliest":
		return Earliest, nil
	case "latest":
		return Latest, nil
	}
	return 0, nerrors.New(nerrors.ErrorTypeValidation, "unknown ambiguous resolution").WithDetail("ambiguous", s)
}

// Options configures one conversion call. The zero value converts exactly,
// without a cache, sniffing the format and producing untagged nanosecond
// datetimes.
type Options struct {
	// Format is a strftime-style pattern. Empty means sniff it from the
	// first non-null value.
	Format string
	// Unit is the tick size of datetime output.
	Unit TimeUnit
	// Cache memoizes duplicate strings within the call. It only takes effect
	// for columns longer than 50 values.
	Cache bool
	// TimezoneAware parses an offset from the text and tags output UTC.
	TimezoneAware bool
	// Timezone attaches a zone to naive datetime output.
	Timezone string
	// Ambiguous resolves wall times repeated by a zone's clock transition.
	Ambiguous Ambiguous
	// NonExact searches for the format inside each value instead of
	// matching the whole value. Time columns are always matched exactly.
	NonExact bool

	Allocator memory.Allocator
	Logger    *zap.Logger
	// Stats, when set, accumulates the counters of the call.
	Stats *Stats
}

func (o *Options) allocator() memory.Allocator {
	if o.Allocator == nil {
		return memory.DefaultAllocator
	}
	return o.Allocator
}

func (o *Options) logger() *zap.Logger {
	if o.Logger == nil {
		return logger.Get()
	}
	return o.Logger
}

// Stats counts what happened to the values of one or more calls.
type Stats struct {
	Values      int // non-null inputs
	Nulls       int // null outputs
	FastPath    int
	Fallback    int
	CacheHits   int
	CacheMisses int
	ScanMisses  int
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Values += other.Values
	s.Nulls += other.Nulls
	s.FastPath += other.FastPath
	s.Fallback += other.Fallback
	s.CacheHits += other.CacheHits
	s.CacheMisses += other.CacheMisses
	s.ScanMisses += other.ScanMisses
}

func (s Stats) fields() []zap.Field {
	return []zap.Field{
		zap.Int("values", s.Values),
		zap.Int("nulls", s.Nulls),
		zap.Int("fast_path", s.FastPath),
		zap.Int("fallback", s.Fallback),
		zap.Int("cache_hits", s.CacheHits),
		zap.Int("cache_misses", s.CacheMisses),
		zap.Int("scan_misses", s.ScanMisses),
	}
}
