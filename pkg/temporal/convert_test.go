package temporal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/strtemporal/pkg/columnar"
	nerrors "github.com/ajitpratap0/strtemporal/pkg/errors"
)

func str(s string) *string { return &s }

// newColumn builds a string column where nil entries are null.
func newColumn(t testing.TB, values ...*string) *columnar.ArrowStrings {
	t.Helper()
	vals := make([]string, len(values))
	valid := make([]bool, len(values))
	for i, v := range values {
		if v != nil {
			vals[i], valid[i] = *v, true
		}
	}
	col := columnar.NewStringColumn(memory.NewGoAllocator(), "c", vals, valid)
	t.Cleanup(col.Release)
	return col
}

func repeated(t testing.TB, s string, n int) *columnar.ArrowStrings {
	values := make([]*string, n)
	for i := range values {
		values[i] = str(s)
	}
	return newColumn(t, values...)
}

func codes(col *columnar.TemporalColumn) []*int64 {
	return col.Values()
}

func i64(v int64) *int64 { return &v }

func TestToDateCacheTransparency(t *testing.T) {
	col := newColumn(t, str("2021-01-01"), str("2021-01-01"), str("2021-01-02"))
	want := []*int64{i64(18628), i64(18628), i64(18629)}

	for _, cache := range []bool{false, true} {
		out, err := ToDate(col, Options{Format: "%Y-%m-%d", Cache: cache})
		require.NoError(t, err)
		assert.Equal(t, want, codes(out), "cache=%v", cache)
		assert.Equal(t, "c", out.Name())
		out.Release()
	}
}

func TestCacheThreshold(t *testing.T) {
	tests := []struct {
		n          int
		wantHits   int
		wantMisses int
	}{
		{n: 50, wantHits: 0, wantMisses: 0},
		{n: 51, wantHits: 50, wantMisses: 1},
	}

	for _, tt := range tests {
		col := repeated(t, "2021-01-01", tt.n)

		var st Stats
		out, err := ToDate(col, Options{Format: "%Y-%m-%d", Cache: true, Stats: &st})
		require.NoError(t, err)
		assert.Equal(t, tt.wantHits, st.CacheHits, "n=%d", tt.n)
		assert.Equal(t, tt.wantMisses, st.CacheMisses, "n=%d", tt.n)

		uncached, err := ToDate(col, Options{Format: "%Y-%m-%d"})
		require.NoError(t, err)
		assert.Equal(t, codes(uncached), codes(out))
		out.Release()
		uncached.Release()
	}
}

func TestConvertIdempotent(t *testing.T) {
	col := newColumn(t, str("2021-03-04 05:06:07"), nil, str("bad"), str("1999-12-31 23:59:59"))
	opts := Options{Format: "%Y-%m-%d %H:%M:%S", Cache: true, Unit: Microseconds}

	first, err := ToDatetime(col, opts)
	require.NoError(t, err)
	defer first.Release()
	second, err := ToDatetime(col, opts)
	require.NoError(t, err)
	defer second.Release()

	assert.Equal(t, codes(first), codes(second))
	assert.Equal(t, first.DataType(), second.DataType())
}

func TestFastPathAndFallback(t *testing.T) {
	col := newColumn(t, str("2021-01-01"), str("2021-1-1"), str("2021-02-30"), nil)

	var st Stats
	out, err := ToDate(col, Options{Format: "%Y-%m-%d", Stats: &st})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, []*int64{i64(18628), i64(18628), nil, nil}, codes(out))
	assert.Equal(t, 2, st.FastPath)
	assert.Equal(t, 1, st.Fallback)
	assert.Equal(t, 3, st.Values)
	assert.Equal(t, 2, st.Nulls)
}

func TestAllNullColumn(t *testing.T) {
	col := newColumn(t, nil, nil)

	for _, kind := range []Kind{KindDate, KindTime, KindDatetime} {
		out, err := Convert(context.Background(), col, kind, Options{})
		require.Error(t, err)
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, ErrFormatUndeterminable), kind.String())
		assert.True(t, nerrors.IsType(err, nerrors.ErrorTypeValidation))
	}
}

func TestUnsniffableColumn(t *testing.T) {
	col := newColumn(t, nil, str("not a date"), str("2021-01-01"))
	_, err := ToDate(col, Options{})
	assert.ErrorIs(t, err, ErrFormatUndeterminable)
}

func TestBadFormat(t *testing.T) {
	col := newColumn(t, str("2021-01-01"))
	_, err := ToDate(col, Options{Format: "%Y-%Q"})
	require.Error(t, err)
	assert.True(t, nerrors.IsType(err, nerrors.ErrorTypeValidation))
	assert.False(t, errors.Is(err, ErrFormatUndeterminable))
}

func TestToDatetimeSniffed(t *testing.T) {
	col := newColumn(t, nil, str("2021-01-01 12:30:00"), str("2021-01-02 00:00:00.25"), str("2021-01-03"))
	out, err := ToDatetime(col, Options{})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, []*int64{
		nil,
		i64(time.Date(2021, 1, 1, 12, 30, 0, 0, time.UTC).UnixNano()),
		i64(time.Date(2021, 1, 2, 0, 0, 0, 250_000_000, time.UTC).UnixNano()),
		nil,
	}, codes(out))
	assert.Equal(t, "", out.TimeZone())
}

func TestToDatetimeUnits(t *testing.T) {
	col := newColumn(t, str("2021-01-01 00:00:01.5"))
	tests := []struct {
		unit TimeUnit
		want int64
	}{
		{Nanoseconds, 1_609_459_201_500_000_000},
		{Microseconds, 1_609_459_201_500_000},
		{Milliseconds, 1_609_459_201_500},
	}
	for _, tt := range tests {
		out, err := ToDatetime(col, Options{Format: "%Y-%m-%d %H:%M:%S%.f", Unit: tt.unit})
		require.NoError(t, err)
		v, ok := out.Value(0)
		assert.True(t, ok)
		assert.Equal(t, tt.want, v, tt.unit.String())
		assert.Equal(t, tt.unit.Arrow(), out.Unit())
		out.Release()
	}
}

func TestToDatetimeDateOnlyFormat(t *testing.T) {
	col := newColumn(t, str("2021-01-02"))
	out, err := ToDatetime(col, Options{Format: "%Y-%m-%d", Unit: Milliseconds})
	require.NoError(t, err)
	defer out.Release()
	assert.Equal(t, []*int64{i64(time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC).UnixMilli())}, codes(out))
}

func TestToDatetimeOverflowIsNull(t *testing.T) {
	col := newColumn(t, str("2300-01-01"))
	out, err := ToDatetime(col, Options{Format: "%Y-%m-%d", Unit: Nanoseconds})
	require.NoError(t, err)
	defer out.Release()
	assert.True(t, out.IsNull(0))
}

func TestToTime(t *testing.T) {
	col := newColumn(t, str("12:30:15.250"), str("25:00:00.000"), nil)
	out, err := ToTime(col, Options{})
	require.NoError(t, err)
	defer out.Release()

	want := int64((12*3600+30*60+15)*time.Second + 250*time.Millisecond)
	assert.Equal(t, []*int64{i64(want), nil, nil}, codes(out))
}

func TestConvertDispatch(t *testing.T) {
	col := newColumn(t, str("foo-2021-01-01-bar"), str("2021-01-01"))

	exact, err := Convert(context.Background(), col, KindDate, Options{Format: "%Y-%m-%d"})
	require.NoError(t, err)
	defer exact.Release()
	assert.Equal(t, []*int64{nil, i64(18628)}, codes(exact))

	loose, err := Convert(context.Background(), col, KindDate, Options{Format: "%Y-%m-%d", NonExact: true})
	require.NoError(t, err)
	defer loose.Release()
	assert.Equal(t, []*int64{i64(18628), i64(18628)}, codes(loose))

	_, err = Convert(context.Background(), col, Kind(42), Options{})
	assert.True(t, nerrors.IsType(err, nerrors.ErrorTypeValidation))
}

func TestParseOptions(t *testing.T) {
	u, err := ParseTimeUnit("us")
	require.NoError(t, err)
	assert.Equal(t, Microseconds, u)
	_, err = ParseTimeUnit("s")
	assert.True(t, nerrors.IsType(err, nerrors.ErrorTypeValidation))

	a, err := ParseAmbiguous("Latest")
	require.NoError(t, err)
	assert.Equal(t, Latest, a)
	a, err = ParseAmbiguous("")
	require.NoError(t, err)
	assert.Equal(t, Earliest, a)
	_, err = ParseAmbiguous("raise")
	assert.Error(t, err)
}

func TestStatsAdd(t *testing.T) {
	var total Stats
	total.Add(Stats{Values: 2, FastPath: 1})
	total.Add(Stats{Values: 3, CacheHits: 4})
	assert.Equal(t, Stats{Values: 5, FastPath: 1, CacheHits: 4}, total)
}
