//go:build !notimezones

package temporal

import (
	"context"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajitpratap0/strtemporal/pkg/columnar"
	nerrors "github.com/ajitpratap0/strtemporal/pkg/errors"
)

func TestAmbiguousFold(t *testing.T) {
	col := newColumn(t, str("2021-10-31 01:30:00"))
	tests := []struct {
		ambiguous Ambiguous
		want      time.Time
	}{
		{Earliest, time.Date(2021, 10, 31, 0, 30, 0, 0, time.UTC)},
		{Latest, time.Date(2021, 10, 31, 1, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		out, err := ToDatetime(col, Options{
			Format:    "%Y-%m-%d %H:%M:%S",
			Timezone:  "Europe/London",
			Ambiguous: tt.ambiguous,
		})
		require.NoError(t, err)
		assert.Equal(t, "Europe/London", out.TimeZone())
		assert.Equal(t, []*int64{i64(tt.want.UnixNano())}, codes(out), tt.ambiguous.String())
		out.Release()
	}
}

func TestAttachZoneGapAndPlain(t *testing.T) {
	col := newColumn(t, str("2021-03-28 01:30:00"), str("2021-07-01 12:00:00"), nil)
	out, err := ToDatetime(col, Options{Format: "%Y-%m-%d %H:%M:%S", Timezone: "Europe/London", Unit: Microseconds})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, []*int64{
		nil,
		i64(time.Date(2021, 7, 1, 11, 0, 0, 0, time.UTC).UnixMicro()),
		nil,
	}, codes(out))
}

func TestAttachZoneUnknownZone(t *testing.T) {
	col := newColumn(t, str("2021-01-01 00:00:00"))
	_, err := ToDatetime(col, Options{Format: "%Y-%m-%d %H:%M:%S", Timezone: "Not/AZone"})
	require.Error(t, err)
	assert.True(t, nerrors.IsType(err, nerrors.ErrorTypeConfig))
	column, ok := nerrors.Detail(err, "column")
	require.True(t, ok)
	assert.Equal(t, "c", column)
	assert.Contains(t, err.Error(), "timezone=Not/AZone")
}

func TestAttachZoneRejectsZoned(t *testing.T) {
	col := newColumn(t, str("2021-01-01T00:00:00Z"))
	zoned, err := ToDatetime(col, Options{Format: "%Y-%m-%dT%H:%M:%S%z", TimezoneAware: true})
	require.NoError(t, err)
	defer zoned.Release()

	_, err = AttachZone(zoned, "Europe/Paris", Earliest, memory.NewGoAllocator())
	assert.True(t, nerrors.IsType(err, nerrors.ErrorTypeValidation))
}

func TestResolveLocal(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	wall := time.Date(2021, 10, 31, 1, 30, 0, 0, time.UTC).Unix()
	early, ok := resolveLocal(london, wall, Earliest)
	require.True(t, ok)
	late, ok := resolveLocal(london, wall, Latest)
	require.True(t, ok)
	assert.Equal(t, int64(3600), late-early)

	utc, ok := resolveLocal(time.UTC, wall, Latest)
	require.True(t, ok)
	assert.Equal(t, wall, utc)

	// before the epoch
	neg := time.Date(1960, 6, 1, 12, 0, 0, 0, time.UTC).Unix()
	got, ok := resolveLocal(london, neg, Earliest)
	require.True(t, ok)
	assert.Equal(t, time.Date(1960, 6, 1, 11, 0, 0, 0, time.UTC).Unix(), got)
}

func TestTimezoneAware(t *testing.T) {
	col := newColumn(t, str("2021-01-01T00:00:00+01:00"), str("2021-01-01T00:00:00Z"), str("2021-01-01T00:00:00"))
	out, err := ToDatetime(col, Options{Format: "%Y-%m-%dT%H:%M:%S%:z", TimezoneAware: true, Timezone: "Asia/Tokyo"})
	require.NoError(t, err)
	defer out.Release()

	assert.Equal(t, "UTC", out.TimeZone())
	assert.Equal(t, []*int64{
		i64(time.Date(2020, 12, 31, 23, 0, 0, 0, time.UTC).UnixNano()),
		i64(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC).UnixNano()),
		nil,
	}, codes(out))
}

func TestConvertReleasesMemory(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	col := columnar.NewStringColumn(mem, "ts", []string{"2021-10-31 01:30:00", "x"}, nil)
	defer col.Release()

	out, err := Convert(context.Background(), col, KindDatetime, Options{
		Format:    "%Y-%m-%d %H:%M:%S",
		Timezone:  "Europe/London",
		Allocator: mem,
	})
	require.NoError(t, err)
	out.Release()
}
