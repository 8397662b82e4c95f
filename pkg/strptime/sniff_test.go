package strptime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniff(t *testing.T) {
	tests := []struct {
		kind   Kind
		sample string
		want   string
	}{
		{KindDate, "2021-01-01", "%Y-%m-%d"},
		{KindDate, "2021/01/01", "%Y/%m/%d"},
		{KindDate, "31.12.2021", "%d.%m.%Y"},
		{KindDate, "31-12-2021", "%d-%m-%Y"},
		{KindTime, "10:11:12", "%T"},
		{KindTime, "10:11:12.123456", "%T%.6f"},
		{KindDatetime, "2021-01-01T10:11:12", "%Y-%m-%dT%H:%M:%S%.f"},
		{KindDatetime, "2021-01-01 10:11:12.5", "%Y-%m-%d %H:%M:%S%.f"},
		{KindDatetime, "2021-01-01 10:11", "%Y-%m-%d %H:%M"},
		{KindDatetime, "20210101101112", "%Y%m%d%H%M%S"},
		{KindDatetime, "2021-01-01T10:11:12+01:00", "%Y-%m-%dT%H:%M:%S%.f%:z"},
		{KindDatetime, "31/12/2021 23:59", "%d/%m/%Y %H:%M"},
		{KindDatetime, "2021-01-01", "%Y-%m-%d"},
		{KindDatetime, "31.01.2021", "%d.%m.%Y"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String()+"/"+tt.sample, func(t *testing.T) {
			got, ok := Sniff(tt.kind, tt.sample)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSniffNoMatch(t *testing.T) {
	for _, kind := range []Kind{KindDate, KindTime, KindDatetime} {
		_, ok := Sniff(kind, "not a date")
		assert.False(t, ok, kind.String())
	}
	_, ok := Sniff(KindDate, "2021-02-30")
	assert.False(t, ok)
}

// Every catalog pattern must sniff back to itself (or an earlier pattern
// accepting the same text) and round-trip the rendered value.
func TestCatalogRoundTrip(t *testing.T) {
	values := []DateTime{
		{Year: 2021, Month: 1, Day: 2, Hour: 3, Minute: 4, Second: 5},
		{Year: 1999, Month: 12, Day: 31, Hour: 23, Minute: 59, Second: 59, Nanosecond: 250_000_000},
		{Year: 2024, Month: 2, Day: 29},
	}

	groups := map[Kind][][]string{
		KindDate:     {DateYMD, DateDMY},
		KindTime:     {TimePatterns},
		KindDatetime: {DatetimeYMD, DatetimeDMY, DateYMD, DateDMY},
	}

	for kind, lists := range groups {
		var order []string
		for _, l := range lists {
			order = append(order, l...)
		}
		for i, pattern := range order {
			f := MustCompile(pattern)
			for _, v := range values {
				text := f.Format(v, 3600)
				got, ok := Sniff(kind, text)
				require.True(t, ok, "%s %s %q", kind, pattern, text)
				assert.LessOrEqual(t, indexOf(order, got), i, "%s %q sniffed as %s", pattern, text, got)

				g := MustCompile(got)
				p, err := g.Parse(text)
				require.NoError(t, err)
				again, err := f.Parse(text)
				require.NoError(t, err)
				assert.Equal(t, rebuild(t, kind, &again), rebuild(t, kind, &p))
			}
		}
	}
}

func rebuild(t *testing.T, kind Kind, p *Parsed) DateTime {
	t.Helper()
	var (
		dt  DateTime
		err error
	)
	switch kind {
	case KindDate:
		dt, err = p.Date()
	case KindTime:
		dt, err = p.Time()
	default:
		dt, err = p.DateTimeOrMidnight()
	}
	require.NoError(t, err)
	return dt
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return len(list)
}

func TestFormatRender(t *testing.T) {
	dt := DateTime{Year: 2021, Month: 3, Day: 7, Hour: 15, Minute: 4, Second: 5, Nanosecond: 120_000}
	assert.Equal(t, "2021-03-07T15:04:05.000120+05:30", MustCompile("%Y-%m-%dT%H:%M:%S%.f%:z").Format(dt, 5*3600+1800))
	assert.Equal(t, "Sun, 07 Mar 21 03:04 PM", MustCompile("%a, %d %b %y %I:%M %p").Format(dt, 0))
	assert.Equal(t, "March  7 -01:00", MustCompile("%B %e %z").Format(dt, -3600))
	assert.Equal(t, "-05:30 -05:30", MustCompile("%z %z").Format(dt, -(5*3600+1800)))
	assert.Equal(t, "15:04 +00:00/+00:00", MustCompile("%H:%M %z/%z").Format(dt, 0))
}

func TestCalendarInverse(t *testing.T) {
	for _, days := range []int64{-719468, -1, 0, 59, 365, 11016, 18628, 2932896} {
		y, m, d := civilFromDays(days)
		assert.Equal(t, days, daysFromCivil(y, m, d))
	}
	assert.Equal(t, int64(18628), DateTime{Year: 2021, Month: 1, Day: 1}.EpochDays())
	assert.Equal(t, int64(-1), DateTime{Year: 1969, Month: 12, Day: 31}.EpochDays())
	assert.Equal(t, 4, DateTime{Year: 1970, Month: 1, Day: 1}.Weekday())
}
