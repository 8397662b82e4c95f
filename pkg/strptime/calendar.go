package strptime

import "time"

const (
	secondsPerDay  = 86400
	nanosPerSecond = 1_000_000_000
)

var (
	shortMonthNames = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}
	longMonthNames  = []string{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"}
	shortDayNames   = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}
	longDayNames    = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}
)

// DateTime is a naive proleptic-Gregorian calendar value.
type DateTime struct {
	Year       int
	Month      int
	Day        int
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// EpochDays returns the number of days since 1970-01-01.
func (dt DateTime) EpochDays() int64 {
	return daysFromCivil(dt.Year, dt.Month, dt.Day)
}

// NanosOfDay returns the time-of-day component in nanoseconds.
func (dt DateTime) NanosOfDay() int64 {
	return int64(dt.Hour*3600+dt.Minute*60+dt.Second)*nanosPerSecond + int64(dt.Nanosecond)
}

// EpochSeconds returns whole seconds since the Unix epoch, treating dt as UTC.
func (dt DateTime) EpochSeconds() int64 {
	return dt.EpochDays()*secondsPerDay + int64(dt.Hour*3600+dt.Minute*60+dt.Second)
}

// Time returns dt as a UTC time.Time.
func (dt DateTime) Time() time.Time {
	return time.Date(dt.Year, time.Month(dt.Month), dt.Day, dt.Hour, dt.Minute, dt.Second, dt.Nanosecond, time.UTC)
}

// Weekday returns 0 for Sunday through 6 for Saturday.
func (dt DateTime) Weekday() int {
	w := (dt.EpochDays() + 4) % 7
	if w < 0 {
		w += 7
	}
	return int(w)
}

// FromEpochSeconds is the inverse of EpochSeconds.
func FromEpochSeconds(sec int64, nsec int) DateTime {
	days := floorDiv(sec, secondsPerDay)
	rem := int(sec - days*secondsPerDay)
	y, m, d := civilFromDays(days)
	return DateTime{
		Year: y, Month: m, Day: d,
		Hour: rem / 3600, Minute: rem % 3600 / 60, Second: rem % 60,
		Nanosecond: nsec,
	}
}

func isLeap(y int) bool {
	return y%4 == 0 && (y%100 != 0 || y%400 == 0)
}

func daysIn(y, m int) int {
	switch m {
	case 2:
		if isLeap(y) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// daysFromCivil follows Howard Hinnant's days_from_civil.
func daysFromCivil(y, m, d int) int64 {
	if m <= 2 {
		y--
	}
	era := y / 400
	if y < 0 {
		era = (y - 399) / 400
	}
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	return int64(era)*146097 + int64(doe) - 719468
}

func civilFromDays(z int64) (int, int, int) {
	z += 719468
	era := floorDiv(z, 146097)
	doe := z - era*146097
	yoe := (doe - doe/1460 + doe/36524 - doe/146096) / 365
	y := yoe + era*400
	doy := doe - (365*yoe + yoe/4 - yoe/100)
	mp := (5*doy + 2) / 153
	d := doy - (153*mp+2)/5 + 1
	m := mp + 3
	if m > 12 {
		m -= 12
	}
	if m <= 2 {
		y++
	}
	return int(y), int(m), int(d)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
