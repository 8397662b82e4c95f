package strptime

import "strings"

// Format renders dt using the compiled pattern. offset is written for %z
// directives, in seconds east of UTC.
func (f *Format) Format(dt DateTime, offset int) string {
	return string(f.AppendFormat(make([]byte, 0, len(f.pattern)+8), dt, offset))
}

// AppendFormat appends the rendering of dt to dst.
func (f *Format) AppendFormat(dst []byte, dt DateTime, offset int) []byte {
	for _, it := range f.items {
		switch it.kind {
		case itemLiteral:
			dst = append(dst, it.lit)
		case itemYear:
			dst = appendInt(dst, dt.Year, 4)
		case itemYear2:
			dst = appendInt(dst, dt.Year%100, 2)
		case itemMonth:
			dst = appendInt(dst, dt.Month, 2)
		case itemMonthShort:
			dst = append(dst, title(shortMonthNames[dt.Month-1])...)
		case itemMonthLong:
			dst = append(dst, title(longMonthNames[dt.Month-1])...)
		case itemDay:
			dst = appendInt(dst, dt.Day, 2)
		case itemDaySpace:
			if dt.Day < 10 {
				dst = append(dst, ' ')
			}
			dst = appendInt(dst, dt.Day, 1)
		case itemHour:
			dst = appendInt(dst, dt.Hour, 2)
		case itemHour12:
			h := dt.Hour % 12
			if h == 0 {
				h = 12
			}
			dst = appendInt(dst, h, 2)
		case itemAMPM:
			if dt.Hour < 12 {
				dst = append(dst, "AM"...)
			} else {
				dst = append(dst, "PM"...)
			}
		case itemMinute:
			dst = appendInt(dst, dt.Minute, 2)
		case itemSecond:
			dst = appendInt(dst, dt.Second, 2)
		case itemFrac:
			dst = appendInt(dst, dt.Nanosecond, 9)
		case itemDotFrac:
			switch ns := dt.Nanosecond; {
			case ns == 0:
			case ns%1_000_000 == 0:
				dst = appendInt(append(dst, '.'), ns/1_000_000, 3)
			case ns%1_000 == 0:
				dst = appendInt(append(dst, '.'), ns/1_000, 6)
			default:
				dst = appendInt(append(dst, '.'), ns, 9)
			}
		case itemDotFracN:
			dst = appendInt(append(dst, '.'), dt.Nanosecond/pow10[9-it.n], it.n)
		case itemFracN:
			dst = appendInt(dst, dt.Nanosecond/pow10[9-it.n], it.n)
		case itemOffset:
			sign, abs := byte('+'), offset
			if abs < 0 {
				sign, abs = '-', -abs
			}
			dst = append(dst, sign)
			dst = appendInt(dst, abs/3600, 2)
			dst = append(dst, ':')
			dst = appendInt(dst, abs%3600/60, 2)
		case itemWeekShort:
			dst = append(dst, title(shortDayNames[dt.Weekday()])...)
		case itemWeekLong:
			dst = append(dst, title(longDayNames[dt.Weekday()])...)
		}
	}
	return dst
}

func appendInt(dst []byte, v, width int) []byte {
	var buf [20]byte
	i := len(buf)
	neg := v < 0
	if neg {
		v = -v
	}
	for v >= 10 || len(buf)-i < width-1 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	i--
	buf[i] = byte('0' + v)
	if neg {
		i--
		buf[i] = '-'
	}
	return append(dst, buf[i:]...)
}

func title(s string) string {
	return strings.ToUpper(s[:1]) + s[1:]
}
