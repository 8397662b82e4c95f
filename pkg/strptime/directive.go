package strptime

type itemKind uint8

const (
	itemLiteral itemKind = iota
	itemYear
	itemYear2
	itemMonth
	itemMonthShort
	itemMonthLong
	itemDay
	itemDaySpace
	itemHour
	itemHour12
	itemAMPM
	itemMinute
	itemSecond
	itemFrac      // %f
	itemDotFrac   // %.f
	itemDotFracN  // %.3f %.6f %.9f
	itemFracN     // %3f %6f %9f
	itemOffset    // %z
	itemWeekShort // %a
	itemWeekLong  // %A
)

type item struct {
	kind itemKind
	lit  byte
	n    int // digit count for itemDotFracN / itemFracN
}

// width returns the static byte width of it, or -1 when it varies.
func (it item) width() int {
	switch it.kind {
	case itemLiteral:
		return 1
	case itemYear:
		return 4
	case itemYear2, itemMonth, itemDay, itemHour, itemMinute, itemSecond:
		return 2
	case itemDotFracN:
		return it.n + 1
	case itemFracN:
		return it.n
	default:
		return -1
	}
}

func lit(c byte) item { return item{kind: itemLiteral, lit: c} }

// composites expands shorthand directives into their components.
var composites = map[byte][]item{
	'T': {{kind: itemHour}, lit(':'), {kind: itemMinute}, lit(':'), {kind: itemSecond}},
	'R': {{kind: itemHour}, lit(':'), {kind: itemMinute}},
	'F': {{kind: itemYear}, lit('-'), {kind: itemMonth}, lit('-'), {kind: itemDay}},
	'D': {{kind: itemMonth}, lit('/'), {kind: itemDay}, lit('/'), {kind: itemYear2}},
}

var simple = map[byte]itemKind{
	'Y': itemYear,
	'y': itemYear2,
	'm': itemMonth,
	'b': itemMonthShort,
	'h': itemMonthShort,
	'B': itemMonthLong,
	'd': itemDay,
	'e': itemDaySpace,
	'H': itemHour,
	'I': itemHour12,
	'p': itemAMPM,
	'P': itemAMPM,
	'M': itemMinute,
	'S': itemSecond,
	'f': itemFrac,
	'z': itemOffset,
	'a': itemWeekShort,
	'A': itemWeekLong,
}

// lexItems splits a pattern into items. The second result is the byte
// offset of the first unsupported directive, or -1.
func lexItems(pattern string) ([]item, int) {
	items := make([]item, 0, len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			items = append(items, lit(c))
			continue
		}
		start := i
		i++
		if i >= len(pattern) {
			return nil, start
		}
		d := pattern[i]
		if k, ok := simple[d]; ok {
			items = append(items, item{kind: k})
			continue
		}
		if exp, ok := composites[d]; ok {
			items = append(items, exp...)
			continue
		}
		switch d {
		case '%':
			items = append(items, lit('%'))
		case '.':
			if i+1 < len(pattern) && pattern[i+1] == 'f' {
				items = append(items, item{kind: itemDotFrac})
				i++
				continue
			}
			if i+2 < len(pattern) && isFracWidth(pattern[i+1]) && pattern[i+2] == 'f' {
				items = append(items, item{kind: itemDotFracN, n: int(pattern[i+1] - '0')})
				i += 2
				continue
			}
			return nil, start
		case '3', '6', '9':
			if i+1 < len(pattern) && pattern[i+1] == 'f' {
				items = append(items, item{kind: itemFracN, n: int(d - '0')})
				i++
				continue
			}
			return nil, start
		case ':':
			if i+1 < len(pattern) && pattern[i+1] == 'z' {
				items = append(items, item{kind: itemOffset})
				i++
				continue
			}
			return nil, start
		default:
			return nil, start
		}
	}
	return items, -1
}

func isFracWidth(c byte) bool { return c == '3' || c == '6' || c == '9' }
