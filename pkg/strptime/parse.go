package strptime

// Parse matches s against the whole format and returns the extracted
// fields. On failure the returned error is a Failure. Literal bytes in the
// format, whitespace included, match exactly one identical input byte.
func (f *Format) Parse(s string) (Parsed, error) {
	var p Parsed
	pos := 0
	for _, it := range f.items {
		n, fail := parseItem(&p, it, s[pos:])
		if fail != 0 {
			return p, fail
		}
		pos += n
	}
	if pos < len(s) {
		return p, TooLong
	}
	return p, nil
}

// ParseDate parses s as a date.
func (f *Format) ParseDate(s string) (DateTime, error) {
	p, err := f.Parse(s)
	if err != nil {
		return DateTime{}, err
	}
	return p.Date()
}

// ParseTime parses s as a time of day.
func (f *Format) ParseTime(s string) (DateTime, error) {
	p, err := f.Parse(s)
	if err != nil {
		return DateTime{}, err
	}
	return p.Time()
}

// ParseDateTime parses s as a naive datetime.
func (f *Format) ParseDateTime(s string) (DateTime, error) {
	p, err := f.Parse(s)
	if err != nil {
		return DateTime{}, err
	}
	return p.DateTime()
}

func parseItem(p *Parsed, it item, s string) (int, Failure) {
	switch it.kind {
	case itemLiteral:
		if len(s) == 0 {
			return 0, TooShort
		}
		if s[0] != it.lit {
			return 0, Invalid
		}
		return 1, 0
	case itemYear:
		v, n, fail := number(s, 4, 4)
		if fail != 0 {
			return 0, fail
		}
		return n, p.put(fYear, &p.year, v)
	case itemYear2:
		v, n, fail := number(s, 1, 2)
		if fail != 0 {
			return 0, fail
		}
		return n, p.put(fYear, &p.year, century(v))
	case itemMonth:
		return ranged(s, 1, 12, func(v int) Failure { return p.put(fMonth, &p.month, v) })
	case itemDay:
		return ranged(s, 1, 31, func(v int) Failure { return p.put(fDay, &p.day, v) })
	case itemDaySpace:
		skip := 0
		if len(s) > 0 && s[0] == ' ' {
			skip = 1
		}
		n, fail := ranged(s[skip:], 1, 31, func(v int) Failure { return p.put(fDay, &p.day, v) })
		return n + skip, fail
	case itemHour:
		return ranged(s, 0, 23, func(v int) Failure { return p.put(fHour, &p.hour, v) })
	case itemHour12:
		return ranged(s, 1, 12, func(v int) Failure { return p.put(fHour12, &p.hour12, v) })
	case itemMinute:
		return ranged(s, 0, 59, func(v int) Failure { return p.put(fMinute, &p.minute, v) })
	case itemSecond:
		return ranged(s, 0, 59, func(v int) Failure { return p.put(fSecond, &p.second, v) })
	case itemAMPM:
		if len(s) < 2 {
			return 0, TooShort
		}
		var pm int
		switch {
		case equalFold(s[:2], "am"):
		case equalFold(s[:2], "pm"):
			pm = 1
		default:
			return 0, Invalid
		}
		return 2, p.put(fAMPM, &p.pm, pm)
	case itemFrac:
		return fraction(p, s)
	case itemDotFrac:
		if len(s) == 0 || s[0] != '.' {
			return 0, 0
		}
		n, fail := fraction(p, s[1:])
		return n + 1, fail
	case itemDotFracN:
		if len(s) == 0 {
			return 0, TooShort
		}
		if s[0] != '.' {
			return 0, Invalid
		}
		n, fail := fixedFraction(p, s[1:], it.n)
		return n + 1, fail
	case itemFracN:
		return fixedFraction(p, s, it.n)
	case itemOffset:
		return offset(p, s)
	case itemMonthShort:
		return name(s, shortMonthNames, nil, func(i int) Failure { return p.put(fMonth, &p.month, i+1) })
	case itemMonthLong:
		return name(s, longMonthNames, shortMonthNames, func(i int) Failure { return p.put(fMonth, &p.month, i+1) })
	case itemWeekShort:
		return name(s, shortDayNames, nil, func(int) Failure { return 0 })
	case itemWeekLong:
		return name(s, longDayNames, shortDayNames, func(int) Failure { return 0 })
	}
	return 0, BadFormat
}

// number reads between min and max leading decimal digits.
func number(s string, min, max int) (int, int, Failure) {
	v, n := 0, 0
	for n < max && n < len(s) && isDigit(s[n]) {
		v = v*10 + int(s[n]-'0')
		n++
	}
	if n < min {
		if n == len(s) {
			return 0, 0, TooShort
		}
		return 0, 0, Invalid
	}
	return v, n, 0
}

func ranged(s string, lo, hi int, store func(int) Failure) (int, Failure) {
	v, n, fail := number(s, 1, 2)
	if fail != 0 {
		return 0, fail
	}
	if v < lo || v > hi {
		return 0, OutOfRange
	}
	return n, store(v)
}

func century(v int) int {
	if v < 70 {
		return 2000 + v
	}
	return 1900 + v
}

// fraction reads one or more digits; digits past the ninth are consumed
// but do not contribute.
func fraction(p *Parsed, s string) (int, Failure) {
	v, n := 0, 0
	for n < len(s) && isDigit(s[n]) {
		if n < 9 {
			v = v*10 + int(s[n]-'0')
		}
		n++
	}
	if n == 0 {
		if len(s) == 0 {
			return 0, TooShort
		}
		return 0, Invalid
	}
	for i := n; i < 9; i++ {
		v *= 10
	}
	return n, p.put(fNano, &p.nano, v)
}

func fixedFraction(p *Parsed, s string, digits int) (int, Failure) {
	v, n, fail := number(s, digits, digits)
	if fail != 0 {
		return 0, fail
	}
	return n, p.put(fNano, &p.nano, v*pow10[9-digits])
}

var pow10 = [...]int{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000, 1_000_000_000}

// offset reads Z, +hh, +hhmm or +hh:mm.
func offset(p *Parsed, s string) (int, Failure) {
	if len(s) == 0 {
		return 0, TooShort
	}
	if s[0] == 'Z' || s[0] == 'z' {
		return 1, p.put(fOffset, &p.offset, 0)
	}
	sign := 1
	switch s[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, Invalid
	}
	hh, n, fail := number(s[1:], 2, 2)
	if fail != 0 {
		return 0, fail
	}
	pos := 1 + n
	mm := 0
	rest := s[pos:]
	if len(rest) > 0 && rest[0] == ':' {
		v, m, fail := number(rest[1:], 2, 2)
		if fail != 0 {
			return 0, fail
		}
		mm, pos = v, pos+1+m
	} else if len(rest) >= 2 && isDigit(rest[0]) && isDigit(rest[1]) {
		mm, pos = int(rest[0]-'0')*10+int(rest[1]-'0'), pos+2
	}
	if hh > 23 || mm > 59 {
		return 0, OutOfRange
	}
	return pos, p.put(fOffset, &p.offset, sign*(hh*3600+mm*60))
}

// name matches the longest candidate from primary, then from fallback,
// ignoring ASCII case.
func name(s string, primary, fallback []string, store func(int) Failure) (int, Failure) {
	for _, set := range [][]string{primary, fallback} {
		for i, cand := range set {
			if len(s) >= len(cand) && equalFold(s[:len(cand)], cand) {
				return len(cand), store(i)
			}
		}
	}
	if len(s) < 3 {
		return 0, TooShort
	}
	return 0, Invalid
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func equalFold(s, lower string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != lower[i] {
			return false
		}
	}
	return true
}
