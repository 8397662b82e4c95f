package strptime

// ParseFast decodes b at the static offsets of a fixed-width-safe format
// without the general matcher. It reports false for any mismatch (wrong
// length, non-digit, literal mismatch, out-of-range field), in which case
// the caller should fall back to Parse. For every input of the fixed length
// it agrees with Parse: both fail, or both yield the same fields.
func (f *Format) ParseFast(b []byte) (Parsed, bool) {
	var p Parsed
	if f.fixedLen < 0 || len(b) != f.fixedLen {
		return p, false
	}
	pos := 0
	for _, it := range f.items {
		var fail Failure
		switch it.kind {
		case itemLiteral:
			if b[pos] != it.lit {
				return p, false
			}
		case itemYear:
			v, ok := digits(b[pos : pos+4])
			if !ok {
				return p, false
			}
			fail = p.put(fYear, &p.year, v)
		case itemYear2:
			v, ok := digits(b[pos : pos+2])
			if !ok {
				return p, false
			}
			fail = p.put(fYear, &p.year, century(v))
		case itemMonth:
			fail = fastRanged(b[pos:pos+2], 1, 12, fMonth, &p.month, &p)
		case itemDay:
			fail = fastRanged(b[pos:pos+2], 1, 31, fDay, &p.day, &p)
		case itemHour:
			fail = fastRanged(b[pos:pos+2], 0, 23, fHour, &p.hour, &p)
		case itemMinute:
			fail = fastRanged(b[pos:pos+2], 0, 59, fMinute, &p.minute, &p)
		case itemSecond:
			fail = fastRanged(b[pos:pos+2], 0, 59, fSecond, &p.second, &p)
		case itemDotFracN:
			if b[pos] != '.' {
				return p, false
			}
			v, ok := digits(b[pos+1 : pos+1+it.n])
			if !ok {
				return p, false
			}
			fail = p.put(fNano, &p.nano, v*pow10[9-it.n])
		case itemFracN:
			v, ok := digits(b[pos : pos+it.n])
			if !ok {
				return p, false
			}
			fail = p.put(fNano, &p.nano, v*pow10[9-it.n])
		default:
			return p, false
		}
		if fail != 0 {
			return p, false
		}
		pos += it.width()
	}
	return p, true
}

func fastRanged(b []byte, lo, hi int, flag field, dst *int, p *Parsed) Failure {
	v, ok := digits(b)
	if !ok {
		return Invalid
	}
	if v < lo || v > hi {
		return OutOfRange
	}
	return p.put(flag, dst, v)
}

func digits(b []byte) (int, bool) {
	v := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}
