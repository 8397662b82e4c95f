package strptime

type field uint16

const (
	fYear field = 1 << iota
	fMonth
	fDay
	fHour
	fHour12
	fAMPM
	fMinute
	fSecond
	fNano
	fOffset
)

// Parsed holds the raw fields extracted from one input. Both the general and
// the fast parser fill it, and the same accessors turn it into a value.
type Parsed struct {
	set    field
	year   int
	month  int
	day    int
	hour   int
	hour12 int
	pm     int // 0 am, 1 pm
	minute int
	second int
	nano   int
	offset int // seconds east of UTC
}

func (p *Parsed) put(flag field, dst *int, v int) Failure {
	if p.set&flag != 0 && *dst != v {
		return Impossible
	}
	*dst = v
	p.set |= flag
	return 0
}

func (p *Parsed) has(flags field) bool { return p.set&flags == flags }

// Date builds the calendar date. Year, month and day are required.
func (p *Parsed) Date() (DateTime, error) {
	if !p.has(fYear | fMonth | fDay) {
		return DateTime{}, NotEnough
	}
	if p.day > daysIn(p.year, p.month) {
		return DateTime{}, Impossible
	}
	return DateTime{Year: p.year, Month: p.month, Day: p.day}, nil
}

func (p *Parsed) hourOfDay() (int, error) {
	switch {
	case p.has(fHour12 | fAMPM):
		h := p.hour12%12 + 12*p.pm
		if p.has(fHour) && p.hour != h {
			return 0, Impossible
		}
		return h, nil
	case p.has(fHour):
		return p.hour, nil
	default:
		return 0, NotEnough
	}
}

// Time builds a time of day. Hour and minute are required; seconds and
// fractional seconds default to zero.
func (p *Parsed) Time() (DateTime, error) {
	h, err := p.hourOfDay()
	if err != nil {
		return DateTime{}, err
	}
	if !p.has(fMinute) {
		return DateTime{}, NotEnough
	}
	return DateTime{Year: 1970, Month: 1, Day: 1, Hour: h, Minute: p.minute, Second: p.second, Nanosecond: p.nano}, nil
}

// DateTime builds a naive datetime. Any parsed offset is ignored.
func (p *Parsed) DateTime() (DateTime, error) {
	d, err := p.Date()
	if err != nil {
		return DateTime{}, err
	}
	t, err := p.Time()
	if err != nil {
		return DateTime{}, err
	}
	d.Hour, d.Minute, d.Second, d.Nanosecond = t.Hour, t.Minute, t.Second, t.Nanosecond
	return d, nil
}

// DateTimeOrMidnight is DateTime, except that a value lacking time fields
// resolves to midnight of its date.
func (p *Parsed) DateTimeOrMidnight() (DateTime, error) {
	dt, err := p.DateTime()
	if err == NotEnough {
		return p.Date()
	}
	return dt, err
}

// Offset returns the parsed UTC offset in seconds east of UTC.
func (p *Parsed) Offset() (int, bool) {
	return p.offset, p.has(fOffset)
}

// UTC builds an offset-aware datetime and normalizes it to UTC. The offset
// is required.
func (p *Parsed) UTC() (DateTime, error) {
	if !p.has(fOffset) {
		return DateTime{}, NotEnough
	}
	dt, err := p.DateTime()
	if err != nil {
		return DateTime{}, err
	}
	return FromEpochSeconds(dt.EpochSeconds()-int64(p.offset), dt.Nanosecond), nil
}
