package strptime

import (
	nerrors "github.com/ajitpratap0/strtemporal/pkg/errors"
)

// Format is a compiled format string. It is immutable and safe to share
// between goroutines.
type Format struct {
	pattern  string
	items    []item
	fixedLen int
	offset   bool
}

// Compile validates pattern and derives its fixed byte length. A pattern is
// fixed-width-safe when every directive decodes to a statically known number
// of bytes; only such patterns are eligible for ParseFast.
func Compile(pattern string) (*Format, error) {
	items, bad := lexItems(pattern)
	if bad >= 0 {
		return nil, nerrors.Wrap(BadFormat, nerrors.ErrorTypeValidation, "unsupported format directive").
			WithDetail("format", pattern).
			WithDetail("offset", bad)
	}

	f := &Format{pattern: pattern, items: items}
	for _, it := range items {
		if it.kind == itemOffset {
			f.offset = true
		}
		w := it.width()
		if w < 0 || f.fixedLen < 0 {
			f.fixedLen = -1
			continue
		}
		f.fixedLen += w
	}
	return f, nil
}

// MustCompile is like Compile but panics on an invalid pattern. It is meant
// for package-level catalogs.
func MustCompile(pattern string) *Format {
	f, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Format) String() string { return f.pattern }

// FixedLen reports the byte length every matching input must have, and
// whether the format is fixed-width-safe at all.
func (f *Format) FixedLen() (int, bool) {
	if f.fixedLen < 0 {
		return 0, false
	}
	return f.fixedLen, true
}

// HasOffset reports whether the format parses a UTC offset.
func (f *Format) HasOffset() bool { return f.offset }

// HasTime reports whether the format carries any time-of-day directive.
func (f *Format) HasTime() bool {
	for _, it := range f.items {
		switch it.kind {
		case itemHour, itemHour12, itemMinute, itemSecond:
			return true
		}
	}
	return false
}
