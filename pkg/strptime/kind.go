package strptime

import (
	"strings"

	nerrors "github.com/ajitpratap0/strtemporal/pkg/errors"
)

// Kind is the temporal type a column is converted to.
type Kind uint8

const (
	KindDate Kind = iota + 1
	KindTime
	KindDatetime
)

func (k Kind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindDatetime:
		return "datetime"
	default:
		return "unknown"
	}
}

// ParseKind parses the lower-case name of a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "date":
		return KindDate, nil
	case "time":
		return KindTime, nil
	case "datetime", "timestamp":
		return KindDatetime, nil
	}
	return 0, nerrors.New(nerrors.ErrorTypeValidation, "unknown temporal kind").WithDetail("kind", s)
}
