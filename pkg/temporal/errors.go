package temporal

import (
	"errors"

	nerrors "github.com/ajitpratap0/strtemporal/pkg/errors"
)

var (
	// ErrFormatUndeterminable is returned when no format was given and none
	// could be sniffed, including when every value is null.
	ErrFormatUndeterminable = errors.New("unable to determine format")

	// ErrZoneSupport is returned when a timezone is requested from a build
	// without zone support.
	ErrZoneSupport = errors.New("timezone support not compiled in")
)

func formatUndeterminable(column string, kind Kind, reason string) *nerrors.Error {
	return nerrors.Wrap(ErrFormatUndeterminable, nerrors.ErrorTypeValidation, reason).
		WithDetail("column", column).
		WithDetail("kind", kind.String())
}

func zoneSupportMissing(column string) error {
	return nerrors.Wrap(ErrZoneSupport, nerrors.ErrorTypeCapability, "timezone-aware conversion unavailable").
		WithDetail("column", column)
}
