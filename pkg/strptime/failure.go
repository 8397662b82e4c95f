package strptime

import "errors"

// Failure classifies why a parse attempt did not produce a value. It is
// returned as the error of every parse operation in this package, so callers
// can steer on it without inspecting message text.
type Failure uint8

const (
	// OutOfRange reports a field whose value is outside its permitted range.
	OutOfRange Failure = iota + 1
	// Impossible reports fields that parse on their own but cannot form a
	// value together (Feb 30, conflicting hours).
	Impossible
	// NotEnough reports that a required field was never parsed.
	NotEnough
	// Invalid reports a byte that does not match the format at that position.
	Invalid
	// TooShort reports that the input ended before the format did.
	TooShort
	// TooLong reports trailing input after the format was fully consumed.
	TooLong
	// BadFormat reports an unsupported or malformed format directive.
	BadFormat
)

var failureNames = [...]string{
	OutOfRange: "out of range",
	Impossible: "impossible",
	NotEnough:  "not enough",
	Invalid:    "invalid",
	TooShort:   "too short",
	TooLong:    "too long",
	BadFormat:  "bad format",
}

func (f Failure) String() string {
	if int(f) < len(failureNames) && failureNames[f] != "" {
		return failureNames[f]
	}
	return "unknown"
}

func (f Failure) Error() string {
	return "strptime: " + f.String()
}

// Classify returns the Failure carried by err, or zero when err is nil or
// did not originate from this package.
func Classify(err error) Failure {
	var f Failure
	if errors.As(err, &f) {
		return f
	}
	return 0
}
