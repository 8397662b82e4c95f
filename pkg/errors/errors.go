// Package errors provides structured error handling for strtemporal
package errors

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	stringpool "github.com/ajitpratap0/strtemporal/pkg/strings"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeInternal represents internal errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeValidation represents invalid input: formats, kinds, units
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeCapability represents features not compiled into this build
	ErrorTypeCapability ErrorType = "capability"
	// ErrorTypeData represents data processing errors
	ErrorTypeData ErrorType = "data"
	// ErrorTypeFile represents file operation errors
	ErrorTypeFile ErrorType = "file"
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error renders "type: message[: cause]" followed by the details in key
// order, e.g. "validation: no pattern matches [column=ts kind=date]".
func (e *Error) Error() string {
	b := stringpool.GetBuilder()
	defer stringpool.PutBuilder(b)

	b.WriteString(string(e.Type))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	if len(e.Details) > 0 {
		b.WriteString(" [")
		for i, k := range e.detailKeys() {
			if i > 0 {
				_ = b.WriteByte(' ')
			}
			fmt.Fprintf(b, "%s=%v", k, e.Details[k])
		}
		_ = b.WriteByte(']')
	}
	return b.String()
}

func (e *Error) detailKeys() []string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context. Sentinels wrapped
// this way stay reachable through errors.Is.
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the error is of the given type
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// Detail looks key up along the whole chain of err, outermost first, so a
// column recorded deep in a conversion is visible at the pipeline level.
func Detail(err error, key string) (interface{}, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if v, found := e.Details[key]; found {
				return v, true
			}
		}
		err = errors.Unwrap(err)
	}
	return nil, false
}

// Details merges the details of every *Error in the chain of err. Outer
// values win over inner ones.
func Details(err error) map[string]interface{} {
	var merged map[string]interface{}
	for err != nil {
		if e, ok := err.(*Error); ok {
			for k, v := range e.Details {
				if merged == nil {
					merged = make(map[string]interface{})
				}
				if _, seen := merged[k]; !seen {
					merged[k] = v
				}
			}
		}
		err = errors.Unwrap(err)
	}
	return merged
}

// captureStack captures the current call stack
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
