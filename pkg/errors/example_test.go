// Package errors provides examples of structured error handling in strtemporal.
package errors_test

import (
	stderrors "errors"
	"fmt"
	"io"

	"github.com/ajitpratap0/strtemporal/pkg/errors"
)

// Example demonstrates basic error creation with details.
func Example() {
	err := errors.New(errors.ErrorTypeValidation, "unable to determine date format").
		WithDetail("column", "created_at").
		WithDetail("sample", "yesterday")

	fmt.Println(err.Error())
	fmt.Println(err.Details["column"])

	// Output:
	// validation: unable to determine date format [column=created_at sample=yesterday]
	// created_at
}

// ExampleWrap shows how wrapped causes stay reachable.
func ExampleWrap() {
	err := errors.Wrap(io.ErrUnexpectedEOF, errors.ErrorTypeFile, "failed to read CSV input").
		WithDetail("file", "events.csv.zst")

	if errors.IsType(err, errors.ErrorTypeFile) {
		fmt.Println("file error")
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		fmt.Println("caused by unexpected EOF")
	}

	// Output:
	// file error
	// caused by unexpected EOF
}

// ExampleErrorType demonstrates the error categories used by conversions.
func ExampleErrorType() {
	fmt.Println(errors.New(errors.ErrorTypeCapability, "timezone support not compiled in"))
	fmt.Println(errors.New(errors.ErrorTypeConfig, "unknown time zone"))

	// Output:
	// capability: timezone support not compiled in
	// config: unknown time zone
}
