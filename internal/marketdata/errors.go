package marketdata

import (
	"fmt"
)

// ErrorKind is the machine-readable category of a data access failure.
type ErrorKind string

const (
	// KindNotFound indicates the symbol is unknown or delisted upstream.
	KindNotFound ErrorKind = "NOT_FOUND"
	// KindUpstreamUnavailable indicates a network failure or timeout.
	KindUpstreamUnavailable ErrorKind = "UPSTREAM_UNAVAILABLE"
	// KindMalformedResponse indicates the upstream payload had an unexpected shape.
	KindMalformedResponse ErrorKind = "MALFORMED_RESPONSE"
	// KindDivisionByZero indicates a computation would have divided by zero.
	KindDivisionByZero ErrorKind = "DIVISION_BY_ZERO"
	// KindInvalidArgument indicates a caller contract violation.
	KindInvalidArgument ErrorKind = "INVALID_ARGUMENT"
	// KindTooManySymbols indicates a comparison request exceeded the symbol limit.
	KindTooManySymbols ErrorKind = "TOO_MANY_SYMBOLS"
	// KindNoSymbols indicates a comparison request carried no symbols.
	KindNoSymbols ErrorKind = "NO_SYMBOLS"
)

// Error is the structured failure carried by a Result. Kind is machine-readable,
// Message is human-readable, Cause (optional) preserves the underlying fault.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewNotFound creates a NOT_FOUND error for the given symbol.
func NewNotFound(symbol string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("no data found for symbol %s", symbol),
	}
}

// NewUpstreamUnavailable creates an UPSTREAM_UNAVAILABLE error.
func NewUpstreamUnavailable(cause error) *Error {
	return &Error{
		Kind:    KindUpstreamUnavailable,
		Message: "market data provider unavailable",
		Cause:   cause,
	}
}

// NewMalformedResponse creates a MALFORMED_RESPONSE error.
func NewMalformedResponse(message string) *Error {
	return &Error{
		Kind:    KindMalformedResponse,
		Message: message,
	}
}

// NewDivisionByZero creates a DIVISION_BY_ZERO error.
func NewDivisionByZero(message string) *Error {
	return &Error{
		Kind:    KindDivisionByZero,
		Message: message,
	}
}

// NewInvalidArgument creates an INVALID_ARGUMENT error.
func NewInvalidArgument(message string) *Error {
	return &Error{
		Kind:    KindInvalidArgument,
		Message: message,
	}
}

// NewTooManySymbols creates a TOO_MANY_SYMBOLS error.
func NewTooManySymbols(got, max int) *Error {
	return &Error{
		Kind:    KindTooManySymbols,
		Message: fmt.Sprintf("got %d symbols, maximum is %d", got, max),
	}
}

// NewNoSymbols creates a NO_SYMBOLS error.
func NewNoSymbols() *Error {
	return &Error{
		Kind:    KindNoSymbols,
		Message: "no symbols requested",
	}
}
