package errors

import stderrors "errors"

// ErrorType classifies a failure of a fetch attempt
type ErrorType string

const (
	ErrorTypeInput        ErrorType = "input"
	ErrorTypeUpstreamHTTP ErrorType = "upstream_http"
	ErrorTypeUpstreamData ErrorType = "upstream_data"
	ErrorTypeTransport    ErrorType = "transport"
	ErrorTypeParsing      ErrorType = "parsing"
	ErrorTypeUnknown      ErrorType = "unknown"
)

// Error is the single error shape returned by the proxy API client and the
// dispatcher. Error() yields only the human-readable message so it can be
// shown to the operator verbatim.
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given type
func New(t ErrorType, message string) *Error {
	return &Error{Type: t, Message: message}
}

// Wrap creates an error of the given type that keeps cause reachable through errors.Is/As
func Wrap(t ErrorType, cause error, message string) *Error {
	return &Error{Type: t, Message: message, Err: cause}
}

// TypeOf returns the type of err, or ErrorTypeUnknown when err is not an *Error
func TypeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// StatusCode returns the upstream HTTP status carried by err, or 0
func StatusCode(err error) int {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return 0
}
