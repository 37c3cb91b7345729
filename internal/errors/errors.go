package errors

import (
	"errors"
	"fmt"
)

// Error is a domain error carrying a machine-readable code alongside a
// human-readable message. Metadata holds optional key/value context that
// transports may surface to clients.
type Error struct {
	Code     Code
	Message  string
	Metadata map[string]string
	cause    error
}

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error wrapping an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// WithMetadata returns a copy of the error with the metadata entry set.
func (e *Error) WithMetadata(key, value string) *Error {
	clone := *e
	clone.Metadata = make(map[string]string, len(e.Metadata)+1)
	for k, v := range e.Metadata {
		clone.Metadata[k] = v
	}
	clone.Metadata[key] = value
	return &clone
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}
