// internal/pkg/apperrors/apperrors.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies an error for the shell surface and for callers that need
// to branch on failure class rather than message text.
type Code string

const (
	// CodeAuth marks bad credentials; recoverable by re-prompting.
	CodeAuth Code = "AUTH_ERROR"
	// CodeValidation marks locally rejected input (insufficient cash,
	// empty cart); no network call was made.
	CodeValidation Code = "VALIDATION_ERROR"
	// CodeSubmission marks a rejected or failed bill submission; the cart
	// is preserved and the user may retry.
	CodeSubmission Code = "SUBMISSION_ERROR"
	// CodeLoad marks a failed catalog/availability/list fetch; the screen
	// degrades and the user may retry by re-navigating.
	CodeLoad Code = "LOAD_ERROR"
	// CodeUnknownRole marks a persisted/auth role outside the known set;
	// the session is treated as logged out.
	CodeUnknownRole Code = "UNKNOWN_ROLE"
	// CodeInternal marks everything else.
	CodeInternal Code = "INTERNAL_ERROR"
)

// httpStatusByCode maps error codes to the status the shell surface returns.
var httpStatusByCode = map[Code]int{
	CodeAuth:        http.StatusUnauthorized,
	CodeValidation:  http.StatusBadRequest,
	CodeSubmission:  http.StatusBadGateway,
	CodeLoad:        http.StatusBadGateway,
	CodeUnknownRole: http.StatusUnauthorized,
	CodeInternal:    http.StatusInternalServerError,
}

// Error is a coded error with a user-visible message.
type Error struct {
	code    Code
	message string
	cause   error
}

// New creates a coded error with a user-visible message.
func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Newf creates a coded error with a formatted user-visible message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return &Error{code: code, message: fmt.Sprintf(format, args...)}
}

// Wrap creates a coded error carrying an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{code: code, message: message, cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *Error) Unwrap() error {
	return e.cause
}

// Code returns the error's classification.
func (e *Error) Code() Code {
	return e.code
}

// Message returns the user-visible message without the cause chain.
func (e *Error) Message() string {
	return e.message
}

// CodeOf returns the classification of err, or CodeInternal when err carries
// no code.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.code
	}
	return CodeInternal
}

// MessageOf returns the user-visible message of err.
func MessageOf(err error) string {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.message
	}
	return err.Error()
}

// HTTPStatus returns the shell-surface status for err.
func HTTPStatus(err error) int {
	if status, ok := httpStatusByCode[CodeOf(err)]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
