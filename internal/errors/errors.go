// Package errors defines the error codes shared by the capture, export and
// publish actions.
//
// Every failure an action can surface to the user carries one of these codes,
// so the presentation layer can decide how loudly to report it:
//
//	err := errors.Wrap(errors.ErrCodeUploadFailed, cause, "upload %s", path)
//	if errors.Is(err, errors.ErrCodeUploadFailed) {
//	    // show the store detail to the user
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Capture errors
	ErrCodeCaptureUnavailable Code = "CAPTURE_UNAVAILABLE"
	ErrCodeCaptureFailed      Code = "CAPTURE_FAILED"
	ErrCodeEncodeFailed       Code = "ENCODE_FAILED"

	// Backend errors
	ErrCodeUploadFailed  Code = "UPLOAD_FAILED"
	ErrCodeInsertFailed  Code = "INSERT_FAILED"
	ErrCodeConfigMissing Code = "CONFIG_MISSING"

	// Request errors
	ErrCodeBusy         Code = "BUSY"
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeNotFound     Code = "NOT_FOUND"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns ErrCodeInternal for errors that carry no code.
func GetCode(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// UserMessage returns the message and cause without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}
