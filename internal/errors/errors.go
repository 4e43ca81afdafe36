package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	// Generic codes
	CodeUnknown Code = "unknown"

	// Device errors
	CodePermissionDenied    Code = "permission_denied"
	CodeLocationUnavailable Code = "location_unavailable"
	CodePickerFailed        Code = "picker_failed"
	CodeImageMissing        Code = "image_missing"
	CodeImageTooLarge       Code = "image_too_large"

	// Workflow errors
	CodeValidationFailed Code = "validation_failed"

	// Remote errors
	CodeNetworkOrServer Code = "network_or_server"
	// CodeNoResult never reaches the UI; geocoding and search convert it to a fallback value.
	CodeNoResult Code = "no_result"

	// Local infrastructure
	CodeConfigurationError Code = "configuration_error"
	CodeJournalFailed      Code = "journal_failed"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
// Types that expose their own code through a Code() method are honoured too.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	var coded interface{ Code() Code }
	if errors.As(err, &coded) {
		return coded.Code()
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Message returns the user-facing message of err, or fallback when err has none.
func Message(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var structured Error
	if errors.As(err, &structured) && structured.Message != "" {
		return structured.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
