package domain

import (
	"errors"
	"fmt"
)

// Code classifies a DomainError. The CLI maps codes to error categories.
type Code string

const (
	ErrCodeInvalidInput      Code = "INVALID_INPUT"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"
	ErrCodeListingError      Code = "LISTING_ERROR"
	ErrCodeAnalysisError     Code = "ANALYSIS_ERROR"
	ErrCodeConfigError       Code = "CONFIG_ERROR"
	ErrCodeOutputError       Code = "OUTPUT_ERROR"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
)

// DomainError is an error with a stable code, rendered as
// "[CODE] message" or "[CODE] message: cause".
type DomainError struct {
	Code    Code
	Message string
	Cause   error
}

func (e DomainError) Error() string {
	if e.Cause == nil {
		return "[" + string(e.Code) + "] " + e.Message
	}
	return "[" + string(e.Code) + "] " + e.Message + ": " + e.Cause.Error()
}

func (e DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError carrying the same code, so
// errors.Is(err, DomainError{Code: ErrCodeConfigError}) finds config
// errors regardless of message.
func (e DomainError) Is(target error) bool {
	other, ok := target.(DomainError)
	if !ok {
		return false
	}
	return other.Code == e.Code && (other.Message == "" || other.Message == e.Message)
}

func newError(code Code, cause error, message string) error {
	return DomainError{Code: code, Message: message, Cause: cause}
}

// NewInvalidInputError reports unusable request values or inputs
func NewInvalidInputError(message string, cause error) error {
	return newError(ErrCodeInvalidInput, cause, message)
}

// NewValidationError is an invalid input error without a cause
func NewValidationError(message string) error {
	return newError(ErrCodeInvalidInput, nil, message)
}

func NewFileNotFoundError(path string, cause error) error {
	return newError(ErrCodeFileNotFound, cause, "file not found: "+path)
}

// NewListingError reports a files listing that could not be read or written
func NewListingError(file string, cause error) error {
	return newError(ErrCodeListingError, cause, "failed to process files listing: "+file)
}

func NewAnalysisError(message string, cause error) error {
	return newError(ErrCodeAnalysisError, cause, message)
}

func NewConfigError(message string, cause error) error {
	return newError(ErrCodeConfigError, cause, message)
}

func NewOutputError(message string, cause error) error {
	return newError(ErrCodeOutputError, cause, message)
}

func NewUnsupportedFormatError(format string) error {
	return newError(ErrCodeUnsupportedFormat, nil,
		fmt.Sprintf("unsupported format: %s (valid: text, json, yaml, csv)", format))
}

// ErrorCode returns the code of the outermost DomainError in err's chain,
// or "" when there is none.
func ErrorCode(err error) Code {
	var de DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
