package model

import (
	"errors"
	"fmt"
)

// ErrorCode is a machine-readable error category.
type ErrorCode string

const (
	ErrCodeUnknownLayout         ErrorCode = "UNKNOWN_LAYOUT"
	ErrCodeUnknownModule         ErrorCode = "UNKNOWN_MODULE"
	ErrCodeUnknownFinish         ErrorCode = "UNKNOWN_FINISH"
	ErrCodeDuplicatePlacementID  ErrorCode = "DUPLICATE_PLACEMENT_ID"
	ErrCodePriceMismatch         ErrorCode = "PRICE_MISMATCH"
	ErrCodeInvalidInput          ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidLayoutTemplate ErrorCode = "INVALID_LAYOUT_TEMPLATE"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
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

// NewError creates an Error with a formatted message.
func NewError(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError creates an Error carrying cause.
func WrapError(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsCode reports whether any error in err's chain is an *Error with code.
func IsCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// unknownIdentifier reports a failed catalog lookup, naming both the id and the catalog.
func unknownIdentifier(code ErrorCode, catalog, id string) *Error {
	return NewError(code, "unknown %s identifier %q", catalog, id)
}
