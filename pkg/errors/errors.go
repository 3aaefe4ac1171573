/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

// Package errors provides structured errors for must-oc. Every fallible core
// operation returns a *StructuredError so callers can classify failures by
// code (user error, per-file skip, operation failure, config failure) without
// string matching.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure class.
type ErrorCode string

// Error codes as constants
const (
	ErrCodeUnknownKind        ErrorCode = "UNKNOWN_KIND"
	ErrCodeBadSelector        ErrorCode = "BAD_SELECTOR"
	ErrCodeNoArchive          ErrorCode = "NO_ARCHIVE"
	ErrCodePathEscape         ErrorCode = "PATH_ESCAPE"
	ErrCodeNotFound           ErrorCode = "NOT_FOUND"
	ErrCodeTooLarge           ErrorCode = "TOO_LARGE"
	ErrCodeUnsafeYAML         ErrorCode = "UNSAFE_YAML"
	ErrCodeParse              ErrorCode = "PARSE_ERROR"
	ErrCodeAmbiguousContainer ErrorCode = "AMBIGUOUS_CONTAINER"
	ErrCodeConfigConflict     ErrorCode = "CONFIG_CONFLICT"
	ErrCodeConfigCorrupt      ErrorCode = "CONFIG_CORRUPT"
	ErrCodeInternal           ErrorCode = "INTERNAL_ERROR"
)

// StructuredError carries an error code, a human-readable message, optional
// context values, and an optional wrapped cause.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Err     error
}

func (e *StructuredError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *StructuredError) Unwrap() error {
	return e.Err
}

// New creates a StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{Code: code, Message: message}
}

// Newf creates a StructuredError with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *StructuredError {
	return &StructuredError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a StructuredError wrapping a cause.
func Wrap(code ErrorCode, message string, err error) *StructuredError {
	return &StructuredError{Code: code, Message: message, Err: err}
}

// WrapWithContext creates a StructuredError wrapping a cause and attaching
// context values for diagnostics.
func WrapWithContext(code ErrorCode, message string, err error, context map[string]any) *StructuredError {
	return &StructuredError{Code: code, Message: message, Err: err, Context: context}
}

// CodeOf returns the error code of err if it is (or wraps) a StructuredError,
// and ErrCodeInternal otherwise.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code ErrorCode) bool {
	var se *StructuredError
	return errors.As(err, &se) && se.Code == code
}
