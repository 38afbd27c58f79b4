package models

import (
	"errors"
	"fmt"
)

// Common error types
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("operation conflicts with current state")
	ErrValidation = errors.New("validation failed")
	ErrIDMismatch = errors.New("path id does not match body id")
)

// Error codes carried by AppError
const (
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeIDMismatch   = "ID_MISMATCH"
)

// Violation is a single field-level validation failure
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents an application-level error with context
type AppError struct {
	Code       string
	Message    string
	Violations []Violation
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ErrInvalidInput creates a validation error
func ErrInvalidInput(message string) error {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
		Err:     ErrValidation,
	}
}

// ErrValidationFailed creates a validation error carrying every violation
func ErrValidationFailed(violations []Violation) error {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    "One or more fields are invalid",
		Violations: violations,
		Err:        ErrValidation,
	}
}

// ErrNotFoundWithMsg creates a not found error with custom message
func ErrNotFoundWithMsg(message string) error {
	return &AppError{
		Code:    CodeNotFound,
		Message: message,
		Err:     ErrNotFound,
	}
}

// ErrConflictWithMsg creates a conflict error with custom message
func ErrConflictWithMsg(message string) error {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
		Err:     ErrConflict,
	}
}

// ErrIDMismatchWithMsg creates an error for a path/body id disagreement
func ErrIDMismatchWithMsg(message string) error {
	return &AppError{
		Code:    CodeIDMismatch,
		Message: message,
		Err:     ErrIDMismatch,
	}
}

// ViolationsOf returns the violations carried by err, if any
func ViolationsOf(err error) []Violation {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Violations
	}
	return nil
}
