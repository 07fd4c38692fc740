// Package apperrors provides the scheduler's unified error framework: a
// typed AppError carrying a stable Code, an HTTP-status mapping (used by
// the thin HTTP wrapper), and constructors for the four error kinds:
// InvalidInput, Infeasible, InternalInvariantViolation, and
// ResourceLimit.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies a class of error.
type Code string

const (
	CodeUnknown  Code = "UNKNOWN"
	CodeInternal Code = "INTERNAL_ERROR"

	// CodeInvalidInput marks a static cross-reference/domain violation
	// found by the Input Normalizer.
	CodeInvalidInput Code = "INVALID_INPUT"

	// CodeInfeasible marks a solve that returned no feasible assignment
	// within budget.
	CodeInfeasible Code = "INFEASIBLE"

	// CodeInternalInvariantViolation marks a post-validator finding: the
	// solver returned a solution violating role-exclusion or contiguity.
	// Logged, not fatal — the solution is still returned, flagged.
	CodeInternalInvariantViolation Code = "INTERNAL_INVARIANT_VIOLATION"

	// CodeResourceLimit marks a wall-clock budget exhausted with no
	// feasible solution; surfaced to callers as CodeInfeasible with a
	// dedicated hint.
	CodeResourceLimit Code = "RESOURCE_LIMIT"
)

// AppError is the scheduler's structured error type.
type AppError struct {
	Code       Code
	Message    string
	Details    string
	HTTPStatus int
	Cause      error
	Fields     map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithField(key string, value interface{}) *AppError {
	if e.Fields == nil {
		e.Fields = make(map[string]interface{})
	}
	e.Fields[key] = value
	return e
}

// New creates a new AppError.
func New(code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: codeToHTTPStatus(code)}
}

// Wrap wraps an existing error under a new code.
func Wrap(err error, code Code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: codeToHTTPStatus(code), Cause: err}
}

func codeToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeInfeasible, CodeResourceLimit:
		return http.StatusUnprocessableEntity
	case CodeInternalInvariantViolation:
		return http.StatusOK // solution still returned, just flagged
	default:
		return http.StatusInternalServerError
	}
}

// Is reports whether err is (or wraps) an AppError with the given code.
func Is(err error, code Code) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the Code of err, or CodeUnknown if err is not an AppError.
func GetCode(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// InvalidInput builds the Input Normalizer's rejection error, citing the
// offending entity and an actionable remediation hint.
func InvalidInput(entity, reason string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("invalid input at %s: %s", entity, reason))
}

// Infeasible builds the Solver Driver's infeasibility error. Diagnostics
// should be attached via WithField("diagnostics", ...) by the caller.
func Infeasible(reason string) *AppError {
	return New(CodeInfeasible, reason)
}

// ResourceLimit builds the wall-clock-exhausted variant of Infeasible.
func ResourceLimit(budgetSeconds int) *AppError {
	return New(CodeResourceLimit, fmt.Sprintf("solver exhausted its %ds budget with no feasible solution", budgetSeconds))
}

// InternalInvariantViolation builds the post-validator's non-fatal finding.
func InternalInvariantViolation(kind, detail string) *AppError {
	return New(CodeInternalInvariantViolation, fmt.Sprintf("%s: %s", kind, detail))
}
