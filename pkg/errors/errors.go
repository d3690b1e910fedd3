package errors

import (
	"fmt"
	"strings"
)

// ParseError represents a failure to read or decode a project or report file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures project configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PreflightError reports blocking issues found before a run is submitted.
// The messages carried here are already bounded by the caller; the full list
// stays with the validator result.
type PreflightError struct {
	Issues []string
}

// NewPreflightError constructs a PreflightError from issue messages.
func NewPreflightError(issues []string) error {
	return &PreflightError{Issues: issues}
}

func (e *PreflightError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Issues) == 0 {
		return "pre-run validation failed"
	}
	return fmt.Sprintf("pre-run validation failed: %s", strings.Join(e.Issues, "; "))
}

// EnvironmentError indicates the external execution boundary is not available
// in the current host environment.
type EnvironmentError struct {
	Message string
}

// NewEnvironmentError constructs an EnvironmentError.
func NewEnvironmentError(message string) error {
	return &EnvironmentError{Message: message}
}

func (e *EnvironmentError) Error() string {
	if e == nil {
		return ""
	}
	if e.Message == "" {
		return "environment error: simulation engine unavailable"
	}
	return fmt.Sprintf("environment error: %s", e.Message)
}

// ExecutionError represents a runtime failure while orchestrating a run.
type ExecutionError struct {
	RunID string
	Err   error
}

// NewExecutionError constructs an ExecutionError for the given run.
func NewExecutionError(runID string, err error) error {
	return &ExecutionError{RunID: runID, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.RunID != "" {
		return fmt.Sprintf("execution error for run %s: %v", e.RunID, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
