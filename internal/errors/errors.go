package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrInvalidJSON     = errors.New("invalid JSON format")
	ErrMultipleJSON    = errors.New("multiple JSON values found at the root, only one is allowed")
	ErrDepthExceeded   = errors.New("maximum nesting depth exceeded")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrNoInput         = errors.New("no input provided: pass JSON as an argument, specify a file with -i or pipe JSON data to stdin")
	ErrInvalidFilePath = errors.New("invalid file path")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput    ErrorType = "input"
	ErrorTypeSyntax   ErrorType = "syntax"
	ErrorTypeDepth    ErrorType = "depth"
	ErrorTypeFormat   ErrorType = "format"
	ErrorTypeAnalysis ErrorType = "analysis"
	ErrorTypeSchema   ErrorType = "schema"
	ErrorTypePath     ErrorType = "path"
	ErrorTypeQuery    ErrorType = "query"
	ErrorTypeOutput   ErrorType = "output"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// Kind returns a comparable *AppError for use with errors.Is.
//
//	errors.Is(err, errors.Kind(errors.ErrorTypePath))
func Kind(t ErrorType) *AppError {
	return &AppError{Type: t}
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewSyntaxError creates a new error for malformed JSON text
func NewSyntaxError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSyntax,
		Message: message,
		Err:     err,
	}
}

// NewDepthError creates a new error for documents nested beyond the configured limit
func NewDepthError(depth, limit int) *AppError {
	return &AppError{
		Type:    ErrorTypeDepth,
		Message: fmt.Sprintf("nesting depth %d exceeds limit %d", depth, limit),
		Err:     ErrDepthExceeded,
	}
}

// NewFormatError creates a new error related to formatting or minifying
func NewFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
		Err:     err,
	}
}

// NewAnalysisError creates a new error related to document analysis
func NewAnalysisError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeAnalysis,
		Message: message,
		Err:     err,
	}
}

// NewSchemaError creates a new error related to schema generation
func NewSchemaError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeSchema,
		Message: message,
		Err:     err,
	}
}

// NewPathError creates a new error related to path resolution
func NewPathError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypePath,
		Message: message,
		Err:     err,
	}
}

// NewQueryError creates a new error related to gjson queries
func NewQueryError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeQuery,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// SyntaxMessage returns the codec message carried by the innermost syntax
// or depth error in err's chain.
func SyntaxMessage(err error) (string, bool) {
	var found *AppError
	for e := err; e != nil; e = errors.Unwrap(e) {
		if appErr, ok := e.(*AppError); ok && (appErr.Type == ErrorTypeSyntax || appErr.Type == ErrorTypeDepth) {
			found = appErr
		}
	}
	if found == nil {
		return "", false
	}
	return found.Message, true
}

// describe joins an operation error's message with the syntax message it wraps.
func describe(e *AppError) string {
	if msg, ok := SyntaxMessage(e.Err); ok {
		return e.Message + ": " + msg
	}
	return e.Message
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeSyntax:
			return fmt.Sprintf("JSON syntax error: %s", appErr.Message)
		case ErrorTypeDepth:
			return fmt.Sprintf("Depth error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Format error: %s", describe(appErr))
		case ErrorTypeAnalysis:
			return fmt.Sprintf("Analysis error: %s", describe(appErr))
		case ErrorTypeSchema:
			return fmt.Sprintf("Schema error: %s", describe(appErr))
		case ErrorTypePath:
			return fmt.Sprintf("Path error: %s", describe(appErr))
		case ErrorTypeQuery:
			return fmt.Sprintf("Query error: %s", describe(appErr))
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Config error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide valid JSON data."
	}
	if errors.Is(err, ErrInvalidJSON) {
		return "Error: The input contains invalid JSON. Please check your JSON syntax."
	}
	if errors.Is(err, ErrMultipleJSON) {
		return "Error: Multiple JSON values found. Please provide a single JSON value."
	}
	if errors.Is(err, ErrDepthExceeded) {
		return "Error: The document is nested too deeply. Raise limits.max_depth to analyze it."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with valid JSON content."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Pass JSON as an argument, specify a file with -i or pipe JSON data to stdin."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
