package errors

import (
	"fmt"
)

// ErrorType classifies an AppError so the HTTP layer can map whole families
// of failures to a status code without inspecting messages.
type ErrorType string

const (
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError is the error the cleaning and reconciliation layers return. The
// Context map carries structured detail (file, column, row) that the error
// handler surfaces in problem responses and logs.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext records a structured detail on the error and returns it so
// constructors can chain.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError builds a classified error. cause may be nil.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewSchemaError reports a raw input file whose tabular schema cannot be
// cleaned: a required column is missing or a cell cannot be typed. The
// file and column names ride along as context for the calling surface.
func NewSchemaError(file, column, message string) *AppError {
	return NewAppError(ErrTypeSchema, fmt.Sprintf("%s: column %q: %s", file, column, message), nil).
		WithContext("file", file).
		WithContext("column", column)
}

// NewParsingError reports input that could not be decoded at all, before
// any schema check ran.
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError reports a filesystem failure while reading or writing
// the data directories.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError reports input that decoded but violates a
// structural rule, like an unsupported file extension.
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewNotFoundError reports a missing resource by name.
func NewNotFoundError(resource string) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), nil)
}

// NewConfigError reports invalid or unloadable configuration.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
