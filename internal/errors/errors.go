package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput      = errors.New("input is empty or contains only whitespace")
	ErrNoInput         = errors.New("no input provided: please specify a file with -i or pipe source to stdin")
	ErrFileNotFound    = errors.New("file not found")
	ErrFileEmpty       = errors.New("file is empty")
	ErrInvalidFilePath = errors.New("invalid file path")

	ErrUnknownFlag         = errors.New("unknown flag")
	ErrFlagConflict        = errors.New("conflicting flags")
	ErrRootType            = errors.New("root value must be an object")
	ErrTypeUnification     = errors.New("incompatible types for the same key")
	ErrHeterogeneousArray  = errors.New("array mixes incompatible element kinds")
	ErrAmbiguousEmptyArray = errors.New("empty array element type cannot be resolved")
	ErrNameCollision       = errors.New("generated type name collides with a differently shaped type")
	ErrRecursionLimit      = errors.New("nesting depth exceeds the recursion limit")
)

// ErrorType categorizes errors by pipeline stage
type ErrorType string

const (
	ErrorTypeInput    ErrorType = "input"
	ErrorTypeSyntax   ErrorType = "syntax"
	ErrorTypeFlag     ErrorType = "flag"
	ErrorTypeInfer    ErrorType = "inference"
	ErrorTypeGenerate ErrorType = "generate"
	ErrorTypeFormat   ErrorType = "format"
	ErrorTypeOutput   ErrorType = "output"
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

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInput, Message: message, Err: err}
}

// NewSyntaxError creates a new error related to the invocation grammar
func NewSyntaxError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeSyntax, Message: message, Err: err}
}

// NewFlagError creates a new error related to directive flags
func NewFlagError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeFlag, Message: message, Err: err}
}

// NewInferenceError creates a new error related to type inference
func NewInferenceError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeInfer, Message: message, Err: err}
}

// NewGenerateError creates a new error related to code generation
func NewGenerateError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeGenerate, Message: message, Err: err}
}

// NewFormatError creates a new error related to code formatting
func NewFormatError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeFormat, Message: message, Err: err}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{Type: ErrorTypeOutput, Message: message, Err: err}
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeSyntax:
			return fmt.Sprintf("Syntax error: %s", appErr.Message)
		case ErrorTypeFlag:
			return fmt.Sprintf("Flag error: %s", appErr.Message)
		case ErrorTypeInfer:
			return fmt.Sprintf("Type inference error: %s", appErr.Message)
		case ErrorTypeGenerate:
			return fmt.Sprintf("Code generation error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Code formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide an invocation to compile."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe source to stdin."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrFileEmpty) {
		return "Error: The specified file is empty. Please provide a file with an invocation to compile."
	}
	if errors.Is(err, ErrInvalidFilePath) {
		return "Error: Invalid file path. Please provide a valid file path."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
