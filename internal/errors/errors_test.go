package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		err := NewInferenceError("could not unify 'age'", ErrTypeUnification)
		assert.Equal(t, "inference: could not unify 'age': incompatible types for the same key", err.Error())
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewSyntaxError("unexpected token", nil)
		assert.Equal(t, "syntax: unexpected token", err.Error())
	})
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewInputError("reading file", ErrFileNotFound)
	require.ErrorIs(t, err, ErrFileNotFound)
	assert.Equal(t, ErrFileNotFound, stderrors.Unwrap(err))
}

func TestAppErrorIsMatchesType(t *testing.T) {
	flagErr := NewFlagError("bad flag", ErrUnknownFlag)

	assert.ErrorIs(t, flagErr, &AppError{Type: ErrorTypeFlag})
	assert.NotErrorIs(t, flagErr, &AppError{Type: ErrorTypeSyntax})
}

func TestErrorsAsThroughWrapping(t *testing.T) {
	inner := NewGenerateError("rendering Employee", nil)
	wrapped := stderrors.Join(stderrors.New("outer"), inner)

	var appErr *AppError
	require.ErrorAs(t, wrapped, &appErr)
	assert.Equal(t, ErrorTypeGenerate, appErr.Type)
	assert.Equal(t, "rendering Employee", appErr.Message)
}

func TestConstructorTypes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want ErrorType
	}{
		{"input", NewInputError("m", nil), ErrorTypeInput},
		{"syntax", NewSyntaxError("m", nil), ErrorTypeSyntax},
		{"flag", NewFlagError("m", nil), ErrorTypeFlag},
		{"inference", NewInferenceError("m", nil), ErrorTypeInfer},
		{"generate", NewGenerateError("m", nil), ErrorTypeGenerate},
		{"format", NewFormatError("m", nil), ErrorTypeFormat},
		{"output", NewOutputError("m", nil), ErrorTypeOutput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Type)
		})
	}
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "app syntax error",
			err:  NewSyntaxError("unexpected '}' at line 3, column 1", nil),
			want: "Syntax error: unexpected '}' at line 3, column 1",
		},
		{
			name: "app inference error",
			err:  NewInferenceError("could not unify 'rows[].a'", ErrTypeUnification),
			want: "Type inference error: could not unify 'rows[].a'",
		},
		{
			name: "empty input sentinel",
			err:  ErrEmptyInput,
			want: "Error: The input is empty. Please provide an invocation to compile.",
		},
		{
			name: "no input sentinel",
			err:  ErrNoInput,
			want: "Error: No input provided. Please specify a file with -i or pipe source to stdin.",
		},
		{
			name: "file not found sentinel",
			err:  ErrFileNotFound,
			want: "Error: The specified file could not be found. Please check the file path.",
		},
		{
			name: "unknown error",
			err:  stderrors.New("boom"),
			want: "Error: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserFriendlyError(tt.err))
		})
	}
}
