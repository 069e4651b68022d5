package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mmv/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "not_initialized",
			code:    errors.ErrNotInitialized,
			message: "workspace not initialized",
			wantStr: "[NOT_INITIALIZED] workspace not initialized",
		},
		{
			name:    "invalid_input",
			code:    errors.ErrInvalidInput,
			message: "unknown strategy",
			wantStr: "[INVALID_INPUT] unknown strategy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrNotClean, "%d unmapped sources", 3)
	assert.Equal(t, "3 unmapped sources", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("base error")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFileRead, "cannot read sources")

		assert.Equal(t, errors.ErrFileRead, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[FILE_READ] cannot read sources: base error", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrAlreadyExists, "destination exists").
		WithDetail("path", "/out/a.txt").
		WithDetail("source", "a.txt")

	assert.Equal(t, "/out/a.txt", err.Details["path"])
	assert.Equal(t, "a.txt", errors.GetErrorDetails(err)["source"])
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrNotClean, "error 1")
	err2 := errors.New(errors.ErrNotClean, "error 2")
	err3 := errors.New(errors.ErrInternal, "error 3")

	assert.True(t, err1.Is(err2), "same code should match")
	assert.False(t, err1.Is(err3), "different codes should not match")
	assert.True(t, stderrors.Is(err1, err2), "errors.Is should work with MmvError")
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{
			name:     "matching_code",
			err:      errors.New(errors.ErrNotClean, "not clean"),
			code:     errors.ErrNotClean,
			expected: true,
		},
		{
			name:     "different_code",
			err:      errors.New(errors.ErrNotClean, "not clean"),
			code:     errors.ErrInternal,
			expected: false,
		},
		{
			name:     "wrapped_by_fmt",
			err:      fmt.Errorf("outer: %w", errors.New(errors.ErrFileCopy, "copy")),
			code:     errors.ErrFileCopy,
			expected: true,
		},
		{
			name:     "standard_error",
			err:      stderrors.New("standard error"),
			code:     errors.ErrFileCopy,
			expected: false,
		},
		{
			name:     "nil_error",
			err:      nil,
			code:     errors.ErrFileCopy,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrEditor, errors.GetErrorCode(errors.New(errors.ErrEditor, "vim failed")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("standard error")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileRead, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(configErr, errors.ErrConfigLoad))

	var middle *errors.MmvError
	require.True(t, stderrors.As(configErr.Unwrap(), &middle))
	assert.Equal(t, errors.ErrFileRead, middle.Code)

	assert.True(t, stderrors.Is(configErr, rootCause))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, errors.ExitOK},
		{"not_initialized", errors.New(errors.ErrNotInitialized, "x"), errors.ExitDataErr},
		{"not_clean", errors.New(errors.ErrNotClean, "x"), errors.ExitDataErr},
		{"wrapped_not_clean", fmt.Errorf("update: %w", errors.New(errors.ErrNotClean, "x")), errors.ExitDataErr},
		{"file_copy", errors.New(errors.ErrFileCopy, "x"), errors.ExitFailure},
		{"plain", stderrors.New("boom"), errors.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.ExitCode(tt.err))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "Not initialized - use mmv init to do so",
		errors.UserMessage(errors.New(errors.ErrNotInitialized, "Not initialized - use mmv init to do so")))

	nested := errors.Wrap(errors.Wrap(stderrors.New("permission denied"), errors.ErrFileRead, "failed to open x"),
		errors.ErrFileCopy, "failed to copy")
	assert.Equal(t, "failed to copy: failed to open x: permission denied", errors.UserMessage(nested))

	assert.Equal(t, "boom", errors.UserMessage(stderrors.New("boom")))
}
