package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Workspace errors. These are the only codes a user can fix by running
	// another mmv command, so the CLI maps them to EX_DATAERR.
	ErrNotInitialized ErrorCode = "NOT_INITIALIZED"
	ErrNotClean       ErrorCode = "NOT_CLEAN"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"

	// Editor errors
	ErrEditor ErrorCode = "EDITOR"

	// FileSystem errors
	ErrFileRead      ErrorCode = "FILE_READ"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrFileCopy      ErrorCode = "FILE_COPY"
	ErrFileRemove    ErrorCode = "FILE_REMOVE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
)

// Process exit codes, following sysexits.h.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitDataErr = 65
)

// MmvError represents a structured error with code and details
type MmvError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MmvError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MmvError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MmvError) Is(target error) bool {
	var targetErr *MmvError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MmvError with the given code and message
func New(code ErrorCode, message string) *MmvError {
	return &MmvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MmvError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MmvError {
	return &MmvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an MmvError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *MmvError {
	if err == nil {
		return nil
	}
	return &MmvError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MmvError {
	if err == nil {
		return nil
	}
	return &MmvError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MmvError) WithDetail(key string, value interface{}) *MmvError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var mmvErr *MmvError
	if errors.As(err, &mmvErr) {
		return mmvErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an MmvError
func GetErrorCode(err error) ErrorCode {
	var mmvErr *MmvError
	if errors.As(err, &mmvErr) {
		return mmvErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an MmvError
func GetErrorDetails(err error) map[string]interface{} {
	var mmvErr *MmvError
	if errors.As(err, &mmvErr) {
		return mmvErr.Details
	}
	return nil
}

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch GetErrorCode(err) {
	case ErrNotInitialized, ErrNotClean:
		return ExitDataErr
	default:
		return ExitFailure
	}
}

// UserMessage formats err for the terminal: the message without the code
// prefix, followed by the wrapped cause if there is one.
func UserMessage(err error) string {
	var mmvErr *MmvError
	if !errors.As(err, &mmvErr) {
		return err.Error()
	}
	if mmvErr.Wrapped != nil {
		return fmt.Sprintf("%s: %s", mmvErr.Message, UserMessage(mmvErr.Wrapped))
	}
	return mmvErr.Message
}
