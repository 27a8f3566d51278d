package errors

import (
	"errors"
	"fmt"
	"time"
)

// Codes identify the individual failures within a type
const (
	CodeInvalidTask     = "INVALID_TASK"
	CodeInvalidPosition = "INVALID_POSITION"
	CodeTaskNotFound    = "TASK_NOT_FOUND"
	CodeKeyNotFound     = "KEY_NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeStorage         = "STORAGE_FAILED"
	CodeTimeout         = "TIMEOUT"
	CodeCorruptList     = "CORRUPT_LIST"
	CodeFile            = "FILE_ACCESS"
)

// Sentinels for errors.Is
var (
	ErrTaskNotFound = &AppError{Type: ErrorTypeNotFound, Code: CodeTaskNotFound}
	ErrKeyNotFound  = &AppError{Type: ErrorTypeNotFound, Code: CodeKeyNotFound}
)

// NewValidationError reports task data that breaks a list rule. cause is
// usually a *validation.ValidationError with the field details.
func NewValidationError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeValidation, Code: CodeInvalidTask, Message: message, Cause: cause}
}

// NewPositionError reports a list position outside the list
func NewPositionError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeValidation, Code: CodeInvalidPosition, Message: message, Cause: cause}
}

// NewTaskNotFoundError reports a task reference that matches nothing
func NewTaskNotFoundError(ref string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Code:    CodeTaskNotFound,
		Message: fmt.Sprintf("no task %s", ref),
	}
}

// NewKeyNotFoundError reports a storage key holding no value
func NewKeyNotFoundError(key string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Code:    CodeKeyNotFound,
		Message: fmt.Sprintf("nothing stored under %q", key),
	}
}

// NewInvalidInputError reports an argument that cannot be used, such as a
// task reference that is not a number
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Code:    CodeInvalidArgument,
		Message: fmt.Sprintf("invalid %s %q: %s", field, fmt.Sprint(value), reason),
	}
}

// NewStorageError reports a failed read or write of the key-value store
func NewStorageError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Code:    CodeStorage,
		Message: "storage failed to " + operation,
		Cause:   cause,
	}
}

// NewTimeoutError reports a storage call that ran past its deadline
func NewTimeoutError(operation string, limit time.Duration) *AppError {
	msg := "timed out trying to " + operation
	if limit > 0 {
		msg = fmt.Sprintf("%s after %s", msg, limit)
	}
	return &AppError{Type: ErrorTypeTimeout, Code: CodeTimeout, Message: msg}
}

// NewSerializationError reports a task list that could not be encoded or
// decoded
func NewSerializationError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeSerialization,
		Code:    CodeCorruptList,
		Message: "cannot " + operation,
		Cause:   cause,
	}
}

// NewFileError reports an import or export file that could not be used
func NewFileError(operation, path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeFile,
		Code:    CodeFile,
		Message: fmt.Sprintf("cannot %s %s", operation, path),
		Cause:   cause,
	}
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether err's chain holds an AppError of errorType
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == errorType
}

// GetUserMessage returns the text to print for err. Failures the user can
// fix keep their message; internal failures get a generic hint.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	switch appErr.Type {
	case ErrorTypeStorage:
		return "the task list could not be saved or loaded, please try again"
	case ErrorTypeTimeout:
		return appErr.Message + ", please try again"
	case ErrorTypeSerialization, ErrorTypeFile:
		if appErr.Cause != nil {
			return appErr.Error()
		}
		return appErr.Message
	default:
		return appErr.Message
	}
}

// ShouldLogError reports whether err is worth a debug trace. Mistakes in
// user input are not.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	switch appErr.Type {
	case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
		return false
	default:
		return true
	}
}
