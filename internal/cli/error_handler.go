package cli

import (
	"fmt"

	"tasklist/internal/errors"
	"tasklist/internal/logging"
	"tasklist/internal/validation"
)

// ErrorHandler turns errors from the task list into messages for the terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user message with the failed operation. Failures the
// user did not cause are traced to the debug output with their full chain.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err != nil && errors.ShouldLogError(err) {
		logging.Debugln(operation+":", err)
	}
	return fmt.Errorf("failed to %s: %s", operation, eh.message(err))
}

// message picks the most specific text for err. Validation problems are
// listed field by field.
func (eh *ErrorHandler) message(err error) string {
	if err == nil {
		return "unknown error"
	}
	if ve, ok := validation.AsValidationError(err); ok {
		return ve.UserMessage()
	}
	return errors.GetUserMessage(err)
}

// IsNotFoundError reports an unknown task reference or storage key
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}
