package errors

// ErrorType says which part of handling the task list failed
type ErrorType string

const (
	// ErrorTypeValidation covers task data that breaks a list rule, such as
	// an imported task without a name or a position outside the list.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound covers unknown task references and missing storage keys.
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeInvalidInput covers arguments that cannot be parsed at all.
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	ErrorTypeStorage      ErrorType = "storage"
	ErrorTypeTimeout      ErrorType = "timeout"
	// ErrorTypeSerialization covers a stored or imported list that cannot be
	// encoded or decoded.
	ErrorTypeSerialization ErrorType = "serialization"
	// ErrorTypeFile covers import and export files that cannot be read or written.
	ErrorTypeFile ErrorType = "file"
)

// AppError is returned by every layer of the task list. Message is written
// for the person at the terminal; Cause keeps the underlying failure.
type AppError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code, so callers can
// compare against sentinel values such as ErrTaskNotFound.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}
