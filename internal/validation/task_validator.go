package validation

import "tasklist/internal/domain"

// TaskValidator checks tasks coming from outside the list, such as an
// import file, and positions typed by a user. Names of new tasks are not
// checked here: any name with a non-blank character is accepted.
type TaskValidator struct {
	validator *Validator
}

func NewTaskValidator() *TaskValidator {
	return &TaskValidator{validator: NewValidator()}
}

// ValidateTask checks one imported task
func (tv *TaskValidator) ValidateTask(task domain.Task) error {
	ve := NewValidationError()
	if !tv.validator.IsValidTaskID(task.ID) {
		ve.invalidValue("id", task.ID, "is not a positive number")
	}
	if !tv.validator.IsNonEmptyString(task.Name) {
		ve.required("name")
	}
	return ve.orNil()
}

// ValidatePosition checks a one-based list position
func (tv *TaskValidator) ValidatePosition(field string, position, length int) error {
	ve := NewValidationError()
	if !tv.validator.IsValidPosition(position, length) {
		ve.outOfRange(field, position, length)
	}
	return ve.orNil()
}

// ValidateMove checks both positions of a move and reports every bad one
func (tv *TaskValidator) ValidateMove(from, to, length int) error {
	ve := NewValidationError()
	ve.Merge(tv.ValidatePosition("from", from, length))
	ve.Merge(tv.ValidatePosition("to", to, length))
	return ve.orNil()
}
