package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Rule names the kind of check a field failed
type Rule string

const (
	RuleRequired     Rule = "required"
	RuleOutOfRange   Rule = "out_of_range"
	RuleInvalidValue Rule = "invalid_value"
)

// Problem is one failed check on one field
type Problem struct {
	Field   string
	Rule    Rule
	Value   interface{}
	Message string
}

// ValidationError collects every problem found in one piece of input
type ValidationError struct {
	Problems []Problem
}

func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (ve *ValidationError) Error() string {
	switch len(ve.Problems) {
	case 0:
		return "invalid input"
	case 1:
		return ve.Problems[0].Message
	}
	messages := make([]string, len(ve.Problems))
	for i, p := range ve.Problems {
		messages[i] = p.Message
	}
	return strings.Join(messages, "; ")
}

// UserMessage formats the problems for the terminal, one per line when
// there are several.
func (ve *ValidationError) UserMessage() string {
	if len(ve.Problems) < 2 {
		return ve.Error()
	}
	var b strings.Builder
	b.WriteString("the input has several problems:")
	for _, p := range ve.Problems {
		b.WriteString("\n  - ")
		b.WriteString(p.Message)
	}
	return b.String()
}

func (ve *ValidationError) HasProblems() bool {
	return len(ve.Problems) > 0
}

// Merge appends the problems carried by err, if any
func (ve *ValidationError) Merge(err error) {
	if other, ok := AsValidationError(err); ok {
		ve.Problems = append(ve.Problems, other.Problems...)
	}
}

// orNil lets validators return a nil error interface when nothing failed
func (ve *ValidationError) orNil() error {
	if ve.HasProblems() {
		return ve
	}
	return nil
}

func (ve *ValidationError) required(field string) {
	ve.Problems = append(ve.Problems, Problem{
		Field:   field,
		Rule:    RuleRequired,
		Message: field + " is required",
	})
}

func (ve *ValidationError) invalidValue(field string, value interface{}, reason string) {
	ve.Problems = append(ve.Problems, Problem{
		Field:   field,
		Rule:    RuleInvalidValue,
		Value:   value,
		Message: fmt.Sprintf("%s %v %s", field, value, reason),
	})
}

// outOfRange records a one-based position outside a list of length items
func (ve *ValidationError) outOfRange(field string, position, length int) {
	msg := fmt.Sprintf("%s must be between 1 and %d", field, length)
	if length == 0 {
		msg = field + " cannot be used, the task list is empty"
	}
	ve.Problems = append(ve.Problems, Problem{
		Field:   field,
		Rule:    RuleOutOfRange,
		Value:   position,
		Message: msg,
	})
}

// AsValidationError finds a ValidationError in err's chain
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
