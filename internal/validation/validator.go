package validation

import "strings"

// Validator holds the primitive checks the task rules are built from
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString reports whether s has anything besides whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

func (v *Validator) IsValidTaskID(id int64) bool {
	return id > 0
}

// IsValidPosition checks a one-based position against a list length
func (v *Validator) IsValidPosition(position, length int) bool {
	return position >= 1 && position <= length
}
