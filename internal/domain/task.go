package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Task represents a single to-do item.
// The JSON field names are the persisted shape and must not change.
type Task struct {
	ID        int64  `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	DateAdded string `json:"dateAdded" yaml:"dateAdded"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// NewTask creates a new, not yet completed Task.
func NewTask(id int64, name, dateAdded string) Task {
	return Task{
		ID:        id,
		Name:      name,
		DateAdded: dateAdded,
	}
}

// DisplayName returns the name on a single line of at most width runes.
// Control characters become spaces and a cut name ends in an ellipsis.
// A width below 1 leaves the length alone.
func (t Task) DisplayName(width int) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, t.Name)
	if width < 1 || utf8.RuneCountInString(name) <= width {
		return name
	}
	runes := []rune(name)
	return string(runes[:width-1]) + "…"
}
