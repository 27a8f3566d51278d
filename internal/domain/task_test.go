package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTask(t *testing.T) {
	task := NewTask(1718000000000, "Buy milk", "6/10/2024")

	assert.Equal(t, Task{ID: 1718000000000, Name: "Buy milk", DateAdded: "6/10/2024"}, task)
	assert.False(t, task.Completed, "new tasks start incomplete")
}

func TestTask_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		width    int
		expected string
	}{
		{name: "short name is unchanged", task: Task{Name: "Buy milk"}, width: 20, expected: "Buy milk"},
		{name: "exact width is unchanged", task: Task{Name: "abcde"}, width: 5, expected: "abcde"},
		{name: "long name is cut", task: Task{Name: "abcdefgh"}, width: 5, expected: "abcd…"},
		{name: "width counts runes", task: Task{Name: "ééééé"}, width: 3, expected: "éé…"},
		{name: "newline and tab become spaces", task: Task{Name: "line1\nline2\tend"}, width: 0, expected: "line1 line2 end"},
		{name: "zero width keeps everything", task: Task{Name: strings.Repeat("x", 600)}, width: 0, expected: strings.Repeat("x", 600)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.DisplayName(tt.width))
		})
	}
}
