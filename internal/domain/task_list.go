package domain

import (
	"fmt"

	"tasklist/internal/errors"
)

// TaskList is the ordered collection of all tasks. Order reflects both
// insertion and manual reordering.
//
// Every method returns an updated copy and leaves the receiver untouched.
type TaskList []Task

// DropResult reports the end of a reorder gesture. A nil Destination means
// the gesture was cancelled and nothing moves.
type DropResult struct {
	Source      int
	Destination *int
}

// DropAt builds a DropResult with a resolved destination.
func DropAt(source, destination int) DropResult {
	return DropResult{Source: source, Destination: &destination}
}

// Clone returns a copy of the list that shares no backing array.
func (l TaskList) Clone() TaskList {
	if l == nil {
		return TaskList{}
	}
	out := make(TaskList, len(l))
	copy(out, l)
	return out
}

// IndexOf returns the position of the task with the given ID, or -1.
func (l TaskList) IndexOf(id int64) int {
	for i, t := range l {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the task with the given ID.
func (l TaskList) Find(id int64) (Task, bool) {
	if i := l.IndexOf(id); i >= 0 {
		return l[i], true
	}
	return Task{}, false
}

// IDs returns the task IDs in list order.
func (l TaskList) IDs() []int64 {
	ids := make([]int64, len(l))
	for i, t := range l {
		ids[i] = t.ID
	}
	return ids
}

// MaxID returns the largest task ID in the list, or 0 for an empty list.
func (l TaskList) MaxID() int64 {
	var max int64
	for _, t := range l {
		if t.ID > max {
			max = t.ID
		}
	}
	return max
}

// Append adds the task at the end of the list.
func (l TaskList) Append(task Task) TaskList {
	out := make(TaskList, len(l), len(l)+1)
	copy(out, l)
	return append(out, task)
}

// Without removes the task with the given ID. The relative order of the
// remaining tasks is kept. The bool reports whether a task was removed.
func (l TaskList) Without(id int64) (TaskList, bool) {
	i := l.IndexOf(id)
	if i < 0 {
		return l.Clone(), false
	}
	out := make(TaskList, 0, len(l)-1)
	out = append(out, l[:i]...)
	return append(out, l[i+1:]...), true
}

// ToggleCompleted flips the completed flag of the task with the given ID.
// The bool reports whether the task was found.
func (l TaskList) ToggleCompleted(id int64) (TaskList, bool) {
	out := l.Clone()
	i := out.IndexOf(id)
	if i < 0 {
		return out, false
	}
	out[i].Completed = !out[i].Completed
	return out, true
}

// Complete marks the task with the given ID as completed. The bool reports
// whether the task changed, so a second call returns false.
func (l TaskList) Complete(id int64) (TaskList, bool) {
	out := l.Clone()
	i := out.IndexOf(id)
	if i < 0 || out[i].Completed {
		return out, false
	}
	out[i].Completed = true
	return out, true
}

// Reorder removes the task at source and inserts it at destination of the
// shortened list. Both indices are zero-based; destination is read against
// the list after removal, which is what drag-and-drop lists report.
func (l TaskList) Reorder(source, destination int) (TaskList, error) {
	if source < 0 || source >= len(l) {
		return l.Clone(), errors.NewInvalidInputError("source", source, indexRange(len(l)))
	}
	if destination < 0 || destination >= len(l) {
		return l.Clone(), errors.NewInvalidInputError("destination", destination, indexRange(len(l)))
	}

	moved := l[source]
	out := make(TaskList, 0, len(l))
	out = append(out, l[:source]...)
	out = append(out, l[source+1:]...)

	out = append(out, Task{})
	copy(out[destination+1:], out[destination:])
	out[destination] = moved
	return out, nil
}

// Drop applies a finished reorder gesture. A cancelled gesture returns an
// unchanged copy and false.
func (l TaskList) Drop(result DropResult) (TaskList, bool, error) {
	if result.Destination == nil {
		return l.Clone(), false, nil
	}
	out, err := l.Reorder(result.Source, *result.Destination)
	if err != nil {
		return out, false, err
	}
	return out, result.Source != *result.Destination, nil
}

func indexRange(n int) string {
	if n == 0 {
		return "list is empty"
	}
	return fmt.Sprintf("must be between 0 and %d", n-1)
}
