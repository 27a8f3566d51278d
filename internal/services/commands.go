package services

import (
	"context"

	"tasklist/internal/domain"
	"tasklist/internal/errors"
)

// Command is one user action against the task list. Commands are applied
// one at a time by TaskService.Apply.
type Command interface {
	apply(ctx context.Context, s TaskService) (Outcome, error)
}

// AddCommand appends a task named Name
type AddCommand struct {
	Name string
}

// DeleteCommand removes the task with ID
type DeleteCommand struct {
	ID int64
}

// ToggleCommand flips completion of the task with ID
type ToggleCommand struct {
	ID int64
}

// CompleteCommand marks the task with ID completed
type CompleteCommand struct {
	ID int64
}

// ReorderCommand moves the task at Source to Destination
type ReorderCommand struct {
	Source      int
	Destination int
}

// DropCommand finishes a reorder gesture
type DropCommand struct {
	Result domain.DropResult
}

func (c AddCommand) apply(ctx context.Context, s TaskService) (Outcome, error) {
	task, err := s.Add(ctx, c.Name)
	return Outcome{Task: task, Changed: task != nil}, err
}

func (c DeleteCommand) apply(ctx context.Context, s TaskService) (Outcome, error) {
	changed, err := s.Delete(ctx, c.ID)
	return Outcome{Changed: changed}, err
}

func (c ToggleCommand) apply(ctx context.Context, s TaskService) (Outcome, error) {
	changed, err := s.ToggleCompleted(ctx, c.ID)
	return Outcome{Changed: changed}, err
}

func (c CompleteCommand) apply(ctx context.Context, s TaskService) (Outcome, error) {
	changed, err := s.Complete(ctx, c.ID)
	return Outcome{Changed: changed}, err
}

func (c ReorderCommand) apply(ctx context.Context, s TaskService) (Outcome, error) {
	if err := s.Reorder(ctx, c.Source, c.Destination); err != nil {
		return Outcome{}, err
	}
	return Outcome{Changed: c.Source != c.Destination}, nil
}

func (c DropCommand) apply(ctx context.Context, s TaskService) (Outcome, error) {
	changed, err := s.Drop(ctx, c.Result)
	return Outcome{Changed: changed}, err
}

// dispatch runs cmd against s
func dispatch(ctx context.Context, s TaskService, cmd Command) (Outcome, error) {
	if cmd == nil {
		return Outcome{}, errors.NewInvalidInputError("command", nil, "no command given")
	}
	return cmd.apply(ctx, s)
}
