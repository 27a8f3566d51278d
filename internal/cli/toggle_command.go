package cli

import (
	"context"
	"fmt"

	"tasklist/internal/domain"
)

// ToggleCommand handles the toggle command
type ToggleCommand struct {
	taskAction
}

// NewToggleCommand creates a new toggle command handler
func NewToggleCommand(app *App) *ToggleCommand {
	return &ToggleCommand{taskAction: newTaskAction(app)}
}

// Execute flips completion of the task referenced by args[0]
func (c *ToggleCommand) Execute(ctx context.Context, args []string) error {
	ref := args[0]
	return c.run("toggle task", ref,
		func() (*domain.Task, error) { return c.businessAPI.ToggleTask(ctx, ref) },
		func(task *domain.Task) {
			state := "pending"
			if task.Completed {
				state = "completed"
			}
			fmt.Fprintf(c.out, "Marked %s: %s\n", state, task.Name)
		},
	)
}

// CompleteCommand handles the complete command
type CompleteCommand struct {
	taskAction
}

// NewCompleteCommand creates a new complete command handler
func NewCompleteCommand(app *App) *CompleteCommand {
	return &CompleteCommand{taskAction: newTaskAction(app)}
}

// Execute marks the task referenced by args[0] completed
func (c *CompleteCommand) Execute(ctx context.Context, args []string) error {
	ref := args[0]
	changed := false
	return c.run("complete task", ref,
		func() (*domain.Task, error) {
			task, ok, err := c.businessAPI.CompleteTask(ctx, ref)
			changed = ok
			return task, err
		},
		func(task *domain.Task) {
			if !changed {
				fmt.Fprintf(c.out, "Already completed: %s\n", task.Name)
				return
			}
			fmt.Fprintf(c.out, "Completed task: %s\n", task.Name)
		},
	)
}
