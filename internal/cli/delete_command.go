package cli

import (
	"context"
	"fmt"
	"io"

	"tasklist/internal/api"
	"tasklist/internal/domain"
)

// taskAction is the shared shape of commands that act on one referenced task
type taskAction struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

func newTaskAction(app *App) taskAction {
	return taskAction{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// run resolves the reference through fn. An unknown reference is reported
// and otherwise ignored, like the list itself ignores unknown IDs.
func (a taskAction) run(operation, ref string, fn func() (*domain.Task, error), report func(*domain.Task)) error {
	task, err := fn()
	if err != nil {
		if a.errorHandler.IsNotFoundError(err) {
			fmt.Fprintf(a.out, "No task %s\n", ref)
			return nil
		}
		return a.errorHandler.Handle(operation, err)
	}
	report(task)
	return nil
}

// DeleteCommand handles the delete command
type DeleteCommand struct {
	taskAction
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{taskAction: newTaskAction(app)}
}

// Execute deletes the task referenced by args[0]
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	ref := args[0]
	return c.run("delete task", ref,
		func() (*domain.Task, error) { return c.businessAPI.DeleteTask(ctx, ref) },
		func(task *domain.Task) { fmt.Fprintf(c.out, "Deleted task: %s\n", task.Name) },
	)
}
