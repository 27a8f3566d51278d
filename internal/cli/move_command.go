package cli

import (
	"context"
	"fmt"
	"io"

	"tasklist/internal/api"
)

// MoveCommand handles the move command
type MoveCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewMoveCommand creates a new move command handler
func NewMoveCommand(app *App) *MoveCommand {
	return &MoveCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute moves the task at position args[0] to position args[1]
func (c *MoveCommand) Execute(ctx context.Context, args []string) error {
	from, err := parsePosition("from", args[0])
	if err != nil {
		return c.errorHandler.Handle("move task", err)
	}
	to, err := parsePosition("to", args[1])
	if err != nil {
		return c.errorHandler.Handle("move task", err)
	}

	task, err := c.businessAPI.MoveTask(ctx, from, to)
	if err != nil {
		return c.errorHandler.Handle("move task", err)
	}

	fmt.Fprintf(c.out, "Moved %s to position %d\n", task.Name, to)
	return nil
}
