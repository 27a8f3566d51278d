package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tasklist/internal/api"
)

// AddCommand handles the add command
type AddCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute joins the arguments into one task name. A blank name adds
// nothing and prints nothing.
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	task, err := c.businessAPI.AddTask(ctx, strings.Join(args, " "))
	if err != nil {
		return c.errorHandler.Handle("add task", err)
	}
	if task == nil {
		return nil
	}

	fmt.Fprintf(c.out, "Added task: %s\n", task.Name)
	return nil
}
