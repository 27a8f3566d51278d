package cli

import (
	"context"
	"fmt"
	"io"

	"tasklist/internal/api"
)

// ClearCommand handles the clear command
type ClearCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewClearCommand creates a new clear command handler
func NewClearCommand(app *App) *ClearCommand {
	return &ClearCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute removes every task and the stored value holding them
func (c *ClearCommand) Execute(ctx context.Context) error {
	n, err := c.businessAPI.ClearTasks(ctx)
	if err != nil {
		return c.errorHandler.Handle("clear tasks", err)
	}
	fmt.Fprintf(c.out, "Cleared %d tasks\n", n)
	return nil
}
