package cli

import (
	"context"
	"fmt"
	"io"

	"tasklist/internal/api"
)

// ListsCommand prints the keys of the task store
type ListsCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewListsCommand creates a new lists command handler
func NewListsCommand(app *App) *ListsCommand {
	return &ListsCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
	}
}

// Execute prints one key per line. The key in use is marked with "*".
func (c *ListsCommand) Execute(ctx context.Context) error {
	lists, err := c.businessAPI.StoredLists(ctx)
	if err != nil {
		return c.errorHandler.Handle("read stored lists", err)
	}
	if len(lists) == 0 {
		fmt.Fprintln(c.out, "No stored lists")
		return nil
	}
	for _, l := range lists {
		mark := " "
		if l.Current {
			mark = "*"
		}
		fmt.Fprintf(c.out, "%s %s\n", mark, l.Key)
	}
	return nil
}
