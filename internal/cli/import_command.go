package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"tasklist/internal/api"
	"tasklist/internal/errors"
	"tasklist/internal/services"
)

// ImportCommand handles the import command
type ImportCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	in           io.Reader
	out          io.Writer
}

// NewImportCommand creates a new import command handler
func NewImportCommand(app *App) *ImportCommand {
	return &ImportCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		in:           os.Stdin,
		out:          app.out,
	}
}

// Execute replaces the list with the contents of path. "-" reads stdin.
// An empty format is taken from the file extension.
func (c *ImportCommand) Execute(ctx context.Context, path, format string) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(c.in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return c.errorHandler.Handle("import tasks", errors.NewFileError("read", path, err))
	}

	parsed := services.FormatFromPath(path)
	if format != "" {
		if parsed, err = services.ParseFormat(format); err != nil {
			return c.errorHandler.Handle("import tasks", err)
		}
	}

	n, err := c.businessAPI.Import(ctx, data, parsed)
	if err != nil {
		return c.errorHandler.Handle("import tasks", err)
	}

	fmt.Fprintf(c.out, "Imported %d tasks\n", n)
	return nil
}
