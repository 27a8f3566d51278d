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

// ExportOptions are the flags of the export command
type ExportOptions struct {
	Format string
	Output string
}

// ExportCommand handles the export command
type ExportCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	out          io.Writer
	errOut       io.Writer
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		out:          app.out,
		errOut:       app.errOut,
	}
}

// Execute writes the whole list to stdout or to opts.Output
func (c *ExportCommand) Execute(ctx context.Context, opts ExportOptions) error {
	format, err := services.ParseFormat(opts.Format)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	data, err := c.businessAPI.Export(ctx, format)
	if err != nil {
		return c.errorHandler.Handle("export tasks", err)
	}

	if opts.Output == "" || opts.Output == "-" {
		_, err = c.out.Write(data)
		return err
	}

	if err := os.WriteFile(opts.Output, data, 0644); err != nil {
		return c.errorHandler.Handle("export tasks", errors.NewFileError("write", opts.Output, err))
	}
	fmt.Fprintf(c.errOut, "Exported tasks to %s\n", opts.Output)
	return nil
}
