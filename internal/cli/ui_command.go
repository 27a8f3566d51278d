package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/api"
	"tasklist/internal/config"
	"tasklist/internal/tui"
)

// UICommand handles the ui command
type UICommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	display      config.DisplayConfig
	options      []tea.ProgramOption
}

// NewUICommand creates a new ui command handler
func NewUICommand(app *App) *UICommand {
	return &UICommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		display:      app.config.Display,
		options:      []tea.ProgramOption{tea.WithOutput(app.out)},
	}
}

// Execute runs the interactive list until the user quits
func (c *UICommand) Execute(ctx context.Context) error {
	if err := tui.Run(ctx, c.businessAPI, c.display, c.options...); err != nil {
		return c.errorHandler.Handle("run interactive list", err)
	}
	return nil
}
