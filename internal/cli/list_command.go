package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tasklist/internal/api"
	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/errors"
)

var (
	listHeaderStyle = lipgloss.NewStyle().Bold(true)
	listDoneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	listFooterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ListOptions are the flags of the list command
type ListOptions struct {
	Format string
	Status string
	Search string
}

// ListCommand handles the list command
type ListCommand struct {
	businessAPI  api.BusinessAPI
	errorHandler *ErrorHandler
	display      config.DisplayConfig
	out          io.Writer
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		businessAPI:  app.businessAPI,
		errorHandler: NewErrorHandler(),
		display:      app.config.Display,
		out:          app.out,
	}
}

// Execute prints the tasks in list order
func (c *ListCommand) Execute(ctx context.Context, opts ListOptions) error {
	format := opts.Format
	if format == "" {
		format = c.display.ListFormat
	}
	if format != "table" && format != "json" {
		return c.errorHandler.Handle("list tasks", errors.NewInvalidInputError("format", format, "must be table or json"))
	}

	listing, err := c.businessAPI.ListTasks(ctx, api.ListFilter{Status: opts.Status, Search: opts.Search})
	if err != nil {
		return c.errorHandler.Handle("list tasks", err)
	}

	if format == "json" {
		return c.printJSON(listing)
	}
	c.printTable(listing)
	return nil
}

func (c *ListCommand) printJSON(listing *api.TaskListing) error {
	tasks := make(domain.TaskList, len(listing.Tasks))
	for i, view := range listing.Tasks {
		tasks[i] = view.Task
	}
	enc := json.NewEncoder(c.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(tasks); err != nil {
		return c.errorHandler.Handle("list tasks", errors.NewSerializationError("encode listing", err))
	}
	return nil
}

// printTable prints one line per task: position, check mark, name and date
func (c *ListCommand) printTable(listing *api.TaskListing) {
	if len(listing.Tasks) == 0 {
		fmt.Fprintln(c.out, "No tasks")
		return
	}

	posWidth, markWidth, nameWidth := len("#"), len("Done"), len("Task")
	for _, view := range listing.Tasks {
		posWidth = max(posWidth, len(fmt.Sprint(view.Position)))
		markWidth = max(markWidth, lipgloss.Width(c.mark(view.Task)))
		nameWidth = max(nameWidth, lipgloss.Width(view.Task.DisplayName(c.display.NameWidth)))
	}

	row := func(pos, mark, name, date string) string {
		return strings.Join([]string{
			pad(pos, posWidth, true),
			pad(mark, markWidth, false),
			pad(name, nameWidth, false),
			date,
		}, "  ")
	}

	fmt.Fprintln(c.out, listHeaderStyle.Render(row("#", "Done", "Task", "Added")))
	for _, view := range listing.Tasks {
		name := view.Task.DisplayName(c.display.NameWidth)
		line := row(fmt.Sprint(view.Position), c.mark(view.Task), name, view.Task.DateAdded)
		if view.Task.Completed {
			line = listDoneStyle.Render(line)
		}
		fmt.Fprintln(c.out, line)
	}

	stats := listing.Stats
	fmt.Fprintln(c.out, listFooterStyle.Render(fmt.Sprintf("%d of %d completed", stats.Completed, stats.Total)))
}

func (c *ListCommand) mark(task domain.Task) string {
	if task.Completed {
		return c.display.DoneMark
	}
	return c.display.PendingMark
}

// pad fills s with spaces to width display cells
func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}
