package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tasklist/internal/api"
	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/logging"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeMove
)

// Model is the interactive task list. Every action runs as a command
// against the BusinessAPI and the list it returns replaces the rows shown.
type Model struct {
	api     api.BusinessAPI
	display config.DisplayConfig

	tasks  domain.TaskList
	cursor int
	mode   mode
	picked int
	input  textinput.Model
	status string
	failed bool
}

// loadedMsg carries the list read when the program starts
type loadedMsg struct {
	tasks domain.TaskList
	err   error
}

// addedMsg reports an add. task is nil when the name was blank.
type addedMsg struct {
	task  *domain.Task
	tasks domain.TaskList
	err   error
}

// changedMsg reports a finished change. cursor is the row to select
// afterwards, -1 keeps the current row.
type changedMsg struct {
	action string
	status string
	tasks  domain.TaskList
	cursor int
	err    error
}

// New builds a model over businessAPI. The list is read by Init.
func New(businessAPI api.BusinessAPI, display config.DisplayConfig) Model {
	ti := textinput.New()
	ti.Placeholder = "Add a task"
	ti.Width = 48

	return Model{
		api:     businessAPI,
		display: display,
		input:   ti,
		mode:    modeList,
		status:  "Press 'a' to add a task.",
	}
}

// Run starts the program and blocks until the user quits or ctx ends
func Run(ctx context.Context, businessAPI api.BusinessAPI, display config.DisplayConfig, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	_, err := tea.NewProgram(New(businessAPI, display), opts...).Run()
	return err
}

// Tasks returns the list as last loaded
func (m Model) Tasks() domain.TaskList {
	return m.tasks
}

// Status returns the message shown under the list
func (m Model) Status() string {
	return m.status
}

func (m Model) Init() tea.Cmd {
	return loadTasks(m.api)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		if msg.Width > 20 {
			m.input.Width = msg.Width - 10
		}
	case loadedMsg:
		if msg.err != nil {
			m.setError("load", msg.err)
			return m, nil
		}
		m.tasks = msg.tasks
		m.cursor = clampCursor(m.cursor, len(m.tasks))
	case addedMsg:
		return m.handleAdded(msg)
	case changedMsg:
		return m.handleChanged(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.mode {
	case modeAdd:
		return m.updateAddMode(msg)
	case modeMove:
		return m.updateMoveMode(msg.String())
	default:
		return m.updateListMode(msg.String())
	}
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.setStatus("Cancelled")
		return m, nil
	case "enter":
		return m, addTask(m.api, m.input.Value())
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) handleAdded(msg addedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError("add", msg.err)
		return m, nil
	}
	if msg.task == nil {
		m.setStatus("Type a task name first")
		return m, nil
	}
	m.tasks = msg.tasks
	m.input.SetValue("")
	m.input.Blur()
	m.mode = modeList
	m.cursor = clampCursor(len(m.tasks)-1, len(m.tasks))
	m.setStatus(fmt.Sprintf("Added %q", msg.task.Name))
	return m, nil
}

func (m Model) handleChanged(msg changedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.setError(msg.action, msg.err)
		return m, nil
	}
	if msg.tasks != nil {
		m.tasks = msg.tasks
	}
	if msg.cursor >= 0 {
		m.cursor = msg.cursor
	}
	m.cursor = clampCursor(m.cursor, len(m.tasks))
	m.setStatus(msg.status)
	return m, nil
}

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.tasks))
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case "a":
		m.mode = modeAdd
		m.setStatus("Type a name and press enter, esc to cancel")
		cmd := m.input.Focus()
		return m, cmd
	case "d":
		if len(m.tasks) == 0 {
			return m, nil
		}
		businessAPI, ref := m.api, m.ref()
		return m, change(businessAPI, "delete", func(ctx context.Context) (string, error) {
			task, err := businessAPI.DeleteTask(ctx, ref)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Deleted %q", task.Name), nil
		})
	case "c":
		if len(m.tasks) == 0 {
			return m, nil
		}
		if m.tasks[m.cursor].Completed {
			m.setStatus("Already completed")
			return m, nil
		}
		businessAPI, ref := m.api, m.ref()
		return m, change(businessAPI, "complete", func(ctx context.Context) (string, error) {
			task, _, err := businessAPI.CompleteTask(ctx, ref)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Completed %q", task.Name), nil
		})
	case " ", "x":
		if len(m.tasks) == 0 {
			return m, nil
		}
		businessAPI, ref := m.api, m.ref()
		return m, change(businessAPI, "toggle", func(ctx context.Context) (string, error) {
			task, err := businessAPI.ToggleTask(ctx, ref)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Toggled %q", task.Name), nil
		})
	case "m":
		if len(m.tasks) < 2 {
			return m, nil
		}
		m.mode = modeMove
		m.picked = m.cursor
		m.setStatus("Moving: pick a place and press enter, esc to cancel")
	case "K":
		return m.step(-1)
	case "J":
		return m.step(1)
	}
	return m, nil
}

func (m Model) updateMoveMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "up", "k":
		m.cursor = clampCursor(m.cursor-1, len(m.tasks))
	case "down", "j":
		m.cursor = clampCursor(m.cursor+1, len(m.tasks))
	case "enter":
		return m.drop(domain.DropAt(m.picked, m.cursor))
	case "esc":
		m.mode = modeList
		return m, dropTask(m.api, domain.DropResult{Source: m.picked}, "", m.picked)
	}
	return m, nil
}

// step moves the selected row one place and keeps it selected
func (m Model) step(delta int) (tea.Model, tea.Cmd) {
	target := m.cursor + delta
	if len(m.tasks) == 0 || target < 0 || target >= len(m.tasks) {
		return m, nil
	}
	return m.drop(domain.DropAt(m.cursor, target))
}

func (m Model) drop(result domain.DropResult) (tea.Model, tea.Cmd) {
	m.mode = modeList
	name := m.tasks[result.Source].Name
	return m, dropTask(m.api, result, name, *result.Destination)
}

func loadTasks(businessAPI api.BusinessAPI) tea.Cmd {
	return func() tea.Msg {
		tasks, err := businessAPI.Tasks(context.Background())
		return loadedMsg{tasks: tasks, err: err}
	}
}

func addTask(businessAPI api.BusinessAPI, name string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		task, err := businessAPI.AddTask(ctx, name)
		if err != nil || task == nil {
			return addedMsg{err: err}
		}
		tasks, err := businessAPI.Tasks(ctx)
		if err != nil {
			return addedMsg{err: err}
		}
		return addedMsg{task: task, tasks: tasks}
	}
}

// change runs apply and reloads the list, keeping the selected row
func change(businessAPI api.BusinessAPI, action string, apply func(context.Context) (string, error)) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		status, err := apply(ctx)
		if err != nil {
			return changedMsg{action: action, err: err}
		}
		return reloaded(ctx, businessAPI, status, -1)
	}
}

// dropTask ends a move. An empty name marks a cancelled move.
func dropTask(businessAPI api.BusinessAPI, result domain.DropResult, name string, cursor int) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		changed, err := businessAPI.Drop(ctx, result)
		switch {
		case err != nil:
			return changedMsg{action: "move", err: err}
		case name == "":
			return changedMsg{status: "Move cancelled", cursor: cursor}
		case !changed:
			return changedMsg{status: "Nothing moved", cursor: -1}
		}
		return reloaded(ctx, businessAPI, fmt.Sprintf("Moved %q", name), cursor)
	}
}

func reloaded(ctx context.Context, businessAPI api.BusinessAPI, status string, cursor int) changedMsg {
	tasks, err := businessAPI.Tasks(ctx)
	if err != nil {
		return changedMsg{action: "reload", err: err}
	}
	return changedMsg{status: status, tasks: tasks, cursor: cursor}
}

// ref addresses the selected row by its one-based position
func (m Model) ref() string {
	return strconv.Itoa(m.cursor + 1)
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.failed = false
}

func (m *Model) setError(action string, err error) {
	logging.Debugf("tui: %s failed: %v\n", action, err)
	m.status = fmt.Sprintf("%s failed: %v", action, err)
	m.failed = true
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(" Task List "))
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		b.WriteString(emptyStyle.Render("  No tasks yet"))
		b.WriteString("\n")
	}
	for i, task := range m.tasks {
		b.WriteString(m.renderRow(i, task))
		b.WriteString("\n")
	}

	done := 0
	for _, task := range m.tasks {
		if task.Completed {
			done++
		}
	}
	b.WriteString("\n")
	b.WriteString(counterStyle.Render(fmt.Sprintf("%d of %d completed", done, len(m.tasks))))
	b.WriteString("\n")

	if m.mode == modeAdd {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.failed {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(statusStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) renderRow(i int, task domain.Task) string {
	pointer := "  "
	if i == m.cursor {
		pointer = cursorStyle.Render("> ")
	}

	mark := m.display.PendingMark
	if task.Completed {
		mark = m.display.DoneMark
	}

	line := fmt.Sprintf("%s %s", mark, task.DisplayName(m.display.NameWidth))
	switch {
	case m.mode == modeMove && i == m.picked:
		line = pickedStyle.Render(line)
	case task.Completed:
		line = doneStyle.Render(line)
	}
	return pointer + line + "  " + dateStyle.Render(task.DateAdded)
}

func (m Model) help() string {
	switch m.mode {
	case modeAdd:
		return "enter: add | esc: cancel"
	case modeMove:
		return "up/down: choose place | enter: drop | esc: cancel"
	default:
		return "a: add | space: toggle | c: complete | d: delete | m: move | K/J: shift | q: quit"
	}
}

func clampCursor(cursor, length int) int {
	if length == 0 || cursor < 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	return cursor
}
