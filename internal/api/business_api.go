package api

import (
	"context"
	"strconv"
	"strings"

	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/repository/sqlite"
	"tasklist/internal/services"
	"tasklist/internal/validation"
)

// TaskView is a task with its one-based position in the full list
type TaskView struct {
	Position int         `json:"position"`
	Task     domain.Task `json:"task"`
}

// TaskListing is the result of a list query
type TaskListing struct {
	Tasks []TaskView               `json:"tasks"`
	Stats *services.ListStatistics `json:"stats"`
}

// StoredList is one key of the key-value store
type StoredList struct {
	Key     string `json:"key"`
	Current bool   `json:"current"`
}

// ListFilter narrows a list query
type ListFilter struct {
	Status string
	Search string
}

// BusinessAPI defines the task list operations used by the front ends.
//
// Task references are strings holding either a one-based list position or
// a task ID. Positions win when a number could be both.
type BusinessAPI interface {
	// ========== Queries ==========

	// ListTasks returns the tasks in list order, optionally filtered
	ListTasks(ctx context.Context, filter ListFilter) (*TaskListing, error)

	// Tasks returns a copy of the whole list
	Tasks(ctx context.Context) (domain.TaskList, error)

	// ========== Mutations ==========

	// AddTask appends a task. A blank name returns a nil task and no error.
	AddTask(ctx context.Context, name string) (*domain.Task, error)

	// DeleteTask removes the referenced task and returns it
	DeleteTask(ctx context.Context, ref string) (*domain.Task, error)

	// ToggleTask flips completion and returns the updated task
	ToggleTask(ctx context.Context, ref string) (*domain.Task, error)

	// CompleteTask marks the task completed. The bool is false when it
	// already was.
	CompleteTask(ctx context.Context, ref string) (*domain.Task, bool, error)

	// MoveTask moves the task at one-based position from to position to
	MoveTask(ctx context.Context, from, to int) (*domain.Task, error)

	// Drop applies a finished reorder gesture with zero-based indices
	Drop(ctx context.Context, result domain.DropResult) (bool, error)

	// ClearTasks removes every task and returns how many there were
	ClearTasks(ctx context.Context) (int, error)

	// ========== Storage ==========

	// StoredLists returns every key in the store, marking the one in use
	StoredLists(ctx context.Context) ([]StoredList, error)

	// ========== Transfer ==========

	// Export renders the whole list in the given format
	Export(ctx context.Context, format services.Format) ([]byte, error)

	// Import replaces the whole list and returns the number of tasks
	Import(ctx context.Context, data []byte, format services.Format) (int, error)
}

// businessAPIImpl implements the BusinessAPI interface
type businessAPIImpl struct {
	services      *services.ServiceContainer
	taskValidator *validation.TaskValidator
}

// NewBusinessAPI creates a new BusinessAPI instance over a repository
func NewBusinessAPI(repo sqlite.Repository, cfg *config.Config) BusinessAPI {
	return NewBusinessAPIWithServices(services.NewServiceContainer(repo, cfg))
}

// NewBusinessAPIWithServices creates a BusinessAPI from prepared services
func NewBusinessAPIWithServices(container *services.ServiceContainer) BusinessAPI {
	return &businessAPIImpl{
		services:      container,
		taskValidator: validation.NewTaskValidator(),
	}
}

// current loads the list if needed and returns a copy
func (b *businessAPIImpl) current(ctx context.Context) (domain.TaskList, error) {
	if err := b.services.TaskService.Load(ctx); err != nil {
		return nil, err
	}
	return b.services.TaskService.Tasks(), nil
}

// resolve finds the index of the referenced task
func (b *businessAPIImpl) resolve(list domain.TaskList, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	n, err := strconv.ParseInt(ref, 10, 64)
	if err != nil {
		return -1, errors.NewInvalidInputError("task", ref, "must be a list position or a task ID")
	}

	if n >= 1 && n <= int64(len(list)) {
		return int(n - 1), nil
	}
	if i := list.IndexOf(n); i >= 0 {
		return i, nil
	}
	return -1, errors.NewTaskNotFoundError(ref)
}

// ========== Queries ==========

func (b *businessAPIImpl) ListTasks(ctx context.Context, filter ListFilter) (*TaskListing, error) {
	list, err := b.current(ctx)
	if err != nil {
		return nil, err
	}

	status, err := b.services.SearchService.ParseStatus(filter.Status)
	if err != nil {
		return nil, err
	}

	matches := b.services.SearchService.Search(list, services.SearchCriteria{
		TextFilter: filter.Search,
		Status:     status,
	})

	views := make([]TaskView, len(matches))
	for i, m := range matches {
		views[i] = TaskView{Position: m.Position(), Task: m.Task}
	}

	return &TaskListing{
		Tasks: views,
		Stats: b.services.ReportingService.Statistics(list),
	}, nil
}

func (b *businessAPIImpl) Tasks(ctx context.Context) (domain.TaskList, error) {
	return b.current(ctx)
}

// ========== Mutations ==========

func (b *businessAPIImpl) AddTask(ctx context.Context, name string) (*domain.Task, error) {
	outcome, err := b.services.TaskService.Apply(ctx, services.AddCommand{Name: name})
	if err != nil {
		return nil, err
	}
	return outcome.Task, nil
}

func (b *businessAPIImpl) DeleteTask(ctx context.Context, ref string) (*domain.Task, error) {
	list, err := b.current(ctx)
	if err != nil {
		return nil, err
	}
	i, err := b.resolve(list, ref)
	if err != nil {
		return nil, err
	}

	task := list[i]
	if _, err := b.services.TaskService.Apply(ctx, services.DeleteCommand{ID: task.ID}); err != nil {
		return nil, err
	}
	return &task, nil
}

func (b *businessAPIImpl) ToggleTask(ctx context.Context, ref string) (*domain.Task, error) {
	list, err := b.current(ctx)
	if err != nil {
		return nil, err
	}
	i, err := b.resolve(list, ref)
	if err != nil {
		return nil, err
	}

	id := list[i].ID
	if _, err := b.services.TaskService.Apply(ctx, services.ToggleCommand{ID: id}); err != nil {
		return nil, err
	}
	return b.updated(id)
}

// updated reads a task back from the list after a mutation
func (b *businessAPIImpl) updated(id int64) (*domain.Task, error) {
	task, ok := b.services.TaskService.Tasks().Find(id)
	if !ok {
		return nil, errors.NewTaskNotFoundError(strconv.FormatInt(id, 10))
	}
	return &task, nil
}

func (b *businessAPIImpl) CompleteTask(ctx context.Context, ref string) (*domain.Task, bool, error) {
	list, err := b.current(ctx)
	if err != nil {
		return nil, false, err
	}
	i, err := b.resolve(list, ref)
	if err != nil {
		return nil, false, err
	}

	id := list[i].ID
	outcome, err := b.services.TaskService.Apply(ctx, services.CompleteCommand{ID: id})
	if err != nil {
		return nil, false, err
	}
	task, err := b.updated(id)
	if err != nil {
		return nil, false, err
	}
	return task, outcome.Changed, nil
}

func (b *businessAPIImpl) MoveTask(ctx context.Context, from, to int) (*domain.Task, error) {
	list, err := b.current(ctx)
	if err != nil {
		return nil, err
	}

	if err := b.taskValidator.ValidateMove(from, to, len(list)); err != nil {
		return nil, errors.NewPositionError("invalid position", err)
	}

	task := list[from-1]
	cmd := services.ReorderCommand{Source: from - 1, Destination: to - 1}
	if _, err := b.services.TaskService.Apply(ctx, cmd); err != nil {
		return nil, err
	}
	return &task, nil
}

func (b *businessAPIImpl) Drop(ctx context.Context, result domain.DropResult) (bool, error) {
	outcome, err := b.services.TaskService.Apply(ctx, services.DropCommand{Result: result})
	if err != nil {
		return false, err
	}
	return outcome.Changed, nil
}

func (b *businessAPIImpl) ClearTasks(ctx context.Context) (int, error) {
	return b.services.TaskService.Clear(ctx)
}

// ========== Storage ==========

func (b *businessAPIImpl) StoredLists(ctx context.Context) ([]StoredList, error) {
	keys, err := b.services.TaskService.StoredKeys(ctx)
	if err != nil {
		return nil, err
	}
	current := b.services.TaskService.Key()
	lists := make([]StoredList, len(keys))
	for i, key := range keys {
		lists[i] = StoredList{Key: key, Current: key == current}
	}
	return lists, nil
}

// ========== Transfer ==========

func (b *businessAPIImpl) Export(ctx context.Context, format services.Format) ([]byte, error) {
	list, err := b.current(ctx)
	if err != nil {
		return nil, err
	}
	return b.services.TransferService.Export(list, format)
}

func (b *businessAPIImpl) Import(ctx context.Context, data []byte, format services.Format) (int, error) {
	list, err := b.services.TransferService.Import(data, format)
	if err != nil {
		return 0, err
	}
	if err := b.services.TaskService.Replace(ctx, list); err != nil {
		return 0, err
	}
	return len(list), nil
}
