package services

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/errors"
	"tasklist/internal/logging"
	"tasklist/internal/repository/sqlite"
	"tasklist/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	mu sync.Mutex

	repo          sqlite.Repository
	key           string
	timeService   TimeService
	mapper        *domain.TaskListMapper
	taskValidator *validation.TaskValidator

	tasks  domain.TaskList
	loaded bool
	lastID int64
}

// NewTaskService creates a new TaskService instance storing the list under
// the configured key. A nil config uses the defaults.
func NewTaskService(repo sqlite.Repository, timeService TimeService, cfg *config.Config) TaskService {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &taskServiceImpl{
		repo:          repo,
		key:           cfg.Storage.Key,
		timeService:   timeService,
		mapper:        domain.NewTaskListMapper(),
		taskValidator: validation.NewTaskValidator(),
		tasks:         domain.TaskList{},
	}
}

// Load reads the stored list once. Missing or unreadable data yields an
// empty list; only storage failures are returned.
func (t *taskServiceImpl) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ensureLoaded(ctx)
}

func (t *taskServiceImpl) ensureLoaded(ctx context.Context) error {
	if t.loaded {
		return nil
	}

	record, err := t.repo.Get(ctx, t.key)
	if err != nil {
		if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return err
		}
		logging.Debugf("no stored tasks under %q, starting empty\n", t.key)
		t.setLoaded(domain.TaskList{})
		return nil
	}

	list, err := t.mapper.FromRecord(record)
	if err != nil {
		logging.Debugf("ignoring unreadable value under %q: %v\n", t.key, err)
		t.setLoaded(domain.TaskList{})
		return nil
	}

	t.setLoaded(dedupe(list))
	return nil
}

func (t *taskServiceImpl) setLoaded(list domain.TaskList) {
	t.tasks = list
	t.loaded = true
	if maxID := list.MaxID(); maxID > t.lastID {
		t.lastID = maxID
	}
	logging.Debugf("loaded %d tasks\n", len(list))
}

// dedupe keeps the first task for each ID
func dedupe(list domain.TaskList) domain.TaskList {
	seen := make(map[int64]bool, len(list))
	out := make(domain.TaskList, 0, len(list))
	for _, task := range list {
		if seen[task.ID] {
			logging.Debugf("dropping duplicate task id %d\n", task.ID)
			continue
		}
		seen[task.ID] = true
		out = append(out, task)
	}
	return out
}

// Save writes the whole list under the storage key
func (t *taskServiceImpl) Save(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.save(ctx)
}

func (t *taskServiceImpl) save(ctx context.Context) error {
	record, err := t.mapper.ToRecord(t.key, t.tasks)
	if err != nil {
		return err
	}
	if err := t.repo.Put(ctx, record); err != nil {
		return err
	}
	logging.Debugf("saved %d tasks\n", len(t.tasks))
	return nil
}

// commit installs next as the current list and saves it. The in-memory list
// keeps the change even when the save fails.
func (t *taskServiceImpl) commit(ctx context.Context, next domain.TaskList) error {
	t.tasks = next
	return t.save(ctx)
}

// Add appends a new task named exactly as given. A blank name is ignored
// without error; every other name is accepted whatever its length or content.
func (t *taskServiceImpl) Add(ctx context.Context, name string) (*domain.Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	at := t.timeService.Now()
	id := t.timeService.NextID(at, t.tasks, t.lastID)
	task := domain.NewTask(id, name, t.timeService.DateStamp(at))
	t.lastID = id

	if err := t.commit(ctx, t.tasks.Append(task)); err != nil {
		return &task, err
	}
	return &task, nil
}

// Delete removes the task with the given ID. Unknown IDs are a no-op.
func (t *taskServiceImpl) Delete(ctx context.Context, id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return false, err
	}

	next, removed := t.tasks.Without(id)
	if !removed {
		return false, nil
	}
	return true, t.commit(ctx, next)
}

// ToggleCompleted flips completion of the task with the given ID
func (t *taskServiceImpl) ToggleCompleted(ctx context.Context, id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return false, err
	}

	next, found := t.tasks.ToggleCompleted(id)
	if !found {
		return false, nil
	}
	return true, t.commit(ctx, next)
}

// Complete marks the task with the given ID completed. Completing a
// completed task changes nothing and does not save.
func (t *taskServiceImpl) Complete(ctx context.Context, id int64) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return false, err
	}

	next, changed := t.tasks.Complete(id)
	if !changed {
		return false, nil
	}
	return true, t.commit(ctx, next)
}

// Reorder moves the task at source to destination of the list without it.
// Out-of-range indices leave the list untouched.
func (t *taskServiceImpl) Reorder(ctx context.Context, source, destination int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return err
	}

	next, err := t.tasks.Reorder(source, destination)
	if err != nil {
		return err
	}
	if source == destination {
		return nil
	}
	return t.commit(ctx, next)
}

// Drop applies a finished reorder gesture. A cancelled gesture is a no-op.
func (t *taskServiceImpl) Drop(ctx context.Context, result domain.DropResult) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return false, err
	}

	next, changed, err := t.tasks.Drop(result)
	if err != nil || !changed {
		return false, err
	}
	return true, t.commit(ctx, next)
}

// Replace swaps in an imported list. Every task must be valid and IDs must
// be unique.
func (t *taskServiceImpl) Replace(ctx context.Context, list domain.TaskList) error {
	for i, task := range list {
		if err := t.taskValidator.ValidateTask(task); err != nil {
			return errors.NewValidationError("invalid task at position "+strconv.Itoa(i+1), err)
		}
	}
	seen := make(map[int64]bool, len(list))
	for _, id := range list.IDs() {
		if seen[id] {
			return errors.NewInvalidInputError("task id", id, "appears more than once")
		}
		seen[id] = true
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loaded = true
	if maxID := list.MaxID(); maxID > t.lastID {
		t.lastID = maxID
	}
	return t.commit(ctx, list.Clone())
}

// Clear empties the list and removes its value from storage. It returns the
// number of tasks removed. IDs already issued are not reused afterwards.
func (t *taskServiceImpl) Clear(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	removed := len(t.tasks)
	if err := t.repo.Delete(ctx, t.key); err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return 0, err
	}
	t.tasks = domain.TaskList{}
	logging.Debugf("cleared %d tasks under %q\n", removed, t.key)
	return removed, nil
}

// StoredKeys lists every key present in storage, the task list key among them
// once it has been saved.
func (t *taskServiceImpl) StoredKeys(ctx context.Context) ([]string, error) {
	return t.repo.Keys(ctx)
}

// Key returns the storage key the list is saved under
func (t *taskServiceImpl) Key() string {
	return t.key
}

// Apply dispatches a single command
func (t *taskServiceImpl) Apply(ctx context.Context, cmd Command) (Outcome, error) {
	return dispatch(ctx, t, cmd)
}

// Tasks returns a copy of the current list
func (t *taskServiceImpl) Tasks() domain.TaskList {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tasks.Clone()
}
