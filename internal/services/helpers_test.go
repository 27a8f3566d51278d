package services

import (
	"context"
	"testing"
	"time"

	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/repository/sqlite"

	"github.com/stretchr/testify/require"
)

// baseTime is 14 March 2024 09:30 local time
var baseTime = time.Date(2024, 3, 14, 9, 30, 0, 0, time.Local)

// fakeClock returns t and then advances it by step on every call
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) Now() time.Time {
	now := c.t
	c.t = c.t.Add(c.step)
	return now
}

// recordingRepo counts writes and can inject failures
type recordingRepo struct {
	sqlite.Repository
	puts      int
	putErr    error
	getErr    error
	deleteErr error
}

func (r *recordingRepo) Delete(ctx context.Context, key string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	return r.Repository.Delete(ctx, key)
}

func (r *recordingRepo) Put(ctx context.Context, record *sqlite.Record) error {
	r.puts++
	if r.putErr != nil {
		return r.putErr
	}
	return r.Repository.Put(ctx, record)
}

func (r *recordingRepo) Get(ctx context.Context, key string) (*sqlite.Record, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.Repository.Get(ctx, key)
}

func newRecordingRepo(t *testing.T) *recordingRepo {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return &recordingRepo{Repository: repo}
}

func setupTaskService(t *testing.T) (TaskService, *recordingRepo, *fakeClock) {
	t.Helper()
	repo := newRecordingRepo(t)
	clock := &fakeClock{t: baseTime, step: time.Second}
	timeService := NewTimeServiceWithClock(config.NewConfig().Display.DateFormat, clock.Now)
	return NewTaskService(repo, timeService, nil), repo, clock
}

// setupTaskServiceWithData stores list under the default key before the
// service loads it.
func setupTaskServiceWithData(t *testing.T, list domain.TaskList) (TaskService, *recordingRepo) {
	t.Helper()
	service, repo, _ := setupTaskService(t)
	storeRaw(t, repo, mustEncode(t, list))
	require.NoError(t, service.Load(context.Background()))
	repo.puts = 0
	return service, repo
}

func storeRaw(t *testing.T, repo sqlite.Repository, value string) {
	t.Helper()
	err := repo.Put(context.Background(), &sqlite.Record{Key: config.DefaultStorageKey, Value: value})
	require.NoError(t, err)
}

func mustEncode(t *testing.T, list domain.TaskList) string {
	t.Helper()
	data, err := domain.NewTaskListMapper().Encode(list)
	require.NoError(t, err)
	return string(data)
}

func loadStored(t *testing.T, repo sqlite.Repository) domain.TaskList {
	t.Helper()
	record, err := repo.Get(context.Background(), config.DefaultStorageKey)
	require.NoError(t, err)
	list, err := domain.NewTaskListMapper().FromRecord(record)
	require.NoError(t, err)
	return list
}

func abc() domain.TaskList {
	return domain.TaskList{
		domain.NewTask(1, "A", "3/14/2024"),
		domain.NewTask(2, "B", "3/14/2024"),
		domain.NewTask(3, "C", "3/14/2024"),
	}
}

func names(list domain.TaskList) []string {
	out := make([]string, len(list))
	for i, task := range list {
		out[i] = task.Name
	}
	return out
}
