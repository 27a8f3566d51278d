package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tasklist/internal/api"
	"tasklist/internal/config"
	"tasklist/internal/domain"
	"tasklist/internal/repository/sqlite"
	"tasklist/internal/services"
)

// memStore is an in-memory task store shared by every App a test builds,
// so separate command runs see each other's writes.
type memStore struct {
	repo     sqlite.Repository
	now      time.Time
	releases int
	builds   int
}

func newMemStore(t *testing.T) *memStore {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	return &memStore{
		repo: repo,
		now:  time.Date(2024, 3, 14, 9, 30, 0, 0, time.Local),
	}
}

func (s *memStore) clock() time.Time {
	s.now = s.now.Add(time.Second)
	return s.now
}

// factory is an AppFactory over the shared store
func (s *memStore) factory(cfg *config.Config) (*App, func() error, error) {
	s.builds++
	timeService := services.NewTimeServiceWithClock(cfg.Display.DateFormat, s.clock)
	container := services.NewServiceContainerWithTime(s.repo, cfg, timeService)
	app := NewApp(api.NewBusinessAPIWithServices(container), cfg)
	return app, func() error {
		s.releases++
		return nil
	}, nil
}

// setupTestApp builds an App holding one task per name, writing to the
// returned buffers
func setupTestApp(t *testing.T, names ...string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	return setupTestAppWithConfig(t, config.NewConfig(), names...)
}

func setupTestAppWithConfig(t *testing.T, cfg *config.Config, names ...string) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	store := newMemStore(t)
	app, _, err := store.factory(cfg)
	require.NoError(t, err)

	ctx := context.Background()
	for _, name := range names {
		_, err := app.businessAPI.AddTask(ctx, name)
		require.NoError(t, err)
	}

	var out, errOut bytes.Buffer
	app.WithOutput(&out, &errOut)
	return app, &out, &errOut
}

func taskNames(t *testing.T, app *App) []string {
	t.Helper()
	list, err := app.businessAPI.Tasks(context.Background())
	require.NoError(t, err)
	out := make([]string, len(list))
	for i, task := range list {
		out[i] = task.Name
	}
	return out
}

// stubBusinessAPI fails every operation it overrides with err
type stubBusinessAPI struct {
	api.BusinessAPI
	err error
}

func (s stubBusinessAPI) ListTasks(ctx context.Context, filter api.ListFilter) (*api.TaskListing, error) {
	return nil, s.err
}

func (s stubBusinessAPI) AddTask(ctx context.Context, name string) (*domain.Task, error) {
	return nil, s.err
}

func (s stubBusinessAPI) DeleteTask(ctx context.Context, ref string) (*domain.Task, error) {
	return nil, s.err
}

func (s stubBusinessAPI) ToggleTask(ctx context.Context, ref string) (*domain.Task, error) {
	return nil, s.err
}

func (s stubBusinessAPI) CompleteTask(ctx context.Context, ref string) (*domain.Task, bool, error) {
	return nil, false, s.err
}

func (s stubBusinessAPI) MoveTask(ctx context.Context, from, to int) (*domain.Task, error) {
	return nil, s.err
}

func (s stubBusinessAPI) Export(ctx context.Context, format services.Format) ([]byte, error) {
	return nil, s.err
}

func (s stubBusinessAPI) Import(ctx context.Context, data []byte, format services.Format) (int, error) {
	return 0, s.err
}

func (s stubBusinessAPI) ClearTasks(ctx context.Context) (int, error) {
	return 0, s.err
}

func (s stubBusinessAPI) StoredLists(ctx context.Context) ([]api.StoredList, error) {
	return nil, s.err
}

func newStubApp(err error) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	app := NewApp(stubBusinessAPI{err: err}, config.NewConfig()).WithOutput(&out, &out)
	return app, &out
}
