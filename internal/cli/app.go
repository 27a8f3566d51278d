package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tasklist/internal/api"
	"tasklist/internal/config"
	"tasklist/internal/errors"
)

// App represents the main CLI application
type App struct {
	businessAPI api.BusinessAPI
	config      *config.Config
	out         io.Writer
	errOut      io.Writer
}

// AppFactory builds the application once configuration is final. The
// returned function releases its resources.
type AppFactory func(cfg *config.Config) (*App, func() error, error)

// NewApp creates a new CLI application instance with dependency injection
func NewApp(businessAPI api.BusinessAPI, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &App{
		businessAPI: businessAPI,
		config:      cfg,
		out:         os.Stdout,
		errOut:      os.Stderr,
	}
}

// WithOutput redirects command output
func (a *App) WithOutput(out, errOut io.Writer) *App {
	a.out = out
	a.errOut = errOut
	return a
}

// NewAppWithDefaultRepository opens the configured SQLite store and builds
// the application on top of it
func NewAppWithDefaultRepository(cfg *config.Config) (*App, func() error, error) {
	repo, err := config.CreateRepository(cfg, config.GetEnvironment())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open task store: %w", err)
	}

	businessAPI := api.NewBusinessAPI(repo, cfg)
	return NewApp(businessAPI, cfg), repo.Close, nil
}

// parsePosition parses a one-based list position argument
func parsePosition(field, arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, errors.NewInvalidInputError(field, arg, "must be a list position")
	}
	return n, nil
}
