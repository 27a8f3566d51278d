package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/config"
	"tasklist/internal/errors"
)

func TestNewApp(t *testing.T) {
	t.Run("defaults config and output", func(t *testing.T) {
		app := NewApp(stubBusinessAPI{}, nil)

		require.NotNil(t, app.config)
		assert.Equal(t, "tasks", app.config.Storage.Key)
		assert.Equal(t, os.Stdout, app.out)
		assert.Equal(t, os.Stderr, app.errOut)
	})

	t.Run("keeps given config", func(t *testing.T) {
		cfg := config.NewConfig()
		cfg.Display.DoneMark = "✓"

		app := NewApp(stubBusinessAPI{}, cfg)

		assert.Same(t, cfg, app.config)
	})
}

func TestNewAppWithDefaultRepository(t *testing.T) {
	t.Setenv("TL_ENV", "")
	cfg := config.NewConfig()
	cfg.Storage.Dir = filepath.Join(t.TempDir(), "nested", "store")

	app, release, err := NewAppWithDefaultRepository(cfg)
	require.NoError(t, err)

	_, err = app.businessAPI.AddTask(context.Background(), "Buy milk")
	require.NoError(t, err)
	require.NoError(t, release())

	assert.FileExists(t, cfg.GetDatabasePath())

	reopened, release, err := NewAppWithDefaultRepository(cfg)
	require.NoError(t, err)
	defer release()
	assert.Equal(t, []string{"Buy milk"}, taskNames(t, reopened))
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{arg: "1", want: 1},
		{arg: " 12 ", want: 12},
		{arg: "0", want: 0},
		{arg: "-3", want: -3},
		{arg: "first", wantErr: true},
		{arg: "1.5", wantErr: true},
		{arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parsePosition("from", tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
