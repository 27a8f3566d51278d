package cli

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tasklist/internal/domain"
)

func TestExportCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("json to stdout", func(t *testing.T) {
		app, out, _ := setupTestApp(t, "a", "b")

		require.NoError(t, NewExportCommand(app).Execute(ctx, ExportOptions{Format: "json"}))

		var got domain.TaskList
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		want, err := app.businessAPI.Tasks(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("yaml", func(t *testing.T) {
		app, out, _ := setupTestApp(t, "Buy milk")

		require.NoError(t, NewExportCommand(app).Execute(ctx, ExportOptions{Format: "yml"}))

		assert.Contains(t, out.String(), "name: Buy milk")
		assert.Contains(t, out.String(), "completed: false")
	})

	t.Run("csv", func(t *testing.T) {
		app, out, _ := setupTestApp(t, "Buy milk, eggs")

		require.NoError(t, NewExportCommand(app).Execute(ctx, ExportOptions{Format: "csv"}))

		lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "id,name,dateAdded,completed", lines[0])
		assert.Contains(t, lines[1], `,"Buy milk, eggs",3/14/2024,false`)
	})

	t.Run("to a file", func(t *testing.T) {
		app, out, errOut := setupTestApp(t, "a")
		path := filepath.Join(t.TempDir(), "tasks.json")

		require.NoError(t, NewExportCommand(app).Execute(ctx, ExportOptions{Format: "json", Output: path}))

		assert.Empty(t, out.String())
		assert.Equal(t, "Exported tasks to "+path+"\n", errOut.String())
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"name": "a"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		app, _, _ := setupTestApp(t)

		err := NewExportCommand(app).Execute(ctx, ExportOptions{Format: "xml"})

		require.Error(t, err)
		assert.Equal(t, `failed to export tasks: invalid format "xml": must be json, yaml or csv`, err.Error())
	})

	t.Run("store failure", func(t *testing.T) {
		app, _ := newStubApp(errors.New("locked"))

		err := NewExportCommand(app).Execute(ctx, ExportOptions{})

		require.Error(t, err)
		assert.Equal(t, "failed to export tasks: locked", err.Error())
	})
}
