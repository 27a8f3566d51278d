package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const browserDump = `[{"id":1700000000000,"name":"Buy milk","dateAdded":"11/14/2023","completed":true},` +
	`{"id":1700000000500,"name":"Walk dog","dateAdded":"11/14/2023","completed":false}]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestImportCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces the list from a browser dump", func(t *testing.T) {
		app, out, _ := setupTestApp(t, "old")
		path := writeFile(t, "tasks.json", browserDump)

		require.NoError(t, NewImportCommand(app).Execute(ctx, path, ""))

		assert.Equal(t, "Imported 2 tasks\n", out.String())
		list, err := app.businessAPI.Tasks(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, int64(1700000000000), list[0].ID)
		assert.True(t, list[0].Completed)
		assert.Equal(t, "Walk dog", list[1].Name)
	})

	t.Run("format from extension", func(t *testing.T) {
		app, out, _ := setupTestApp(t)
		path := writeFile(t, "tasks.yaml", "- id: 5\n  name: From yaml\n  dateAdded: 1/2/2024\n  completed: false\n")

		require.NoError(t, NewImportCommand(app).Execute(ctx, path, ""))

		assert.Equal(t, "Imported 1 tasks\n", out.String())
		assert.Equal(t, []string{"From yaml"}, taskNames(t, app))
	})

	t.Run("format flag wins over extension", func(t *testing.T) {
		app, _, _ := setupTestApp(t)
		path := writeFile(t, "tasks.txt", "id,name,dateAdded,completed\n9,From csv,1/2/2024,true\n")

		require.NoError(t, NewImportCommand(app).Execute(ctx, path, "csv"))

		assert.Equal(t, []string{"From csv"}, taskNames(t, app))
	})

	t.Run("stdin", func(t *testing.T) {
		app, out, _ := setupTestApp(t)
		cmd := NewImportCommand(app)
		cmd.in = strings.NewReader(browserDump)

		require.NoError(t, cmd.Execute(ctx, "-", ""))

		assert.Equal(t, "Imported 2 tasks\n", out.String())
	})

	t.Run("missing file", func(t *testing.T) {
		app, _, _ := setupTestApp(t, "keep")
		path := filepath.Join(t.TempDir(), "missing.json")

		err := NewImportCommand(app).Execute(ctx, path, "")

		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), "failed to import tasks: cannot read "+path+": "), err.Error())
		assert.Equal(t, []string{"keep"}, taskNames(t, app))
	})

	t.Run("malformed content keeps the list", func(t *testing.T) {
		app, _, _ := setupTestApp(t, "keep")
		path := writeFile(t, "tasks.json", "{not json")

		err := NewImportCommand(app).Execute(ctx, path, "")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to import tasks:")
		assert.Equal(t, []string{"keep"}, taskNames(t, app))
	})

	t.Run("unknown format flag", func(t *testing.T) {
		app, _, _ := setupTestApp(t)
		path := writeFile(t, "tasks.json", browserDump)

		err := NewImportCommand(app).Execute(ctx, path, "xml")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be json, yaml or csv")
	})
}
