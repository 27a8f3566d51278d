package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"tasklist/internal/domain"
	"tasklist/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// genName covers blank names, names with control and markup characters,
// arbitrary unicode and names of several hundred runes.
var genName = rapid.OneOf(
	rapid.StringMatching(`[ a-zA-Z0-9<>&\t\n]{0,12}`),
	rapid.String(),
	rapid.StringN(501, 600, -1),
)

// TestTaskService_CommandSequences applies random commands and checks the
// store against the pure list operations and against storage.
func TestTaskService_CommandSequences(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		repo, err := sqlite.New(":memory:")
		require.NoError(rt, err)
		defer repo.Close()

		clock := &fakeClock{t: baseTime, step: time.Duration(rapid.IntRange(0, 2).Draw(rt, "step")) * time.Millisecond}
		service := NewTaskService(repo, NewTimeServiceWithClock("1/2/2006", clock.Now), nil)
		ctx := context.Background()
		require.NoError(rt, service.Load(ctx))

		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			before := service.Tasks()
			cmd := drawCommand(rt, before)

			outcome, err := service.Apply(ctx, cmd)
			require.NoError(rt, err)
			after := service.Tasks()

			switch c := cmd.(type) {
			case AddCommand:
				if strings.TrimSpace(c.Name) == "" {
					assert.Equal(rt, before, after)
					assert.False(rt, outcome.Changed)
					break
				}
				require.Len(rt, after, len(before)+1)
				last := after[len(after)-1]
				assert.Equal(rt, c.Name, last.Name)
				assert.False(rt, last.Completed)
				assert.Equal(rt, outcome.Task.ID, last.ID)
			case DeleteCommand:
				if before.IndexOf(c.ID) < 0 {
					assert.Equal(rt, before, after)
					break
				}
				assert.Len(rt, after, len(before)-1)
				assert.Equal(rt, -1, after.IndexOf(c.ID))
			case ToggleCommand:
				expected, _ := before.ToggleCompleted(c.ID)
				assert.Equal(rt, expected, after)
			case CompleteCommand:
				expected, _ := before.Complete(c.ID)
				assert.Equal(rt, expected, after)
				if task, ok := after.Find(c.ID); ok {
					assert.True(rt, task.Completed)
				}
			case ReorderCommand:
				expected, _ := before.Reorder(c.Source, c.Destination)
				assert.Equal(rt, expected, after)
				assert.ElementsMatch(rt, before.IDs(), after.IDs())
			}

			assertUniqueIDs(rt, after)
			if outcome.Changed {
				record, err := repo.Get(ctx, "tasks")
				require.NoError(rt, err)
				stored, err := domain.NewTaskListMapper().FromRecord(record)
				require.NoError(rt, err)
				assert.Equal(rt, after, stored, "storage mirrors memory after a change")
			}
		}
	})
}

func drawCommand(rt *rapid.T, list domain.TaskList) Command {
	if len(list) == 0 {
		return AddCommand{Name: genName.Draw(rt, "name")}
	}

	pickID := func(label string) int64 {
		if rapid.IntRange(0, 9).Draw(rt, label+"-absent") == 0 {
			return -1
		}
		return list[rapid.IntRange(0, len(list)-1).Draw(rt, label)].ID
	}

	switch rapid.IntRange(0, 4).Draw(rt, "kind") {
	case 0:
		return AddCommand{Name: genName.Draw(rt, "name")}
	case 1:
		return DeleteCommand{ID: pickID("delete")}
	case 2:
		return ToggleCommand{ID: pickID("toggle")}
	case 3:
		return CompleteCommand{ID: pickID("complete")}
	default:
		return ReorderCommand{
			Source:      rapid.IntRange(0, len(list)-1).Draw(rt, "source"),
			Destination: rapid.IntRange(0, len(list)-1).Draw(rt, "destination"),
		}
	}
}

func assertUniqueIDs(t require.TestingT, list domain.TaskList) {
	seen := make(map[int64]bool, len(list))
	for _, task := range list {
		assert.False(t, seen[task.ID], "duplicate id %d", task.ID)
		seen[task.ID] = true
	}
}
