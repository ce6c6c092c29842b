package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskloop/backend/domain"
	"github.com/taskloop/backend/repository"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func seed(t *testing.T, repo repository.TaskRepository, title string, done bool) *domain.Task {
	t.Helper()
	task, err := repo.Create(context.Background(), &domain.Task{Title: title, Done: done})
	require.NoError(t, err)
	return task
}

func TestCreateAssignsMonotonicIDs(t *testing.T) {
	repo := NewTaskRepository()

	first := seed(t, repo, "first", false)
	second := seed(t, repo, "second", false)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestIDsAreNeverReused(t *testing.T) {
	repo := NewTaskRepository()

	first := seed(t, repo, "first", false)
	require.NoError(t, repo.Delete(context.Background(), first.ID))

	second := seed(t, repo, "second", false)
	assert.Equal(t, int64(2), second.ID)
}

func TestListOrdersByIDDescending(t *testing.T) {
	repo := NewTaskRepository()
	seed(t, repo, "a", false)
	seed(t, repo, "b", true)
	seed(t, repo, "c", false)

	tasks, err := repo.List(context.Background(), repository.TaskFilter{})
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	for i := 1; i < len(tasks); i++ {
		assert.Greater(t, tasks[i-1].ID, tasks[i].ID)
	}
}

func TestListFiltersOnDone(t *testing.T) {
	repo := NewTaskRepository()
	seed(t, repo, "open", false)
	seed(t, repo, "closed", true)
	seed(t, repo, "also closed", true)

	tasks, err := repo.List(context.Background(), repository.TaskFilter{Done: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.True(t, task.Done)
	}

	tasks, err = repo.List(context.Background(), repository.TaskFilter{Done: boolPtr(false)})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "open", tasks[0].Title)
}

func TestListEmptyResultIsNotAnError(t *testing.T) {
	repo := NewTaskRepository()

	tasks, err := repo.List(context.Background(), repository.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := NewTaskRepository()

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestUpdateOnlyTouchesSuppliedFields(t *testing.T) {
	repo := NewTaskRepository()
	task, err := repo.Create(context.Background(), &domain.Task{
		Title:       "write report",
		Description: strPtr("quarterly numbers"),
	})
	require.NoError(t, err)

	updated, err := repo.Update(context.Background(), task.ID, repository.TaskPatch{Done: boolPtr(true)})
	require.NoError(t, err)

	assert.True(t, updated.Done)
	assert.Equal(t, "write report", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "quarterly numbers", *updated.Description)
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	repo := NewTaskRepository()
	task := seed(t, repo, "stale", false)

	time.Sleep(10 * time.Millisecond)

	updated, err := repo.Update(context.Background(), task.ID, repository.TaskPatch{Title: strPtr("fresh")})
	require.NoError(t, err)

	assert.True(t, updated.UpdatedAt.After(task.CreatedAt))
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
}

func TestUpdateDistinguishesAbsentFromExplicitEmpty(t *testing.T) {
	repo := NewTaskRepository()
	task, err := repo.Create(context.Background(), &domain.Task{
		Title:       "with description",
		Description: strPtr("something"),
	})
	require.NoError(t, err)

	// Absent description: stored value survives.
	updated, err := repo.Update(context.Background(), task.ID, repository.TaskPatch{Done: boolPtr(true)})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)

	// Explicit empty description: stored value overwritten.
	updated, err = repo.Update(context.Background(), task.ID, repository.TaskPatch{Description: strPtr("")})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "", *updated.Description)
}

func TestUpdateNotFound(t *testing.T) {
	repo := NewTaskRepository()

	_, err := repo.Update(context.Background(), 7, repository.TaskPatch{Done: boolPtr(true)})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestDeleteReportsNotFoundDistinctly(t *testing.T) {
	repo := NewTaskRepository()
	task := seed(t, repo, "ephemeral", false)

	require.NoError(t, repo.Delete(context.Background(), task.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), task.ID), domain.ErrTaskNotFound)
}

func TestReturnedTasksDoNotAliasStoredState(t *testing.T) {
	repo := NewTaskRepository()
	task, err := repo.Create(context.Background(), &domain.Task{
		Title:       "aliasing",
		Description: strPtr("original"),
	})
	require.NoError(t, err)

	got, err := repo.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	*got.Description = "mutated by caller"

	again, err := repo.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", *again.Description)
}
