package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(userID, "write report", "", "", "", nil)
		require.NoError(t, err)

		assert.Equal(t, domain.TaskStatusTodo, task.Status)
		assert.Equal(t, domain.TaskPriorityMedium, task.Priority)
		assert.Equal(t, userID, task.UserID)
		assert.Nil(t, task.CompletedAt)
	})

	t.Run("accepts explicit status and priority", func(t *testing.T) {
		t.Parallel()

		due := time.Now().UTC().Add(48 * time.Hour)
		task, err := domain.NewTask(
			userID,
			"review PR",
			"backend changes",
			domain.TaskStatusDoing,
			domain.TaskPriorityHigh,
			&due,
		)
		require.NoError(t, err)

		assert.Equal(t, domain.TaskStatusDoing, task.Status)
		assert.Equal(t, domain.TaskPriorityHigh, task.Priority)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, due, *task.DueDate)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(uuid.Nil, "write report", "", "", "", nil)
		assert.ErrorIs(t, err, domain.ErrEmptyTaskUserID)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(userID, "", "", "", "", nil)
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(userID, "write report", "", "SOMEDAY", "", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(userID, "write report", "", "", "URGENT", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	})
}

func TestTaskIsOpen(t *testing.T) {
	t.Parallel()

	assert.True(t, (&domain.Task{Status: domain.TaskStatusTodo}).IsOpen())
	assert.True(t, (&domain.Task{Status: domain.TaskStatusDoing}).IsOpen())
	assert.False(t, (&domain.Task{Status: domain.TaskStatusDone}).IsOpen())
}

func TestTaskComplete(t *testing.T) {
	t.Parallel()

	task, err := domain.NewTask(uuid.New(), "write report", "", "", "", nil)
	require.NoError(t, err)

	task.Complete()

	assert.Equal(t, domain.TaskStatusDone, task.Status)
	require.NotNil(t, task.CompletedAt)
	assert.False(t, task.CompletedAt.IsZero())
	assert.False(t, task.IsOpen())
}
