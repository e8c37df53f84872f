package task

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// stubTask is a minimal Task implementation for queue and pool tests.
type stubTask struct {
	id      uuid.UUID
	execute func(ctx context.Context) error
}

func newStubTask(execute func(ctx context.Context) error) *stubTask {
	return &stubTask{id: uuid.New(), execute: execute}
}

func (t *stubTask) ID() uuid.UUID      { return t.id }
func (t *stubTask) Type() string       { return "stub" }
func (t *stubTask) Payload() []byte    { return nil }
func (t *stubTask) Status() TaskStatus { return TaskStatusPending }
func (t *stubTask) Execute(ctx context.Context) error {
	if t.execute != nil {
		return t.execute(ctx)
	}
	return nil
}

func TestTaskQueueEnqueue(t *testing.T) {
	t.Parallel()

	queue := NewTaskQueue(2, testLogger())

	require.NoError(t, queue.Enqueue(newStubTask(nil)))
	require.NoError(t, queue.Enqueue(newStubTask(nil)))

	// Buffer exhausted.
	err := queue.Enqueue(newStubTask(nil))
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestTaskQueueClose(t *testing.T) {
	t.Parallel()

	queue := NewTaskQueue(1, testLogger())
	queue.Close()

	assert.ErrorIs(t, queue.Enqueue(newStubTask(nil)), ErrQueueClosed)

	// Closing twice must not panic.
	queue.Close()
}

func TestTaskQueueDeliversToChannel(t *testing.T) {
	t.Parallel()

	queue := NewTaskQueue(1, testLogger())
	want := newStubTask(nil)
	require.NoError(t, queue.Enqueue(want))

	got := <-queue.GetChannel()
	assert.Equal(t, want.ID(), got.ID())
}
