package mocks

import (
	"sync"

	"github.com/taskdeck/taskdeck-api/internal/task"
)

// MockTaskQueue is a configurable mock implementation of
// task.TaskQueueWriter that records every enqueued task.
type MockTaskQueue struct {
	mu          sync.Mutex
	enqueued    []task.Task
	closed      bool
	EnqueueFunc func(t task.Task) error
}

var _ task.TaskQueueWriter = (*MockTaskQueue)(nil)

func (m *MockTaskQueue) Enqueue(t task.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return task.ErrQueueClosed
	}
	if m.EnqueueFunc != nil {
		if err := m.EnqueueFunc(t); err != nil {
			return err
		}
	}
	m.enqueued = append(m.enqueued, t)
	return nil
}

// Close marks the queue closed; later Enqueue calls fail the same way
// the real queue's do.
func (m *MockTaskQueue) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
}

// Enqueued returns a snapshot of the tasks accepted so far.
func (m *MockTaskQueue) Enqueued() []task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]task.Task, len(m.enqueued))
	copy(out, m.enqueued)
	return out
}
