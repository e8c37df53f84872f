package task

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingMailer captures sent messages and optionally fails for
// specific recipients.
type recordingMailer struct {
	mu      sync.Mutex
	sent    []string
	failFor map[string]error
}

func (m *recordingMailer) Send(ctx context.Context, recipient, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failFor[recipient]; ok {
		return err
	}
	m.sent = append(m.sent, recipient)
	return nil
}

// gateMailer blocks each Send until released, letting tests observe a
// task mid-delivery.
type gateMailer struct {
	started chan struct{}
	release chan struct{}
}

func (m *gateMailer) Send(ctx context.Context, recipient, subject, body string) error {
	m.started <- struct{}{}
	<-m.release
	return nil
}

func TestNewEmailNotificationTask(t *testing.T) {
	t.Parallel()

	m := &recordingMailer{}
	log := testLogger()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		task, err := NewEmailNotificationTask("abc123", []string{"alice@x.com"}, "hello", m, log)
		require.NoError(t, err)
		assert.Equal(t, TaskTypeEmailNotification, task.Type())
		assert.Equal(t, "abc123", task.JobID())
		assert.Equal(t, TaskStatusPending, task.Status())
	})

	t.Run("rejects nil mailer", func(t *testing.T) {
		t.Parallel()

		_, err := NewEmailNotificationTask("abc123", []string{"alice@x.com"}, "hello", nil, log)
		assert.ErrorIs(t, err, ErrNilMailer)
	})

	t.Run("rejects empty recipients", func(t *testing.T) {
		t.Parallel()

		_, err := NewEmailNotificationTask("abc123", nil, "hello", m, log)
		assert.ErrorIs(t, err, ErrNoRecipients)
	})

	t.Run("rejects empty message", func(t *testing.T) {
		t.Parallel()

		_, err := NewEmailNotificationTask("abc123", []string{"alice@x.com"}, "", m, log)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	})
}

func TestEmailNotificationTaskExecute(t *testing.T) {
	t.Parallel()

	t.Run("delivers to every recipient", func(t *testing.T) {
		t.Parallel()

		m := &recordingMailer{}
		task, err := NewEmailNotificationTask(
			"abc123",
			[]string{"alice@x.com", "bob@x.com"},
			"deployment tonight",
			m,
			testLogger(),
		)
		require.NoError(t, err)

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, []string{"alice@x.com", "bob@x.com"}, m.sent)
		assert.Equal(t, TaskStatusCompleted, task.Status())
	})

	t.Run("status reads are safe while delivery runs", func(t *testing.T) {
		t.Parallel()

		m := &gateMailer{started: make(chan struct{}), release: make(chan struct{})}
		task, err := NewEmailNotificationTask(
			"abc123",
			[]string{"alice@x.com"},
			"deployment tonight",
			m,
			testLogger(),
		)
		require.NoError(t, err)

		done := make(chan error, 1)
		go func() { done <- task.Execute(context.Background()) }()

		<-m.started
		assert.Equal(t, TaskStatusProcessing, task.Status())
		close(m.release)

		require.NoError(t, <-done)
		assert.Equal(t, TaskStatusCompleted, task.Status())
	})

	t.Run("continues past per-recipient failures", func(t *testing.T) {
		t.Parallel()

		m := &recordingMailer{
			failFor: map[string]error{"bob@x.com": errors.New("mailbox full")},
		}
		task, err := NewEmailNotificationTask(
			"abc123",
			[]string{"alice@x.com", "bob@x.com", "carol@x.com"},
			"deployment tonight",
			m,
			testLogger(),
		)
		require.NoError(t, err)

		err = task.Execute(context.Background())
		assert.ErrorIs(t, err, ErrPartialDelivery)
		assert.Equal(t, []string{"alice@x.com", "carol@x.com"}, m.sent)
		assert.Equal(t, TaskStatusFailed, task.Status())
	})

	t.Run("stops on cancelled context", func(t *testing.T) {
		t.Parallel()

		m := &recordingMailer{}
		task, err := NewEmailNotificationTask(
			"abc123",
			[]string{"alice@x.com"},
			"deployment tonight",
			m,
			testLogger(),
		)
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err = task.Execute(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, m.sent)
	})
}

func TestEmailNotificationTaskPayload(t *testing.T) {
	t.Parallel()

	task, err := NewEmailNotificationTask(
		"abc123",
		[]string{"alice@x.com"},
		"deployment tonight",
		&recordingMailer{},
		testLogger(),
	)
	require.NoError(t, err)

	var payload emailNotificationPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "abc123", payload.JobID)
	assert.Equal(t, []string{"alice@x.com"}, payload.Recipients)
	assert.Equal(t, "deployment tonight", payload.Message)
}
