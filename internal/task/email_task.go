package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/platform/mailer"
	"github.com/taskdeck/taskdeck-api/internal/platform/metrics"
)

// Subject line used for admin notification emails.
const notificationSubject = "Notification from the task board team"

// Common errors
var (
	ErrNilMailer       = errors.New("mailer cannot be nil")
	ErrNilLogger       = errors.New("logger cannot be nil")
	ErrNoRecipients    = errors.New("recipient list cannot be empty")
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrPartialDelivery = errors.New("delivery failed for some recipients")
)

// emailNotificationPayload represents the serialized data carried by the task
type emailNotificationPayload struct {
	JobID      string   `json:"job_id"`
	Recipients []string `json:"recipients"`
	Message    string   `json:"message"`
}

// EmailNotificationTask implements the Task interface for delivering a
// bulk email notification to a validated recipient list. Delivery
// happens entirely out of the request path; the dispatcher only
// enqueues the task.
type EmailNotificationTask struct {
	id         uuid.UUID
	jobID      string
	recipients []string
	message    string
	mailer     mailer.Mailer
	logger     *slog.Logger

	// mu guards status, which Execute writes on a worker goroutine
	// while Status may be read from elsewhere.
	mu     sync.Mutex
	status TaskStatus
}

// NewEmailNotificationTask creates a new email notification task.
// The recipient list must already be validated against the user
// directory by the dispatcher.
func NewEmailNotificationTask(
	jobID string,
	recipients []string,
	message string,
	m mailer.Mailer,
	logger *slog.Logger,
) (*EmailNotificationTask, error) {
	if m == nil {
		return nil, ErrNilMailer
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}

	return &EmailNotificationTask{
		id:         uuid.New(),
		jobID:      jobID,
		recipients: recipients,
		message:    message,
		mailer:     m,
		logger:     logger.With("task_type", TaskTypeEmailNotification, "job_id", jobID),
		status:     TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *EmailNotificationTask) ID() uuid.UUID {
	return t.id
}

// JobID returns the opaque job identifier handed back to the caller
// that requested the notification.
func (t *EmailNotificationTask) JobID() string {
	return t.jobID
}

// Recipients returns the validated recipient list.
func (t *EmailNotificationTask) Recipients() []string {
	return t.recipients
}

// Type returns the task type identifier
func (t *EmailNotificationTask) Type() string {
	return TaskTypeEmailNotification
}

// Payload returns the task data as a byte slice
func (t *EmailNotificationTask) Payload() []byte {
	payload := emailNotificationPayload{
		JobID:      t.jobID,
		Recipients: t.recipients,
		Message:    t.message,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *EmailNotificationTask) Status() TaskStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

func (t *EmailNotificationTask) setStatus(status TaskStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.status = status
}

// Execute sends the message to every recipient. Per-recipient failures
// are counted and logged but do not stop delivery to the rest; the task
// fails only after all recipients have been attempted.
func (t *EmailNotificationTask) Execute(ctx context.Context) error {
	t.setStatus(TaskStatusProcessing)
	t.logger.Info("starting notification delivery",
		"recipient_count", len(t.recipients))

	var failed int
	for _, recipient := range t.recipients {
		if err := ctx.Err(); err != nil {
			t.setStatus(TaskStatusFailed)
			return fmt.Errorf("delivery interrupted: %w", err)
		}

		if err := t.mailer.Send(ctx, recipient, notificationSubject, t.message); err != nil {
			failed++
			metrics.EmailsFailed.Inc()
			t.logger.Error("failed to send notification email",
				"recipient", recipient,
				"error", err)
			continue
		}
		metrics.EmailsSent.Inc()
	}

	if failed > 0 {
		t.setStatus(TaskStatusFailed)
		return fmt.Errorf("%w: %d of %d failed", ErrPartialDelivery, failed, len(t.recipients))
	}

	t.setStatus(TaskStatusCompleted)
	t.logger.Info("notification delivery completed",
		"recipient_count", len(t.recipients))
	return nil
}
