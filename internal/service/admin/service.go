// Package admin implements the staff-only operations: the per-user
// task overview aggregation and the bulk notification dispatcher.
package admin

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/platform/mailer"
	"github.com/taskdeck/taskdeck-api/internal/platform/metrics"
	"github.com/taskdeck/taskdeck-api/internal/store"
	"github.com/taskdeck/taskdeck-api/internal/task"
)

// jobIDBytes is the entropy of a notification job identifier;
// 16 bytes encode to 32 hex characters.
const jobIDBytes = 16

// NotifyResult reports what the dispatcher accepted: the opaque job
// identifier and how many recipients survived directory filtering.
// The identifier is informational only; jobs are fire-and-forget and
// cannot be queried later.
type NotifyResult struct {
	JobID           string
	RecipientsCount int
}

// Service provides the admin overview and notification operations.
// Both depend only on injected collaborators so tests can substitute
// in-memory fakes.
type Service struct {
	userStore  store.UserStore
	statsStore store.StatsStore
	queue      task.TaskQueueWriter
	mailer     mailer.Mailer
	logger     *slog.Logger
}

// NewService creates a new admin Service with the given dependencies.
func NewService(
	userStore store.UserStore,
	statsStore store.StatsStore,
	queue task.TaskQueueWriter,
	m mailer.Mailer,
	logger *slog.Logger,
) *Service {
	if userStore == nil {
		panic("userStore cannot be nil")
	}
	if statsStore == nil {
		panic("statsStore cannot be nil")
	}
	if queue == nil {
		panic("queue cannot be nil")
	}
	if m == nil {
		panic("mailer cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		userStore:  userStore,
		statsStore: statsStore,
		queue:      queue,
		mailer:     m,
		logger:     logger.With(slog.String("component", "admin_service")),
	}
}

// Overview returns one summary per user in the directory with their
// open and total task counts. It is a pure read; authorization is the
// caller's responsibility (the staff middleware).
func (s *Service) Overview(ctx context.Context) ([]*domain.UserTaskSummary, error) {
	return s.statsStore.UserTaskSummaries(ctx)
}

// Notify validates the candidate recipients against the user directory
// and enqueues one background job carrying the survivors and the
// message. Unknown or disabled accounts are silently dropped. Returns
// ErrNoValidRecipients when nothing survives the filter and
// ErrEnqueueFailed when the queue rejects the job. The call returns as
// soon as the job is enqueued; delivery happens out of band.
func (s *Service) Notify(
	ctx context.Context,
	recipients []string,
	message string,
) (*NotifyResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	users, err := s.userStore.GetByEmails(ctx, recipients)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve recipients: %w", err)
	}

	valid := make([]string, 0, len(users))
	for _, user := range users {
		if user.IsActive {
			valid = append(valid, user.Email)
		}
	}

	if len(valid) == 0 {
		log.Info("notification rejected: no valid recipients",
			slog.Int("candidate_count", len(recipients)))
		return nil, ErrNoValidRecipients
	}

	jobID, err := newJobID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate job ID: %w", err)
	}

	notification, err := task.NewEmailNotificationTask(jobID, valid, message, s.mailer, s.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build notification task: %w", err)
	}

	if err := s.queue.Enqueue(notification); err != nil {
		log.Error("failed to enqueue notification job",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrEnqueueFailed, err)
	}

	metrics.NotificationJobs.Inc()
	log.Info("notification job enqueued",
		slog.String("job_id", jobID),
		slog.Int("recipients_count", len(valid)),
		slog.Int("dropped_count", len(recipients)-len(valid)))

	return &NotifyResult{JobID: jobID, RecipientsCount: len(valid)}, nil
}

// newJobID generates an opaque random identifier for traceability.
// It is not a lookup key into any persisted state.
func newJobID() (string, error) {
	b := make([]byte, jobIDBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
