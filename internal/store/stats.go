package store

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// StatsStore computes read-only aggregates over users and their tasks.
type StatsStore interface {
	// UserTaskSummaries returns one summary per user in the directory,
	// in creation order, each carrying the count of open tasks (status
	// TODO or DOING) and the count of all tasks owned by that user.
	// Both counts come from a single grouped query; an empty user
	// directory yields an empty slice, not an error.
	UserTaskSummaries(ctx context.Context) ([]*domain.UserTaskSummary, error)
}
