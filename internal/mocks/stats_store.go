package mocks

import (
	"context"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockStatsStore is a configurable mock implementation of store.StatsStore.
type MockStatsStore struct {
	UserTaskSummariesFunc func(ctx context.Context) ([]*domain.UserTaskSummary, error)
}

var _ store.StatsStore = (*MockStatsStore)(nil)

func (m *MockStatsStore) UserTaskSummaries(ctx context.Context) ([]*domain.UserTaskSummary, error) {
	if m.UserTaskSummariesFunc != nil {
		return m.UserTaskSummariesFunc(ctx)
	}
	return nil, nil
}
