// Package mocks provides hand-written test doubles for the service and
// store interfaces. Each mock exposes function fields so tests configure
// only the calls they care about; unconfigured calls return zero values.
package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockUserStore is a configurable mock implementation of store.UserStore.
type MockUserStore struct {
	CreateFunc      func(ctx context.Context, user *domain.User) error
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc  func(ctx context.Context, email string) (*domain.User, error)
	GetByEmailsFunc func(ctx context.Context, emails []string) ([]*domain.User, error)
	UpdateFunc      func(ctx context.Context, user *domain.User) error
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) GetByEmails(ctx context.Context, emails []string) ([]*domain.User, error) {
	if m.GetByEmailsFunc != nil {
		return m.GetByEmailsFunc(ctx, emails)
	}
	return nil, nil
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// WithTx returns the mock itself; transactions are irrelevant in tests.
func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}
