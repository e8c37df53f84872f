package mocks

import (
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// MockPasswordVerifier is a configurable mock implementation of
// auth.PasswordVerifier.
type MockPasswordVerifier struct {
	CompareFunc func(hashedPassword, password string) error
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFunc != nil {
		return m.CompareFunc(hashedPassword, password)
	}
	return nil
}
