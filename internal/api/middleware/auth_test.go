package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// nextRecorder is a terminal handler that records whether it ran and
// with which context.
type nextRecorder struct {
	called bool
	ctx    context.Context
}

func (n *nextRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.called = true
		n.ctx = r.Context()
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid token passes user ID downstream", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{
			ValidateTokenFunc: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				assert.Equal(t, "good-token", tokenString)
				return &auth.Claims{UserID: userID, TokenType: "access"}, nil
			},
		}
		m := NewAuthMiddleware(jwtService, &mocks.MockUserStore{})

		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		rr := httptest.NewRecorder()

		m.Authenticate(next.handler()).ServeHTTP(rr, req)

		require.True(t, next.called)
		assert.Equal(t, http.StatusOK, rr.Code)
		got, ok := next.ctx.Value(shared.UserIDContextKey).(uuid.UUID)
		require.True(t, ok)
		assert.Equal(t, userID, got)
	})

	t.Run("missing header is 401", func(t *testing.T) {
		t.Parallel()

		m := NewAuthMiddleware(&mocks.MockJWTService{}, &mocks.MockUserStore{})
		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		rr := httptest.NewRecorder()

		m.Authenticate(next.handler()).ServeHTTP(rr, req)

		assert.False(t, next.called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed header is 401", func(t *testing.T) {
		t.Parallel()

		m := NewAuthMiddleware(&mocks.MockJWTService{}, &mocks.MockUserStore{})
		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rr := httptest.NewRecorder()

		m.Authenticate(next.handler()).ServeHTTP(rr, req)

		assert.False(t, next.called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token is 401", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{
			ValidateTokenFunc: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrExpiredToken
			},
		}
		m := NewAuthMiddleware(jwtService, &mocks.MockUserStore{})
		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
		req.Header.Set("Authorization", "Bearer stale-token")
		rr := httptest.NewRecorder()

		m.Authenticate(next.handler()).ServeHTTP(rr, req)

		assert.False(t, next.called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequireStaff(t *testing.T) {
	t.Parallel()

	staffUser := &domain.User{
		ID:       uuid.New(),
		Email:    "admin@example.com",
		Username: "admin",
		IsActive: true,
		IsStaff:  true,
	}

	withAuthenticatedUser := func(req *http.Request, userID uuid.UUID) *http.Request {
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
		return req.WithContext(ctx)
	}

	t.Run("staff account passes with staff context", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				assert.Equal(t, staffUser.ID, id)
				return staffUser, nil
			},
		}
		m := NewAuthMiddleware(&mocks.MockJWTService{}, userStore)
		next := &nextRecorder{}
		req := withAuthenticatedUser(httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil), staffUser.ID)
		rr := httptest.NewRecorder()

		m.RequireStaff(next.handler()).ServeHTTP(rr, req)

		require.True(t, next.called)
		sc, ok := shared.GetStaffContext(next.ctx)
		require.True(t, ok)
		assert.Equal(t, staffUser.ID, sc.UserID)
		assert.True(t, sc.IsStaff)
	})

	t.Run("superuser without staff flag passes", func(t *testing.T) {
		t.Parallel()

		super := &domain.User{ID: uuid.New(), Email: "root@example.com", IsActive: true, IsSuperuser: true}
		userStore := &mocks.MockUserStore{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return super, nil
			},
		}
		m := NewAuthMiddleware(&mocks.MockJWTService{}, userStore)
		next := &nextRecorder{}
		req := withAuthenticatedUser(httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil), super.ID)
		rr := httptest.NewRecorder()

		m.RequireStaff(next.handler()).ServeHTTP(rr, req)

		assert.True(t, next.called)
	})

	t.Run("regular account is 403", func(t *testing.T) {
		t.Parallel()

		regular := &domain.User{ID: uuid.New(), Email: "user@example.com", IsActive: true}
		userStore := &mocks.MockUserStore{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return regular, nil
			},
		}
		m := NewAuthMiddleware(&mocks.MockJWTService{}, userStore)
		next := &nextRecorder{}
		req := withAuthenticatedUser(httptest.NewRequest(http.MethodPost, "/api/admin/notify", nil), regular.ID)
		rr := httptest.NewRecorder()

		m.RequireStaff(next.handler()).ServeHTTP(rr, req)

		assert.False(t, next.called)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("disabled staff account is 403", func(t *testing.T) {
		t.Parallel()

		disabled := &domain.User{ID: uuid.New(), Email: "ex@example.com", IsStaff: true, IsActive: false}
		userStore := &mocks.MockUserStore{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return disabled, nil
			},
		}
		m := NewAuthMiddleware(&mocks.MockJWTService{}, userStore)
		next := &nextRecorder{}
		req := withAuthenticatedUser(httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil), disabled.ID)
		rr := httptest.NewRecorder()

		m.RequireStaff(next.handler()).ServeHTTP(rr, req)

		assert.False(t, next.called)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("unauthenticated request is 401", func(t *testing.T) {
		t.Parallel()

		m := NewAuthMiddleware(&mocks.MockJWTService{}, &mocks.MockUserStore{})
		next := &nextRecorder{}
		req := httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil)
		rr := httptest.NewRecorder()

		m.RequireStaff(next.handler()).ServeHTTP(rr, req)

		assert.False(t, next.called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("deleted account is 401", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return nil, store.ErrUserNotFound
			},
		}
		m := NewAuthMiddleware(&mocks.MockJWTService{}, userStore)
		next := &nextRecorder{}
		req := withAuthenticatedUser(httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil), uuid.New())
		rr := httptest.NewRecorder()

		m.RequireStaff(next.handler()).ServeHTTP(rr, req)

		assert.False(t, next.called)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("store failure is 500", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return nil, errors.New("connection reset")
			},
		}
		m := NewAuthMiddleware(&mocks.MockJWTService{}, userStore)
		next := &nextRecorder{}
		req := withAuthenticatedUser(httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil), uuid.New())
		rr := httptest.NewRecorder()

		m.RequireStaff(next.handler()).ServeHTTP(rr, req)

		assert.False(t, next.called)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
