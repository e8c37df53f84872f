package api

import (
	"bytes"
	"context"
	"encoding/json"
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

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	t.Parallel()

	t.Run("creates account and returns token pair", func(t *testing.T) {
		t.Parallel()

		var created *domain.User
		userStore := &mocks.MockUserStore{
			CreateFunc: func(ctx context.Context, user *domain.User) error {
				created = user
				return nil
			},
		}
		handler := NewAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

		req := jsonRequest(t, http.MethodPost, "/auth/register", RegisterRequest{
			Email:    "Alice@Example.com",
			Username: "alice",
			Password: "correct-horse-battery",
		})
		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, created)
		// Emails are normalized before storage.
		assert.Equal(t, "alice@example.com", created.Email)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{
			CreateFunc: func(ctx context.Context, user *domain.User) error {
				return store.ErrEmailExists
			},
		}
		handler := NewAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

		req := jsonRequest(t, http.MethodPost, "/auth/register", RegisterRequest{
			Email:    "alice@example.com",
			Username: "alice",
			Password: "correct-horse-battery",
		})
		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("short password fails validation", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

		req := jsonRequest(t, http.MethodPost, "/auth/register", RegisterRequest{
			Email:    "alice@example.com",
			Username: "alice",
			Password: "short",
		})
		rr := httptest.NewRecorder()
		handler.Register(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	account := &domain.User{
		ID:             uuid.New(),
		Email:          "alice@example.com",
		Username:       "alice",
		HashedPassword: "$2a$10$fakehashfakehashfakehashfakehashfakehashfakehashfak",
		IsActive:       true,
	}

	t.Run("valid credentials return token pair", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{
			GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return account, nil
			},
		}
		handler := NewAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

		req := jsonRequest(t, http.MethodPost, "/auth/login", LoginRequest{
			Email:    "alice@example.com",
			Password: "correct-horse-battery",
		})
		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp AuthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, account.ID, resp.UserID)
	})

	t.Run("unknown email burns a dummy comparison and is 401", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{
			GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, store.ErrUserNotFound
			},
		}
		compared := false
		verifier := &mocks.MockPasswordVerifier{
			CompareFunc: func(hashedPassword, password string) error {
				compared = true
				return auth.ErrInvalidToken // any non-nil error
			},
		}
		handler := NewAuthHandler(userStore, &mocks.MockJWTService{}, verifier)

		req := jsonRequest(t, http.MethodPost, "/auth/login", LoginRequest{
			Email:    "ghost@example.com",
			Password: "whatever-password",
		})
		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.True(t, compared, "dummy comparison should run for unknown emails")
	})

	t.Run("wrong password is 401", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{
			GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return account, nil
			},
		}
		verifier := &mocks.MockPasswordVerifier{
			CompareFunc: func(hashedPassword, password string) error {
				return assert.AnError
			},
		}
		handler := NewAuthHandler(userStore, &mocks.MockJWTService{}, verifier)

		req := jsonRequest(t, http.MethodPost, "/auth/login", LoginRequest{
			Email:    "alice@example.com",
			Password: "wrong-password",
		})
		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("disabled account is 401", func(t *testing.T) {
		t.Parallel()

		disabled := *account
		disabled.IsActive = false
		userStore := &mocks.MockUserStore{
			GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return &disabled, nil
			},
		}
		handler := NewAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

		req := jsonRequest(t, http.MethodPost, "/auth/login", LoginRequest{
			Email:    "alice@example.com",
			Password: "correct-horse-battery",
		})
		rr := httptest.NewRecorder()
		handler.Login(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()

	account := &domain.User{ID: uuid.New(), Email: "alice@example.com", IsActive: true}

	t.Run("valid refresh token issues new pair", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{
			ValidateRefreshTokenFunc: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return &auth.Claims{UserID: account.ID, TokenType: "refresh"}, nil
			},
		}
		userStore := &mocks.MockUserStore{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return account, nil
			},
		}
		handler := NewAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{})

		req := jsonRequest(t, http.MethodPost, "/auth/refresh", RefreshTokenRequest{RefreshToken: "refresh-token"})
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("expired refresh token is 401", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{
			ValidateRefreshTokenFunc: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return nil, auth.ErrExpiredRefreshToken
			},
		}
		handler := NewAuthHandler(&mocks.MockUserStore{}, jwtService, &mocks.MockPasswordVerifier{})

		req := jsonRequest(t, http.MethodPost, "/auth/refresh", RefreshTokenRequest{RefreshToken: "stale"})
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("refresh for deleted account is 401", func(t *testing.T) {
		t.Parallel()

		jwtService := &mocks.MockJWTService{
			ValidateRefreshTokenFunc: func(ctx context.Context, tokenString string) (*auth.Claims, error) {
				return &auth.Claims{UserID: uuid.New(), TokenType: "refresh"}, nil
			},
		}
		userStore := &mocks.MockUserStore{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				return nil, store.ErrUserNotFound
			},
		}
		handler := NewAuthHandler(userStore, jwtService, &mocks.MockPasswordVerifier{})

		req := jsonRequest(t, http.MethodPost, "/auth/refresh", RefreshTokenRequest{RefreshToken: "orphaned"})
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestMe(t *testing.T) {
	t.Parallel()

	account := &domain.User{ID: uuid.New(), Email: "alice@example.com", Username: "alice", IsActive: true}

	t.Run("returns profile for authenticated user", func(t *testing.T) {
		t.Parallel()

		userStore := &mocks.MockUserStore{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
				assert.Equal(t, account.ID, id)
				return account, nil
			},
		}
		handler := NewAuthHandler(userStore, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		ctx := context.WithValue(req.Context(), shared.UserIDContextKey, account.ID)
		rr := httptest.NewRecorder()
		handler.Me(rr, req.WithContext(ctx))

		require.Equal(t, http.StatusOK, rr.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, account.Email, resp.Email)
		// The hash never leaves the server.
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("missing user context is 401", func(t *testing.T) {
		t.Parallel()

		handler := NewAuthHandler(&mocks.MockUserStore{}, &mocks.MockJWTService{}, &mocks.MockPasswordVerifier{})

		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		rr := httptest.NewRecorder()
		handler.Me(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}
