package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"secaware/internal/auth"
	"secaware/internal/model"
)

type mockSessionStore struct {
	mock.Mock
}

func (m *mockSessionStore) Create(ctx context.Context, sessionID string, userID uint, email string, ttl time.Duration) error {
	args := m.Called(ctx, sessionID, userID, email, ttl)
	return args.Error(0)
}

func (m *mockSessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionStore) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}

func verifiedTokenContext(t *testing.T, claims *auth.SessionClaims) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, claims))
	return c
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func sessionClaims(userID uint, role, sessionID string) *auth.SessionClaims {
	return &auth.SessionClaims{
		UserID: userID,
		Email:  "test@example.com",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID: sessionID,
		},
	}
}

func TestRequireSession(t *testing.T) {
	t.Run("live session passes and sets the identity", func(t *testing.T) {
		sessions := new(mockSessionStore)
		sessions.On("Exists", mock.Anything, "sess-1").Return(true, nil)

		c := verifiedTokenContext(t, sessionClaims(5, model.RoleUser, "sess-1"))
		handler := RequireSession(sessions)(func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			assert.True(t, ok)
			assert.Equal(t, uint(5), identity.UserID)
			assert.Equal(t, model.RoleUser, identity.Role)
			return c.String(http.StatusOK, "ok")
		})

		assert.NoError(t, handler(c))
		sessions.AssertExpectations(t)
	})

	t.Run("revoked session is rejected even with a valid token", func(t *testing.T) {
		sessions := new(mockSessionStore)
		sessions.On("Exists", mock.Anything, "sess-dead").Return(false, nil)

		c := verifiedTokenContext(t, sessionClaims(5, model.RoleUser, "sess-dead"))
		err := RequireSession(sessions)(okHandler)(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})

	t.Run("missing verified token is rejected", func(t *testing.T) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		err := RequireSession(new(mockSessionStore))(okHandler)(c)

		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, httpErr.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	runWithIdentity := func(t *testing.T, users *mockUserRepository, claims *auth.SessionClaims) error {
		t.Helper()
		sessions := new(mockSessionStore)
		sessions.On("Exists", mock.Anything, claims.ID).Return(true, nil)

		c := verifiedTokenContext(t, claims)
		chain := RequireSession(sessions)(RequireAdmin(users)(okHandler))
		return chain(c)
	}

	t.Run("stored admin role passes", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Role: model.RoleAdmin}, nil)

		err := runWithIdentity(t, users, sessionClaims(1, model.RoleAdmin, "sess-a"))
		assert.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("demoted admin is rejected despite the admin snapshot", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByID", mock.Anything, uint(1)).Return(&model.User{ID: 1, Role: model.RoleUser}, nil)

		err := runWithIdentity(t, users, sessionClaims(1, model.RoleAdmin, "sess-b"))
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})

	t.Run("vanished user is rejected", func(t *testing.T) {
		users := new(mockUserRepository)
		users.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

		err := runWithIdentity(t, users, sessionClaims(1, model.RoleAdmin, "sess-c"))
		httpErr, ok := err.(*echo.HTTPError)
		assert.True(t, ok)
		assert.Equal(t, http.StatusForbidden, httpErr.Code)
	})
}

func TestOptionalSession(t *testing.T) {
	tokens := auth.NewTokenService("test-secret")

	newRequestContext := func(authorization string) echo.Context {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if authorization != "" {
			req.Header.Set(echo.HeaderAuthorization, authorization)
		}
		return e.NewContext(req, httptest.NewRecorder())
	}

	t.Run("anonymous request continues without identity", func(t *testing.T) {
		c := newRequestContext("")
		err := OptionalSession(tokens, new(mockSessionStore))(func(c echo.Context) error {
			_, ok := IdentityFrom(c)
			assert.False(t, ok)
			return c.String(http.StatusOK, "ok")
		})(c)
		assert.NoError(t, err)
	})

	t.Run("garbage token continues anonymous", func(t *testing.T) {
		c := newRequestContext("Bearer not-a-token")
		err := OptionalSession(tokens, new(mockSessionStore))(func(c echo.Context) error {
			_, ok := IdentityFrom(c)
			assert.False(t, ok)
			return c.String(http.StatusOK, "ok")
		})(c)
		assert.NoError(t, err)
	})

	t.Run("valid token with a live session resolves the identity", func(t *testing.T) {
		sessionID, token, err := tokens.Generate(&model.User{ID: 8, Email: "test@example.com", Role: model.RoleUser})
		assert.NoError(t, err)

		sessions := new(mockSessionStore)
		sessions.On("Exists", mock.Anything, sessionID).Return(true, nil)

		c := newRequestContext("Bearer " + token)
		err = OptionalSession(tokens, sessions)(func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			assert.True(t, ok)
			assert.Equal(t, uint(8), identity.UserID)
			return c.String(http.StatusOK, "ok")
		})(c)
		assert.NoError(t, err)
		sessions.AssertExpectations(t)
	})

	t.Run("valid token with a revoked session stays anonymous", func(t *testing.T) {
		sessionID, token, err := tokens.Generate(&model.User{ID: 8, Email: "test@example.com", Role: model.RoleUser})
		assert.NoError(t, err)

		sessions := new(mockSessionStore)
		sessions.On("Exists", mock.Anything, sessionID).Return(false, nil)

		c := newRequestContext("Bearer " + token)
		err = OptionalSession(tokens, sessions)(func(c echo.Context) error {
			_, ok := IdentityFrom(c)
			assert.False(t, ok)
			return c.String(http.StatusOK, "ok")
		})(c)
		assert.NoError(t, err)
	})
}
