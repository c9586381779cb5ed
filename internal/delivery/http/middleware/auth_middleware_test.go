package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubCredentials resolves one known token to a fixed user.
type stubCredentials struct {
	token string
	user  *entity.User
	err   error
}

func (s *stubCredentials) Login(_ context.Context, _ usecase.LoginInput) (*usecase.LoginOutput, error) {
	panic("not used")
}

func (s *stubCredentials) ResolveSession(_ context.Context, token string) (*entity.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if token == s.token {
		return s.user, nil
	}

	return nil, domainerrors.ErrTokenInvalid
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := mw(func(c echo.Context) error {
		reached = true

		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	return rec, reached
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	user := &entity.User{Username: "alice"}
	m := NewAuthMiddleware(&stubCredentials{token: "good", user: user})

	rec, reached := invoke(t, m.Authenticate, "Bearer good")
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_AuthenticateRejects(t *testing.T) {
	m := NewAuthMiddleware(&stubCredentials{token: "good", user: &entity.User{}})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer token", "Basic abc"},
		{"unknown token", "Bearer bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, reached := invoke(t, m.Authenticate, tt.header)
			assert.False(t, reached)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestAuthMiddleware_AuthenticateExpired(t *testing.T) {
	m := NewAuthMiddleware(&stubCredentials{err: domainerrors.ErrTokenExpired})

	rec, reached := invoke(t, m.Authenticate, "Bearer anything")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "TOKEN_EXPIRED")
}

func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	m := NewAuthMiddleware(&stubCredentials{})

	e := echo.New()

	run := func(user *entity.User) (*httptest.ResponseRecorder, bool) {
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if user != nil {
			c.Set(ContextKeyUser, user)
		}

		reached := false
		handler := m.RequireAdmin(func(c echo.Context) error {
			reached = true

			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, handler(c))

		return rec, reached
	}

	rec, reached := run(&entity.User{Username: "root", IsAdmin: true})
	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, reached = run(&entity.User{Username: "alice"})
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, reached = run(nil)
	assert.False(t, reached)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
