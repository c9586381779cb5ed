package middleware

import (
	"strings"

	"tastebud/internal/delivery/http/response"
	"tastebud/internal/domain/entity"
	domainerrors "tastebud/internal/domain/errors"
	"tastebud/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContextKeyUser is the echo.Context key holding the authenticated user.
const ContextKeyUser = "user"

// AuthMiddleware authenticates requests by resolving the bearer token to
// an account through the credential use case.
type AuthMiddleware struct {
	credentials usecase.CredentialUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(credentials usecase.CredentialUsecase) *AuthMiddleware {
	return &AuthMiddleware{credentials: credentials}
}

// Authenticate validates the Authorization header and stores the resolved
// user on the context for handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "TOKEN_MISSING", "Authorization header is missing")
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader {
			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid token format, must be Bearer token")
		}

		user, err := m.credentials.ResolveSession(c.Request().Context(), token)
		if err != nil {
			var appErr domainerrors.AppError
			if errors.As(err, &appErr) {
				return response.Unauthorized(c, appErr.ErrorCode(), appErr.Message())
			}

			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid or expired token")
		}

		c.Set(ContextKeyUser, user)

		return next(c)
	}
}

// RequireAdmin rejects authenticated requests whose account lacks the
// admin role. It must be used after Authenticate.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Forbidden(c, "FORBIDDEN", "Permission denied: not authenticated")
		}
		if !entity.HasRole(user, entity.RoleAdmin) {
			return response.Forbidden(c, "FORBIDDEN", "Permission denied: admin role required")
		}

		return next(c)
	}
}

// CurrentUser returns the authenticated user stored by Authenticate, or
// nil when the middleware has not run.
func CurrentUser(c echo.Context) *entity.User {
	if user, ok := c.Get(ContextKeyUser).(*entity.User); ok {
		return user
	}

	return nil
}
