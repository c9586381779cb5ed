package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "tastebud/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func handleError(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()

	m := NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/restaurants/42", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m.HandleHTTPError(err, c)

	return rec
}

func TestErrorMiddleware_AppError(t *testing.T) {
	rec := handleError(t, domainerrors.ErrRestaurantNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "RESTAURANT_NOT_FOUND")
}

func TestErrorMiddleware_WrappedAppError(t *testing.T) {
	rec := handleError(t, errors.Wrap(domainerrors.ErrInvalidCredentials, "login"))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
}

func TestErrorMiddleware_ValidationDetails(t *testing.T) {
	rec := handleError(t, domainerrors.ErrValidationFailed.WithDetails("rating must be between 1 and 5"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "rating must be between 1 and 5")
}

func TestErrorMiddleware_EchoHTTPError(t *testing.T) {
	rec := handleError(t, echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), "HTTP_ERROR")
}

func TestErrorMiddleware_UnknownError(t *testing.T) {
	rec := handleError(t, errors.New("database exploded"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "INTERNAL_ERROR")
	// Internal detail must never leak into the response.
	assert.NotContains(t, rec.Body.String(), "database exploded")
}
