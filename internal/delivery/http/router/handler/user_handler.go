// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"tastebud/internal/delivery/http/middleware"
	"tastebud/internal/delivery/http/response"
	"tastebud/internal/domain/entity"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// userView is the public shape of an account. Password hashes and
// verification tokens never leave the server.
type userView struct {
	ID        uuid.UUID     `json:"id"`
	Username  string        `json:"username"`
	Email     string        `json:"email"`
	Verified  bool          `json:"verified"`
	IsAdmin   bool          `json:"is_admin"`
	Roles     []entity.Role `json:"roles"`
	CreatedAt time.Time     `json:"created_at"`
}

func toUserView(user *entity.User) userView {
	return userView{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Verified:  user.Verified,
		IsAdmin:   user.IsAdmin,
		Roles:     entity.RolesOf(user),
		CreatedAt: user.CreatedAt,
	}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type resendVerificationRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type sessionView struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	User        userView `json:"user"`
}

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	users       usecase.UserUsecase
	credentials usecase.CredentialUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(users usecase.UserUsecase, credentials usecase.CredentialUsecase) *UserHandler {
	return &UserHandler{users: users, credentials: credentials}
}

// Register handles the account registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.users.Register(c.Request().Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, sessionView{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		User:        toUserView(output.User),
	}, "User registered successfully")
}

// Login handles the login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.credentials.Login(c.Request().Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessionView{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		User:        toUserView(output.User),
	}, "Login successful")
}

// VerifyEmail consumes the verification token from the emailed link.
func (h *UserHandler) VerifyEmail(c echo.Context) error {
	token := c.Param("token")

	user, err := h.users.VerifyEmail(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Email verified successfully")
}

// ResendVerification rotates and re-emails the verification token.
func (h *UserHandler) ResendVerification(c echo.Context) error {
	var req resendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid resend input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.users.ResendVerification(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Verification mail sent")
}

// GetProfile returns the authenticated account.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Profile retrieved successfully")
}
