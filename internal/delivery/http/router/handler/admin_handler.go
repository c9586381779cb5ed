package handler

import (
	"net/http"
	"time"

	"tastebud/internal/delivery/http/response"
	"tastebud/internal/domain/entity"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type reviewDetailView struct {
	ID             uuid.UUID `json:"id"`
	Text           string    `json:"text"`
	Rating         int       `json:"rating"`
	ImageURL       *string   `json:"image_url,omitempty"`
	Username       string    `json:"username"`
	RestaurantName string    `json:"restaurant_name"`
	CreatedAt      time.Time `json:"created_at"`
}

func toReviewDetailView(d *entity.ReviewDetail) reviewDetailView {
	return reviewDetailView{
		ID:             d.ID,
		Text:           d.Text,
		Rating:         d.Rating,
		ImageURL:       d.ImageURL,
		Username:       d.Username,
		RestaurantName: d.RestaurantName,
		CreatedAt:      d.CreatedAt,
	}
}

type grantAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AdminHandler holds dependencies for moderation handlers. Every route is
// behind the admin guard.
type AdminHandler struct {
	admin usecase.AdminUsecase
}

// NewAdminHandler is the constructor for AdminHandler, injected by Fx.
func NewAdminHandler(admin usecase.AdminUsecase) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// ListUsers returns a page of every account.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	skip, limit := pageParams(c)

	users, err := h.admin.ListUsers(c.Request().Context(), skip, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}

	return response.Success(c, http.StatusOK, views, "Users retrieved successfully")
}

// ListReviews returns the joined moderation view of every review.
func (h *AdminHandler) ListReviews(c echo.Context) error {
	details, err := h.admin.ListAllReviews(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]reviewDetailView, 0, len(details))
	for _, d := range details {
		views = append(views, toReviewDetailView(d))
	}

	return response.Success(c, http.StatusOK, views, "Reviews retrieved successfully")
}

// DeleteReview removes a review as a moderation action.
func (h *AdminHandler) DeleteReview(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid review id")
	}

	if err := h.admin.DeleteReview(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Review deleted successfully")
}

// ListAdmins returns every account holding the admin role.
func (h *AdminHandler) ListAdmins(c echo.Context) error {
	admins, err := h.admin.ListAdmins(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]userView, 0, len(admins))
	for _, u := range admins {
		views = append(views, toUserView(u))
	}

	return response.Success(c, http.StatusOK, views, "Admins retrieved successfully")
}

// GrantAdmin promotes an account by email.
func (h *AdminHandler) GrantAdmin(c echo.Context) error {
	var req grantAdminRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid admin input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.admin.GrantAdmin(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, nil, "Admin granted successfully")
}

// RevokeAdmin demotes an account by email.
func (h *AdminHandler) RevokeAdmin(c echo.Context) error {
	email := c.Param("email")
	if email == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Email is required")
	}

	if err := h.admin.RevokeAdmin(c.Request().Context(), email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Admin revoked successfully")
}
