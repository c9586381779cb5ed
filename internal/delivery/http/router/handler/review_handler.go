package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"tastebud/internal/delivery/http/middleware"
	"tastebud/internal/delivery/http/response"
	"tastebud/internal/domain/entity"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type reviewView struct {
	ID           uuid.UUID `json:"id"`
	Text         string    `json:"text"`
	Rating       int       `json:"rating"`
	ImageURL     *string   `json:"image_url,omitempty"`
	UserID       uuid.UUID `json:"user_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func toReviewView(r *entity.Review) reviewView {
	return reviewView{
		ID:           r.ID,
		Text:         r.Text,
		Rating:       r.Rating,
		ImageURL:     r.ImageURL,
		UserID:       r.UserID,
		RestaurantID: r.RestaurantID,
		CreatedAt:    r.CreatedAt,
	}
}

// ReviewHandler holds dependencies for review handlers.
type ReviewHandler struct {
	reviews usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(reviews usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// ListByRestaurant returns a page of one restaurant's reviews.
func (h *ReviewHandler) ListByRestaurant(c echo.Context) error {
	restaurantID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid restaurant id")
	}
	skip, limit := pageParams(c)

	reviews, err := h.reviews.ListByRestaurant(c.Request().Context(), restaurantID, skip, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]reviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, toReviewView(r))
	}

	return response.Success(c, http.StatusOK, views, "Reviews retrieved successfully")
}

// Create posts a review. The request is multipart form data: text, rating
// and an optional image file.
func (h *ReviewHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	restaurantID, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid restaurant id")
	}

	text := c.FormValue("text")
	if text == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Review text is required")
	}

	rating, err := strconv.Atoi(c.FormValue("rating"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Rating must be a number")
	}

	input := usecase.CreateReviewInput{
		RestaurantID: restaurantID,
		Text:         text,
		Rating:       rating,
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		image, err := readImageUpload(fileHeader)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Could not read uploaded image")
		}
		input.Image = image
	}

	review, err := h.reviews.Create(c.Request().Context(), user.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toReviewView(review), "Review created successfully")
}

func readImageUpload(fileHeader *multipart.FileHeader) (*usecase.ImageUpload, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded file")
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &usecase.ImageUpload{
		Data:        data,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
	}, nil
}
