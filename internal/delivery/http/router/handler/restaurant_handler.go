package handler

import (
	"net/http"
	"strconv"
	"time"

	"tastebud/internal/delivery/http/response"
	"tastebud/internal/domain/entity"
	"tastebud/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// pageParams reads skip/limit query parameters with the original API's
// defaults, clamping limit to keep one request from dumping a table.
func pageParams(c echo.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}

	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	return skip, limit
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

type restaurantView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func toRestaurantView(r *entity.Restaurant) restaurantView {
	return restaurantView{ID: r.ID, Name: r.Name, CreatedAt: r.CreatedAt}
}

type createRestaurantRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

// RestaurantHandler holds dependencies for catalogue handlers.
type RestaurantHandler struct {
	restaurants usecase.RestaurantUsecase
}

// NewRestaurantHandler is the constructor for RestaurantHandler, injected by Fx.
func NewRestaurantHandler(restaurants usecase.RestaurantUsecase) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants}
}

// List returns a page of the catalogue.
func (h *RestaurantHandler) List(c echo.Context) error {
	skip, limit := pageParams(c)

	restaurants, err := h.restaurants.List(c.Request().Context(), skip, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]restaurantView, 0, len(restaurants))
	for _, r := range restaurants {
		views = append(views, toRestaurantView(r))
	}

	return response.Success(c, http.StatusOK, views, "Restaurants retrieved successfully")
}

// Get returns one restaurant.
func (h *RestaurantHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid restaurant id")
	}

	restaurant, err := h.restaurants.Get(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toRestaurantView(restaurant), "Restaurant retrieved successfully")
}

// Create adds a restaurant. Admin only; the router guards it.
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req createRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid restaurant input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	restaurant, err := h.restaurants.Create(c.Request().Context(), usecase.CreateRestaurantInput{Name: req.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toRestaurantView(restaurant), "Restaurant created successfully")
}
