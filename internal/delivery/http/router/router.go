// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"tastebud/config"
	"tastebud/internal/delivery/http/middleware"
	"tastebud/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams collects everything the router wires together.
type RouterParams struct {
	fx.In

	Config            *config.Config
	UserHandler       *handler.UserHandler
	RestaurantHandler *handler.RestaurantHandler
	ReviewHandler     *handler.ReviewHandler
	AdminHandler      *handler.AdminHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg               *config.Config
	userHandler       *handler.UserHandler
	restaurantHandler *handler.RestaurantHandler
	reviewHandler     *handler.ReviewHandler
	adminHandler      *handler.AdminHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		cfg:               params.Config,
		userHandler:       params.UserHandler,
		restaurantHandler: params.RestaurantHandler,
		reviewHandler:     params.ReviewHandler,
		adminHandler:      params.AdminHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Locally stored review images are served straight from the upload dir.
	if upload := r.cfg.Upload; upload != nil && upload.Driver == "local" {
		e.Static("/uploads", upload.Dir)
	}

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.userHandler.Register)
		authGroup.POST("/login", r.userHandler.Login)
		authGroup.GET("/verify/:token", r.userHandler.VerifyEmail)
		authGroup.POST("/resend-verification", r.userHandler.ResendVerification)
	}

	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("/me", r.userHandler.GetProfile)
	}

	restaurantGroup := e.Group("/restaurants")
	{
		restaurantGroup.GET("", r.restaurantHandler.List)
		restaurantGroup.GET("/:id", r.restaurantHandler.Get)
		restaurantGroup.GET("/:id/reviews", r.reviewHandler.ListByRestaurant)

		restaurantGroup.POST("/:id/reviews", r.reviewHandler.Create, r.authMiddleware.Authenticate)
		restaurantGroup.POST("", r.restaurantHandler.Create,
			r.authMiddleware.Authenticate, r.authMiddleware.RequireAdmin)
	}

	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireAdmin)
	{
		adminGroup.GET("/users", r.adminHandler.ListUsers)
		adminGroup.GET("/reviews", r.adminHandler.ListReviews)
		adminGroup.DELETE("/reviews/:id", r.adminHandler.DeleteReview)
		adminGroup.GET("/admins", r.adminHandler.ListAdmins)
		adminGroup.POST("/admins", r.adminHandler.GrantAdmin)
		adminGroup.DELETE("/admins/:email", r.adminHandler.RevokeAdmin)
	}
}
