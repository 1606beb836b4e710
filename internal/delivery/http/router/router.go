// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pustaka/internal/delivery/http/middleware"
	"pustaka/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	UserAuthHandler  *handler.AuthHandler `name:"userAuthHandler"`
	AdminAuthHandler *handler.AuthHandler `name:"adminAuthHandler"`
	BookHandler      *handler.BookHandler
	UserHandler      *handler.UserHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userAuthHandler  *handler.AuthHandler
	adminAuthHandler *handler.AuthHandler
	bookHandler      *handler.BookHandler
	userHandler      *handler.UserHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userAuthHandler:  params.UserAuthHandler,
		adminAuthHandler: params.AdminAuthHandler,
		bookHandler:      params.BookHandler,
		userHandler:      params.UserHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// User realm session routes live at the root.
	registerSessionRoutes(e.Group(""), r.userAuthHandler)

	// Admin realm session routes mirror them under /admin.
	registerSessionRoutes(e.Group("/admin"), r.adminAuthHandler)

	// Catalog routes. Reads are public; mutations require a valid access token.
	bookGroup := e.Group("/books")
	{
		bookGroup.GET("", r.bookHandler.List)
		bookGroup.GET("/:id", r.bookHandler.Get)
		bookGroup.POST("", r.bookHandler.Add, r.authMiddleware.Authenticate)
		bookGroup.PUT("/:id", r.bookHandler.Update, r.authMiddleware.Authenticate)
		bookGroup.DELETE("/:id", r.bookHandler.Delete, r.authMiddleware.Authenticate)
	}

	// Account routes require a valid access token.
	userGroup := e.Group("/users")
	userGroup.Use(r.authMiddleware.Authenticate)
	{
		userGroup.GET("", r.userHandler.GetUsers)
		// The /id route reads the ID from the token, not the path.
		userGroup.GET("/id", r.userHandler.GetUserDetail)
	}
}

func registerSessionRoutes(g *echo.Group, h *handler.AuthHandler) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
	g.GET("/refresh-token", h.Refresh)
	g.POST("/refresh-token", h.Refresh)
}
