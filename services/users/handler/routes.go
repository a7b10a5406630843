package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/piresc/mfs/internal/pkg/middleware"
	"github.com/piresc/mfs/internal/pkg/models"
	nr "github.com/piresc/mfs/internal/pkg/newrelic"
	"github.com/piresc/mfs/services/users/handler/http"
)

// Handler wires the user HTTP handlers to their routes
type Handler struct {
	userHandler *http.UserHandler
	authHandler *http.AuthHandler
	cfg         *models.Config
}

// NewHandler creates and initializes all handlers
func NewHandler(
	userHandler *http.UserHandler,
	authHandler *http.AuthHandler,
	cfg *models.Config,
) *Handler {
	return &Handler{
		userHandler: userHandler,
		authHandler: authHandler,
		cfg:         cfg,
	}
}

// RegisterRoutes registers the public auth routes and the token protected profile route
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/register", nr.TraceHandler("users.Register", h.authHandler.Register))
	e.POST("/login", nr.TraceHandler("users.Login", h.authHandler.Login))

	e.GET("/userInfo",
		nr.TraceHandler("users.GetUserInfo", h.userHandler.GetUserInfo),
		middleware.JWTAuthMiddleware(h.cfg.JWT.Secret),
	)
}
