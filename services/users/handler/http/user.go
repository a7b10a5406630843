package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/mfs/internal/pkg/middleware"
	"github.com/piresc/mfs/internal/pkg/models"
	"github.com/piresc/mfs/internal/utils"
	"github.com/piresc/mfs/services/users"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	userUC users.UserUC
}

// NewUserHandler creates a new user handler
func NewUserHandler(
	userUC users.UserUC,
) *UserHandler {
	return &UserHandler{
		userUC: userUC,
	}
}

// GetUserInfo handles GET /userInfo for the identifier set by the auth middleware
func (h *UserHandler) GetUserInfo(c echo.Context) error {
	userID, _ := c.Get(middleware.UserIDKey).(string)
	if userID == "" {
		return utils.UnauthorizedResponse(c, "Access Denied")
	}

	user, err := h.userUC.GetUserInfo(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return utils.NotFoundResponse(c, "User not found")
		}
		return failureResponse(c, "GetUserInfo", err)
	}

	return utils.SuccessResponse(c, http.StatusOK, user)
}
