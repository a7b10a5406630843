package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/piresc/mfs/internal/pkg/logger"
	"github.com/piresc/mfs/internal/pkg/models"
	"github.com/piresc/mfs/internal/pkg/password"
	"github.com/piresc/mfs/internal/utils"
	"github.com/piresc/mfs/services/users"
)

const pinTooLongMessage = "pin is too long"

// AuthHandler handles registration and login
type AuthHandler struct {
	userUC users.UserUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(userUC users.UserUC) *AuthHandler {
	return &AuthHandler{
		userUC: userUC,
	}
}

// Register handles POST /register
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		logger.WarnCtx(c.Request().Context(), "Invalid request payload for registration",
			logger.ErrorField(err),
			logger.String("endpoint", "Register"),
		)
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	var missing []string
	if req.Email == "" {
		missing = append(missing, models.FieldEmail)
	}
	if req.Pin == "" {
		missing = append(missing, models.FieldPin)
	}
	if len(missing) > 0 {
		return utils.BadRequestResponse(c, requiredMessage(missing))
	}
	if len(req.Pin) > password.MaxSecretLength {
		return utils.BadRequestResponse(c, pinTooLongMessage)
	}

	result, err := h.userUC.Register(c.Request().Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserAlreadyExists):
			return utils.BadRequestResponse(c, "User already exists")
		case errors.Is(err, password.ErrSecretTooLong):
			return utils.BadRequestResponse(c, pinTooLongMessage)
		default:
			return failureResponse(c, "Register", err)
		}
	}

	return utils.SuccessResponse(c, http.StatusOK, result)
}

// Login handles POST /login
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		logger.WarnCtx(c.Request().Context(), "Invalid request payload for login",
			logger.ErrorField(err),
			logger.String("endpoint", "Login"),
		)
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	var missing []string
	if req.ID == "" {
		missing = append(missing, "id")
	}
	if req.Pin == "" {
		missing = append(missing, models.FieldPin)
	}
	if len(missing) > 0 {
		return utils.BadRequestResponse(c, requiredMessage(missing))
	}

	resp, err := h.userUC.Login(c.Request().Context(), req.ID, req.Pin)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			return utils.BadRequestResponse(c, "User not found")
		case errors.Is(err, models.ErrInvalidCredentials):
			return utils.BadRequestResponse(c, "Invalid credentials")
		default:
			return failureResponse(c, "Login", err)
		}
	}

	return utils.SuccessResponse(c, http.StatusOK, resp)
}
