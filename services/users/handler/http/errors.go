package http

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/piresc/mfs/internal/pkg/logger"
	"github.com/piresc/mfs/internal/pkg/middleware"
	"github.com/piresc/mfs/internal/pkg/models"
	"github.com/piresc/mfs/internal/utils"
)

// failureResponse answers errors no handler maps explicitly
func failureResponse(c echo.Context, endpoint string, err error) error {
	middleware.NoticeError(c, err)

	if errors.Is(err, models.ErrStoreUnavailable) {
		logger.ErrorCtx(c.Request().Context(), "User store unavailable",
			logger.String("endpoint", endpoint),
			logger.ErrorField(err),
		)
		return utils.ServiceUnavailableResponse(c, "Service unavailable")
	}

	logger.ErrorCtx(c.Request().Context(), "Unexpected failure",
		logger.String("endpoint", endpoint),
		logger.ErrorField(err),
	)
	return utils.InternalServerErrorResponse(c, "Internal server error")
}

// requiredMessage renders "pin is required" or "email and pin are required"
func requiredMessage(fields []string) string {
	if len(fields) == 1 {
		return fields[0] + " is required"
	}
	return strings.Join(fields, " and ") + " are required"
}
