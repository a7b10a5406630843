package middleware

import (
	"github.com/labstack/echo/v4"
	jwtpkg "github.com/piresc/mfs/internal/pkg/jwt"
	"github.com/piresc/mfs/internal/pkg/logger"
	"github.com/piresc/mfs/internal/utils"
)

// UserIDKey is the echo context key holding the identifier the token was issued for
const UserIDKey = "user_id"

// JWTAuthMiddleware authenticates requests by the raw token in the Authorization header.
// A missing header is answered with 401, a token that fails verification with 403.
func JWTAuthMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(echo.HeaderAuthorization)
			if token == "" {
				return utils.UnauthorizedResponse(c, "Access Denied")
			}

			claims, err := jwtpkg.ValidateToken(token, secret)
			if err != nil {
				logger.Debug("Rejected token",
					logger.String("path", c.Request().URL.Path),
					logger.ErrorField(err),
				)
				return utils.ForbiddenResponse(c, "Authorization Denied")
			}

			c.Set(UserIDKey, claims.UserID)
			SetUserID(c, claims.UserID)

			return next(c)
		}
	}
}
