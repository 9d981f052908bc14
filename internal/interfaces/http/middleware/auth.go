// Package middleware contains the gin middleware chain.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"iothub/internal/infrastructure/auth"
	"iothub/internal/shared/constants"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
	"iothub/internal/shared/utils"
)

// Auth verifies the bearer token and stores its identity on the context.
// Session tokens must be unexpired; device access tokens are exempt from
// the expiry check.
func Auth(signer *auth.Signer, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewInvalidTokenError())
			c.Abort()
			return
		}

		claims, err := signer.Verify(token)
		if err != nil {
			log.Warnw("rejected request with invalid token", "path", c.Request.URL.Path)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		expired, err := signer.IsExpired(token)
		if err != nil || expired {
			utils.ErrorResponseWithError(c, errors.NewInvalidTokenError())
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserEmail, claims.Subject)
		c.Set(constants.ContextKeyIsDevice, claims.IsDevice)
		c.Set(constants.ContextKeyDeviceUUID, claims.DeviceUUID)
		c.Next()
	}
}

// RequireUser rejects device-scoped tokens. Runs after Auth.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(constants.ContextKeyIsDevice) {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("Endpoint requires a user session"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireDevice rejects anything but device-scoped tokens. Runs after Auth.
func RequireDevice() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(constants.ContextKeyIsDevice) {
			utils.ErrorResponseWithError(c, errors.NewNotDeviceTokenError())
			c.Abort()
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, constants.BearerPrefix) {
		return "", false
	}
	token := strings.TrimPrefix(header, constants.BearerPrefix)
	if token == "" {
		return "", false
	}
	return token, true
}
