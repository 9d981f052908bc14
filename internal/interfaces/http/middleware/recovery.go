package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iothub/internal/shared/logger"
	"iothub/internal/shared/utils"
)

// Recovery converts panics into a 500 response instead of tearing down the
// connection.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("panic recovered",
					"error", r,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error occurred")
				c.Abort()
			}
		}()
		c.Next()
	}
}
