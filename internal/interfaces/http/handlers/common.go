// Package handlers contains the gin HTTP handlers. Handlers bind and
// validate request bodies, call a use case, and map the result or error
// onto the response envelope.
package handlers

import (
	"github.com/gin-gonic/gin"

	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
	"iothub/internal/shared/utils"
)

// respondError maps a use case error to HTTP and logs it when the error
// taxonomy says it deserves a log line. Security events are tagged so they
// can be filtered downstream.
func respondError(c *gin.Context, log logger.Interface, err error) {
	if errors.ShouldLogAuthError(err) {
		fields := []interface{}{
			"path", c.Request.URL.Path,
			"error", err.Error(),
		}
		if errors.IsSecurityEvent(err) {
			fields = append(fields, "security_event", true)
		}
		log.Errorw("request error", fields...)
	}
	utils.ErrorResponseWithError(c, err)
}

func bindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return errors.NewBadRequestError("Invalid request body", err.Error())
	}
	return utils.ValidateStruct(req)
}
