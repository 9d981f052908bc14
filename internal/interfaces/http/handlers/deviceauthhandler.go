package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"iothub/internal/application/auth/usecases"
	"iothub/internal/shared/constants"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
	"iothub/internal/shared/utils"
)

// DeviceAuthHandler serves device pairing and token refresh.
type DeviceAuthHandler struct {
	authenticate *usecases.AuthenticateDeviceUseCase
	refresh      *usecases.RefreshDeviceTokenUseCase
	logger       logger.Interface
}

// NewDeviceAuthHandler creates a DeviceAuthHandler.
func NewDeviceAuthHandler(
	authenticate *usecases.AuthenticateDeviceUseCase,
	refresh *usecases.RefreshDeviceTokenUseCase,
	log logger.Interface,
) *DeviceAuthHandler {
	return &DeviceAuthHandler{authenticate: authenticate, refresh: refresh, logger: log}
}

type deviceLoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	DeviceUUID string `json:"device_uuid" validate:"required"`
}

// Login handles POST /api/v1/auth/device.
func (h *DeviceAuthHandler) Login(c *gin.Context) {
	var req deviceLoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	pair, err := h.authenticate.Execute(c.Request.Context(), usecases.AuthenticateDeviceCommand{
		Email:      req.Email,
		Password:   req.Password,
		DeviceUUID: req.DeviceUUID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device authenticated", gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

type deviceRefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Refresh handles POST /api/v1/auth/device/refresh. The stale access token
// rides in the Authorization header; it may be expired as long as its
// signature holds. The refresh token is never rotated.
func (h *DeviceAuthHandler) Refresh(c *gin.Context) {
	accessToken := strings.TrimPrefix(c.GetHeader("Authorization"), constants.BearerPrefix)
	if accessToken == "" || accessToken == c.GetHeader("Authorization") {
		respondError(c, h.logger, errors.NewInvalidTokenError())
		return
	}

	var req deviceRefreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.refresh.Execute(c.Request.Context(), usecases.RefreshDeviceTokenCommand{
		AccessToken:  accessToken,
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Token refreshed", gin.H{
		"access_token": result.AccessToken,
	})
}
