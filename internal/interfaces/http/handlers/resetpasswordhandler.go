package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iothub/internal/application/auth/usecases"
	"iothub/internal/shared/logger"
	"iothub/internal/shared/utils"
)

// ResetPasswordHandler serves the password reset flow.
type ResetPasswordHandler struct {
	request *usecases.RequestPasswordResetUseCase
	confirm *usecases.ConfirmPasswordResetUseCase
	logger  logger.Interface
}

// NewResetPasswordHandler creates a ResetPasswordHandler.
func NewResetPasswordHandler(
	request *usecases.RequestPasswordResetUseCase,
	confirm *usecases.ConfirmPasswordResetUseCase,
	log logger.Interface,
) *ResetPasswordHandler {
	return &ResetPasswordHandler{request: request, confirm: confirm, logger: log}
}

type sendResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Send handles POST /api/v1/reset-password-token/send.
func (h *ResetPasswordHandler) Send(c *gin.Context) {
	var req sendResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	err := h.request.Execute(c.Request.Context(), usecases.RequestPasswordResetCommand{
		Email: req.Email,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Reset code sent", nil)
}

type confirmResetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Code        string `json:"code" validate:"required,numeric"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// Reset handles POST /api/v1/reset-password-token/reset.
func (h *ResetPasswordHandler) Reset(c *gin.Context) {
	var req confirmResetRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	err := h.confirm.Execute(c.Request.Context(), usecases.ConfirmPasswordResetCommand{
		Email:       req.Email,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Password changed", nil)
}
