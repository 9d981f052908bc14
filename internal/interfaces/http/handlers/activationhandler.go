package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"iothub/internal/application/auth/usecases"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
	"iothub/internal/shared/utils"
)

// ActivationHandler serves activation code verification.
type ActivationHandler struct {
	verify *usecases.VerifyActivationUseCase
	logger logger.Interface
}

// NewActivationHandler creates an ActivationHandler.
func NewActivationHandler(verify *usecases.VerifyActivationUseCase, log logger.Interface) *ActivationHandler {
	return &ActivationHandler{verify: verify, logger: log}
}

type verifyActivationRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,numeric"`
}

// Verify handles POST /api/v1/activation-token/verify. A missing user or
// token renders as a conflict: from the client's view the activation state
// does not match the request, which is not the same as an unknown resource.
func (h *ActivationHandler) Verify(c *gin.Context) {
	var req verifyActivationRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	err := h.verify.Execute(c.Request.Context(), usecases.VerifyActivationCommand{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		if errors.IsNotFoundError(err) {
			utils.ErrorResponse(c, http.StatusConflict, "Account cannot be activated")
			return
		}
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Account activated", nil)
}
