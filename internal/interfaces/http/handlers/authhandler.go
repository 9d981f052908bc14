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

// AuthHandler serves registration, login and token validation.
type AuthHandler struct {
	register *usecases.RegisterUseCase
	login    *usecases.LoginUseCase
	validate *usecases.ValidateSessionUseCase
	logger   logger.Interface
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(
	register *usecases.RegisterUseCase,
	login *usecases.LoginUseCase,
	validate *usecases.ValidateSessionUseCase,
	log logger.Interface,
) *AuthHandler {
	return &AuthHandler{register: register, login: login, validate: validate, logger: log}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	LastName string `json:"last_name" validate:"max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.register.Execute(c.Request.Context(), usecases.RegisterCommand{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"name":      result.Name,
		"last_name": result.LastName,
		"email":     result.Email,
		"role":      result.Role,
	}, "Registration successful, check your mail for the activation code")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.login.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Login successful", gin.H{
		"token": result.Token,
		"email": result.Email,
		"role":  result.Role,
	})
}

// IsTokenValid handles POST /api/v1/auth/is-token-valid. The token comes
// from the Authorization header; the answer is always 200 with a boolean.
func (h *AuthHandler) IsTokenValid(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), constants.BearerPrefix)
	if token == "" || token == c.GetHeader("Authorization") {
		respondError(c, h.logger, errors.NewInvalidTokenError())
		return
	}

	valid := h.validate.Execute(c.Request.Context(), usecases.ValidateSessionCommand{Token: token})
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"valid": valid})
}
