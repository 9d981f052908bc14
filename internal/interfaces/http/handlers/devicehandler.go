package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"iothub/internal/application/device/usecases"
	"iothub/internal/domain/device"
	"iothub/internal/shared/constants"
	"iothub/internal/shared/logger"
	"iothub/internal/shared/utils"
)

// DeviceHandler serves device registration and listing for a user session.
type DeviceHandler struct {
	register *usecases.RegisterDeviceUseCase
	list     *usecases.ListDevicesUseCase
	logger   logger.Interface
}

// NewDeviceHandler creates a DeviceHandler.
func NewDeviceHandler(register *usecases.RegisterDeviceUseCase, list *usecases.ListDevicesUseCase, log logger.Interface) *DeviceHandler {
	return &DeviceHandler{register: register, list: list, logger: log}
}

type registerDeviceRequest struct {
	Name    string `json:"name" validate:"required,max=100"`
	Address string `json:"address" validate:"max=255"`
}

type deviceResponse struct {
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toDeviceResponse(d *device.Device) deviceResponse {
	return deviceResponse{
		UUID:      d.UUID(),
		Name:      d.Name(),
		Address:   d.Address(),
		CreatedAt: d.CreatedAt(),
	}
}

// Register handles POST /api/v1/devices.
func (h *DeviceHandler) Register(c *gin.Context) {
	var req registerDeviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result, err := h.register.Execute(c.Request.Context(), usecases.RegisterDeviceCommand{
		OwnerEmail: c.GetString(constants.ContextKeyUserEmail),
		Name:       req.Name,
		Address:    req.Address,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"uuid": result.DeviceUUID}, "Device registered")
}

// List handles GET /api/v1/devices.
func (h *DeviceHandler) List(c *gin.Context) {
	devices, err := h.list.Execute(c.Request.Context(), usecases.ListDevicesCommand{
		OwnerEmail: c.GetString(constants.ContextKeyUserEmail),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	items := make([]deviceResponse, 0, len(devices))
	for _, d := range devices {
		items = append(items, toDeviceResponse(d))
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"devices": items})
}
