package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"iothub/internal/application/measurement/usecases"
	"iothub/internal/shared/constants"
	"iothub/internal/shared/logger"
	"iothub/internal/shared/utils"
)

// MeasurementHandler serves measurement ingestion (from devices) and
// listing (for owners).
type MeasurementHandler struct {
	add    *usecases.AddMeasurementUseCase
	list   *usecases.ListMeasurementsUseCase
	logger logger.Interface
}

// NewMeasurementHandler creates a MeasurementHandler.
func NewMeasurementHandler(add *usecases.AddMeasurementUseCase, list *usecases.ListMeasurementsUseCase, log logger.Interface) *MeasurementHandler {
	return &MeasurementHandler{add: add, list: list, logger: log}
}

// Value is a pointer so a legitimate zero reading passes the required check.
type addMeasurementRequest struct {
	Kind       string     `json:"kind" validate:"required,max=50"`
	Value      *float64   `json:"value" validate:"required"`
	RecordedAt *time.Time `json:"recorded_at"`
}

type measurementResponse struct {
	Kind       string    `json:"kind"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Add handles POST /api/v1/measurements. The reporting device is identified
// by its access token, not by the body.
func (h *MeasurementHandler) Add(c *gin.Context) {
	var req addMeasurementRequest
	if err := bindAndValidate(c, &req); err != nil {
		respondError(c, h.logger, err)
		return
	}

	recordedAt := time.Time{}
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}

	err := h.add.Execute(c.Request.Context(), usecases.AddMeasurementCommand{
		DeviceUUID: c.GetString(constants.ContextKeyDeviceUUID),
		Kind:       req.Kind,
		Value:      *req.Value,
		RecordedAt: recordedAt,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, nil, "Measurement stored")
}

// List handles GET /api/v1/devices/:deviceId/measurements.
func (h *MeasurementHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	result, err := h.list.Execute(c.Request.Context(), usecases.ListMeasurementsCommand{
		RequesterEmail: c.GetString(constants.ContextKeyUserEmail),
		DeviceUUID:     c.Param("deviceId"),
		Page:           page,
		PageSize:       pageSize,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	items := make([]measurementResponse, 0, len(result.Items))
	for _, m := range result.Items {
		items = append(items, measurementResponse{
			Kind:       m.Kind(),
			Value:      m.Value(),
			RecordedAt: m.RecordedAt(),
		})
	}
	utils.ListSuccessResponse(c, items, result.Total, page, pageSize)
}
