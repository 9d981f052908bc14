package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"iothub/internal/application/notification/usecases"
	"iothub/internal/shared/constants"
	"iothub/internal/shared/logger"
	"iothub/internal/shared/utils"
)

// NotificationHandler serves a device's notifications to its owner.
type NotificationHandler struct {
	list   *usecases.ListNotificationsUseCase
	logger logger.Interface
}

// NewNotificationHandler creates a NotificationHandler.
func NewNotificationHandler(list *usecases.ListNotificationsUseCase, log logger.Interface) *NotificationHandler {
	return &NotificationHandler{list: list, logger: log}
}

type notificationResponse struct {
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// List handles GET /api/v1/devices/:deviceId/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	result, err := h.list.Execute(c.Request.Context(), usecases.ListNotificationsCommand{
		RequesterEmail: c.GetString(constants.ContextKeyUserEmail),
		DeviceUUID:     c.Param("deviceId"),
		Page:           page,
		PageSize:       pageSize,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	items := make([]notificationResponse, 0, len(result.Items))
	for _, n := range result.Items {
		items = append(items, notificationResponse{
			Title:     n.Title(),
			Body:      n.Body(),
			CreatedAt: n.CreatedAt(),
		})
	}
	utils.ListSuccessResponse(c, items, result.Total, page, pageSize)
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
