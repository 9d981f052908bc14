package mappers

import (
	"iothub/internal/domain/notification"
	"iothub/internal/infrastructure/persistence/models"
)

// NotificationMapper converts notifications.
type NotificationMapper struct{}

// NewNotificationMapper creates a NotificationMapper.
func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

// ToModel converts a domain notification to its persistence model.
func (m *NotificationMapper) ToModel(n *notification.Notification) *models.NotificationModel {
	return &models.NotificationModel{
		ID:        n.ID(),
		DeviceID:  n.DeviceID(),
		Title:     n.Title(),
		Body:      n.Body(),
		CreatedAt: n.CreatedAt(),
	}
}

// ToDomain converts a persistence model to a domain notification.
func (m *NotificationMapper) ToDomain(model *models.NotificationModel) *notification.Notification {
	return notification.ReconstructNotification(model.ID, model.DeviceID, model.Title, model.Body, model.CreatedAt)
}
