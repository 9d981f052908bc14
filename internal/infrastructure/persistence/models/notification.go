package models

import (
	"time"

	"iothub/internal/shared/constants"
)

// NotificationModel is the database row for a device notification.
type NotificationModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	DeviceID  uint      `gorm:"not null;index:idx_notifications_device"`
	Title     string    `gorm:"size:255;not null"`
	Body      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name.
func (NotificationModel) TableName() string {
	return constants.TableNotifications
}
