package models

import (
	"time"

	"iothub/internal/shared/constants"
)

// DeviceModel is the database row for a device.
type DeviceModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UUID      string    `gorm:"size:36;not null;uniqueIndex:idx_devices_uuid"`
	Name      string    `gorm:"size:100;not null"`
	Address   string    `gorm:"size:255"`
	OwnerID   uint      `gorm:"not null;index:idx_devices_owner"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name.
func (DeviceModel) TableName() string {
	return constants.TableDevices
}
