package models

import (
	"time"

	"iothub/internal/shared/constants"
)

// MeasurementModel is the database row for a sensor reading.
type MeasurementModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	DeviceID   uint      `gorm:"not null;index:idx_measurements_device"`
	Kind       string    `gorm:"size:50;not null"`
	Value      float64   `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_measurements_recorded"`
}

// TableName returns the table name.
func (MeasurementModel) TableName() string {
	return constants.TableMeasurements
}
