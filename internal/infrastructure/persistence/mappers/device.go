package mappers

import (
	"iothub/internal/domain/device"
	"iothub/internal/infrastructure/persistence/models"
)

// DeviceMapper converts devices.
type DeviceMapper struct{}

// NewDeviceMapper creates a DeviceMapper.
func NewDeviceMapper() *DeviceMapper {
	return &DeviceMapper{}
}

// ToModel converts a domain device to its persistence model.
func (m *DeviceMapper) ToModel(d *device.Device) *models.DeviceModel {
	return &models.DeviceModel{
		ID:        d.ID(),
		UUID:      d.UUID(),
		Name:      d.Name(),
		Address:   d.Address(),
		OwnerID:   d.OwnerID(),
		CreatedAt: d.CreatedAt(),
	}
}

// ToDomain converts a persistence model to a domain device.
func (m *DeviceMapper) ToDomain(model *models.DeviceModel) *device.Device {
	return device.ReconstructDevice(
		model.ID,
		model.UUID,
		model.Name,
		model.Address,
		model.OwnerID,
		model.CreatedAt,
	)
}
