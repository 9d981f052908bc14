// Package usecases contains the measurement use cases.
package usecases

import (
	"context"
	"time"

	"iothub/internal/domain/device"
	"iothub/internal/domain/measurement"
	"iothub/internal/shared/logger"
)

// AddMeasurementCommand carries one reading. DeviceUUID comes from the
// device's access token, never from the request body.
type AddMeasurementCommand struct {
	DeviceUUID string
	Kind       string
	Value      float64
	RecordedAt time.Time
}

// AddMeasurementUseCase stores a reading reported by an authenticated device.
type AddMeasurementUseCase struct {
	devices      device.Repository
	measurements measurement.Repository
	logger       logger.Interface
}

// NewAddMeasurementUseCase creates an AddMeasurementUseCase.
func NewAddMeasurementUseCase(devices device.Repository, measurements measurement.Repository, log logger.Interface) *AddMeasurementUseCase {
	return &AddMeasurementUseCase{devices: devices, measurements: measurements, logger: log}
}

// Execute resolves the reporting device and stores the reading.
func (uc *AddMeasurementUseCase) Execute(ctx context.Context, cmd AddMeasurementCommand) error {
	dev, err := uc.devices.GetByUUID(ctx, cmd.DeviceUUID)
	if err != nil {
		return err
	}

	m, err := measurement.NewMeasurement(dev.ID(), cmd.Kind, cmd.Value, cmd.RecordedAt)
	if err != nil {
		return err
	}

	if err := uc.measurements.Create(ctx, m); err != nil {
		return err
	}

	uc.logger.Debugw("measurement stored", "device_id", dev.ID(), "kind", m.Kind())
	return nil
}
