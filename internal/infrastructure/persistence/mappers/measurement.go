package mappers

import (
	"iothub/internal/domain/measurement"
	"iothub/internal/infrastructure/persistence/models"
)

// MeasurementMapper converts measurements.
type MeasurementMapper struct{}

// NewMeasurementMapper creates a MeasurementMapper.
func NewMeasurementMapper() *MeasurementMapper {
	return &MeasurementMapper{}
}

// ToModel converts a domain measurement to its persistence model.
func (m *MeasurementMapper) ToModel(meas *measurement.Measurement) *models.MeasurementModel {
	return &models.MeasurementModel{
		ID:         meas.ID(),
		DeviceID:   meas.DeviceID(),
		Kind:       meas.Kind(),
		Value:      meas.Value(),
		RecordedAt: meas.RecordedAt(),
	}
}

// ToDomain converts a persistence model to a domain measurement.
func (m *MeasurementMapper) ToDomain(model *models.MeasurementModel) *measurement.Measurement {
	return measurement.ReconstructMeasurement(model.ID, model.DeviceID, model.Kind, model.Value, model.RecordedAt)
}
