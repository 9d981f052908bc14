// Package measurement contains sensor readings reported by devices.
package measurement

import (
	"strings"
	"time"

	"iothub/internal/shared/errors"
)

// Measurement is a single sensor reading.
type Measurement struct {
	id         uint
	deviceID   uint
	kind       string
	value      float64
	recordedAt time.Time
}

// NewMeasurement creates a measurement reported by a device. A zero
// recordedAt defaults to now.
func NewMeasurement(deviceID uint, kind string, value float64, recordedAt time.Time) (*Measurement, error) {
	kind = strings.TrimSpace(kind)
	if deviceID == 0 {
		return nil, errors.NewValidationError("Device is required")
	}
	if kind == "" {
		return nil, errors.NewValidationError("Measurement kind is required")
	}
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}
	return &Measurement{
		deviceID:   deviceID,
		kind:       kind,
		value:      value,
		recordedAt: recordedAt,
	}, nil
}

// ReconstructMeasurement rebuilds a measurement from persisted state.
func ReconstructMeasurement(id, deviceID uint, kind string, value float64, recordedAt time.Time) *Measurement {
	return &Measurement{
		id:         id,
		deviceID:   deviceID,
		kind:       kind,
		value:      value,
		recordedAt: recordedAt,
	}
}

func (m *Measurement) ID() uint              { return m.id }
func (m *Measurement) DeviceID() uint        { return m.deviceID }
func (m *Measurement) Kind() string          { return m.kind }
func (m *Measurement) Value() float64        { return m.value }
func (m *Measurement) RecordedAt() time.Time { return m.recordedAt }

// SetID assigns the persistence identity after the first insert.
func (m *Measurement) SetID(id uint) {
	m.id = id
}
