package measurement

import "context"

// Repository persists measurements.
type Repository interface {
	Create(ctx context.Context, m *Measurement) error
	ListByDeviceID(ctx context.Context, deviceID uint, offset, limit int) ([]*Measurement, int64, error)
}
