package device

import "context"

// Repository persists devices.
type Repository interface {
	Create(ctx context.Context, d *Device) error
	GetByUUID(ctx context.Context, uuid string) (*Device, error)
	ListByOwnerID(ctx context.Context, ownerID uint) ([]*Device, error)
}
