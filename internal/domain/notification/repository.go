package notification

import "context"

// Repository persists notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	ListByDeviceID(ctx context.Context, deviceID uint, offset, limit int) ([]*Notification, int64, error)
}
