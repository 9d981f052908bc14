// Package device contains the device entity and repository contract.
package device

import (
	"strings"
	"time"

	"iothub/internal/shared/errors"
)

// Device is a physical unit registered to exactly one owner. The UUID is the
// identity devices present over the wire; the numeric id is internal.
type Device struct {
	id        uint
	uuid      string
	name      string
	address   string
	ownerID   uint
	createdAt time.Time
}

// NewDevice creates a device owned by ownerID.
func NewDevice(uuid, name, address string, ownerID uint) (*Device, error) {
	uuid = strings.TrimSpace(uuid)
	name = strings.TrimSpace(name)

	if uuid == "" {
		return nil, errors.NewValidationError("Device UUID is required")
	}
	if name == "" {
		return nil, errors.NewValidationError("Device name is required")
	}
	if ownerID == 0 {
		return nil, errors.NewValidationError("Device owner is required")
	}

	return &Device{
		uuid:      uuid,
		name:      name,
		address:   address,
		ownerID:   ownerID,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructDevice rebuilds a device from persisted state.
func ReconstructDevice(id uint, uuid, name, address string, ownerID uint, createdAt time.Time) *Device {
	return &Device{
		id:        id,
		uuid:      uuid,
		name:      name,
		address:   address,
		ownerID:   ownerID,
		createdAt: createdAt,
	}
}

func (d *Device) ID() uint             { return d.id }
func (d *Device) UUID() string         { return d.uuid }
func (d *Device) Name() string         { return d.name }
func (d *Device) Address() string      { return d.address }
func (d *Device) OwnerID() uint        { return d.ownerID }
func (d *Device) CreatedAt() time.Time { return d.createdAt }

// IsOwnedBy reports whether the user owns this device.
func (d *Device) IsOwnedBy(userID uint) bool {
	return d.ownerID == userID
}

// SetID assigns the persistence identity after the first insert.
func (d *Device) SetID(id uint) {
	d.id = id
}
