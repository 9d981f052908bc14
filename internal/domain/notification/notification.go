// Package notification contains device notifications shown to the owner.
package notification

import (
	"strings"
	"time"

	"iothub/internal/shared/errors"
)

// Notification is a message a device produced for its owner.
type Notification struct {
	id        uint
	deviceID  uint
	title     string
	body      string
	createdAt time.Time
}

// NewNotification creates a notification for a device.
func NewNotification(deviceID uint, title, body string) (*Notification, error) {
	title = strings.TrimSpace(title)
	if deviceID == 0 {
		return nil, errors.NewValidationError("Device is required")
	}
	if title == "" {
		return nil, errors.NewValidationError("Title is required")
	}
	return &Notification{
		deviceID:  deviceID,
		title:     title,
		body:      body,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructNotification rebuilds a notification from persisted state.
func ReconstructNotification(id, deviceID uint, title, body string, createdAt time.Time) *Notification {
	return &Notification{
		id:        id,
		deviceID:  deviceID,
		title:     title,
		body:      body,
		createdAt: createdAt,
	}
}

func (n *Notification) ID() uint             { return n.id }
func (n *Notification) DeviceID() uint       { return n.deviceID }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Body() string         { return n.body }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// SetID assigns the persistence identity after the first insert.
func (n *Notification) SetID(id uint) {
	n.id = id
}
