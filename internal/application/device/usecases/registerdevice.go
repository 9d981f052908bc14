// Package usecases contains the device management use cases.
package usecases

import (
	"context"

	"github.com/google/uuid"

	"iothub/internal/domain/device"
	"iothub/internal/domain/user"
	"iothub/internal/shared/logger"
)

// RegisterDeviceCommand carries the device registration input. OwnerEmail
// comes from the authenticated session, never from the request body.
type RegisterDeviceCommand struct {
	OwnerEmail string
	Name       string
	Address    string
}

// RegisterDeviceResult is the outcome of a successful registration.
type RegisterDeviceResult struct {
	DeviceID   uint
	DeviceUUID string
}

// RegisterDeviceUseCase registers a new device under the requesting user
// and assigns its wire identity.
type RegisterDeviceUseCase struct {
	users   user.Repository
	devices device.Repository
	logger  logger.Interface
}

// NewRegisterDeviceUseCase creates a RegisterDeviceUseCase.
func NewRegisterDeviceUseCase(users user.Repository, devices device.Repository, log logger.Interface) *RegisterDeviceUseCase {
	return &RegisterDeviceUseCase{users: users, devices: devices, logger: log}
}

// Execute creates the device with a server-generated UUID.
func (uc *RegisterDeviceUseCase) Execute(ctx context.Context, cmd RegisterDeviceCommand) (*RegisterDeviceResult, error) {
	owner, err := uc.users.GetByEmail(ctx, cmd.OwnerEmail)
	if err != nil {
		return nil, err
	}

	dev, err := device.NewDevice(uuid.NewString(), cmd.Name, cmd.Address, owner.ID())
	if err != nil {
		return nil, err
	}

	if err := uc.devices.Create(ctx, dev); err != nil {
		return nil, err
	}

	uc.logger.Infow("device registered", "device_id", dev.ID(), "owner_id", owner.ID())
	return &RegisterDeviceResult{DeviceID: dev.ID(), DeviceUUID: dev.UUID()}, nil
}
