package usecases

import (
	"context"

	"iothub/internal/domain/device"
	"iothub/internal/domain/user"
)

// ListDevicesCommand carries the listing input.
type ListDevicesCommand struct {
	OwnerEmail string
}

// ListDevicesUseCase lists the requesting user's devices.
type ListDevicesUseCase struct {
	users   user.Repository
	devices device.Repository
}

// NewListDevicesUseCase creates a ListDevicesUseCase.
func NewListDevicesUseCase(users user.Repository, devices device.Repository) *ListDevicesUseCase {
	return &ListDevicesUseCase{users: users, devices: devices}
}

// Execute returns all devices owned by the user.
func (uc *ListDevicesUseCase) Execute(ctx context.Context, cmd ListDevicesCommand) ([]*device.Device, error) {
	owner, err := uc.users.GetByEmail(ctx, cmd.OwnerEmail)
	if err != nil {
		return nil, err
	}
	return uc.devices.ListByOwnerID(ctx, owner.ID())
}
