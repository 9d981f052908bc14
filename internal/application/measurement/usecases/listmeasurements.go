package usecases

import (
	"context"

	"iothub/internal/domain/device"
	"iothub/internal/domain/measurement"
	"iothub/internal/domain/user"
	"iothub/internal/shared/errors"
)

// ListMeasurementsCommand carries the listing input.
type ListMeasurementsCommand struct {
	RequesterEmail string
	DeviceUUID     string
	Page           int
	PageSize       int
}

// ListMeasurementsResult is one page of measurements with the total count.
type ListMeasurementsResult struct {
	Items []*measurement.Measurement
	Total int64
}

// ListMeasurementsUseCase lists a device's measurements for its owner.
type ListMeasurementsUseCase struct {
	users        user.Repository
	devices      device.Repository
	measurements measurement.Repository
}

// NewListMeasurementsUseCase creates a ListMeasurementsUseCase.
func NewListMeasurementsUseCase(
	users user.Repository,
	devices device.Repository,
	measurements measurement.Repository,
) *ListMeasurementsUseCase {
	return &ListMeasurementsUseCase{users: users, devices: devices, measurements: measurements}
}

// Execute returns one page, newest first. Only the device owner may read.
func (uc *ListMeasurementsUseCase) Execute(ctx context.Context, cmd ListMeasurementsCommand) (*ListMeasurementsResult, error) {
	requester, err := uc.users.GetByEmail(ctx, cmd.RequesterEmail)
	if err != nil {
		return nil, err
	}

	dev, err := uc.devices.GetByUUID(ctx, cmd.DeviceUUID)
	if err != nil {
		return nil, err
	}

	if !dev.IsOwnedBy(requester.ID()) {
		return nil, errors.NewForbiddenError("Device does not belong to the requesting user")
	}

	page, pageSize := normalizePage(cmd.Page, cmd.PageSize)
	items, total, err := uc.measurements.ListByDeviceID(ctx, dev.ID(), (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &ListMeasurementsResult{Items: items, Total: total}, nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
