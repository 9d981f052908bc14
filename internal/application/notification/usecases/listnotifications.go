// Package usecases contains the notification use cases.
package usecases

import (
	"context"

	"iothub/internal/domain/device"
	"iothub/internal/domain/notification"
	"iothub/internal/domain/user"
	"iothub/internal/shared/errors"
)

// ListNotificationsCommand carries the listing input. RequesterEmail comes
// from the authenticated session.
type ListNotificationsCommand struct {
	RequesterEmail string
	DeviceUUID     string
	Page           int
	PageSize       int
}

// ListNotificationsResult is one page of notifications with the total count.
type ListNotificationsResult struct {
	Items []*notification.Notification
	Total int64
}

// ListNotificationsUseCase lists a device's notifications for its owner.
type ListNotificationsUseCase struct {
	users         user.Repository
	devices       device.Repository
	notifications notification.Repository
}

// NewListNotificationsUseCase creates a ListNotificationsUseCase.
func NewListNotificationsUseCase(
	users user.Repository,
	devices device.Repository,
	notifications notification.Repository,
) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{users: users, devices: devices, notifications: notifications}
}

// Execute returns one page, newest first. Only the device owner may read.
func (uc *ListNotificationsUseCase) Execute(ctx context.Context, cmd ListNotificationsCommand) (*ListNotificationsResult, error) {
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
	items, total, err := uc.notifications.ListByDeviceID(ctx, dev.ID(), (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	return &ListNotificationsResult{Items: items, Total: total}, nil
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
