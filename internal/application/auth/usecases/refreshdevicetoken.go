package usecases

import (
	"context"

	"iothub/internal/domain/device"
	"iothub/internal/domain/user"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
)

// RefreshDeviceTokenCommand carries the stale access token and the refresh
// token presented by a device.
type RefreshDeviceTokenCommand struct {
	AccessToken  string
	RefreshToken string
}

// RefreshDeviceTokenResult is the outcome of a successful refresh.
type RefreshDeviceTokenResult struct {
	AccessToken string
}

// RefreshDeviceTokenUseCase mints a fresh device access token. The refresh
// token itself is never rotated; it stays valid until its own expiry.
type RefreshDeviceTokenUseCase struct {
	users   user.Repository
	devices device.Repository
	tokens  TokenService
	logger  logger.Interface
}

// NewRefreshDeviceTokenUseCase creates a RefreshDeviceTokenUseCase.
func NewRefreshDeviceTokenUseCase(
	users user.Repository,
	devices device.Repository,
	tokens TokenService,
	log logger.Interface,
) *RefreshDeviceTokenUseCase {
	return &RefreshDeviceTokenUseCase{users: users, devices: devices, tokens: tokens, logger: log}
}

// Execute reads the device identity out of the presented access token,
// which may be past its expiry as long as the signature holds, then
// validates the refresh token before minting a new access token.
func (uc *RefreshDeviceTokenUseCase) Execute(ctx context.Context, cmd RefreshDeviceTokenCommand) (*RefreshDeviceTokenResult, error) {
	deviceUUID, err := uc.tokens.ExtractDeviceUUID(cmd.AccessToken)
	if err != nil {
		return nil, err
	}

	if !uc.tokens.IsRefreshTokenValid(cmd.RefreshToken) {
		return nil, errors.NewInvalidTokenError()
	}

	dev, err := uc.devices.GetByUUID(ctx, deviceUUID)
	if err != nil {
		return nil, err
	}

	owner, err := uc.users.GetByID(ctx, dev.OwnerID())
	if err != nil {
		return nil, err
	}

	accessToken, err := uc.tokens.IssueDeviceAccessToken(owner.Email(), dev.UUID(), dev.ID(), owner.ID())
	if err != nil {
		uc.logger.Errorw("failed to issue device access token", "device_id", dev.ID(), "error", err)
		return nil, errors.NewInternalError("Failed to issue token")
	}

	return &RefreshDeviceTokenResult{AccessToken: accessToken}, nil
}
