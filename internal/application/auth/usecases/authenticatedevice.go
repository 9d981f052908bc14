package usecases

import (
	"context"

	"iothub/internal/domain/device"
	"iothub/internal/domain/user"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
)

// AuthenticateDeviceCommand carries the device pairing credentials.
type AuthenticateDeviceCommand struct {
	Email      string
	Password   string
	DeviceUUID string
}

// DeviceTokenPair is the token pair handed to a paired device.
type DeviceTokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthenticateDeviceUseCase pairs a device with its owner's credentials and
// issues the device token pair.
type AuthenticateDeviceUseCase struct {
	users   user.Repository
	devices device.Repository
	hasher  PasswordHasher
	tokens  TokenService
	logger  logger.Interface
}

// NewAuthenticateDeviceUseCase creates an AuthenticateDeviceUseCase.
func NewAuthenticateDeviceUseCase(
	users user.Repository,
	devices device.Repository,
	hasher PasswordHasher,
	tokens TokenService,
	log logger.Interface,
) *AuthenticateDeviceUseCase {
	return &AuthenticateDeviceUseCase{users: users, devices: devices, hasher: hasher, tokens: tokens, logger: log}
}

// Execute checks device, user, ownership and password in that order. An
// ownership failure is a distinct signal from an unknown device or user;
// it means both exist but do not belong together.
func (uc *AuthenticateDeviceUseCase) Execute(ctx context.Context, cmd AuthenticateDeviceCommand) (*DeviceTokenPair, error) {
	dev, err := uc.devices.GetByUUID(ctx, cmd.DeviceUUID)
	if err != nil {
		return nil, err
	}

	account, err := uc.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}

	if !dev.IsOwnedBy(account.ID()) {
		uc.logger.Warnw("device pairing rejected", "device_id", dev.ID(), "user_id", account.ID())
		return nil, errors.NewDeviceOwnerMismatchError()
	}

	if !uc.hasher.Verify(cmd.Password, account.PasswordHash()) {
		return nil, errors.NewWrongCredentialsError()
	}

	accessToken, err := uc.tokens.IssueDeviceAccessToken(account.Email(), dev.UUID(), dev.ID(), account.ID())
	if err != nil {
		uc.logger.Errorw("failed to issue device access token", "device_id", dev.ID(), "error", err)
		return nil, errors.NewInternalError("Failed to issue token")
	}

	refreshToken, err := uc.tokens.IssueDeviceRefreshToken(account.Email())
	if err != nil {
		uc.logger.Errorw("failed to issue device refresh token", "device_id", dev.ID(), "error", err)
		return nil, errors.NewInternalError("Failed to issue token")
	}

	return &DeviceTokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
