package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iothub/internal/domain/device"
	"iothub/internal/shared/errors"
)

type deviceAuthFixture struct {
	authenticate *AuthenticateDeviceUseCase
	refresh      *RefreshDeviceTokenUseCase
	users        *fakeUserRepo
	devices      *fakeDeviceRepo
}

func newDeviceAuthFixture() *deviceAuthFixture {
	users := newFakeUserRepo()
	devices := newFakeDeviceRepo()
	return &deviceAuthFixture{
		authenticate: NewAuthenticateDeviceUseCase(users, devices, &fakeHasher{}, fakeTokens{}, testLogger()),
		refresh:      NewRefreshDeviceTokenUseCase(users, devices, fakeTokens{}, testLogger()),
		users:        users,
		devices:      devices,
	}
}

func (f *deviceAuthFixture) seedDevice(t *testing.T, uuid string, ownerID uint) *device.Device {
	t.Helper()
	d, err := device.NewDevice(uuid, "thermostat", "living room", ownerID)
	require.NoError(t, err)
	require.NoError(t, f.devices.Create(context.Background(), d))
	return d
}

func TestAuthenticateDevice_Success(t *testing.T) {
	f := newDeviceAuthFixture()
	owner := seedUser(f.users, "alice@example.com", "s3cret", true)
	f.seedDevice(t, "dev-uuid-1", owner.ID())

	pair, err := f.authenticate.Execute(context.Background(), AuthenticateDeviceCommand{
		Email:      "alice@example.com",
		Password:   "s3cret",
		DeviceUUID: "dev-uuid-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "access|alice@example.com|dev-uuid-1|live", pair.AccessToken)
	assert.Equal(t, "refresh|alice@example.com||live", pair.RefreshToken)
}

func TestAuthenticateDevice_UnknownDevice(t *testing.T) {
	f := newDeviceAuthFixture()
	seedUser(f.users, "alice@example.com", "s3cret", true)

	_, err := f.authenticate.Execute(context.Background(), AuthenticateDeviceCommand{
		Email:      "alice@example.com",
		Password:   "s3cret",
		DeviceUUID: "missing",
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

// An ownership mismatch is a distinct signal from not-found, and it is
// checked before the password.
func TestAuthenticateDevice_OwnerMismatch(t *testing.T) {
	f := newDeviceAuthFixture()
	owner := seedUser(f.users, "alice@example.com", "s3cret", true)
	seedUser(f.users, "bob@example.com", "other", true)
	f.seedDevice(t, "dev-uuid-1", owner.ID())

	_, err := f.authenticate.Execute(context.Background(), AuthenticateDeviceCommand{
		Email:      "bob@example.com",
		Password:   "wrong-anyway",
		DeviceUUID: "dev-uuid-1",
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeDeviceOwnerMismatch, appErr.Type)
}

func TestAuthenticateDevice_WrongPassword(t *testing.T) {
	f := newDeviceAuthFixture()
	owner := seedUser(f.users, "alice@example.com", "s3cret", true)
	f.seedDevice(t, "dev-uuid-1", owner.ID())

	_, err := f.authenticate.Execute(context.Background(), AuthenticateDeviceCommand{
		Email:      "alice@example.com",
		Password:   "wrong",
		DeviceUUID: "dev-uuid-1",
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeWrongCredentials, appErr.Type)
}

func TestRefreshDeviceToken_Success(t *testing.T) {
	f := newDeviceAuthFixture()
	owner := seedUser(f.users, "alice@example.com", "s3cret", true)
	f.seedDevice(t, "dev-uuid-1", owner.ID())

	result, err := f.refresh.Execute(context.Background(), RefreshDeviceTokenCommand{
		AccessToken:  "access|alice@example.com|dev-uuid-1|live",
		RefreshToken: "refresh|alice@example.com||live",
	})
	require.NoError(t, err)
	assert.Equal(t, "access|alice@example.com|dev-uuid-1|live", result.AccessToken)
}

func TestRefreshDeviceToken_NotDeviceToken(t *testing.T) {
	f := newDeviceAuthFixture()

	_, err := f.refresh.Execute(context.Background(), RefreshDeviceTokenCommand{
		AccessToken:  "session|alice@example.com||live",
		RefreshToken: "refresh|alice@example.com||live",
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeNotDeviceToken, appErr.Type)
}

func TestRefreshDeviceToken_InvalidRefreshToken(t *testing.T) {
	f := newDeviceAuthFixture()
	owner := seedUser(f.users, "alice@example.com", "s3cret", true)
	f.seedDevice(t, "dev-uuid-1", owner.ID())

	for _, refresh := range []string{
		"refresh|alice@example.com||expired",
		"session|alice@example.com||live",
		"garbage",
	} {
		_, err := f.refresh.Execute(context.Background(), RefreshDeviceTokenCommand{
			AccessToken:  "access|alice@example.com|dev-uuid-1|live",
			RefreshToken: refresh,
		})
		require.Error(t, err, "refresh token %q must be rejected", refresh)
		appErr := errors.GetAppError(err)
		require.NotNil(t, appErr)
		assert.Equal(t, errors.ErrorTypeInvalidToken, appErr.Type)
	}
}

func TestRefreshDeviceToken_DeviceGone(t *testing.T) {
	f := newDeviceAuthFixture()
	seedUser(f.users, "alice@example.com", "s3cret", true)

	_, err := f.refresh.Execute(context.Background(), RefreshDeviceTokenCommand{
		AccessToken:  "access|alice@example.com|dev-uuid-1|live",
		RefreshToken: "refresh|alice@example.com||live",
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}
