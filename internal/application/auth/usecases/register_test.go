package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"iothub/internal/shared/errors"
)

func newRegisterFixture() (*RegisterUseCase, *fakeUserRepo, *fakeActivationRepo, *fakeMail) {
	users := newFakeUserRepo()
	activations := newFakeActivationRepo()
	mail := &fakeMail{}
	uc := NewRegisterUseCase(
		users, activations,
		&fakeHasher{},
		&fakeCodes{codes: []string{"4217"}},
		mail, fakeTx{}, 4, testLogger(),
	)
	return uc, users, activations, mail
}

func TestRegister_Success(t *testing.T) {
	uc, users, activations, mail := newRegisterFixture()

	result, err := uc.Execute(context.Background(), RegisterCommand{
		Name:     "Alice",
		LastName: "Smith",
		Email:    "Alice@Example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", result.Email)
	assert.Equal(t, "Alice", result.Name)
	assert.Equal(t, "Smith", result.LastName)
	assert.Equal(t, "USER", result.Role, "omitted role defaults to USER")
	assert.NotZero(t, result.UserID)

	created, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, created.Enabled(), "new account starts disabled")
	assert.Equal(t, "hashed:s3cret", created.PasswordHash())

	token, err := activations.GetByUserID(context.Background(), created.ID())
	require.NoError(t, err)
	assert.Equal(t, "4217", token.Code())

	require.Len(t, mail.activations, 1)
	assert.Equal(t, "alice@example.com:4217", mail.activations[0])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, users, _, _ := newRegisterFixture()
	seedUser(users, "alice@example.com", "pw", true)

	_, err := uc.Execute(context.Background(), RegisterCommand{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.Error(t, err)
	assert.True(t, errors.IsConflictError(err))
}

func TestRegister_MailQueueFailure(t *testing.T) {
	uc, users, activations, mail := newRegisterFixture()
	mail.fail = true

	_, err := uc.Execute(context.Background(), RegisterCommand{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeMailSendingFailure, appErr.Type)

	// The account and its token are committed despite the queue failure.
	created, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	_, err = activations.GetByUserID(context.Background(), created.ID())
	assert.NoError(t, err)
}

func TestRegister_ExplicitRole(t *testing.T) {
	uc, _, _, _ := newRegisterFixture()

	result, err := uc.Execute(context.Background(), RegisterCommand{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Role:     "ADMIN",
	})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", result.Role)
}

func TestRegister_UnknownRole(t *testing.T) {
	uc, users, _, _ := newRegisterFixture()

	_, err := uc.Execute(context.Background(), RegisterCommand{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Role:     "SUPERUSER",
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)

	exists, err := users.ExistsByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, exists, "rejected registration must not create the account")
}

func TestRegister_InvalidInput(t *testing.T) {
	uc, _, _, _ := newRegisterFixture()

	_, err := uc.Execute(context.Background(), RegisterCommand{
		Name:     "",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}
