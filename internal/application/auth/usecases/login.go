package usecases

import (
	"context"

	"iothub/internal/domain/user"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
)

// LoginCommand carries the login credentials.
type LoginCommand struct {
	Email    string
	Password string
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Token string
	Email string
	Role  string
}

// LoginUseCase authenticates a user and issues a session token.
type LoginUseCase struct {
	users  user.Repository
	hasher PasswordHasher
	tokens TokenService
	logger logger.Interface
}

// NewLoginUseCase creates a LoginUseCase.
func NewLoginUseCase(users user.Repository, hasher PasswordHasher, tokens TokenService, log logger.Interface) *LoginUseCase {
	return &LoginUseCase{users: users, hasher: hasher, tokens: tokens, logger: log}
}

// Execute checks credentials in a fixed order: unknown email, the enabled
// flag, then the password. A disabled account reports its activation state
// whatever the submitted password; the password is never consulted first.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	account, err := uc.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}

	if !account.Enabled() {
		return nil, errors.NewUserNotEnabledError()
	}

	if !uc.hasher.Verify(cmd.Password, account.PasswordHash()) {
		return nil, errors.NewWrongCredentialsError()
	}

	token, err := uc.tokens.IssueSessionToken(account.Email())
	if err != nil {
		uc.logger.Errorw("failed to issue session token", "user_id", account.ID(), "error", err)
		return nil, errors.NewInternalError("Failed to issue token")
	}

	return &LoginResult{Token: token, Email: account.Email(), Role: string(account.Role())}, nil
}
