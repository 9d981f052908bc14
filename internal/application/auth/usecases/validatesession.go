package usecases

import (
	"context"

	"iothub/internal/domain/user"
)

// ValidateSessionCommand carries the token to check.
type ValidateSessionCommand struct {
	Token string
}

// ValidateSessionUseCase answers whether a session token is currently
// usable. It is a boolean check, not an authentication step; every failure
// mode collapses to false.
type ValidateSessionUseCase struct {
	users  user.Repository
	tokens TokenService
}

// NewValidateSessionUseCase creates a ValidateSessionUseCase.
func NewValidateSessionUseCase(users user.Repository, tokens TokenService) *ValidateSessionUseCase {
	return &ValidateSessionUseCase{users: users, tokens: tokens}
}

// Execute reports whether the token verifies, is unexpired and names an
// account that still exists and is enabled.
func (uc *ValidateSessionUseCase) Execute(ctx context.Context, cmd ValidateSessionCommand) bool {
	subject, err := uc.tokens.ExtractSubject(cmd.Token)
	if err != nil {
		return false
	}

	expired, err := uc.tokens.IsExpired(cmd.Token)
	if err != nil || expired {
		return false
	}

	account, err := uc.users.GetByEmail(ctx, subject)
	if err != nil {
		return false
	}
	return account.Enabled()
}
