package usecases

import (
	"context"
	"time"

	"iothub/internal/domain/resetpassword"
	"iothub/internal/domain/user"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
)

// ConfirmPasswordResetCommand carries the reset confirmation input.
type ConfirmPasswordResetCommand struct {
	Email       string
	Code        string
	NewPassword string
}

// ConfirmPasswordResetUseCase changes the password when the presented code
// survives the token's state checks.
type ConfirmPasswordResetUseCase struct {
	users       user.Repository
	tokens      resetpassword.Repository
	hasher      PasswordHasher
	tx          TransactionManager
	maxAttempts int
	logger      logger.Interface
}

// NewConfirmPasswordResetUseCase creates a ConfirmPasswordResetUseCase.
func NewConfirmPasswordResetUseCase(
	users user.Repository,
	tokens resetpassword.Repository,
	hasher PasswordHasher,
	tx TransactionManager,
	maxAttempts int,
	log logger.Interface,
) *ConfirmPasswordResetUseCase {
	return &ConfirmPasswordResetUseCase{
		users:       users,
		tokens:      tokens,
		hasher:      hasher,
		tx:          tx,
		maxAttempts: maxAttempts,
		logger:      log,
	}
}

// Execute walks the token state checks in a fixed order: missing token,
// expiry, attempt budget, then the code itself. Expiry and the budget are
// checked before the code so an attacker cannot probe a dead token, and a
// wrong guess against a dead token burns no attempt.
func (uc *ConfirmPasswordResetUseCase) Execute(ctx context.Context, cmd ConfirmPasswordResetCommand) error {
	account, err := uc.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return err
	}

	token, err := uc.tokens.GetByUserID(ctx, account.ID())
	if err != nil {
		if errors.IsNotFoundError(err) {
			return errors.NewInvalidTokenError()
		}
		return err
	}

	if token.IsExpired(time.Now().UTC()) {
		return errors.NewTokenExpiredError()
	}

	if token.AttemptsExhausted(uc.maxAttempts) {
		uc.logger.Warnw("reset attempt budget exhausted", "user_id", account.ID())
		if err := uc.tokens.DeleteByUserID(ctx, account.ID()); err != nil {
			return err
		}
		return errors.NewTooManyAttemptsError()
	}

	if !token.Matches(cmd.Code) {
		if err := uc.tokens.IncrementAttempts(ctx, account.ID()); err != nil {
			return err
		}
		return errors.NewInvalidTokenError()
	}

	hash, err := uc.hasher.Hash(cmd.NewPassword)
	if err != nil {
		return errors.NewInternalError("Failed to process password reset", err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := account.ChangePasswordHash(hash); err != nil {
			return err
		}
		if err := uc.users.Update(txCtx, account); err != nil {
			return err
		}
		return uc.tokens.DeleteByUserID(txCtx, account.ID())
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("password reset completed", "user_id", account.ID())
	return nil
}
