package usecases

import (
	"context"

	"iothub/internal/domain/activation"
	"iothub/internal/domain/user"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
)

// VerifyActivationCommand carries the activation input.
type VerifyActivationCommand struct {
	Email string
	Code  string
}

// VerifyActivationUseCase enables an account when the presented code matches
// its activation token. Unlike the reset flow there is no attempt budget;
// the code dies with the token once activation succeeds.
type VerifyActivationUseCase struct {
	users       user.Repository
	activations activation.Repository
	tx          TransactionManager
	logger      logger.Interface
}

// NewVerifyActivationUseCase creates a VerifyActivationUseCase.
func NewVerifyActivationUseCase(
	users user.Repository,
	activations activation.Repository,
	tx TransactionManager,
	log logger.Interface,
) *VerifyActivationUseCase {
	return &VerifyActivationUseCase{users: users, activations: activations, tx: tx, logger: log}
}

// Execute verifies the code. Enabling the user and deleting the token happen
// in one transaction so a crash cannot leave an enabled account with a live
// activation code.
func (uc *VerifyActivationUseCase) Execute(ctx context.Context, cmd VerifyActivationCommand) error {
	account, err := uc.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return err
	}

	token, err := uc.activations.GetByUserID(ctx, account.ID())
	if err != nil {
		return err
	}

	// A mismatched code is a bad credential, not a malformed token.
	if !token.Matches(cmd.Code) {
		return errors.NewWrongCredentialsError()
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		account.Enable()
		if err := uc.users.Update(txCtx, account); err != nil {
			return err
		}
		return uc.activations.DeleteByUserID(txCtx, account.ID())
	})
	if err != nil {
		return err
	}

	uc.logger.Infow("user activated", "user_id", account.ID())
	return nil
}
