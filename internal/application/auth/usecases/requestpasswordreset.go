package usecases

import (
	"context"
	"time"

	"iothub/internal/domain/resetpassword"
	"iothub/internal/domain/user"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
)

// RequestPasswordResetCommand carries the reset request input.
type RequestPasswordResetCommand struct {
	Email string
}

// RequestPasswordResetUseCase issues a fresh reset code and mails it.
// Requesting again replaces the previous token, which also resets the
// attempt counter.
type RequestPasswordResetUseCase struct {
	users      user.Repository
	tokens     resetpassword.Repository
	codes      CodeGenerator
	mail       MailDispatcher
	codeLength int
	validity   time.Duration
	logger     logger.Interface
}

// NewRequestPasswordResetUseCase creates a RequestPasswordResetUseCase.
func NewRequestPasswordResetUseCase(
	users user.Repository,
	tokens resetpassword.Repository,
	codes CodeGenerator,
	mail MailDispatcher,
	codeLength int,
	validity time.Duration,
	log logger.Interface,
) *RequestPasswordResetUseCase {
	return &RequestPasswordResetUseCase{
		users:      users,
		tokens:     tokens,
		codes:      codes,
		mail:       mail,
		codeLength: codeLength,
		validity:   validity,
		logger:     log,
	}
}

// Execute creates and mails the reset code. The token is committed before
// the mail is queued; a queue failure reports an error but leaves the token
// usable once the code reaches the user by other means.
func (uc *RequestPasswordResetUseCase) Execute(ctx context.Context, cmd RequestPasswordResetCommand) error {
	account, err := uc.users.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return err
	}

	code, err := uc.codes.Generate(uc.codeLength)
	if err != nil {
		return errors.NewInternalError("Failed to process reset request", err.Error())
	}

	token, err := resetpassword.NewToken(account.ID(), code, uc.validity)
	if err != nil {
		return err
	}

	if err := uc.tokens.Replace(ctx, token); err != nil {
		return err
	}

	uc.logger.Infow("reset token issued", "user_id", account.ID())

	if err := uc.mail.EnqueueResetPasswordMail(ctx, account.Email(), account.Name(), code); err != nil {
		uc.logger.Errorw("failed to queue reset mail", "user_id", account.ID(), "error", err)
		return errors.NewMailSendingFailureError(err.Error())
	}
	return nil
}
