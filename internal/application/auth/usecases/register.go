package usecases

import (
	"context"

	"iothub/internal/domain/activation"
	"iothub/internal/domain/user"
	"iothub/internal/shared/errors"
	"iothub/internal/shared/logger"
)

// RegisterCommand carries the registration input. An empty Role defaults
// to the regular user role.
type RegisterCommand struct {
	Name     string
	LastName string
	Email    string
	Password string
	Role     string
}

// RegisterResult is the outcome of a successful registration.
type RegisterResult struct {
	UserID   uint
	Name     string
	LastName string
	Email    string
	Role     string
}

// RegisterUseCase creates a disabled account together with its activation
// token and queues the activation mail. User and token are written in one
// transaction; a user without a token could never activate.
type RegisterUseCase struct {
	users       user.Repository
	activations activation.Repository
	hasher      PasswordHasher
	codes       CodeGenerator
	mail        MailDispatcher
	tx          TransactionManager
	codeLength  int
	logger      logger.Interface
}

// NewRegisterUseCase creates a RegisterUseCase.
func NewRegisterUseCase(
	users user.Repository,
	activations activation.Repository,
	hasher PasswordHasher,
	codes CodeGenerator,
	mail MailDispatcher,
	tx TransactionManager,
	codeLength int,
	log logger.Interface,
) *RegisterUseCase {
	return &RegisterUseCase{
		users:       users,
		activations: activations,
		hasher:      hasher,
		codes:       codes,
		mail:        mail,
		tx:          tx,
		codeLength:  codeLength,
		logger:      log,
	}
}

// Execute registers the account. A duplicate email surfaces as a conflict.
func (uc *RegisterUseCase) Execute(ctx context.Context, cmd RegisterCommand) (*RegisterResult, error) {
	hash, err := uc.hasher.Hash(cmd.Password)
	if err != nil {
		return nil, errors.NewInternalError("Failed to process registration", err.Error())
	}

	role, err := user.ParseRole(cmd.Role)
	if err != nil {
		return nil, err
	}

	newUser, err := user.NewUser(cmd.Name, cmd.LastName, cmd.Email, hash)
	if err != nil {
		return nil, err
	}
	if err := newUser.AssignRole(role); err != nil {
		return nil, err
	}

	code, err := uc.codes.Generate(uc.codeLength)
	if err != nil {
		return nil, errors.NewInternalError("Failed to process registration", err.Error())
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.users.Create(txCtx, newUser); err != nil {
			return err
		}
		token, err := activation.NewToken(newUser.ID(), code)
		if err != nil {
			return err
		}
		return uc.activations.Create(txCtx, token)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("user registered", "user_id", newUser.ID())

	// The account is committed at this point. A queue failure is reported
	// but does not undo the registration.
	if err := uc.mail.EnqueueActivationMail(ctx, newUser.Email(), newUser.Name(), code); err != nil {
		uc.logger.Errorw("failed to queue activation mail", "user_id", newUser.ID(), "error", err)
		return nil, errors.NewMailSendingFailureError(err.Error())
	}

	return &RegisterResult{
		UserID:   newUser.ID(),
		Name:     newUser.Name(),
		LastName: newUser.LastName(),
		Email:    newUser.Email(),
		Role:     string(newUser.Role()),
	}, nil
}
