// Package usecases contains the credential lifecycle use cases: register,
// activation, login, password reset and device authentication.
package usecases

import "context"

// CodeGenerator produces fixed-length numeric codes.
type CodeGenerator interface {
	Generate(length int) (string, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenService issues and inspects signed tokens. Verification methods work
// on the raw token string; structural failure surfaces as a typed error.
type TokenService interface {
	IssueSessionToken(email string) (string, error)
	IssueDeviceAccessToken(ownerEmail, deviceUUID string, deviceID, ownerID uint) (string, error)
	IssueDeviceRefreshToken(ownerEmail string) (string, error)
	ExtractSubject(token string) (string, error)
	ExtractDeviceUUID(token string) (string, error)
	IsExpired(token string) (bool, error)
	IsRefreshTokenValid(token string) bool
}

// MailDispatcher hands outbound mail to the delivery pipeline. Dispatch is
// asynchronous; success means the job was queued, not delivered.
type MailDispatcher interface {
	EnqueueActivationMail(ctx context.Context, email, name, code string) error
	EnqueueResetPasswordMail(ctx context.Context, email, name, code string) error
}

// TransactionManager runs a function atomically.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
