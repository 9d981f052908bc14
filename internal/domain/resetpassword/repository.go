package resetpassword

import "context"

// Repository persists reset tokens. Replace deletes any existing token for
// the user before inserting, so the one-token-per-user invariant holds even
// under repeated requests. IncrementAttempts must be atomic at the database
// level; concurrent wrong guesses may not lose updates.
type Repository interface {
	Replace(ctx context.Context, t *Token) error
	GetByUserID(ctx context.Context, userID uint) (*Token, error)
	IncrementAttempts(ctx context.Context, userID uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}
