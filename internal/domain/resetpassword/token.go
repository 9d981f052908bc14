// Package resetpassword contains the password reset token and its attempt
// accounting.
package resetpassword

import (
	"time"

	"iothub/internal/shared/errors"
)

// MaxAttempts is the number of wrong codes tolerated before a token is
// invalidated.
const MaxAttempts = 3

// Token is a short-lived numeric code that authorizes one password change.
// Each user has at most one live token; requesting a new one replaces it.
type Token struct {
	id        uint
	userID    uint
	code      string
	attempts  int
	createdAt time.Time
	expiredAt time.Time
}

// NewToken creates a reset token valid for the given duration.
func NewToken(userID uint, code string, validity time.Duration) (*Token, error) {
	if userID == 0 {
		return nil, errors.NewValidationError("User is required")
	}
	if code == "" {
		return nil, errors.NewValidationError("Code is required")
	}
	if validity <= 0 {
		return nil, errors.NewValidationError("Validity must be positive")
	}
	now := time.Now().UTC()
	return &Token{
		userID:    userID,
		code:      code,
		createdAt: now,
		expiredAt: now.Add(validity),
	}, nil
}

// ReconstructToken rebuilds a token from persisted state.
func ReconstructToken(id, userID uint, code string, attempts int, createdAt, expiredAt time.Time) *Token {
	return &Token{
		id:        id,
		userID:    userID,
		code:      code,
		attempts:  attempts,
		createdAt: createdAt,
		expiredAt: expiredAt,
	}
}

func (t *Token) ID() uint             { return t.id }
func (t *Token) UserID() uint         { return t.userID }
func (t *Token) Code() string         { return t.code }
func (t *Token) Attempts() int        { return t.attempts }
func (t *Token) CreatedAt() time.Time { return t.createdAt }
func (t *Token) ExpiredAt() time.Time { return t.expiredAt }

// IsExpired reports whether the token is past its expiry instant.
func (t *Token) IsExpired(now time.Time) bool {
	return now.After(t.expiredAt)
}

// AttemptsExhausted reports whether the attempt budget is used up. A limit
// of zero or less falls back to MaxAttempts.
func (t *Token) AttemptsExhausted(limit int) bool {
	if limit <= 0 {
		limit = MaxAttempts
	}
	return t.attempts >= limit
}

// Matches reports whether the presented code equals the stored one.
func (t *Token) Matches(code string) bool {
	return t.code == code
}

// SetID assigns the persistence identity after the first insert.
func (t *Token) SetID(id uint) {
	t.id = id
}
