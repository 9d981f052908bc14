// Package activation contains the account activation token.
package activation

import (
	"time"

	"iothub/internal/shared/errors"
)

// Token is the short numeric code a new account must present to become
// enabled. At most one token exists per user.
type Token struct {
	id        uint
	userID    uint
	code      string
	createdAt time.Time
}

// NewToken creates an activation token for a user.
func NewToken(userID uint, code string) (*Token, error) {
	if userID == 0 {
		return nil, errors.NewValidationError("User is required")
	}
	if code == "" {
		return nil, errors.NewValidationError("Code is required")
	}
	return &Token{
		userID:    userID,
		code:      code,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructToken rebuilds a token from persisted state.
func ReconstructToken(id, userID uint, code string, createdAt time.Time) *Token {
	return &Token{
		id:        id,
		userID:    userID,
		code:      code,
		createdAt: createdAt,
	}
}

func (t *Token) ID() uint             { return t.id }
func (t *Token) UserID() uint         { return t.userID }
func (t *Token) Code() string         { return t.code }
func (t *Token) CreatedAt() time.Time { return t.createdAt }

// Matches reports whether the presented code equals the stored one.
func (t *Token) Matches(code string) bool {
	return t.code == code
}

// SetID assigns the persistence identity after the first insert.
func (t *Token) SetID(id uint) {
	t.id = id
}
