package activation

import "context"

// Repository persists activation tokens.
type Repository interface {
	Create(ctx context.Context, t *Token) error
	GetByUserID(ctx context.Context, userID uint) (*Token, error)
	DeleteByUserID(ctx context.Context, userID uint) error
}
