package models

import (
	"time"

	"iothub/internal/shared/constants"
)

// ActivationTokenModel is the database row for an activation token. The
// unique index on user_id enforces one token per user.
type ActivationTokenModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_activation_tokens_user"`
	Code      string    `gorm:"size:10;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name.
func (ActivationTokenModel) TableName() string {
	return constants.TableActivationTokens
}
