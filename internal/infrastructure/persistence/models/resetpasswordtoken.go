package models

import (
	"time"

	"iothub/internal/shared/constants"
)

// ResetPasswordTokenModel is the database row for a password reset token.
// The unique index on user_id enforces one live token per user.
type ResetPasswordTokenModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reset_password_tokens_user"`
	Code      string    `gorm:"size:10;not null"`
	Attempts  int       `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiredAt time.Time `gorm:"not null"`
}

// TableName returns the table name.
func (ResetPasswordTokenModel) TableName() string {
	return constants.TableResetPasswordTokens
}
