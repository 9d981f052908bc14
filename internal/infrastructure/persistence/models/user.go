// Package models contains the GORM persistence models. Models stay inside
// the infrastructure layer; domain entities never carry GORM tags.
package models

import (
	"time"

	"iothub/internal/shared/constants"
)

// UserModel is the database row for a user.
type UserModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"size:100;not null"`
	LastName     string    `gorm:"size:100"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:20;not null;default:USER"`
	Enabled      bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name.
func (UserModel) TableName() string {
	return constants.TableUsers
}
