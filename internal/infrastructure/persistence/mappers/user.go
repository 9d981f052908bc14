// Package mappers converts between domain entities and persistence models.
package mappers

import (
	"iothub/internal/domain/user"
	"iothub/internal/infrastructure/persistence/models"
)

// UserMapper converts users.
type UserMapper struct{}

// NewUserMapper creates a UserMapper.
func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToModel converts a domain user to its persistence model.
func (m *UserMapper) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Name:         u.Name(),
		LastName:     u.LastName(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		Role:         string(u.Role()),
		Enabled:      u.Enabled(),
		CreatedAt:    u.CreatedAt(),
	}
}

// ToDomain converts a persistence model to a domain user.
func (m *UserMapper) ToDomain(model *models.UserModel) *user.User {
	return user.ReconstructUser(
		model.ID,
		model.Name,
		model.LastName,
		model.Email,
		model.PasswordHash,
		user.Role(model.Role),
		model.Enabled,
		model.CreatedAt,
	)
}
