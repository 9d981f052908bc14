// Package repository contains the GORM-backed repository implementations.
// Every query resolves its connection through the context so repository
// calls compose into a use-case transaction.
package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"iothub/internal/domain/user"
	"iothub/internal/infrastructure/persistence/mappers"
	"iothub/internal/infrastructure/persistence/models"
	"iothub/internal/shared/db"
	"iothub/internal/shared/errors"
)

// GormUserRepository implements user.Repository.
type GormUserRepository struct {
	db     *gorm.DB
	mapper *mappers.UserMapper
}

// NewGormUserRepository creates a GormUserRepository.
func NewGormUserRepository(database *gorm.DB) *GormUserRepository {
	return &GormUserRepository{
		db:     database,
		mapper: mappers.NewUserMapper(),
	}
}

// Create inserts a user and backfills the generated id.
func (r *GormUserRepository) Create(ctx context.Context, u *user.User) error {
	model := r.mapper.ToModel(u)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("User already exists")
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	u.SetID(model.ID)
	return nil
}

// GetByID fetches a user by id.
func (r *GormUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("User not found")
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// GetByEmail fetches a user by email.
func (r *GormUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("User not found")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// Update persists the mutable fields of a user.
func (r *GormUserRepository) Update(ctx context.Context, u *user.User) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("id = ?", u.ID()).
		Updates(map[string]interface{}{
			"name":          u.Name(),
			"last_name":     u.LastName(),
			"password_hash": u.PasswordHash(),
			"role":          string(u.Role()),
			"enabled":       u.Enabled(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("User not found")
	}
	return nil
}

// ExistsByEmail reports whether any user has the email.
func (r *GormUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count users by email: %w", err)
	}
	return count > 0, nil
}
