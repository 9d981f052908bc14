package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"iothub/internal/domain/activation"
	"iothub/internal/infrastructure/persistence/mappers"
	"iothub/internal/infrastructure/persistence/models"
	"iothub/internal/shared/db"
	"iothub/internal/shared/errors"
)

// GormActivationTokenRepository implements activation.Repository.
type GormActivationTokenRepository struct {
	db     *gorm.DB
	mapper *mappers.ActivationTokenMapper
}

// NewGormActivationTokenRepository creates a GormActivationTokenRepository.
func NewGormActivationTokenRepository(database *gorm.DB) *GormActivationTokenRepository {
	return &GormActivationTokenRepository{
		db:     database,
		mapper: mappers.NewActivationTokenMapper(),
	}
}

// Create inserts an activation token and backfills the generated id.
func (r *GormActivationTokenRepository) Create(ctx context.Context, t *activation.Token) error {
	model := r.mapper.ToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		if errors.IsDuplicateError(err) {
			return errors.NewConflictError("Activation token already exists for user")
		}
		return fmt.Errorf("failed to create activation token: %w", err)
	}
	t.SetID(model.ID)
	return nil
}

// GetByUserID fetches the user's activation token.
func (r *GormActivationTokenRepository) GetByUserID(ctx context.Context, userID uint) (*activation.Token, error) {
	var model models.ActivationTokenModel
	err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Activation token not found")
		}
		return nil, fmt.Errorf("failed to get activation token: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// DeleteByUserID removes the user's activation token. Deleting a token that
// is already gone is not an error.
func (r *GormActivationTokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Delete(&models.ActivationTokenModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete activation token: %w", err)
	}
	return nil
}
