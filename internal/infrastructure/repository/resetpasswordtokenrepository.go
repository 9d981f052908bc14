package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"iothub/internal/domain/resetpassword"
	"iothub/internal/infrastructure/persistence/mappers"
	"iothub/internal/infrastructure/persistence/models"
	"iothub/internal/shared/db"
	"iothub/internal/shared/errors"
)

// GormResetPasswordTokenRepository implements resetpassword.Repository.
type GormResetPasswordTokenRepository struct {
	db     *gorm.DB
	mapper *mappers.ResetPasswordTokenMapper
}

// NewGormResetPasswordTokenRepository creates a GormResetPasswordTokenRepository.
func NewGormResetPasswordTokenRepository(database *gorm.DB) *GormResetPasswordTokenRepository {
	return &GormResetPasswordTokenRepository{
		db:     database,
		mapper: mappers.NewResetPasswordTokenMapper(),
	}
}

// Replace swaps the user's reset token for a new one inside one transaction,
// so at most one token per user ever exists.
func (r *GormResetPasswordTokenRepository) Replace(ctx context.Context, t *resetpassword.Token) error {
	conn := db.GetTxFromContext(ctx, r.db)
	return conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", t.UserID()).
			Delete(&models.ResetPasswordTokenModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete previous reset token: %w", err)
		}
		model := r.mapper.ToModel(t)
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to create reset token: %w", err)
		}
		t.SetID(model.ID)
		return nil
	})
}

// GetByUserID fetches the user's reset token.
func (r *GormResetPasswordTokenRepository) GetByUserID(ctx context.Context, userID uint) (*resetpassword.Token, error) {
	var model models.ResetPasswordTokenModel
	err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewNotFoundError("Reset token not found")
		}
		return nil, fmt.Errorf("failed to get reset token: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// IncrementAttempts bumps the attempt counter with a database-side
// expression, so concurrent wrong guesses never lose updates.
func (r *GormResetPasswordTokenRepository) IncrementAttempts(ctx context.Context, userID uint) error {
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ResetPasswordTokenModel{}).
		Where("user_id = ?", userID).
		Update("attempts", gorm.Expr("attempts + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment reset attempts: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("Reset token not found")
	}
	return nil
}

// DeleteByUserID removes the user's reset token. Deleting a token that is
// already gone is not an error.
func (r *GormResetPasswordTokenRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Delete(&models.ResetPasswordTokenModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete reset token: %w", err)
	}
	return nil
}
