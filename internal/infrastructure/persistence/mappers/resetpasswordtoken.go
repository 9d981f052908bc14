package mappers

import (
	"iothub/internal/domain/resetpassword"
	"iothub/internal/infrastructure/persistence/models"
)

// ResetPasswordTokenMapper converts reset tokens.
type ResetPasswordTokenMapper struct{}

// NewResetPasswordTokenMapper creates a ResetPasswordTokenMapper.
func NewResetPasswordTokenMapper() *ResetPasswordTokenMapper {
	return &ResetPasswordTokenMapper{}
}

// ToModel converts a domain token to its persistence model.
func (m *ResetPasswordTokenMapper) ToModel(t *resetpassword.Token) *models.ResetPasswordTokenModel {
	return &models.ResetPasswordTokenModel{
		ID:        t.ID(),
		UserID:    t.UserID(),
		Code:      t.Code(),
		Attempts:  t.Attempts(),
		CreatedAt: t.CreatedAt(),
		ExpiredAt: t.ExpiredAt(),
	}
}

// ToDomain converts a persistence model to a domain token.
func (m *ResetPasswordTokenMapper) ToDomain(model *models.ResetPasswordTokenModel) *resetpassword.Token {
	return resetpassword.ReconstructToken(
		model.ID,
		model.UserID,
		model.Code,
		model.Attempts,
		model.CreatedAt,
		model.ExpiredAt,
	)
}
