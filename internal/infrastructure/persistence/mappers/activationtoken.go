package mappers

import (
	"iothub/internal/domain/activation"
	"iothub/internal/infrastructure/persistence/models"
)

// ActivationTokenMapper converts activation tokens.
type ActivationTokenMapper struct{}

// NewActivationTokenMapper creates an ActivationTokenMapper.
func NewActivationTokenMapper() *ActivationTokenMapper {
	return &ActivationTokenMapper{}
}

// ToModel converts a domain token to its persistence model.
func (m *ActivationTokenMapper) ToModel(t *activation.Token) *models.ActivationTokenModel {
	return &models.ActivationTokenModel{
		ID:        t.ID(),
		UserID:    t.UserID(),
		Code:      t.Code(),
		CreatedAt: t.CreatedAt(),
	}
}

// ToDomain converts a persistence model to a domain token.
func (m *ActivationTokenMapper) ToDomain(model *models.ActivationTokenModel) *activation.Token {
	return activation.ReconstructToken(model.ID, model.UserID, model.Code, model.CreatedAt)
}
