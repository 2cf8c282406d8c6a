package mappers

import (
	"medlog/internal/domain/terminal"
	"medlog/internal/infrastructure/persistence/models"
)

// TerminalSessionMapper handles the conversion between Session domain entities and persistence models.
type TerminalSessionMapper interface {
	ToModel(entity *terminal.Session) *models.TerminalSessionModel
	ToDomain(model *models.TerminalSessionModel) *terminal.Session
}

type TerminalSessionMapperImpl struct{}

func NewTerminalSessionMapper() TerminalSessionMapper {
	return &TerminalSessionMapperImpl{}
}

func (m *TerminalSessionMapperImpl) ToModel(entity *terminal.Session) *models.TerminalSessionModel {
	if entity == nil {
		return nil
	}
	return &models.TerminalSessionModel{
		ID:          entity.ID,
		TerminalID:  entity.TerminalID,
		TokenHash:   entity.TokenHash,
		CreatedAt:   entity.CreatedAt,
		ExpiresAt:   entity.ExpiresAt,
		RevokedAt:   entity.RevokedAt,
		CreatedByIP: entity.CreatedByIP,
		UserAgent:   entity.UserAgent,
	}
}

func (m *TerminalSessionMapperImpl) ToDomain(model *models.TerminalSessionModel) *terminal.Session {
	if model == nil {
		return nil
	}
	return &terminal.Session{
		ID:          model.ID,
		TerminalID:  model.TerminalID,
		TokenHash:   model.TokenHash,
		CreatedAt:   model.CreatedAt,
		ExpiresAt:   model.ExpiresAt,
		RevokedAt:   model.RevokedAt,
		CreatedByIP: model.CreatedByIP,
		UserAgent:   model.UserAgent,
	}
}
