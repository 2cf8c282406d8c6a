package mappers

import (
	"medlog/internal/domain/terminal"
	"medlog/internal/infrastructure/persistence/models"
)

// TerminalMapper handles the conversion between Terminal domain entities and persistence models.
type TerminalMapper interface {
	ToModel(entity *terminal.Terminal) *models.TerminalModel
	ToDomain(model *models.TerminalModel) *terminal.Terminal
}

type TerminalMapperImpl struct{}

func NewTerminalMapper() TerminalMapper {
	return &TerminalMapperImpl{}
}

func (m *TerminalMapperImpl) ToModel(entity *terminal.Terminal) *models.TerminalModel {
	if entity == nil {
		return nil
	}
	return &models.TerminalModel{
		ID:         entity.ID,
		SiteID:     entity.SiteID,
		Name:       entity.Name,
		Active:     entity.Active,
		LastSeenAt: entity.LastSeenAt,
		CreatedAt:  entity.CreatedAt,
	}
}

func (m *TerminalMapperImpl) ToDomain(model *models.TerminalModel) *terminal.Terminal {
	if model == nil {
		return nil
	}
	return &terminal.Terminal{
		ID:         model.ID,
		SiteID:     model.SiteID,
		Name:       model.Name,
		Active:     model.Active,
		LastSeenAt: model.LastSeenAt,
		CreatedAt:  model.CreatedAt,
	}
}
