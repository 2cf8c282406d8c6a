package mappers

import (
	"medlog/internal/domain/terminal"
	"medlog/internal/infrastructure/persistence/models"
)

// PairingCodeMapper handles the conversion between PairingCode domain entities and persistence models.
type PairingCodeMapper interface {
	ToModel(entity *terminal.PairingCode) *models.PairingCodeModel
	ToDomain(model *models.PairingCodeModel) *terminal.PairingCode
}

type PairingCodeMapperImpl struct{}

func NewPairingCodeMapper() PairingCodeMapper {
	return &PairingCodeMapperImpl{}
}

func (m *PairingCodeMapperImpl) ToModel(entity *terminal.PairingCode) *models.PairingCodeModel {
	if entity == nil {
		return nil
	}
	return &models.PairingCodeModel{
		ID:         entity.ID,
		TerminalID: entity.TerminalID,
		Code:       entity.Code,
		CreatedAt:  entity.CreatedAt,
		ExpiresAt:  entity.ExpiresAt,
		UsedAt:     entity.UsedAt,
		UsedByIP:   entity.UsedByIP,
	}
}

func (m *PairingCodeMapperImpl) ToDomain(model *models.PairingCodeModel) *terminal.PairingCode {
	if model == nil {
		return nil
	}
	return &terminal.PairingCode{
		ID:         model.ID,
		TerminalID: model.TerminalID,
		Code:       model.Code,
		CreatedAt:  model.CreatedAt,
		ExpiresAt:  model.ExpiresAt,
		UsedAt:     model.UsedAt,
		UsedByIP:   model.UsedByIP,
	}
}
