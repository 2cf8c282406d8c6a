package mappers

import (
	"encoding/json"

	"gorm.io/datatypes"

	"medlog/internal/domain/audit"
	"medlog/internal/infrastructure/persistence/models"
)

// AuditEventMapper handles the conversion between Event domain entities and persistence models.
type AuditEventMapper interface {
	ToModel(entity *audit.Event) (*models.AuditEventModel, error)
	ToDomain(model *models.AuditEventModel) (*audit.Event, error)
}

type AuditEventMapperImpl struct{}

func NewAuditEventMapper() AuditEventMapper {
	return &AuditEventMapperImpl{}
}

func (m *AuditEventMapperImpl) ToModel(entity *audit.Event) (*models.AuditEventModel, error) {
	if entity == nil {
		return nil, nil
	}

	var details datatypes.JSON
	if entity.Details != nil {
		raw, err := json.Marshal(entity.Details)
		if err != nil {
			return nil, err
		}
		details = datatypes.JSON(raw)
	}

	return &models.AuditEventModel{
		ID:         entity.ID,
		TerminalID: entity.TerminalID,
		Type:       entity.Type,
		Details:    details,
		CreatedAt:  entity.CreatedAt,
	}, nil
}

func (m *AuditEventMapperImpl) ToDomain(model *models.AuditEventModel) (*audit.Event, error) {
	if model == nil {
		return nil, nil
	}

	var details map[string]any
	if len(model.Details) > 0 {
		if err := json.Unmarshal(model.Details, &details); err != nil {
			return nil, err
		}
	}

	return &audit.Event{
		ID:         model.ID,
		TerminalID: model.TerminalID,
		Type:       model.Type,
		Details:    details,
		CreatedAt:  model.CreatedAt,
	}, nil
}
