package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"medlog/internal/domain/audit"
	"medlog/internal/infrastructure/persistence/mappers"
	"medlog/internal/infrastructure/persistence/models"
	"medlog/internal/shared/db"
)

type AuditEventRepository struct {
	db     *gorm.DB
	mapper mappers.AuditEventMapper
}

func NewAuditEventRepository(database *gorm.DB) audit.Repository {
	return &AuditEventRepository{
		db:     database,
		mapper: mappers.NewAuditEventMapper(),
	}
}

func (r *AuditEventRepository) Record(ctx context.Context, event *audit.Event) error {
	model, err := r.mapper.ToModel(event)
	if err != nil {
		return fmt.Errorf("failed to encode audit event: %w", err)
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}
	event.ID = model.ID
	return nil
}

func (r *AuditEventRepository) ListByTerminal(ctx context.Context, terminalID uint, limit int) ([]*audit.Event, error) {
	if limit <= 0 {
		limit = 100
	}

	var eventModels []models.AuditEventModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("terminal_id = ?", terminalID).
		Order("created_at DESC").
		Limit(limit).
		Find(&eventModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}

	events := make([]*audit.Event, 0, len(eventModels))
	for i := range eventModels {
		event, err := r.mapper.ToDomain(&eventModels[i])
		if err != nil {
			return nil, fmt.Errorf("failed to decode audit event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}
