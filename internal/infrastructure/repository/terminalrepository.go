package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medlog/internal/domain/terminal"
	"medlog/internal/infrastructure/persistence/mappers"
	"medlog/internal/infrastructure/persistence/models"
	"medlog/internal/shared/db"
)

type TerminalRepository struct {
	db     *gorm.DB
	mapper mappers.TerminalMapper
}

func NewTerminalRepository(database *gorm.DB) terminal.Repository {
	return &TerminalRepository{
		db:     database,
		mapper: mappers.NewTerminalMapper(),
	}
}

func (r *TerminalRepository) Create(ctx context.Context, entity *terminal.Terminal) error {
	model := r.mapper.ToModel(entity)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	entity.ID = model.ID
	return nil
}

func (r *TerminalRepository) GetByID(ctx context.Context, id uint) (*terminal.Terminal, error) {
	var model models.TerminalModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, terminal.ErrTerminalNotFound
		}
		return nil, fmt.Errorf("failed to get terminal by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *TerminalRepository) Update(ctx context.Context, entity *terminal.Terminal) error {
	model := r.mapper.ToModel(entity)
	result := db.GetTxFromContext(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update terminal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return terminal.ErrTerminalNotFound
	}
	return nil
}

func (r *TerminalRepository) List(ctx context.Context, siteID uint) ([]*terminal.Terminal, error) {
	query := db.GetTxFromContext(ctx, r.db).Order("name ASC")
	if siteID != 0 {
		query = query.Where("site_id = ?", siteID)
	}

	var terminalModels []models.TerminalModel
	if err := query.Find(&terminalModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list terminals: %w", err)
	}

	terminals := make([]*terminal.Terminal, len(terminalModels))
	for i := range terminalModels {
		terminals[i] = r.mapper.ToDomain(&terminalModels[i])
	}
	return terminals, nil
}

func (r *TerminalRepository) TouchLastSeen(ctx context.Context, id uint, now time.Time) error {
	err := db.GetTxFromContext(ctx, r.db).Model(&models.TerminalModel{}).
		Where("id = ?", id).
		Update("last_seen_at", now).Error
	if err != nil {
		return fmt.Errorf("failed to touch last seen: %w", err)
	}
	return nil
}
