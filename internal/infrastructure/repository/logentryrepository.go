package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medlog/internal/domain/logentry"
	"medlog/internal/infrastructure/persistence/mappers"
	"medlog/internal/infrastructure/persistence/models"
	"medlog/internal/shared/constants"
	"medlog/internal/shared/db"
	apperrors "medlog/internal/shared/errors"
)

type LogEntryRepository struct {
	db     *gorm.DB
	mapper mappers.LogEntryMapper
}

func NewLogEntryRepository(database *gorm.DB) logentry.Repository {
	return &LogEntryRepository{
		db:     database,
		mapper: mappers.NewLogEntryMapper(),
	}
}

func (r *LogEntryRepository) Create(ctx context.Context, entry *logentry.Entry) error {
	model := r.mapper.ToModel(entry)
	// Items are persisted through the association in the same insert.
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create log entry: %w", err)
	}
	entry.ID = model.ID
	for i := range model.Items {
		entry.Items[i].ID = model.Items[i].ID
		entry.Items[i].EntryID = model.Items[i].EntryID
	}
	return nil
}

func (r *LogEntryRepository) GetByID(ctx context.Context, id uint) (*logentry.Entry, error) {
	var model models.LogEntryModel
	err := db.GetTxFromContext(ctx, r.db).
		Preload("Items").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("log entry not found")
		}
		return nil, fmt.Errorf("failed to get log entry by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *LogEntryRepository) List(ctx context.Context, filter logentry.ListFilter) ([]*logentry.Entry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.LogEntryModel{})
	if filter.SiteID != 0 {
		query = query.Where("site_id = ?", filter.SiteID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count log entries: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = constants.DefaultPageSize
	}
	if pageSize > constants.MaxPageSize {
		pageSize = constants.MaxPageSize
	}

	var entryModels []models.LogEntryModel
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entryModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list log entries: %w", err)
	}

	entries := make([]*logentry.Entry, len(entryModels))
	for i := range entryModels {
		entries[i] = r.mapper.ToDomain(&entryModels[i])
	}
	return entries, total, nil
}

func (r *LogEntryRepository) PhotoPathsCreatedBefore(ctx context.Context, cutoff time.Time) ([]string, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var paths []string
	err := tx.Model(&models.LogEntryItemModel{}).
		Where("photo_path <> ''").
		Where("entry_id IN (?)", tx.Model(&models.LogEntryModel{}).
			Select("id").
			Where("created_at < ?", cutoff)).
		Pluck("photo_path", &paths).Error
	if err != nil {
		return nil, fmt.Errorf("failed to collect photo paths: %w", err)
	}
	return paths, nil
}

func (r *LogEntryRepository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	// Items first so no orphan rows survive a partial purge.
	err := tx.
		Where("entry_id IN (?)", tx.Model(&models.LogEntryModel{}).
			Select("id").
			Where("created_at < ?", cutoff)).
		Delete(&models.LogEntryItemModel{}).Error
	if err != nil {
		return 0, fmt.Errorf("failed to delete log entry items: %w", err)
	}

	result := tx.Where("created_at < ?", cutoff).Delete(&models.LogEntryModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete log entries: %w", result.Error)
	}
	return result.RowsAffected, nil
}
