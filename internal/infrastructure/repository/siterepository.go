package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"medlog/internal/domain/site"
	"medlog/internal/infrastructure/persistence/mappers"
	"medlog/internal/infrastructure/persistence/models"
	"medlog/internal/shared/db"
	apperrors "medlog/internal/shared/errors"
)

type SiteRepository struct {
	db     *gorm.DB
	mapper mappers.SiteMapper
}

func NewSiteRepository(database *gorm.DB) site.Repository {
	return &SiteRepository{
		db:     database,
		mapper: mappers.NewSiteMapper(),
	}
}

func (r *SiteRepository) Create(ctx context.Context, entity *site.Site) error {
	model := r.mapper.ToModel(entity)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}
	entity.ID = model.ID
	return nil
}

func (r *SiteRepository) GetByID(ctx context.Context, id uint) (*site.Site, error) {
	var model models.SiteModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("site not found")
		}
		return nil, fmt.Errorf("failed to get site by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *SiteRepository) List(ctx context.Context) ([]*site.Site, error) {
	var siteModels []models.SiteModel
	err := db.GetTxFromContext(ctx, r.db).Order("name ASC").Find(&siteModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}

	sites := make([]*site.Site, len(siteModels))
	for i := range siteModels {
		sites[i] = r.mapper.ToDomain(&siteModels[i])
	}
	return sites, nil
}

func (r *SiteRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).Model(&models.SiteModel{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check site existence: %w", err)
	}
	return count > 0, nil
}
