package mappers

import (
	"medlog/internal/domain/site"
	"medlog/internal/infrastructure/persistence/models"
)

// SiteMapper handles the conversion between Site domain entities and persistence models.
type SiteMapper interface {
	ToModel(entity *site.Site) *models.SiteModel
	ToDomain(model *models.SiteModel) *site.Site
}

type SiteMapperImpl struct{}

func NewSiteMapper() SiteMapper {
	return &SiteMapperImpl{}
}

func (m *SiteMapperImpl) ToModel(entity *site.Site) *models.SiteModel {
	if entity == nil {
		return nil
	}
	return &models.SiteModel{
		ID:        entity.ID,
		Name:      entity.Name,
		CreatedAt: entity.CreatedAt,
	}
}

func (m *SiteMapperImpl) ToDomain(model *models.SiteModel) *site.Site {
	if model == nil {
		return nil
	}
	return &site.Site{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
	}
}
