package mappers

import (
	"medlog/internal/domain/logentry"
	"medlog/internal/infrastructure/persistence/models"
)

// LogEntryMapper handles the conversion between Entry domain entities and persistence models.
type LogEntryMapper interface {
	ToModel(entity *logentry.Entry) *models.LogEntryModel
	ToDomain(model *models.LogEntryModel) *logentry.Entry
}

type LogEntryMapperImpl struct{}

func NewLogEntryMapper() LogEntryMapper {
	return &LogEntryMapperImpl{}
}

func (m *LogEntryMapperImpl) ToModel(entity *logentry.Entry) *models.LogEntryModel {
	if entity == nil {
		return nil
	}
	items := make([]models.LogEntryItemModel, 0, len(entity.Items))
	for _, item := range entity.Items {
		items = append(items, models.LogEntryItemModel{
			ID:               item.ID,
			EntryID:          item.EntryID,
			MedicineName:     item.MedicineName,
			Quantity:         item.Quantity,
			PhotoPath:        item.PhotoPath,
			PhotoContentType: item.PhotoContentType,
			PhotoLength:      item.PhotoLength,
		})
	}
	return &models.LogEntryModel{
		ID:         entity.ID,
		TerminalID: entity.TerminalID,
		SiteID:     entity.SiteID,
		FirstName:  entity.FirstName,
		LastName:   entity.LastName,
		CreatedAt:  entity.CreatedAt,
		Items:      items,
	}
}

func (m *LogEntryMapperImpl) ToDomain(model *models.LogEntryModel) *logentry.Entry {
	if model == nil {
		return nil
	}
	items := make([]logentry.Item, 0, len(model.Items))
	for _, item := range model.Items {
		items = append(items, logentry.Item{
			ID:               item.ID,
			EntryID:          item.EntryID,
			MedicineName:     item.MedicineName,
			Quantity:         item.Quantity,
			PhotoPath:        item.PhotoPath,
			PhotoContentType: item.PhotoContentType,
			PhotoLength:      item.PhotoLength,
		})
	}
	return &logentry.Entry{
		ID:         model.ID,
		TerminalID: model.TerminalID,
		SiteID:     model.SiteID,
		FirstName:  model.FirstName,
		LastName:   model.LastName,
		CreatedAt:  model.CreatedAt,
		Items:      items,
	}
}
