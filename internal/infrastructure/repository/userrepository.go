package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"medlog/internal/domain/user"
	"medlog/internal/infrastructure/persistence/mappers"
	"medlog/internal/infrastructure/persistence/models"
	"medlog/internal/shared/db"
	apperrors "medlog/internal/shared/errors"
)

type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
}

func NewUserRepository(database *gorm.DB) user.Repository {
	return &UserRepository{
		db:     database,
		mapper: mappers.NewUserMapper(),
	}
}

func (r *UserRepository) Create(ctx context.Context, entity *user.User) error {
	model := r.mapper.ToModel(entity)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	entity.ID = model.ID
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	err := db.GetTxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var userModels []models.UserModel
	err := db.GetTxFromContext(ctx, r.db).Order("email ASC").Find(&userModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*user.User, len(userModels))
	for i := range userModels {
		users[i] = r.mapper.ToDomain(&userModels[i])
	}
	return users, nil
}

func (r *UserRepository) GetAuditorSiteIDs(ctx context.Context, userID uint) ([]uint, error) {
	var siteIDs []uint
	err := db.GetTxFromContext(ctx, r.db).Model(&models.AuditorSiteAccessModel{}).
		Where("user_id = ?", userID).
		Pluck("site_id", &siteIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get auditor site IDs: %w", err)
	}
	return siteIDs, nil
}

func (r *UserRepository) GrantSiteAccess(ctx context.Context, userID, siteID uint) error {
	model := &models.AuditorSiteAccessModel{
		UserID: userID,
		SiteID: siteID,
	}
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to grant site access: %w", err)
	}
	return nil
}
