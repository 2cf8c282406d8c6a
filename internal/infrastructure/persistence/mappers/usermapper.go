package mappers

import (
	"medlog/internal/domain/user"
	"medlog/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between User domain entities and persistence models.
type UserMapper interface {
	ToModel(entity *user.User) *models.UserModel
	ToDomain(model *models.UserModel) *user.User
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:           entity.ID,
		Email:        entity.Email,
		Name:         entity.Name,
		PasswordHash: entity.PasswordHash,
		Role:         string(entity.Role),
		Active:       entity.Active,
		CreatedAt:    entity.CreatedAt,
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) *user.User {
	if model == nil {
		return nil
	}
	return &user.User{
		ID:           model.ID,
		Email:        model.Email,
		Name:         model.Name,
		PasswordHash: model.PasswordHash,
		Role:         user.Role(model.Role),
		Active:       model.Active,
		CreatedAt:    model.CreatedAt,
	}
}
