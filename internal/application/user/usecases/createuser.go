package usecases

import (
	"context"
	"time"

	"medlog/internal/domain/permission"
	"medlog/internal/domain/user"
	apperrors "medlog/internal/shared/errors"
	"medlog/internal/shared/logger"
)

type CreateUserCommand struct {
	Email    string
	Name     string
	Password string
	Role     user.Role
}

type CreateUserResult struct {
	User *user.User
}

type CreateUserUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	enforcer       permission.PermissionEnforcer
	logger         logger.Interface
	now            func() time.Time
}

func NewCreateUserUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		enforcer:       enforcer,
		logger:         logger,
		now:            time.Now,
	}
}

func (uc *CreateUserUseCase) Execute(ctx context.Context, cmd CreateUserCommand) (*CreateUserResult, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("email already registered")
	}

	if len(cmd.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	hash, err := uc.passwordHasher.Hash(cmd.Password)
	if err != nil {
		return nil, err
	}

	entity, err := user.New(cmd.Email, cmd.Name, hash, cmd.Role, uc.now().UTC())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.userRepo.Create(ctx, entity); err != nil {
		return nil, err
	}

	// Casbin role binding drives the route-level permission checks.
	if err := uc.enforcer.AddRoleForUser(subjectForUser(entity.ID), string(entity.Role)); err != nil {
		uc.logger.Errorw("failed to bind role for user", "error", err, "user_id", entity.ID)
		return nil, err
	}

	uc.logger.Infow("user created", "user_id", entity.ID, "email", entity.Email, "role", entity.Role)

	return &CreateUserResult{User: entity}, nil
}
