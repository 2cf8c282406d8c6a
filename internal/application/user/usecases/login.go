package usecases

import (
	"context"

	"medlog/internal/domain/user"
	apperrors "medlog/internal/shared/errors"
	"medlog/internal/shared/logger"
)

// JWTService signs administrative access tokens.
type JWTService interface {
	Generate(userID uint, role user.Role) (token string, expiresIn int64, err error)
}

type LoginCommand struct {
	Email    string
	Password string
}

type LoginResult struct {
	User        *user.User
	AccessToken string
	ExpiresIn   int64
}

type LoginUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	jwtService     JWTService
	logger         logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	jwtService JWTService,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		jwtService:     jwtService,
		logger:         logger,
	}
}

func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	existingUser, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, err
	}

	// Same message for unknown email, wrong password and disabled account,
	// so the endpoint leaks nothing about which accounts exist.
	if existingUser == nil || !existingUser.Active {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	if err := existingUser.VerifyPassword(cmd.Password, uc.passwordHasher); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	accessToken, expiresIn, err := uc.jwtService.Generate(existingUser.ID, existingUser.Role)
	if err != nil {
		uc.logger.Errorw("failed to generate access token", "error", err, "user_id", existingUser.ID)
		return nil, err
	}

	uc.logger.Infow("user logged in", "user_id", existingUser.ID, "role", existingUser.Role)

	return &LoginResult{
		User:        existingUser,
		AccessToken: accessToken,
		ExpiresIn:   expiresIn,
	}, nil
}
