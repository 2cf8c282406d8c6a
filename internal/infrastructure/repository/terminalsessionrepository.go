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

type TerminalSessionRepository struct {
	db     *gorm.DB
	mapper mappers.TerminalSessionMapper
}

func NewTerminalSessionRepository(database *gorm.DB) terminal.SessionRepository {
	return &TerminalSessionRepository{
		db:     database,
		mapper: mappers.NewTerminalSessionMapper(),
	}
}

func (r *TerminalSessionRepository) Create(ctx context.Context, session *terminal.Session) error {
	model := r.mapper.ToModel(session)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create terminal session: %w", err)
	}
	session.ID = model.ID
	return nil
}

// FindActiveByHash treats revoked and expired rows the same as missing ones.
// Expiry is enforced lazily here; no background job flips session state.
func (r *TerminalSessionRepository) FindActiveByHash(ctx context.Context, tokenHash string, now time.Time) (*terminal.Session, error) {
	var model models.TerminalSessionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", tokenHash, now).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session by token hash: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *TerminalSessionRepository) RevokeAllActive(ctx context.Context, terminalID uint, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.TerminalSessionModel{}).
		Where("terminal_id = ? AND revoked_at IS NULL AND expires_at > ?", terminalID, now).
		Update("revoked_at", now)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to revoke terminal sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *TerminalSessionRepository) ListByTerminal(ctx context.Context, terminalID uint) ([]*terminal.Session, error) {
	var sessionModels []models.TerminalSessionModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("terminal_id = ?", terminalID).
		Order("created_at DESC").
		Find(&sessionModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list terminal sessions: %w", err)
	}

	sessions := make([]*terminal.Session, len(sessionModels))
	for i := range sessionModels {
		sessions[i] = r.mapper.ToDomain(&sessionModels[i])
	}
	return sessions, nil
}

func (r *TerminalSessionRepository) DeleteRevokedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("revoked_at IS NOT NULL AND revoked_at < ?", cutoff).
		Delete(&models.TerminalSessionModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete revoked sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
