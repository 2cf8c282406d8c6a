package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"medlog/internal/domain/terminal"
	"medlog/internal/infrastructure/persistence/mappers"
	"medlog/internal/infrastructure/persistence/models"
	"medlog/internal/shared/db"
)

type PairingCodeRepository struct {
	db     *gorm.DB
	mapper mappers.PairingCodeMapper
}

func NewPairingCodeRepository(database *gorm.DB) terminal.PairingCodeRepository {
	return &PairingCodeRepository{
		db:     database,
		mapper: mappers.NewPairingCodeMapper(),
	}
}

func (r *PairingCodeRepository) Create(ctx context.Context, code *terminal.PairingCode) error {
	model := r.mapper.ToModel(code)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create pairing code: %w", err)
	}
	code.ID = model.ID
	return nil
}

// GetByCode looks up a code by exact value. Inside a transaction the row is
// locked for update so two redemptions of the same code serialize on the
// database rather than racing in the application.
func (r *PairingCodeRepository) GetByCode(ctx context.Context, code string) (*terminal.PairingCode, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.PairingCodeModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, terminal.ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to get pairing code: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// MarkUsed sets used_at only when it is still null. Zero affected rows means
// another redemption already consumed the code.
func (r *PairingCodeRepository) MarkUsed(ctx context.Context, id uint, now time.Time, usedByIP string) error {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.PairingCodeModel{}).
		Where("id = ? AND used_at IS NULL", id).
		Updates(map[string]any{
			"used_at":    now,
			"used_by_ip": usedByIP,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark pairing code used: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return terminal.ErrCodeAlreadyUsed
	}
	return nil
}

func (r *PairingCodeRepository) ExpireActiveForTerminal(ctx context.Context, terminalID uint, now time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Model(&models.PairingCodeModel{}).
		Where("terminal_id = ? AND used_at IS NULL AND expires_at > ?", terminalID, now).
		Update("expires_at", now)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to expire active pairing codes: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *PairingCodeRepository) DeleteTerminatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).
		Where("(used_at IS NOT NULL OR expires_at <= ?) AND created_at < ?", cutoff, cutoff).
		Delete(&models.PairingCodeModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete terminated pairing codes: %w", result.Error)
	}
	return result.RowsAffected, nil
}
