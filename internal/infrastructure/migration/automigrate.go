package migration

import (
	"fmt"

	"gorm.io/gorm"

	"medlog/internal/infrastructure/persistence/models"
	"medlog/internal/shared/logger"
)

// GormAutoMigrateStrategy implements migration using GORM AutoMigrate
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

// NewGormAutoMigrateStrategy creates a new GORM AutoMigrate strategy
func NewGormAutoMigrateStrategy() Strategy {
	return &GormAutoMigrateStrategy{
		logger: logger.NewLogger().With("component", "migration.automigrate"),
	}
}

// Migrate executes GORM AutoMigrate for the given models
func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB, models ...interface{}) error {
	if len(models) == 0 {
		models = AllModels()
	}

	s.logger.Infow("starting GORM AutoMigrate", "models_count", len(models))

	if err := db.AutoMigrate(models...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("auto migration failed: %w", err)
	}

	s.logger.Info("GORM AutoMigrate completed successfully")
	return nil
}

// GetName returns the strategy name
func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}

// AllModels returns every persistence model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&models.SiteModel{},
		&models.TerminalModel{},
		&models.PairingCodeModel{},
		&models.TerminalSessionModel{},
		&models.UserModel{},
		&models.AuditorSiteAccessModel{},
		&models.LogEntryModel{},
		&models.LogEntryItemModel{},
		&models.AuditEventModel{},
	}
}
