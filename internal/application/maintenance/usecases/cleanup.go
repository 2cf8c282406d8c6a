package usecases

import (
	"context"
	"time"

	kioskusecases "medlog/internal/application/kiosk/usecases"
	"medlog/internal/domain/logentry"
	"medlog/internal/domain/terminal"
	"medlog/internal/shared/config"
	"medlog/internal/shared/logger"
)

type CleanupResult struct {
	PurgedCodes    int64
	PurgedSessions int64
	PurgedEntries  int64
	DeletedPhotos  int
}

// CleanupUseCase purges terminated pairing codes, long-revoked sessions and
// medicine logs past their retention window. Active sessions are never
// touched; session expiry stays lazy.
type CleanupUseCase struct {
	codeRepo    terminal.PairingCodeRepository
	sessionRepo terminal.SessionRepository
	entryRepo   logentry.Repository
	photoStore  kioskusecases.PhotoStore
	config      config.CleanupConfig
	logger      logger.Interface
	now         func() time.Time
}

func NewCleanupUseCase(
	codeRepo terminal.PairingCodeRepository,
	sessionRepo terminal.SessionRepository,
	entryRepo logentry.Repository,
	photoStore kioskusecases.PhotoStore,
	cfg config.CleanupConfig,
	logger logger.Interface,
) *CleanupUseCase {
	return &CleanupUseCase{
		codeRepo:    codeRepo,
		sessionRepo: sessionRepo,
		entryRepo:   entryRepo,
		photoStore:  photoStore,
		config:      cfg,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *CleanupUseCase) Execute(ctx context.Context) (*CleanupResult, error) {
	now := uc.now().UTC()
	result := &CleanupResult{}

	codeCutoff := now.AddDate(0, 0, -uc.config.CodeRetentionDays)
	purgedCodes, err := uc.codeRepo.DeleteTerminatedBefore(ctx, codeCutoff)
	if err != nil {
		return nil, err
	}
	result.PurgedCodes = purgedCodes

	sessionCutoff := now.AddDate(0, 0, -uc.config.SessionGraceDays)
	purgedSessions, err := uc.sessionRepo.DeleteRevokedBefore(ctx, sessionCutoff)
	if err != nil {
		return nil, err
	}
	result.PurgedSessions = purgedSessions

	entryCutoff := now.AddDate(0, 0, -uc.config.LogRetentionDays)

	// Photos first: once rows are gone the paths are unrecoverable.
	photoPaths, err := uc.entryRepo.PhotoPathsCreatedBefore(ctx, entryCutoff)
	if err != nil {
		return nil, err
	}
	for _, path := range photoPaths {
		if err := uc.photoStore.Delete(path); err != nil {
			uc.logger.Warnw("failed to delete expired photo", "error", err, "path", path)
			continue
		}
		result.DeletedPhotos++
	}

	purgedEntries, err := uc.entryRepo.DeleteCreatedBefore(ctx, entryCutoff)
	if err != nil {
		return nil, err
	}
	result.PurgedEntries = purgedEntries

	uc.logger.Infow("cleanup pass completed",
		"purged_codes", result.PurgedCodes,
		"purged_sessions", result.PurgedSessions,
		"purged_entries", result.PurgedEntries,
		"deleted_photos", result.DeletedPhotos)

	return result, nil
}
