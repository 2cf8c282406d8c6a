package usecases

import (
	"context"
	"io"
	"time"

	"medlog/internal/domain/logentry"
	apperrors "medlog/internal/shared/errors"
	"medlog/internal/shared/logger"
)

// PhotoStore persists medicine photo evidence outside the database.
type PhotoStore interface {
	Save(name string, contentType string, r io.Reader) (path string, length int64, err error)
	Open(path string) (io.ReadCloser, error)
	Delete(path string) error
}

type LogEntryItemInput struct {
	MedicineName     string
	Quantity         int
	PhotoName        string
	PhotoContentType string
	Photo            io.Reader
}

type RegisterLogEntryCommand struct {
	// TerminalID and SiteID come from the resolved device session, never
	// from the request body.
	TerminalID uint
	SiteID     uint
	FirstName  string
	LastName   string
	Items      []LogEntryItemInput
}

type RegisterLogEntryResult struct {
	Entry *logentry.Entry
}

type RegisterLogEntryUseCase struct {
	entryRepo  logentry.Repository
	photoStore PhotoStore
	logger     logger.Interface
	now        func() time.Time
}

func NewRegisterLogEntryUseCase(
	entryRepo logentry.Repository,
	photoStore PhotoStore,
	logger logger.Interface,
) *RegisterLogEntryUseCase {
	return &RegisterLogEntryUseCase{
		entryRepo:  entryRepo,
		photoStore: photoStore,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *RegisterLogEntryUseCase) Execute(ctx context.Context, cmd RegisterLogEntryCommand) (*RegisterLogEntryResult, error) {
	if len(cmd.Items) == 0 {
		return nil, apperrors.NewValidationError("at least one medicine item is required")
	}

	entry, err := logentry.New(cmd.TerminalID, cmd.SiteID, cmd.FirstName, cmd.LastName, uc.now().UTC())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var storedPaths []string
	cleanup := func() {
		for _, path := range storedPaths {
			if err := uc.photoStore.Delete(path); err != nil {
				uc.logger.Warnw("failed to remove orphaned photo", "error", err, "path", path)
			}
		}
	}

	for _, item := range cmd.Items {
		var (
			photoPath   string
			photoLength int64
		)
		if item.Photo != nil {
			photoPath, photoLength, err = uc.photoStore.Save(item.PhotoName, item.PhotoContentType, item.Photo)
			if err != nil {
				cleanup()
				return nil, err
			}
			storedPaths = append(storedPaths, photoPath)
		}

		if err := entry.AddItem(item.MedicineName, item.Quantity, photoPath, item.PhotoContentType, photoLength); err != nil {
			cleanup()
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := uc.entryRepo.Create(ctx, entry); err != nil {
		cleanup()
		return nil, err
	}

	uc.logger.Infow("medicine log entry registered",
		"entry_id", entry.ID,
		"terminal_id", entry.TerminalID,
		"site_id", entry.SiteID,
		"items", len(entry.Items))

	return &RegisterLogEntryResult{Entry: entry}, nil
}
