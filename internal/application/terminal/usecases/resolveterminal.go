package usecases

import (
	"context"
	"time"

	"medlog/internal/domain/terminal"
	"medlog/internal/infrastructure/token"
	"medlog/internal/shared/goroutine"
	"medlog/internal/shared/logger"
)

type ResolveTerminalCommand struct {
	// Token is the raw credential from the device cookie.
	Token string
}

// ResolvedTerminal is the per-request terminal context attached by the
// session middleware when resolution succeeds.
type ResolvedTerminal struct {
	TerminalID uint
	SiteID     uint
	SessionID  uint
	Name       string
}

// ResolveTerminalUseCase turns a raw cookie token into terminal context.
// Every failure mode (no token, unknown hash, revoked, expired, inactive
// terminal) yields (nil, nil): the request simply proceeds unauthenticated
// and the route guard decides what that means.
type ResolveTerminalUseCase struct {
	sessionRepo  terminal.SessionRepository
	terminalRepo terminal.Repository
	tokenGen     token.TokenGenerator
	logger       logger.Interface
	now          func() time.Time

	// touchAsync controls whether the last-seen update runs on a separate
	// goroutine. Tests disable it for determinism.
	touchAsync bool
}

func NewResolveTerminalUseCase(
	sessionRepo terminal.SessionRepository,
	terminalRepo terminal.Repository,
	tokenGen token.TokenGenerator,
	logger logger.Interface,
) *ResolveTerminalUseCase {
	return &ResolveTerminalUseCase{
		sessionRepo:  sessionRepo,
		terminalRepo: terminalRepo,
		tokenGen:     tokenGen,
		logger:       logger,
		now:          time.Now,
		touchAsync:   true,
	}
}

// WithClock overrides the time source. Test hook.
func (uc *ResolveTerminalUseCase) WithClock(now func() time.Time) *ResolveTerminalUseCase {
	uc.now = now
	return uc
}

// WithSynchronousTouch makes last-seen updates run inline. Test hook.
func (uc *ResolveTerminalUseCase) WithSynchronousTouch() *ResolveTerminalUseCase {
	uc.touchAsync = false
	return uc
}

func (uc *ResolveTerminalUseCase) Execute(ctx context.Context, cmd ResolveTerminalCommand) (*ResolvedTerminal, error) {
	if cmd.Token == "" {
		return nil, nil
	}

	now := uc.now().UTC()
	tokenHash := uc.tokenGen.Hash(cmd.Token)

	session, err := uc.sessionRepo.FindActiveByHash(ctx, tokenHash, now)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	term, err := uc.terminalRepo.GetByID(ctx, session.TerminalID)
	if err != nil {
		if err == terminal.ErrTerminalNotFound {
			return nil, nil
		}
		return nil, err
	}
	if !term.Active {
		return nil, nil
	}

	uc.touchLastSeen(term.ID, now)

	return &ResolvedTerminal{
		TerminalID: term.ID,
		SiteID:     term.SiteID,
		SessionID:  session.ID,
		Name:       term.Name,
	}, nil
}

// touchLastSeen is best-effort; a failed update never fails the request and
// the write happens off the request path.
func (uc *ResolveTerminalUseCase) touchLastSeen(terminalID uint, now time.Time) {
	update := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := uc.terminalRepo.TouchLastSeen(ctx, terminalID, now); err != nil {
			uc.logger.Debugw("failed to touch terminal last seen", "error", err, "terminal_id", terminalID)
		}
	}

	if uc.touchAsync {
		goroutine.SafeGo(uc.logger, "terminal.touch_last_seen", update)
		return
	}
	update()
}
