package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	kioskusecases "medlog/internal/application/kiosk/usecases"
	"medlog/internal/application/terminal/usecases"
	"medlog/internal/domain/terminal"
	"medlog/internal/infrastructure/persistence/models"
	"medlog/internal/infrastructure/photostore"
	"medlog/internal/infrastructure/ratelimit"
	"medlog/internal/infrastructure/repository"
	"medlog/internal/infrastructure/token"
	"medlog/internal/interfaces/http/handlers"
	"medlog/internal/interfaces/http/middleware"
	"medlog/internal/shared/config"
	"medlog/internal/shared/constants"
	"medlog/internal/shared/db"
	"medlog/internal/shared/logger"
)

type kioskTestEnv struct {
	engine       *gin.Engine
	db           *gorm.DB
	terminalRepo terminal.Repository
	codeRepo     terminal.PairingCodeRepository
	sessionRepo  terminal.SessionRepository
	now          time.Time
}

func setupKioskTest(t *testing.T) *kioskTestEnv {
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := database.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = database.AutoMigrate(
		&models.SiteModel{},
		&models.TerminalModel{},
		&models.PairingCodeModel{},
		&models.TerminalSessionModel{},
		&models.AuditEventModel{},
		&models.LogEntryModel{},
		&models.LogEntryItemModel{},
	)
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	log := logger.NewLogger()

	terminalRepo := repository.NewTerminalRepository(database)
	codeRepo := repository.NewPairingCodeRepository(database)
	sessionRepo := repository.NewTerminalSessionRepository(database)
	auditRepo := repository.NewAuditEventRepository(database)
	entryRepo := repository.NewLogEntryRepository(database)
	tokenGen := token.NewTokenGenerator()

	pairUC := usecases.NewPairTerminalUseCase(
		codeRepo, terminalRepo, sessionRepo, auditRepo, tokenGen,
		db.NewTransactionManager(database),
		config.SessionConfig{FarFutureYears: 100}, log,
	).WithClock(func() time.Time { return now })

	resolveUC := usecases.NewResolveTerminalUseCase(sessionRepo, terminalRepo, tokenGen, log).
		WithClock(func() time.Time { return now }).
		WithSynchronousTouch()

	photoStore, err := photostore.NewFileSystemPhotoStore(t.TempDir(), log)
	require.NoError(t, err)

	registerUC := kioskusecases.NewRegisterLogEntryUseCase(entryRepo, photoStore, log)

	kioskHandler := handlers.NewKioskHandler(pairUC, registerUC, config.CookieConfig{Path: "/"})

	engine := gin.New()
	SetupKioskRoutes(engine, &KioskRouteConfig{
		KioskHandler:      kioskHandler,
		SessionMiddleware: middleware.NewTerminalSessionMiddleware(resolveUC, log),
		RateLimit:         middleware.NewRateLimitMiddleware(nil, log),
		PairRateLimit:     ratelimit.RateLimitConfig{RequestsPerMinute: 100},
	})

	return &kioskTestEnv{
		engine:       engine,
		db:           database,
		terminalRepo: terminalRepo,
		codeRepo:     codeRepo,
		sessionRepo:  sessionRepo,
		now:          now,
	}
}

func (env *kioskTestEnv) createTerminal(t *testing.T, active bool) *terminal.Terminal {
	term, err := terminal.New(1, "Front Desk Kiosk", env.now)
	require.NoError(t, err)
	term.Active = active
	require.NoError(t, env.terminalRepo.Create(context.Background(), term))
	return term
}

func (env *kioskTestEnv) createCode(t *testing.T, terminalID uint, issuedAt time.Time) *terminal.PairingCode {
	code, err := terminal.NewPairingCode(terminalID, 10*time.Minute, issuedAt)
	require.NoError(t, err)
	require.NoError(t, env.codeRepo.Create(context.Background(), code))
	return code
}

func (env *kioskTestEnv) pair(t *testing.T, code string) *http.Cookie {
	body, _ := json.Marshal(map[string]string{"code": code})
	req := httptest.NewRequest(http.MethodPost, "/kiosk/pair", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == constants.TerminalCookieName {
			return cookie
		}
	}
	t.Fatal("pairing response did not set the terminal cookie")
	return nil
}

func TestKioskPair_Success(t *testing.T) {
	env := setupKioskTest(t)
	term := env.createTerminal(t, true)
	code := env.createCode(t, term.ID, env.now)

	body, _ := json.Marshal(map[string]string{"code": code.Code})
	req := httptest.NewRequest(http.MethodPost, "/kiosk/pair", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			TerminalID   uint   `json:"terminal_id"`
			TerminalName string `json:"terminal_name"`
			SiteID       uint   `json:"site_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, term.ID, resp.Data.TerminalID)
	assert.Equal(t, "Front Desk Kiosk", resp.Data.TerminalName)

	// The credential travels only in the cookie, never in the body.
	assert.NotContains(t, w.Body.String(), "token")

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == constants.TerminalCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)
}

func TestKioskPair_ErrorMapping(t *testing.T) {
	env := setupKioskTest(t)

	post := func(code string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]string{"code": code})
		req := httptest.NewRequest(http.MethodPost, "/kiosk/pair", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)
		return w
	}

	t.Run("missing code", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/kiosk/pair", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown code", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, post("ZZZZZZ").Code)
	})

	t.Run("already used code", func(t *testing.T) {
		term := env.createTerminal(t, true)
		code := env.createCode(t, term.ID, env.now)
		env.pair(t, code.Code)

		assert.Equal(t, http.StatusConflict, post(code.Code).Code)
	})

	t.Run("expired code", func(t *testing.T) {
		term := env.createTerminal(t, true)
		code := env.createCode(t, term.ID, env.now.Add(-time.Hour))

		assert.Equal(t, http.StatusGone, post(code.Code).Code)
	})

	t.Run("inactive terminal", func(t *testing.T) {
		term := env.createTerminal(t, false)
		code := env.createCode(t, term.ID, env.now)

		assert.Equal(t, http.StatusForbidden, post(code.Code).Code)
	})
}

func TestKioskGuard_Unpaired(t *testing.T) {
	env := setupKioskTest(t)

	t.Run("api request gets 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/kiosk/session", nil)
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("browser navigation redirects to pairing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/kiosk/session", nil)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, constants.PairEntryPath, w.Header().Get("Location"))
	})

	t.Run("garbage cookie is treated as unpaired", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/kiosk/session", nil)
		req.AddCookie(&http.Cookie{Name: constants.TerminalCookieName, Value: "bogus"})
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestKioskSession_Paired(t *testing.T) {
	env := setupKioskTest(t)
	term := env.createTerminal(t, true)
	code := env.createCode(t, term.ID, env.now)
	cookie := env.pair(t, code.Code)

	req := httptest.NewRequest(http.MethodGet, "/kiosk/session", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TerminalID uint `json:"terminal_id"`
			SiteID     uint `json:"site_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, term.ID, resp.Data.TerminalID)
	assert.Equal(t, term.SiteID, resp.Data.SiteID)
}

func TestKioskSession_RevokedServerSide(t *testing.T) {
	env := setupKioskTest(t)
	term := env.createTerminal(t, true)
	code := env.createCode(t, term.ID, env.now)
	cookie := env.pair(t, code.Code)

	_, err := env.sessionRepo.RevokeAllActive(context.Background(), term.ID, env.now)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/kiosk/session", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	// Revocation takes effect on the next request, no kiosk restart needed.
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestKioskUnpair(t *testing.T) {
	env := setupKioskTest(t)
	term := env.createTerminal(t, true)
	code := env.createCode(t, term.ID, env.now)
	cookie := env.pair(t, code.Code)

	req := httptest.NewRequest(http.MethodPost, "/kiosk/unpair", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// The cookie is cleared client-side only.
	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == constants.TerminalCookieName {
			cleared = c
		}
	}
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// The server-side session survives until an administrator revokes it.
	sessions, err := env.sessionRepo.ListByTerminal(context.Background(), term.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].IsActive(env.now))
}

func TestKioskCreateLogEntry(t *testing.T) {
	env := setupKioskTest(t)
	term := env.createTerminal(t, true)
	code := env.createCode(t, term.ID, env.now)
	cookie := env.pair(t, code.Code)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	payload := map[string]any{
		"first_name": "Alex",
		"last_name":  "Morgan",
		"items": []map[string]any{
			{"medicine_name": "Ibuprofen 400mg", "quantity": 1},
			{"medicine_name": "Paracetamol 500mg", "quantity": 2},
		},
	}
	payloadJSON, _ := json.Marshal(payload)
	require.NoError(t, mw.WriteField("payload", string(payloadJSON)))

	photo, err := mw.CreateFormFile("photo_0", "box.jpg")
	require.NoError(t, err)
	_, err = photo.Write([]byte("fake-jpeg-bytes"))
	require.NoError(t, err)

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/kiosk/log-entries", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.AddCookie(cookie)

	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			EntryID uint `json:"entry_id"`
			Items   int  `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotZero(t, resp.Data.EntryID)
	assert.Equal(t, 2, resp.Data.Items)

	// The entry is attributed to the session's terminal and site, and the
	// first item carries the stored photo path.
	var entryModel models.LogEntryModel
	require.NoError(t, env.db.Preload("Items").First(&entryModel, resp.Data.EntryID).Error)
	assert.Equal(t, term.ID, entryModel.TerminalID)
	assert.Equal(t, term.SiteID, entryModel.SiteID)
	require.Len(t, entryModel.Items, 2)
	assert.NotEmpty(t, entryModel.Items[0].PhotoPath)
	assert.Empty(t, entryModel.Items[1].PhotoPath)
}
