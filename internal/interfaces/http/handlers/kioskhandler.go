package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	kioskusecases "medlog/internal/application/kiosk/usecases"
	"medlog/internal/application/terminal/usecases"
	"medlog/internal/domain/terminal"
	"medlog/internal/shared/config"
	"medlog/internal/shared/logger"
	"medlog/internal/shared/utils"

	"medlog/internal/interfaces/http/middleware"
)

// KioskHandler serves the device-facing endpoints: pairing and medicine log
// registration.
type KioskHandler struct {
	pairUC       *usecases.PairTerminalUseCase
	registerUC   *kioskusecases.RegisterLogEntryUseCase
	cookieConfig config.CookieConfig
	logger       logger.Interface
}

func NewKioskHandler(
	pairUC *usecases.PairTerminalUseCase,
	registerUC *kioskusecases.RegisterLogEntryUseCase,
	cookieConfig config.CookieConfig,
) *KioskHandler {
	return &KioskHandler{
		pairUC:       pairUC,
		registerUC:   registerUC,
		cookieConfig: cookieConfig,
		logger:       logger.NewLogger(),
	}
}

type PairRequest struct {
	Code string `json:"code" binding:"required"`
}

type PairResponse struct {
	TerminalID   uint   `json:"terminal_id"`
	TerminalName string `json:"terminal_name"`
	SiteID       uint   `json:"site_id"`
}

// Pair redeems a pairing code. On success the session credential is written
// to the device cookie; it never appears in the response body.
func (h *KioskHandler) Pair(c *gin.Context) {
	var req PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "pairing code is required")
		return
	}

	result, err := h.pairUC.Execute(c.Request.Context(), usecases.PairTerminalCommand{
		Code:      req.Code,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.respondPairError(c, err)
		return
	}

	utils.SetTerminalCookie(c, h.cookieConfig, result.PlainToken, result.Session.ExpiresAt)

	utils.SuccessResponse(c, http.StatusOK, "terminal paired", PairResponse{
		TerminalID:   result.Terminal.ID,
		TerminalName: result.Terminal.Name,
		SiteID:       result.Terminal.SiteID,
	})
}

// respondPairError maps each pairing failure to a distinct status so the
// kiosk can show a precise message.
func (h *KioskHandler) respondPairError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, terminal.ErrCodeInvalid):
		utils.ErrorResponse(c, http.StatusBadRequest, "pairing code is required")
	case errors.Is(err, terminal.ErrCodeNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "pairing code not found")
	case errors.Is(err, terminal.ErrCodeAlreadyUsed):
		utils.ErrorResponse(c, http.StatusConflict, "pairing code already used")
	case errors.Is(err, terminal.ErrCodeExpired):
		utils.ErrorResponse(c, http.StatusGone, "pairing code expired")
	case errors.Is(err, terminal.ErrTerminalInactive):
		utils.ErrorResponse(c, http.StatusForbidden, "terminal is deactivated")
	case errors.Is(err, terminal.ErrTerminalNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "terminal not found")
	default:
		h.logger.Errorw("pairing failed", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "internal server error")
	}
}

type SessionResponse struct {
	TerminalID uint `json:"terminal_id"`
	SiteID     uint `json:"site_id"`
}

// Session reports the terminal context of the current device. Guarded by
// RequirePairing, so the context is always present here.
func (h *KioskHandler) Session(c *gin.Context) {
	terminalID, _ := middleware.ResolvedTerminalID(c)
	siteID, _ := middleware.ResolvedSiteID(c)

	utils.SuccessResponse(c, http.StatusOK, "", SessionResponse{
		TerminalID: terminalID,
		SiteID:     siteID,
	})
}

// Unpair clears the device cookie. The server-side session stays valid until
// an administrator revokes it; clearing the cookie only forgets it locally.
func (h *KioskHandler) Unpair(c *gin.Context) {
	utils.ClearTerminalCookie(c, h.cookieConfig)
	utils.SuccessResponse(c, http.StatusOK, "terminal unpaired", nil)
}

type LogEntryPayload struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Items     []struct {
		MedicineName string `json:"medicine_name" binding:"required"`
		Quantity     int    `json:"quantity" binding:"required,min=1"`
	} `json:"items" binding:"required,min=1"`
}

type LogEntryResponse struct {
	EntryID uint `json:"entry_id"`
	Items   int  `json:"items"`
}

// CreateLogEntry accepts a multipart form: a "payload" JSON part describing
// the entry and one "photo_<i>" file part per item. Terminal and site come
// from the resolved session, never from the payload.
func (h *KioskHandler) CreateLogEntry(c *gin.Context) {
	terminalID, _ := middleware.ResolvedTerminalID(c)
	siteID, _ := middleware.ResolvedSiteID(c)

	payloadRaw := c.PostForm("payload")
	if payloadRaw == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "payload is required")
		return
	}

	var payload LogEntryPayload
	if err := json.Unmarshal([]byte(payloadRaw), &payload); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid payload")
		return
	}
	if payload.FirstName == "" || payload.LastName == "" || len(payload.Items) == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "first name, last name and at least one item are required")
		return
	}

	items := make([]kioskusecases.LogEntryItemInput, 0, len(payload.Items))
	var openFiles []interface{ Close() error }
	defer func() {
		for _, f := range openFiles {
			_ = f.Close()
		}
	}()

	for i, item := range payload.Items {
		input := kioskusecases.LogEntryItemInput{
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
		}

		fileHeader, err := c.FormFile(fmt.Sprintf("photo_%d", i))
		if err == nil && fileHeader != nil {
			file, err := fileHeader.Open()
			if err != nil {
				utils.ErrorResponse(c, http.StatusBadRequest, "failed to read photo")
				return
			}
			openFiles = append(openFiles, file)

			input.PhotoName = fileHeader.Filename
			input.PhotoContentType = fileHeader.Header.Get("Content-Type")
			input.Photo = file
		}

		items = append(items, input)
	}

	result, err := h.registerUC.Execute(c.Request.Context(), kioskusecases.RegisterLogEntryCommand{
		TerminalID: terminalID,
		SiteID:     siteID,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Items:      items,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, LogEntryResponse{
		EntryID: result.Entry.ID,
		Items:   len(result.Entry.Items),
	})
}
