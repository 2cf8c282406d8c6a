package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"medlog/internal/application/terminal/usecases"
	"medlog/internal/domain/terminal"
	"medlog/internal/shared/logger"
	"medlog/internal/shared/utils"
)

// TerminalHandler serves the administrative terminal endpoints, including
// pairing code issuance and session revocation.
type TerminalHandler struct {
	createUC       *usecases.CreateTerminalUseCase
	listUC         *usecases.ListTerminalsUseCase
	setActiveUC    *usecases.SetTerminalActiveUseCase
	issueCodeUC    *usecases.IssuePairingCodeUseCase
	revokeUC       *usecases.RevokeSessionsUseCase
	listSessionsUC *usecases.ListTerminalSessionsUseCase
	listAuditUC    *usecases.ListAuditEventsUseCase
	logger         logger.Interface
}

func NewTerminalHandler(
	createUC *usecases.CreateTerminalUseCase,
	listUC *usecases.ListTerminalsUseCase,
	setActiveUC *usecases.SetTerminalActiveUseCase,
	issueCodeUC *usecases.IssuePairingCodeUseCase,
	revokeUC *usecases.RevokeSessionsUseCase,
	listSessionsUC *usecases.ListTerminalSessionsUseCase,
	listAuditUC *usecases.ListAuditEventsUseCase,
) *TerminalHandler {
	return &TerminalHandler{
		createUC:       createUC,
		listUC:         listUC,
		setActiveUC:    setActiveUC,
		issueCodeUC:    issueCodeUC,
		revokeUC:       revokeUC,
		listSessionsUC: listSessionsUC,
		listAuditUC:    listAuditUC,
		logger:         logger.NewLogger(),
	}
}

type CreateTerminalRequest struct {
	SiteID uint   `json:"site_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

type TerminalResponse struct {
	ID         uint       `json:"id"`
	SiteID     uint       `json:"site_id"`
	Name       string     `json:"name"`
	Active     bool       `json:"active"`
	LastSeenAt *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toTerminalResponse(t *terminal.Terminal) TerminalResponse {
	return TerminalResponse{
		ID:         t.ID,
		SiteID:     t.SiteID,
		Name:       t.Name,
		Active:     t.Active,
		LastSeenAt: t.LastSeenAt,
		CreatedAt:  t.CreatedAt,
	}
}

func (h *TerminalHandler) Create(c *gin.Context) {
	var req CreateTerminalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "site_id and name are required")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateTerminalCommand{
		SiteID: req.SiteID,
		Name:   req.Name,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toTerminalResponse(result.Terminal))
}

func (h *TerminalHandler) List(c *gin.Context) {
	var siteID uint
	if raw := c.Query("site_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid site_id")
			return
		}
		siteID = uint(parsed)
	}

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListTerminalsCommand{SiteID: siteID})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]TerminalResponse, 0, len(result.Terminals))
	for _, t := range result.Terminals {
		responses = append(responses, toTerminalResponse(t))
	}
	utils.SuccessResponse(c, http.StatusOK, "", responses)
}

type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

func (h *TerminalHandler) SetActive(c *gin.Context) {
	terminalID, ok := h.terminalIDParam(c)
	if !ok {
		return
	}

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "active is required")
		return
	}

	result, err := h.setActiveUC.Execute(c.Request.Context(), usecases.SetTerminalActiveCommand{
		TerminalID: terminalID,
		Active:     *req.Active,
	})
	if err != nil {
		h.respondTerminalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"terminal":         toTerminalResponse(result.Terminal),
		"revoked_sessions": result.RevokedSessions,
	})
}

type IssueCodeRequest struct {
	ValidityMinutes int `json:"validity_minutes"`
}

type IssueCodeResponse struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (h *TerminalHandler) IssueCode(c *gin.Context) {
	terminalID, ok := h.terminalIDParam(c)
	if !ok {
		return
	}

	var req IssueCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.issueCodeUC.Execute(c.Request.Context(), usecases.IssuePairingCodeCommand{
		TerminalID:      terminalID,
		ValidityMinutes: req.ValidityMinutes,
	})
	if err != nil {
		h.respondTerminalError(c, err)
		return
	}

	utils.CreatedResponse(c, IssueCodeResponse{
		Code:      result.Code.Code,
		ExpiresAt: result.Code.ExpiresAt,
	})
}

func (h *TerminalHandler) RevokeSessions(c *gin.Context) {
	terminalID, ok := h.terminalIDParam(c)
	if !ok {
		return
	}

	result, err := h.revokeUC.Execute(c.Request.Context(), usecases.RevokeSessionsCommand{
		TerminalID: terminalID,
	})
	if err != nil {
		h.respondTerminalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "sessions revoked", gin.H{
		"revoked": result.Revoked,
	})
}

type SessionSummary struct {
	ID          uint       `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	CreatedByIP string     `json:"created_by_ip"`
	UserAgent   string     `json:"user_agent"`
}

func (h *TerminalHandler) ListSessions(c *gin.Context) {
	terminalID, ok := h.terminalIDParam(c)
	if !ok {
		return
	}

	result, err := h.listSessionsUC.Execute(c.Request.Context(), usecases.ListTerminalSessionsCommand{
		TerminalID: terminalID,
	})
	if err != nil {
		h.respondTerminalError(c, err)
		return
	}

	// Token hashes stay server-side even for administrators.
	summaries := make([]SessionSummary, 0, len(result.Sessions))
	for _, s := range result.Sessions {
		summaries = append(summaries, SessionSummary{
			ID:          s.ID,
			CreatedAt:   s.CreatedAt,
			RevokedAt:   s.RevokedAt,
			CreatedByIP: s.CreatedByIP,
			UserAgent:   s.UserAgent,
		})
	}
	utils.SuccessResponse(c, http.StatusOK, "", summaries)
}

func (h *TerminalHandler) ListAuditEvents(c *gin.Context) {
	terminalID, ok := h.terminalIDParam(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	result, err := h.listAuditUC.Execute(c.Request.Context(), usecases.ListAuditEventsCommand{
		TerminalID: terminalID,
		Limit:      limit,
	})
	if err != nil {
		h.respondTerminalError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result.Events)
}

func (h *TerminalHandler) terminalIDParam(c *gin.Context) (uint, bool) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || parsed == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid terminal id")
		return 0, false
	}
	return uint(parsed), true
}

func (h *TerminalHandler) respondTerminalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, terminal.ErrTerminalNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "terminal not found")
	case errors.Is(err, terminal.ErrTerminalInactive):
		utils.ErrorResponse(c, http.StatusConflict, "terminal is deactivated")
	default:
		utils.ErrorResponseWithError(c, err)
	}
}
