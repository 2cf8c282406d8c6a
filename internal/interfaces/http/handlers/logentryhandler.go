package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"medlog/internal/application/kiosk/usecases"
	"medlog/internal/domain/logentry"
	"medlog/internal/domain/user"
	"medlog/internal/shared/constants"
	"medlog/internal/shared/logger"
	"medlog/internal/shared/utils"
)

// LogEntryHandler serves the staff-facing medicine log views.
type LogEntryHandler struct {
	listUC     *usecases.ListLogEntriesUseCase
	photoStore usecases.PhotoStore
	logger     logger.Interface
}

func NewLogEntryHandler(
	listUC *usecases.ListLogEntriesUseCase,
	photoStore usecases.PhotoStore,
) *LogEntryHandler {
	return &LogEntryHandler{
		listUC:     listUC,
		photoStore: photoStore,
		logger:     logger.NewLogger(),
	}
}

type LogEntryItemView struct {
	MedicineName string `json:"medicine_name"`
	Quantity     int    `json:"quantity"`
	PhotoPath    string `json:"photo_path,omitempty"`
}

type LogEntryView struct {
	ID         uint               `json:"id"`
	TerminalID uint               `json:"terminal_id"`
	SiteID     uint               `json:"site_id"`
	FirstName  string             `json:"first_name"`
	LastName   string             `json:"last_name"`
	CreatedAt  time.Time          `json:"created_at"`
	Items      []LogEntryItemView `json:"items"`
}

func toLogEntryView(e *logentry.Entry) LogEntryView {
	items := make([]LogEntryItemView, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, LogEntryItemView{
			MedicineName: item.MedicineName,
			Quantity:     item.Quantity,
			PhotoPath:    item.PhotoPath,
		})
	}
	return LogEntryView{
		ID:         e.ID,
		TerminalID: e.TerminalID,
		SiteID:     e.SiteID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		CreatedAt:  e.CreatedAt,
		Items:      items,
	}
}

func (h *LogEntryHandler) List(c *gin.Context) {
	userIDValue, _ := c.Get(constants.ContextKeyUserID)
	roleValue, _ := c.Get(constants.ContextKeyUserRole)
	userID, _ := userIDValue.(uint)
	role, _ := roleValue.(string)

	var siteID uint
	if raw := c.Query("site_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "invalid site_id")
			return
		}
		siteID = uint(parsed)
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListLogEntriesCommand{
		UserID:   userID,
		Role:     user.Role(role),
		SiteID:   siteID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	views := make([]LogEntryView, 0, len(result.Entries))
	for _, e := range result.Entries {
		views = append(views, toLogEntryView(e))
	}

	totalPages := 0
	if pageSize > 0 {
		totalPages = int((result.Total + int64(pageSize) - 1) / int64(pageSize))
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:      views,
		Total:      result.Total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// Photo streams a stored photo back to staff. The path comes from a listing
// response; the store rejects traversal outside its root.
func (h *LogEntryHandler) Photo(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "path is required")
		return
	}

	reader, err := h.photoStore.Open(path)
	if err != nil {
		utils.ErrorResponse(c, http.StatusNotFound, "photo not found")
		return
	}
	defer reader.Close()

	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		h.logger.Warnw("failed to stream photo", "error", err, "path", path)
	}
}
