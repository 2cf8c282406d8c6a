package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medlog/internal/application/site/usecases"
	"medlog/internal/domain/user"
	"medlog/internal/shared/constants"
	"medlog/internal/shared/logger"
	"medlog/internal/shared/utils"
)

type SiteHandler struct {
	createUC *usecases.CreateSiteUseCase
	listUC   *usecases.ListSitesUseCase
	logger   logger.Interface
}

func NewSiteHandler(
	createUC *usecases.CreateSiteUseCase,
	listUC *usecases.ListSitesUseCase,
) *SiteHandler {
	return &SiteHandler{
		createUC: createUC,
		listUC:   listUC,
		logger:   logger.NewLogger(),
	}
}

type CreateSiteRequest struct {
	Name string `json:"name" binding:"required"`
}

type SiteResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *SiteHandler) Create(c *gin.Context) {
	var req CreateSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "name is required")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSiteCommand{Name: req.Name})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, SiteResponse{
		ID:        result.Site.ID,
		Name:      result.Site.Name,
		CreatedAt: result.Site.CreatedAt,
	})
}

func (h *SiteHandler) List(c *gin.Context) {
	userID, _ := c.Get(constants.ContextKeyUserID)
	roleValue, _ := c.Get(constants.ContextKeyUserRole)

	id, _ := userID.(uint)
	role, _ := roleValue.(string)

	result, err := h.listUC.Execute(c.Request.Context(), usecases.ListSitesCommand{
		UserID: id,
		Role:   user.Role(role),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	responses := make([]SiteResponse, 0, len(result.Sites))
	for _, s := range result.Sites {
		responses = append(responses, SiteResponse{
			ID:        s.ID,
			Name:      s.Name,
			CreatedAt: s.CreatedAt,
		})
	}
	utils.SuccessResponse(c, http.StatusOK, "", responses)
}
