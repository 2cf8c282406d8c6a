package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"medlog/internal/application/user/usecases"
	"medlog/internal/domain/user"
	"medlog/internal/shared/logger"
	"medlog/internal/shared/utils"
)

type UserHandler struct {
	createUC *usecases.CreateUserUseCase
	grantUC  *usecases.GrantSiteAccessUseCase
	logger   logger.Interface
}

func NewUserHandler(
	createUC *usecases.CreateUserUseCase,
	grantUC *usecases.GrantSiteAccessUseCase,
) *UserHandler {
	return &UserHandler{
		createUC: createUC,
		grantUC:  grantUC,
		logger:   logger.NewLogger(),
	}
}

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=admin auditor"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "email, name, password and role are required")
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateUserCommand{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, UserResponse{
		ID:    result.User.ID,
		Email: result.User.Email,
		Name:  result.User.Name,
		Role:  string(result.User.Role),
	})
}

type GrantSiteAccessRequest struct {
	SiteID uint `json:"site_id" binding:"required"`
}

func (h *UserHandler) GrantSiteAccess(c *gin.Context) {
	parsed, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || parsed == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req GrantSiteAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "site_id is required")
		return
	}

	err = h.grantUC.Execute(c.Request.Context(), usecases.GrantSiteAccessCommand{
		UserID: uint(parsed),
		SiteID: req.SiteID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "site access granted", nil)
}
