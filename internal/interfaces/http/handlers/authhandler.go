package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medlog/internal/application/user/usecases"
	"medlog/internal/shared/constants"
	"medlog/internal/shared/logger"
	"medlog/internal/shared/utils"
)

type AuthHandler struct {
	loginUC       *usecases.LoginUseCase
	currentUserUC *usecases.GetCurrentUserUseCase
	logger        logger.Interface
}

func NewAuthHandler(
	loginUC *usecases.LoginUseCase,
	currentUserUC *usecases.GetCurrentUserUseCase,
) *AuthHandler {
	return &AuthHandler{
		loginUC:       loginUC,
		currentUserUC: currentUserUC,
		logger:        logger.NewLogger(),
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Name        string `json:"name"`
	Role        string `json:"role"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "email and password are required")
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "login successful", LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresIn:   result.ExpiresIn,
		Name:        result.User.Name,
		Role:        string(result.User.Role),
	})
}

type MeResponse struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	SiteIDs []uint `json:"site_ids,omitempty"`
}

// Me returns the authenticated staff account.
func (h *AuthHandler) Me(c *gin.Context) {
	userIDValue, _ := c.Get(constants.ContextKeyUserID)
	userID, _ := userIDValue.(uint)

	result, err := h.currentUserUC.Execute(c.Request.Context(), usecases.GetCurrentUserCommand{
		UserID: userID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", MeResponse{
		ID:      result.User.ID,
		Email:   result.User.Email,
		Name:    result.User.Name,
		Role:    string(result.User.Role),
		SiteIDs: result.SiteIDs,
	})
}

// Logout exists for client symmetry. Access tokens are stateless; the client
// discards its copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "logged out", nil)
}
