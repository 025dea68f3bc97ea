package handlers

import (
	"net/http"

	"casting_backend/internal/middleware"
	"casting_backend/internal/services"
	"casting_backend/internal/services/dto"
	"casting_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
	}
}

// RegisterRoutes регистрирует маршруты аутентификации
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/link-telegram", h.LinkTelegram)
		auth.POST("/request-reset", h.RequestReset)
		auth.GET("/verify-reset-token", h.VerifyResetToken)
		auth.POST("/reset-password", h.ResetPassword)
	}

	authorized := rg.Group("/auth")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.GET("/me", h.Me)
		authorized.POST("/generate-verification-code", h.GenerateVerificationCode)
		authorized.POST("/unlink-telegram", h.UnlinkTelegram)
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	adminID := middleware.GetAdminID(c)
	if adminID == 0 {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	admin, err := h.authService.Me(adminID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}

func (h *AuthHandler) GenerateVerificationCode(c *gin.Context) {
	adminID := middleware.GetAdminID(c)
	if adminID == 0 {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	resp, err := h.authService.GenerateVerificationCode(adminID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) UnlinkTelegram(c *gin.Context) {
	adminID := middleware.GetAdminID(c)
	if adminID == 0 {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Not authenticated"))
		return
	}

	if err := h.authService.UnlinkTelegram(adminID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Telegram account unlinked"})
}

func (h *AuthHandler) LinkTelegram(c *gin.Context) {
	var req dto.LinkTelegramRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	admin, err := h.authService.LinkTelegram(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, admin)
}

func (h *AuthHandler) RequestReset(c *gin.Context) {
	var req dto.RequestResetRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resetURL, err := h.authService.RequestPasswordReset(req.Email, req.TelegramID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Reset token issued",
		"resetUrl": resetURL,
	})
}

func (h *AuthHandler) VerifyResetToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing token query parameter"))
		return
	}

	if err := h.authService.VerifyResetToken(token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password has been reset"})
}
