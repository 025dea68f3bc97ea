package handlers

import (
	"net/http"

	"casting_backend/internal/bot"
	"casting_backend/internal/middleware"
	"casting_backend/internal/models"
	"casting_backend/internal/services/dto"
	"casting_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type BotHandler struct {
	*BaseHandler
	botApp *bot.BotApp
}

func NewBotHandler(base *BaseHandler, botApp *bot.BotApp) *BotHandler {
	return &BotHandler{
		BaseHandler: base,
		botApp:      botApp,
	}
}

// RegisterRoutes регистрирует маршруты управления ботом. Менять
// webhook и токен может только суперадмин; /bot/webhook - публичная
// точка доставки апдейтов от Telegram.
func (h *BotHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bot/webhook", h.Webhook)

	botGroup := rg.Group("/bot")
	botGroup.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.RoleSuperAdmin))
	{
		botGroup.GET("/info", h.Info)
		botGroup.POST("/set-webhook", h.SetWebhook)
		botGroup.POST("/delete-webhook", h.DeleteWebhook)
		botGroup.POST("/reset-pending-updates", h.ResetPendingUpdates)
		botGroup.POST("/update-token", h.UpdateToken)
	}
}

// Webhook принимает апдейт от Telegram и отдает его боту
func (h *BotHandler) Webhook(c *gin.Context) {
	update, err := h.botApp.ParseWebhookUpdate(c.Request)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid update payload"))
		return
	}

	h.botApp.ProcessUpdate(*update)
	c.Status(http.StatusOK)
}

func (h *BotHandler) Info(c *gin.Context) {
	me, err := h.botApp.GetMe()
	if err != nil {
		h.handleBotError(c, err)
		return
	}

	info, err := h.botApp.WebhookInfo()
	if err != nil {
		h.handleBotError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":                 me.ID,
		"username":           me.UserName,
		"webhookUrl":         info.URL,
		"pendingUpdateCount": info.PendingUpdateCount,
	})
}

func (h *BotHandler) SetWebhook(c *gin.Context) {
	var req dto.SetWebhookRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.botApp.SetWebhook(req.URL); err != nil {
		h.handleBotError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook set successfully", "url": req.URL})
}

func (h *BotHandler) DeleteWebhook(c *gin.Context) {
	dropPending := c.Query("dropPending") == "true"

	if err := h.botApp.DeleteWebhook(dropPending); err != nil {
		h.handleBotError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook deleted successfully"})
}

func (h *BotHandler) ResetPendingUpdates(c *gin.Context) {
	if err := h.botApp.ResetPendingUpdates(); err != nil {
		h.handleBotError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pending updates dropped"})
}

func (h *BotHandler) UpdateToken(c *gin.Context) {
	var req dto.UpdateBotTokenRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	me, err := h.botApp.UpdateToken(req.Token)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Token verification failed"))
		return
	}

	c.JSON(http.StatusOK, dto.BotInfoResponse{
		ID:       me.ID,
		Username: me.UserName,
		Message:  "Bot token updated successfully",
	})
}

// handleBotError: ошибки с AppError (в т.ч. ErrBotUnavailable) уходят
// как есть, сырые ошибки Telegram API заворачиваются в 502
func (h *BotHandler) handleBotError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		apperrors.HandleError(c, appErr)
		return
	}
	apperrors.HandleError(c, apperrors.ErrBotAPI(err, "Telegram API request failed"))
}
