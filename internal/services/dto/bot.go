package dto

// SetWebhookRequest - установка вебхука бота
type SetWebhookRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// UpdateBotTokenRequest - замена токена бота на лету
type UpdateBotTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// BotInfoResponse - данные бота после операции
type BotInfoResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Message  string `json:"message"`
}
