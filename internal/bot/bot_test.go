package bot

import (
	"testing"

	"casting_backend/pkg/apperrors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Без токена BotApp создается, но все исходящие операции отвечают
// ErrBotUnavailable, пока токен не зададут через UpdateToken.
func TestBotApp_WithoutToken(t *testing.T) {
	app, err := NewBotApp("", nil, nil, nil, nil, NewSessionStore())
	require.NoError(t, err)

	_, err = app.Send(tgbotapi.NewMessage(1, "hi"))
	assert.True(t, apperrors.Is(err, apperrors.ErrBotUnavailable))

	_, err = app.GetMe()
	assert.True(t, apperrors.Is(err, apperrors.ErrBotUnavailable))

	_, err = app.WebhookInfo()
	assert.True(t, apperrors.Is(err, apperrors.ErrBotUnavailable))

	assert.True(t, apperrors.Is(app.SetWebhook("https://example.com/api/bot/webhook"), apperrors.ErrBotUnavailable))
	assert.True(t, apperrors.Is(app.DeleteWebhook(true), apperrors.ErrBotUnavailable))
}

// Пустой апдейт не должен ронять обработчик
func TestBotApp_ProcessUpdate_Empty(t *testing.T) {
	app, err := NewBotApp("", nil, nil, nil, nil, NewSessionStore())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		app.ProcessUpdate(tgbotapi.Update{UpdateID: 1})
	})
}
