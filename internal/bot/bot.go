package bot

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"casting_backend/internal/logger"
	"casting_backend/internal/services"
	"casting_backend/internal/services/dto"
	"casting_backend/pkg/apperrors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const languagePrompt = "🌐 Tilni tanlang / Выберите язык / Choose language:"

var languageButtons = map[string]Lang{
	"🇺🇿 O'zbekcha": LangUz,
	"🇷🇺 Русский":   LangRu,
	"🇬🇧 English":   LangEn,
}

var (
	verificationCodeRe = regexp.MustCompile(`^[A-Za-z0-9]{6}$`)
	emailRe            = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// BotApp держит соединение с Telegram и раздает апдейты визарду и
// сценариям привязки/сброса пароля. API хранится под RWMutex, чтобы
// токен можно было менять без перезапуска процесса.
type BotApp struct {
	mu  sync.RWMutex
	api *tgbotapi.BotAPI

	sessions *SessionStore
	wizard   *Wizard
	auth     services.AuthService
}

func NewBotApp(
	token string,
	authService services.AuthService,
	users services.UserService,
	cities services.CityService,
	files services.FileService,
	sessions *SessionStore,
) (*BotApp, error) {
	app := &BotApp{
		sessions: sessions,
		auth:     authService,
	}
	app.wizard = NewWizard(app, sessions, users, cities, files)

	if token != "" {
		api, err := tgbotapi.NewBotAPI(token)
		if err != nil {
			return nil, err
		}
		app.api = api
	}
	return app, nil
}

func (b *BotApp) current() *tgbotapi.BotAPI {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.api
}

// Send реализует BotClient
func (b *BotApp) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	api := b.current()
	if api == nil {
		return tgbotapi.Message{}, apperrors.ErrBotUnavailable
	}
	return api.Send(c)
}

// Request реализует BotClient
func (b *BotApp) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	api := b.current()
	if api == nil {
		return nil, apperrors.ErrBotUnavailable
	}
	return api.Request(c)
}

// GetFileDirectURL реализует BotClient
func (b *BotApp) GetFileDirectURL(fileID string) (string, error) {
	api := b.current()
	if api == nil {
		return "", apperrors.ErrBotUnavailable
	}
	return api.GetFileDirectURL(fileID)
}

// Run запускает long polling. После UpdateToken канал апдейтов
// старого API закрывается и цикл поднимается заново уже с новым API.
// Блокируется до отмены контекста.
func (b *BotApp) Run(ctx context.Context) {
	for {
		api := b.current()
		if api == nil {
			logger.Warn("telegram bot token is not set, bot loop exits")
			return
		}

		logger.Info("telegram bot started", "username", api.Self.UserName)

		cfg := tgbotapi.NewUpdate(0)
		cfg.Timeout = 60
		updates := api.GetUpdatesChan(cfg)

	loop:
		for {
			select {
			case <-ctx.Done():
				api.StopReceivingUpdates()
				return
			case update, ok := <-updates:
				if !ok {
					break loop
				}
				b.ProcessUpdate(update)
			}
		}

		select {
		case <-ctx.Done():
			return
		default:
			// канал закрылся после смены токена, перезапускаемся
		}
	}
}

// ParseWebhookUpdate декодирует апдейт из тела webhook-запроса
func (b *BotApp) ParseWebhookUpdate(r *http.Request) (*tgbotapi.Update, error) {
	defer r.Body.Close()

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		return nil, err
	}
	return &update, nil
}

// ProcessUpdate разбирает один апдейт. Вызывается и из long polling,
// и из webhook-эндпоинта.
func (b *BotApp) ProcessUpdate(update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		b.wizard.HandleCallback(update.CallbackQuery)
		return
	}

	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	chatID := msg.Chat.ID
	session := b.sessions.Get(chatID)
	if msg.From != nil {
		session.Username = msg.From.UserName
	}

	if msg.IsCommand() {
		b.handleCommand(session, msg)
		return
	}

	text := strings.TrimSpace(msg.Text)

	if lang, ok := languageButtons[text]; ok {
		b.handleLanguageChoice(session, lang)
		return
	}

	if b.isStartRegistration(text) {
		b.wizard.Enter(chatID, session.Username)
		return
	}

	if session.LinkPending && verificationCodeRe.MatchString(text) {
		b.handleLinkCode(session, text)
		return
	}

	if session.ResetPending && emailRe.MatchString(text) {
		b.handleResetEmail(session, text)
		return
	}

	if !b.wizard.HandleMessage(msg) {
		b.reply(chatID, T(session.Lang, MsgStartHint, nil), nil)
	}
}

func (b *BotApp) handleCommand(session *Session, msg *tgbotapi.Message) {
	chatID := session.ChatID

	switch msg.Command() {
	case "start":
		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButton("🇺🇿 O'zbekcha"),
				tgbotapi.NewKeyboardButton("🇷🇺 Русский"),
				tgbotapi.NewKeyboardButton("🇬🇧 English"),
			),
		)
		kb.OneTimeKeyboard = true
		kb.ResizeKeyboard = true
		b.reply(chatID, languagePrompt, kb)

	case "linkaccount":
		session.LinkPending = true
		session.ResetPending = false
		b.reply(chatID, T(session.Lang, MsgLinkPrompt, nil), nil)

	case "resetpassword":
		session.ResetPending = true
		session.LinkPending = false
		b.reply(chatID, T(session.Lang, MsgResetPrompt, nil), nil)

	default:
		b.reply(chatID, T(session.Lang, MsgStartHint, nil), nil)
	}
}

func (b *BotApp) handleLanguageChoice(session *Session, lang Lang) {
	session.Lang = lang

	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(T(lang, MsgStartRegButton, nil)),
		),
	)
	kb.ResizeKeyboard = true

	b.reply(session.ChatID, T(lang, MsgLanguageChosen, nil), kb)
}

func (b *BotApp) isStartRegistration(text string) bool {
	for _, lang := range AllLangs {
		if text == T(lang, MsgStartRegButton, nil) {
			return true
		}
	}
	return false
}

func (b *BotApp) handleLinkCode(session *Session, code string) {
	admin, err := b.auth.LinkTelegram(&dto.LinkTelegramRequest{
		Code:             strings.ToUpper(code),
		TelegramID:       session.ChatID,
		TelegramUsername: session.Username,
	})
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrTelegramAlreadyLinked):
			b.reply(session.ChatID, T(session.Lang, MsgLinkAlready, nil), nil)
		case apperrors.Is(err, apperrors.ErrInvalidVerificationCode):
			b.reply(session.ChatID, T(session.Lang, MsgLinkInvalidCode, nil), nil)
		default:
			logger.BotLog("link_telegram", session.ChatID, err)
			b.reply(session.ChatID, T(session.Lang, MsgLinkError, nil), nil)
		}
		// LinkPending остается, пользователь может ввести код еще раз
		return
	}

	session.LinkPending = false
	b.reply(session.ChatID, T(session.Lang, MsgLinkSuccess, map[string]string{"email": admin.Email}), nil)
}

func (b *BotApp) handleResetEmail(session *Session, email string) {
	resetURL, err := b.auth.RequestPasswordReset(email, session.ChatID)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrTooManyResetRequests):
			b.reply(session.ChatID, T(session.Lang, MsgResetTooMany, nil), nil)
		case apperrors.Is(err, apperrors.ErrResetNotEligible):
			b.reply(session.ChatID, T(session.Lang, MsgResetNotEligible, nil), nil)
		default:
			logger.BotLog("request_reset", session.ChatID, err)
			b.reply(session.ChatID, T(session.Lang, MsgResetNotEligible, nil), nil)
		}
		return
	}

	session.ResetPending = false
	b.reply(session.ChatID, T(session.Lang, MsgResetSent, map[string]string{"url": resetURL}), nil)
}

func (b *BotApp) reply(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := b.Send(msg); err != nil {
		logger.BotLog("send", chatID, err)
	}
}

// --- управление ботом из админки ---

// GetMe возвращает информацию о текущем боте
func (b *BotApp) GetMe() (*tgbotapi.User, error) {
	api := b.current()
	if api == nil {
		return nil, apperrors.ErrBotUnavailable
	}
	me := api.Self
	return &me, nil
}

// SetWebhook регистрирует webhook-URL у Telegram
func (b *BotApp) SetWebhook(url string) error {
	api := b.current()
	if api == nil {
		return apperrors.ErrBotUnavailable
	}

	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return err
	}
	_, err = api.Request(wh)
	return err
}

// DeleteWebhook снимает webhook; dropPending сбрасывает очередь
// накопившихся апдейтов
func (b *BotApp) DeleteWebhook(dropPending bool) error {
	api := b.current()
	if api == nil {
		return apperrors.ErrBotUnavailable
	}
	_, err := api.Request(tgbotapi.DeleteWebhookConfig{DropPendingUpdates: dropPending})
	return err
}

// ResetPendingUpdates выбрасывает все накопившиеся апдейты
func (b *BotApp) ResetPendingUpdates() error {
	return b.DeleteWebhook(true)
}

// WebhookInfo возвращает текущее состояние webhook
func (b *BotApp) WebhookInfo() (*tgbotapi.WebhookInfo, error) {
	api := b.current()
	if api == nil {
		return nil, apperrors.ErrBotUnavailable
	}
	info, err := api.GetWebhookInfo()
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// UpdateToken проверяет новый токен через getMe и подменяет API на
// лету. Старый long-poll канал закрывается, Run перезапустит цикл.
func (b *BotApp) UpdateToken(token string) (*tgbotapi.User, error) {
	newAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	old := b.api
	b.api = newAPI
	b.mu.Unlock()

	if old != nil {
		old.StopReceivingUpdates()
	}

	logger.Info("telegram bot token updated", "username", newAPI.Self.UserName)
	me := newAPI.Self
	return &me, nil
}
