package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"casting_backend/internal/logger"
	"casting_backend/internal/models"
	"casting_backend/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotClient - минимальный интерфейс Telegram API, который нужен
// визарду. Реализуется BotApp (с живой заменой токена) и моками.
type BotClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFileDirectURL(fileID string) (string, error)
}

// genderSynonyms - словарь допустимых ответов на вопрос о поле,
// без учета регистра и языка сессии
var genderSynonyms = map[string]models.Gender{
	"MALE":    models.GenderMale,
	"ERKAK":   models.GenderMale,
	"МУЖСКОЙ": models.GenderMale,
	"FEMALE":  models.GenderFemale,
	"AYOL":    models.GenderFemale,
	"ЖЕНСКИЙ": models.GenderFemale,
}

// MapGender сопоставляет текст с полом анкеты
func MapGender(input string) (models.Gender, bool) {
	g, ok := genderSynonyms[strings.ToUpper(strings.TrimSpace(input))]
	return g, ok
}

const (
	minPhotos = 2
	maxPhotos = 5
	minAge    = 16
)

// Wizard ведет пошаговый сбор анкеты. На каждом шаге принимается
// ровно один тип ввода; все остальное получает повторный промпт
// без смены шага.
type Wizard struct {
	client   BotClient
	sessions *SessionStore
	users    services.UserService
	cities   services.CityService
	files    services.FileService
}

func NewWizard(
	client BotClient,
	sessions *SessionStore,
	users services.UserService,
	cities services.CityService,
	files services.FileService,
) *Wizard {
	return &Wizard{
		client:   client,
		sessions: sessions,
		users:    users,
		cities:   cities,
		files:    files,
	}
}

func (w *Wizard) send(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}
	if _, err := w.client.Send(msg); err != nil {
		logger.BotLog("send", chatID, err)
	}
}

// Enter начинает (или перезапускает) регистрацию в чате
func (w *Wizard) Enter(chatID int64, username string) {
	session := w.sessions.ResetDraft(chatID)
	session.Username = username
	session.Step = StepName

	w.send(chatID, T(session.Lang, MsgWelcome, nil), nil)
}

// HandleCallback обрабатывает выбор города (callback вида city_<id>).
// Возвращает false, если callback не относится к визарду.
func (w *Wizard) HandleCallback(cb *tgbotapi.CallbackQuery) bool {
	if cb.Message == nil || !strings.HasPrefix(cb.Data, "city_") {
		return false
	}

	chatID := cb.Message.Chat.ID
	session := w.sessions.Get(chatID)
	if session.Step != StepCity {
		return false
	}

	cityID, err := strconv.Atoi(strings.TrimPrefix(cb.Data, "city_"))
	if err != nil {
		return false
	}

	// Гасим "часики" на кнопке
	if _, err := w.client.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		logger.BotLog("answer_callback", chatID, err)
	}

	city, err := w.cities.Get(cityID)
	if err != nil {
		w.send(chatID, T(session.Lang, MsgCityNotFound, nil), nil)
		return true
	}

	session.Draft.CityID = &city.ID
	session.Draft.City = city.Name
	session.Step = StepPhotos

	doneKb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(T(session.Lang, MsgDone, nil))),
	)
	doneKb.ResizeKeyboard = true

	w.send(chatID, T(session.Lang, MsgCitySelected, map[string]string{"city": city.DisplayName()}), doneKb)
	return true
}

// HandleMessage обрабатывает очередное сообщение регистрации.
// Возвращает false, если в чате нет активной анкеты.
func (w *Wizard) HandleMessage(msg *tgbotapi.Message) bool {
	chatID := msg.Chat.ID
	session := w.sessions.Get(chatID)

	switch session.Step {
	case StepName:
		w.onName(session, msg)
	case StepAge:
		w.onAge(session, msg)
	case StepGender:
		w.onGender(session, msg)
	case StepCity:
		w.send(chatID, T(session.Lang, MsgCitySelectFromList, nil), nil)
	case StepPhotos:
		w.onPhoto(session, msg)
	case StepPhone:
		w.onPhone(session, msg)
	case StepPrice:
		w.onPrice(session, msg)
	case StepSocials:
		w.onSocials(session, msg)
	case StepConfirm:
		w.onConfirm(session, msg)
	default:
		return false
	}
	return true
}

func (w *Wizard) onName(session *Session, msg *tgbotapi.Message) {
	name := strings.TrimSpace(msg.Text)
	if len([]rune(name)) < 2 {
		w.send(session.ChatID, T(session.Lang, MsgNameShort, nil), nil)
		return
	}

	session.Draft.FullName = name
	session.Step = StepAge
	w.send(session.ChatID, T(session.Lang, MsgAskAge, nil), nil)
}

func (w *Wizard) onAge(session *Session, msg *tgbotapi.Message) {
	age, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil || age <= minAge {
		w.send(session.ChatID, T(session.Lang, MsgAgeInvalid, nil), nil)
		return
	}

	session.Draft.Age = age
	session.Step = StepGender

	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(T(session.Lang, MsgMale, nil)),
			tgbotapi.NewKeyboardButton(T(session.Lang, MsgFemale, nil)),
		),
	)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true

	w.send(session.ChatID, T(session.Lang, MsgAskGender, nil), kb)
}

func (w *Wizard) onGender(session *Session, msg *tgbotapi.Message) {
	gender, ok := MapGender(msg.Text)
	if !ok {
		w.send(session.ChatID, T(session.Lang, MsgGenderInvalid, nil), nil)
		return
	}

	session.Draft.Gender = gender
	session.Step = StepCity

	cities, err := w.cities.List(false)
	if err != nil {
		logger.BotLog("list_cities", session.ChatID, err)
		w.send(session.ChatID, T(session.Lang, MsgSomethingWrong, nil), nil)
		return
	}

	// Показываем не больше 20 городов, по одному в строке
	if len(cities) > 20 {
		cities = cities[:20]
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cities))
	for _, city := range cities {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(city.DisplayName(), fmt.Sprintf("city_%d", city.ID)),
		))
	}

	w.send(session.ChatID, T(session.Lang, MsgAskCity, nil), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (w *Wizard) onPhoto(session *Session, msg *tgbotapi.Message) {
	chatID := session.ChatID

	if msg.Text != "" && w.isLiteral(session.Lang, msg.Text, MsgDone) {
		if len(session.Draft.Photos) < minPhotos {
			w.send(chatID, T(session.Lang, MsgPhotosMin, map[string]string{
				"count": strconv.Itoa(len(session.Draft.Photos)),
			}), nil)
			return
		}

		session.Step = StepPhone

		kb := tgbotapi.NewReplyKeyboard(
			tgbotapi.NewKeyboardButtonRow(
				tgbotapi.NewKeyboardButtonContact(T(session.Lang, MsgSendContact, nil)),
			),
		)
		kb.OneTimeKeyboard = true
		kb.ResizeKeyboard = true

		w.send(chatID, T(session.Lang, MsgPhotosSaved, nil), kb)
		return
	}

	if len(msg.Photo) == 0 {
		w.send(chatID, T(session.Lang, MsgSendPhotoOrDone, nil), nil)
		return
	}

	if len(session.Draft.Photos) >= maxPhotos {
		w.send(chatID, T(session.Lang, MsgPhotosMax, nil), nil)
		return
	}

	// Telegram присылает несколько размеров, берем самый большой
	largest := msg.Photo[len(msg.Photo)-1]

	fileURL, err := w.client.GetFileDirectURL(largest.FileID)
	if err != nil {
		logger.BotLog("get_file_url", chatID, err)
		w.send(chatID, T(session.Lang, MsgSomethingWrong, nil), nil)
		return
	}

	saved, err := w.files.Download(context.Background(), fileURL)
	if err != nil {
		logger.BotLog("download_photo", chatID, err)
		w.send(chatID, T(session.Lang, MsgSomethingWrong, nil), nil)
		return
	}

	// Счетчик растет только после успешного сохранения файла;
	// состояние перечитывается, чтобы не потерять параллельно
	// пришедшие фото
	session = w.sessions.Get(chatID)
	session.Draft.Photos = append(session.Draft.Photos, saved)

	w.send(chatID, T(session.Lang, MsgPhotoReceived, map[string]string{
		"count": strconv.Itoa(len(session.Draft.Photos)),
	}), nil)
}

func (w *Wizard) onPhone(session *Session, msg *tgbotapi.Message) {
	var phone string
	switch {
	case msg.Contact != nil:
		phone = msg.Contact.PhoneNumber
	case msg.Text != "":
		phone = strings.TrimSpace(msg.Text)
	default:
		w.send(session.ChatID, T(session.Lang, MsgProvidePhone, nil), nil)
		return
	}

	session.Draft.Phone = phone
	session.Step = StepPrice
	w.send(session.ChatID, T(session.Lang, MsgAskPrice, nil), tgbotapi.NewRemoveKeyboard(false))
}

func (w *Wizard) onPrice(session *Session, msg *tgbotapi.Message) {
	price, err := strconv.ParseFloat(strings.TrimSpace(msg.Text), 64)
	if err != nil {
		w.send(session.ChatID, T(session.Lang, MsgPriceInvalid, nil), nil)
		return
	}

	session.Draft.Price = price
	session.Step = StepSocials
	w.send(session.ChatID, T(session.Lang, MsgAskSocials, nil), nil)
}

func (w *Wizard) onSocials(session *Session, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	if w.isLiteral(session.Lang, text, MsgSkip) {
		session.Draft.Socials = ""
	} else {
		session.Draft.Socials = text
	}

	d := session.Draft
	if d.FullName == "" || d.Age == 0 || d.Gender == "" || d.City == "" || d.Phone == "" {
		w.send(session.ChatID, T(session.Lang, MsgSomethingWrong, nil), nil)
		w.sessions.ResetDraft(session.ChatID)
		return
	}

	summary := T(session.Lang, MsgSummary, map[string]string{
		"fullName": d.FullName,
		"age":      strconv.Itoa(d.Age),
		"gender":   string(d.Gender),
		"city":     d.City,
		"phone":    d.Phone,
		"price":    strconv.FormatFloat(d.Price, 'f', -1, 64),
		"socials":  d.Socials,
	})

	session.Step = StepConfirm

	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(T(session.Lang, MsgConfirm, nil)),
			tgbotapi.NewKeyboardButton(T(session.Lang, MsgRestart, nil)),
		),
	)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true

	w.send(session.ChatID, T(session.Lang, MsgConfirmRequest, map[string]string{"summary": summary}), kb)
}

func (w *Wizard) onConfirm(session *Session, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)

	if w.isLiteral(session.Lang, text, MsgRestart) {
		w.Enter(session.ChatID, session.Username)
		return
	}

	if !w.isLiteral(session.Lang, text, MsgConfirm) {
		w.send(session.ChatID, T(session.Lang, MsgSelectConfirmOrRestart, nil), nil)
		return
	}

	d := session.Draft
	if d.FullName == "" || d.Age == 0 || d.Gender == "" || d.Phone == "" {
		w.send(session.ChatID, T(session.Lang, MsgMissingData, nil), nil)
		w.sessions.ResetDraft(session.ChatID)
		return
	}

	profile := &services.BotProfile{
		TelegramID:  session.ChatID,
		Username:    session.Username,
		FullName:    d.FullName,
		Age:         d.Age,
		Gender:      d.Gender,
		City:        d.City,
		CityID:      d.CityID,
		Phone:       d.Phone,
		Price:       d.Price,
		SocialLinks: d.Socials,
		PhotoPaths:  d.Photos,
	}

	if _, err := w.users.CreateOrUpdateFromBot(profile); err != nil {
		logger.BotLog("save_applicant", session.ChatID, err)
		// Остаемся на шаге подтверждения, пользователь может повторить
		w.send(session.ChatID, T(session.Lang, MsgErrorSaving, nil), nil)
		return
	}

	w.send(session.ChatID, T(session.Lang, MsgRegistrationComplete, nil), tgbotapi.NewRemoveKeyboard(false))
	w.sessions.ResetDraft(session.ChatID)
}

// isLiteral сравнивает текст с локализованной кнопкой; английский
// вариант принимается на любом языке сессии
func (w *Wizard) isLiteral(lang Lang, text string, key MsgKey) bool {
	if text == T(lang, key, nil) {
		return true
	}
	return text == T(LangEn, key, nil)
}
