package bot

import (
	"context"
	"fmt"
	"mime/multipart"
	"testing"

	"casting_backend/internal/models"
	"casting_backend/internal/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Моки Telegram API и сервисов ---

type fakeClient struct {
	sent []tgbotapi.Chattable
}

func (f *fakeClient) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeClient) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeClient) GetFileDirectURL(fileID string) (string, error) {
	return "https://files.test/" + fileID, nil
}

// lastText возвращает текст последнего отправленного сообщения
func (f *fakeClient) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	msg, ok := f.sent[len(f.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok, "последнее отправленное не MessageConfig")
	return msg.Text
}

type stubUsers struct {
	services.UserService
	saved   *services.BotProfile
	saveErr error
}

func (s *stubUsers) CreateOrUpdateFromBot(profile *services.BotProfile) (*models.Applicant, error) {
	if s.saveErr != nil {
		return nil, s.saveErr
	}
	s.saved = profile
	return &models.Applicant{ID: 1}, nil
}

type stubCities struct {
	services.CityService
}

func (s *stubCities) List(includeInactive bool) ([]models.City, error) {
	return []models.City{
		{ID: 1, Name: "Toshkent", NameRu: "Ташкент"},
		{ID: 5, Name: "Samarqand", NameRu: "Самарканд"},
	}, nil
}

func (s *stubCities) Get(id int) (*models.City, error) {
	if id != 5 {
		return nil, fmt.Errorf("city %d not found", id)
	}
	return &models.City{ID: 5, Name: "Samarqand", NameRu: "Самарканд"}, nil
}

type stubFiles struct {
	services.FileService
	downloads int
}

func (s *stubFiles) Download(ctx context.Context, url string) (string, error) {
	s.downloads++
	return fmt.Sprintf("photo_%d.jpg", s.downloads), nil
}

func (s *stubFiles) SaveUpload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return "", nil
}

func newTestWizard() (*Wizard, *fakeClient, *stubUsers, *SessionStore) {
	client := &fakeClient{}
	users := &stubUsers{}
	sessions := NewSessionStore()
	wizard := NewWizard(client, sessions, users, &stubCities{}, &stubFiles{})
	return wizard, client, users, sessions
}

func textMsg(chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func photoMsg(chatID int64, fileID string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Chat: &tgbotapi.Chat{ID: chatID},
		Photo: []tgbotapi.PhotoSize{
			{FileID: fileID + "_small", Width: 90},
			{FileID: fileID, Width: 800},
		},
	}
}

func cityCallback(chatID int64, data string) *tgbotapi.CallbackQuery {
	return &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		Data:    data,
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
	}
}

// --- Тесты ---

func TestWizard_FullFlow(t *testing.T) {
	wizard, client, users, sessions := newTestWizard()
	const chatID int64 = 100

	wizard.Enter(chatID, "anna_k")
	assert.Equal(t, StepName, sessions.Get(chatID).Step)

	wizard.HandleMessage(textMsg(chatID, "Anna Karimova"))
	wizard.HandleMessage(textMsg(chatID, "25"))

	// Узбекский синоним принимается в англоязычной сессии
	wizard.HandleMessage(textMsg(chatID, "Ayol"))
	assert.Equal(t, StepCity, sessions.Get(chatID).Step)

	handled := wizard.HandleCallback(cityCallback(chatID, "city_5"))
	assert.True(t, handled)
	assert.Equal(t, StepPhotos, sessions.Get(chatID).Step)

	wizard.HandleMessage(photoMsg(chatID, "file1"))
	wizard.HandleMessage(photoMsg(chatID, "file2"))
	wizard.HandleMessage(photoMsg(chatID, "file3"))
	wizard.HandleMessage(textMsg(chatID, "Done"))
	assert.Equal(t, StepPhone, sessions.Get(chatID).Step)

	wizard.HandleMessage(&tgbotapi.Message{
		Chat:    &tgbotapi.Chat{ID: chatID},
		Contact: &tgbotapi.Contact{PhoneNumber: "+998901234567"},
	})
	wizard.HandleMessage(textMsg(chatID, "50"))
	wizard.HandleMessage(textMsg(chatID, "Skip"))
	assert.Equal(t, StepConfirm, sessions.Get(chatID).Step)
	assert.Contains(t, client.lastText(t), "Anna Karimova")

	wizard.HandleMessage(textMsg(chatID, "Confirm"))

	require.NotNil(t, users.saved)
	profile := users.saved
	assert.Equal(t, chatID, profile.TelegramID)
	assert.Equal(t, "anna_k", profile.Username)
	assert.Equal(t, "Anna Karimova", profile.FullName)
	assert.Equal(t, 25, profile.Age)
	assert.Equal(t, models.GenderFemale, profile.Gender)
	require.NotNil(t, profile.CityID)
	assert.Equal(t, 5, *profile.CityID)
	assert.Equal(t, "+998901234567", profile.Phone)
	assert.Equal(t, 50.0, profile.Price)
	assert.Empty(t, profile.SocialLinks)
	assert.Equal(t, []string{"photo_1.jpg", "photo_2.jpg", "photo_3.jpg"}, profile.PhotoPaths)

	assert.Equal(t, StepIdle, sessions.Get(chatID).Step)
}

func TestWizard_NameTooShort(t *testing.T) {
	wizard, _, _, sessions := newTestWizard()
	const chatID int64 = 101

	wizard.Enter(chatID, "")
	wizard.HandleMessage(textMsg(chatID, "A"))

	assert.Equal(t, StepName, sessions.Get(chatID).Step)
}

func TestWizard_AgeValidation(t *testing.T) {
	wizard, _, _, sessions := newTestWizard()
	const chatID int64 = 102

	wizard.Enter(chatID, "")
	wizard.HandleMessage(textMsg(chatID, "Bob"))

	wizard.HandleMessage(textMsg(chatID, "abc"))
	assert.Equal(t, StepAge, sessions.Get(chatID).Step)

	// Граница: ровно 16 не проходит
	wizard.HandleMessage(textMsg(chatID, "16"))
	assert.Equal(t, StepAge, sessions.Get(chatID).Step)

	wizard.HandleMessage(textMsg(chatID, "17"))
	assert.Equal(t, StepGender, sessions.Get(chatID).Step)
	assert.Equal(t, 17, sessions.Get(chatID).Draft.Age)
}

func TestWizard_GenderSynonyms(t *testing.T) {
	cases := map[string]models.Gender{
		"Male":    models.GenderMale,
		"ERKAK":   models.GenderMale,
		"мужской": models.GenderMale,
		"female":  models.GenderFemale,
		"Ayol":    models.GenderFemale,
		"Женский": models.GenderFemale,
	}
	for input, want := range cases {
		got, ok := MapGender(input)
		assert.True(t, ok, "вход %q", input)
		assert.Equal(t, want, got, "вход %q", input)
	}

	_, ok := MapGender("dragon")
	assert.False(t, ok)
}

func TestWizard_PhotoBounds(t *testing.T) {
	wizard, client, _, sessions := newTestWizard()
	const chatID int64 = 103

	wizard.Enter(chatID, "")
	wizard.HandleMessage(textMsg(chatID, "Bob Lee"))
	wizard.HandleMessage(textMsg(chatID, "30"))
	wizard.HandleMessage(textMsg(chatID, "Male"))
	wizard.HandleCallback(cityCallback(chatID, "city_5"))

	// Меньше двух фото - Done не пропускает
	wizard.HandleMessage(photoMsg(chatID, "only"))
	wizard.HandleMessage(textMsg(chatID, "Done"))
	assert.Equal(t, StepPhotos, sessions.Get(chatID).Step)

	for i := 0; i < 4; i++ {
		wizard.HandleMessage(photoMsg(chatID, fmt.Sprintf("f%d", i)))
	}
	assert.Len(t, sessions.Get(chatID).Draft.Photos, 5)

	// Шестое фото отбрасывается
	wizard.HandleMessage(photoMsg(chatID, "extra"))
	assert.Len(t, sessions.Get(chatID).Draft.Photos, 5)
	assert.Equal(t, T(LangEn, MsgPhotosMax, nil), client.lastText(t))

	wizard.HandleMessage(textMsg(chatID, "Done"))
	assert.Equal(t, StepPhone, sessions.Get(chatID).Step)
}

func TestWizard_TextDuringCityStep(t *testing.T) {
	wizard, client, _, sessions := newTestWizard()
	const chatID int64 = 104

	wizard.Enter(chatID, "")
	wizard.HandleMessage(textMsg(chatID, "Bob Lee"))
	wizard.HandleMessage(textMsg(chatID, "30"))
	wizard.HandleMessage(textMsg(chatID, "Male"))

	wizard.HandleMessage(textMsg(chatID, "Tashkent"))
	assert.Equal(t, StepCity, sessions.Get(chatID).Step)
	assert.Equal(t, T(LangEn, MsgCitySelectFromList, nil), client.lastText(t))
}

func TestWizard_RestartFromConfirm(t *testing.T) {
	wizard, _, users, sessions := newTestWizard()
	const chatID int64 = 105

	fillToConfirm(t, wizard, chatID)

	wizard.HandleMessage(textMsg(chatID, "Restart"))

	session := sessions.Get(chatID)
	assert.Equal(t, StepName, session.Step)
	assert.Empty(t, session.Draft.FullName)
	assert.Nil(t, users.saved)
}

func TestWizard_SaveErrorKeepsConfirmStep(t *testing.T) {
	wizard, client, users, sessions := newTestWizard()
	const chatID int64 = 106

	users.saveErr = fmt.Errorf("db down")

	fillToConfirm(t, wizard, chatID)
	wizard.HandleMessage(textMsg(chatID, "Confirm"))

	// Черновик не теряется, подтверждение можно повторить
	assert.Equal(t, StepConfirm, sessions.Get(chatID).Step)
	assert.Equal(t, T(LangEn, MsgErrorSaving, nil), client.lastText(t))

	users.saveErr = nil
	wizard.HandleMessage(textMsg(chatID, "Confirm"))
	assert.NotNil(t, users.saved)
	assert.Equal(t, StepIdle, sessions.Get(chatID).Step)
}

func fillToConfirm(t *testing.T, wizard *Wizard, chatID int64) {
	t.Helper()

	wizard.Enter(chatID, "tester")
	wizard.HandleMessage(textMsg(chatID, "Bob Lee"))
	wizard.HandleMessage(textMsg(chatID, "30"))
	wizard.HandleMessage(textMsg(chatID, "Male"))
	require.True(t, wizard.HandleCallback(cityCallback(chatID, "city_5")))
	wizard.HandleMessage(photoMsg(chatID, "a"))
	wizard.HandleMessage(photoMsg(chatID, "b"))
	wizard.HandleMessage(textMsg(chatID, "Done"))
	wizard.HandleMessage(textMsg(chatID, "+998900000000"))
	wizard.HandleMessage(textMsg(chatID, "75.5"))
	wizard.HandleMessage(textMsg(chatID, "@bob"))
}
