package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStore_GetCreates(t *testing.T) {
	store := NewSessionStore()

	session := store.Get(10)
	assert.Equal(t, int64(10), session.ChatID)
	assert.Equal(t, LangEn, session.Lang)
	assert.Equal(t, StepIdle, session.Step)
	assert.Equal(t, 1, store.Len())

	// Повторный Get возвращает ту же сессию
	session.Lang = LangRu
	assert.Equal(t, LangRu, store.Get(10).Lang)
	assert.Equal(t, 1, store.Len())
}

func TestSessionStore_ResetDraftKeepsLang(t *testing.T) {
	store := NewSessionStore()

	session := store.Get(10)
	session.Lang = LangUz
	session.Step = StepPhotos
	session.Draft.FullName = "Anna"
	session.Draft.Photos = []string{"a.jpg"}

	reset := store.ResetDraft(10)
	assert.Equal(t, LangUz, reset.Lang)
	assert.Equal(t, StepIdle, reset.Step)
	assert.Empty(t, reset.Draft.FullName)
	assert.Empty(t, reset.Draft.Photos)
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore()

	store.Get(10)
	store.Delete(10)
	assert.Equal(t, 0, store.Len())
}
