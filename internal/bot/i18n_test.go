package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Каждый язык обязан содержать каждый ключ - дыра в таблице иначе
// всплыла бы только в чате у пользователя.
func TestMessages_AllLanguagesComplete(t *testing.T) {
	for _, lang := range AllLangs {
		table, ok := messages[lang]
		assert.True(t, ok, "нет таблицы для языка %s", lang)

		for _, key := range AllKeys {
			_, ok := table[key]
			assert.True(t, ok, "язык %s: отсутствует ключ %s", lang, key)
		}
	}
}

func TestMessages_NoExtraKeys(t *testing.T) {
	known := make(map[MsgKey]bool, len(AllKeys))
	for _, key := range AllKeys {
		known[key] = true
	}

	for lang, table := range messages {
		for key := range table {
			assert.True(t, known[key], "язык %s: ключ %s не перечислен в AllKeys", lang, key)
		}
	}
}

func TestT_Interpolation(t *testing.T) {
	got := T(LangEn, MsgCitySelected, map[string]string{"city": "Tashkent"})
	assert.Contains(t, got, "City: Tashkent")

	got = T(LangUz, MsgPhotoReceived, map[string]string{"count": "3"})
	assert.Contains(t, got, "(3/5)")
}

func TestT_SummaryPlaceholders(t *testing.T) {
	params := map[string]string{
		"fullName": "Anna",
		"age":      "25",
		"gender":   "FEMALE",
		"city":     "Samarkand",
		"phone":    "+998901234567",
		"price":    "50",
		"socials":  "@anna",
	}

	for _, lang := range AllLangs {
		got := T(lang, MsgSummary, params)
		for _, value := range params {
			assert.Contains(t, got, value, "язык %s", lang)
		}
		assert.False(t, strings.Contains(got, "{"), "язык %s: незаполненный placeholder: %s", lang, got)
	}
}

func TestT_UnknownLangFallsBackToEnglish(t *testing.T) {
	got := T(Lang("de"), MsgDone, nil)
	assert.Equal(t, "Done", got)
}

func TestT_UnknownKeyReturnsKey(t *testing.T) {
	got := T(LangEn, MsgKey("no-such-key"), nil)
	assert.Equal(t, "no-such-key", got)
}
