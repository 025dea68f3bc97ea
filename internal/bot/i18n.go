package bot

import "strings"

// Lang - язык диалога, фиксируется при первом контакте
type Lang string

const (
	LangUz Lang = "uz"
	LangRu Lang = "ru"
	LangEn Lang = "en"
)

// AllLangs перечисляет поддерживаемые языки
var AllLangs = []Lang{LangUz, LangRu, LangEn}

type MsgKey string

const (
	MsgWelcome                MsgKey = "welcome"
	MsgNameShort              MsgKey = "nameShort"
	MsgAskAge                 MsgKey = "askAge"
	MsgAgeInvalid             MsgKey = "ageInvalid"
	MsgAskGender              MsgKey = "askGender"
	MsgMale                   MsgKey = "male"
	MsgFemale                 MsgKey = "female"
	MsgGenderInvalid          MsgKey = "genderInvalid"
	MsgAskCity                MsgKey = "askCity"
	MsgCityNotFound           MsgKey = "cityNotFound"
	MsgCitySelected           MsgKey = "citySelected"
	MsgDone                   MsgKey = "done"
	MsgCitySelectFromList     MsgKey = "citySelectFromList"
	MsgPhotosMin              MsgKey = "photosMin"
	MsgPhotosSaved            MsgKey = "photosSaved"
	MsgSendContact            MsgKey = "sendContact"
	MsgPhotosMax              MsgKey = "photosMax"
	MsgPhotoReceived          MsgKey = "photoReceived"
	MsgSendPhotoOrDone        MsgKey = "sendPhotoOrDone"
	MsgProvidePhone           MsgKey = "providePhone"
	MsgAskPrice               MsgKey = "askPrice"
	MsgPriceInvalid           MsgKey = "priceInvalid"
	MsgAskSocials             MsgKey = "askSocials"
	MsgSkip                   MsgKey = "skip"
	MsgSomethingWrong         MsgKey = "somethingWrong"
	MsgConfirmRequest         MsgKey = "confirmRequest"
	MsgConfirm                MsgKey = "confirm"
	MsgRestart                MsgKey = "restart"
	MsgMissingData            MsgKey = "missingData"
	MsgRegistrationComplete   MsgKey = "registrationComplete"
	MsgErrorSaving            MsgKey = "errorSaving"
	MsgSelectConfirmOrRestart MsgKey = "selectConfirmOrRestart"
	MsgSummary                MsgKey = "summary"

	MsgLanguageChosen   MsgKey = "languageChosen"
	MsgStartRegButton   MsgKey = "startRegButton"
	MsgLinkPrompt       MsgKey = "linkPrompt"
	MsgLinkSuccess      MsgKey = "linkSuccess"
	MsgLinkAlready      MsgKey = "linkAlready"
	MsgLinkInvalidCode  MsgKey = "linkInvalidCode"
	MsgLinkError        MsgKey = "linkError"
	MsgResetPrompt      MsgKey = "resetPrompt"
	MsgResetSent        MsgKey = "resetSent"
	MsgResetTooMany     MsgKey = "resetTooMany"
	MsgResetNotEligible MsgKey = "resetNotEligible"
	MsgStartHint        MsgKey = "startHint"
)

// AllKeys перечисляет все ключи сообщений; каждый язык обязан
// содержать каждый ключ (проверяется тестом).
var AllKeys = []MsgKey{
	MsgWelcome, MsgNameShort, MsgAskAge, MsgAgeInvalid, MsgAskGender,
	MsgMale, MsgFemale, MsgGenderInvalid, MsgAskCity, MsgCityNotFound,
	MsgCitySelected, MsgDone, MsgCitySelectFromList, MsgPhotosMin,
	MsgPhotosSaved, MsgSendContact, MsgPhotosMax, MsgPhotoReceived,
	MsgSendPhotoOrDone, MsgProvidePhone, MsgAskPrice, MsgPriceInvalid,
	MsgAskSocials, MsgSkip, MsgSomethingWrong, MsgConfirmRequest,
	MsgConfirm, MsgRestart, MsgMissingData, MsgRegistrationComplete,
	MsgErrorSaving, MsgSelectConfirmOrRestart, MsgSummary,
	MsgLanguageChosen, MsgStartRegButton, MsgLinkPrompt, MsgLinkSuccess,
	MsgLinkAlready, MsgLinkInvalidCode, MsgLinkError, MsgResetPrompt,
	MsgResetSent, MsgResetTooMany, MsgResetNotEligible, MsgStartHint,
}

var messages = map[Lang]map[MsgKey]string{
	LangUz: {
		MsgWelcome:                "Xush kelibsiz! Keling, ro'yxatdan o'tishni boshlaylik. To'liq ismingiz nima?",
		MsgNameShort:              "Ism juda qisqa.",
		MsgAskAge:                 "Ajoyib. Yoshingiz nechada?",
		MsgAgeInvalid:             "Iltimos, to'g'ri yoshni kiriting (16 yoshdan katta bo'lishi kerak).",
		MsgAskGender:              "Jinsingiz?",
		MsgMale:                   "Erkak",
		MsgFemale:                 "Ayol",
		MsgGenderInvalid:          "Iltimos, Erkak yoki Ayol tugmasini tanlang.",
		MsgAskCity:                "Shaharingizni tanlang:",
		MsgCityNotFound:           "Shahar topilmadi. Qaytadan urinib ko'ring.",
		MsgCitySelected:           "Shahar: {city}\n\nIltimos, 2-5 ta foto yuboring. Tugagach \"Tayyor\" tugmasini bosing.",
		MsgDone:                   "Tayyor",
		MsgCitySelectFromList:     "Iltimos, yuqoridagi ro'yxatdan shahringizni tanlang.",
		MsgPhotosMin:              "Kamida 2 ta foto kerak. Sizda {count} ta bor.",
		MsgPhotosSaved:            "Fotolar saqlandi. Iltimos, telefon raqamingizni yuboring.",
		MsgSendContact:            "Kontaktni yuborish",
		MsgPhotosMax:              "Maksimal 5 ta fotoga ruxsat berilgan. Davom etish uchun \"Tayyor\" tugmasini bosing.",
		MsgPhotoReceived:          "Foto qabul qilindi ({count}/5). Yana yuboring yoki \"Tayyor\" tugmasini bosing.",
		MsgSendPhotoOrDone:        "Iltimos, foto yuboring yoki \"Tayyor\" tugmasini bosing.",
		MsgProvidePhone:           "Iltimos, telefon raqamingizni yuboring.",
		MsgAskPrice:               "Bir video uchun narxingiz qancha (USD)?",
		MsgPriceInvalid:           "Iltimos, to'g'ri raqam kiriting.",
		MsgAskSocials:             "Ijtimoiy tarmoqlar havolalarini yuboring (Instagram, TikTok va h.k.) yoki \"O'tkazib yuborish\" deb yozing.",
		MsgSkip:                   "O'tkazib yuborish",
		MsgSomethingWrong:         "Nimadir xato ketdi. Iltimos, /start bilan qaytadan boshlang.",
		MsgConfirmRequest:         "Iltimos, ma'lumotlaringizni tasdiqlang:\n\n{summary}",
		MsgConfirm:                "Tasdiqlash",
		MsgRestart:                "Qaytadan boshlash",
		MsgMissingData:            "Ma'lumotlar yetishmayapti. Iltimos, qaytadan boshlang.",
		MsgRegistrationComplete:   "Ro'yxatdan o'tish tugallandi! Arizalar admin tomonidan ko'rib chiqiladi.",
		MsgErrorSaving:            "Ma'lumotlarni saqlashda xatolik. Iltimos, qaytadan urinib ko'ring.",
		MsgSelectConfirmOrRestart: "Iltimos, Tasdiqlash yoki Qaytadan boshlash tugmasini tanlang.",
		MsgSummary:                "Ism: {fullName}\nYosh: {age}\nJins: {gender}\nShahar: {city}\nTelefon: {phone}\nNarx: {price}\nIjtimoiy tarmoqlar: {socials}",

		MsgLanguageChosen:   "✅ Til tanlandi: O'zbekcha\n\nCasting Bot'ga xush kelibsiz! 🎬\n\nRo'yxatdan o'tish uchun quyidagi tugmani bosing:",
		MsgStartRegButton:   "📝 Ro'yxatdan o'tish",
		MsgLinkPrompt:       "Iltimos, boshqaruv panelidan 6 raqamli tasdiqlash kodini kiriting:",
		MsgLinkSuccess:      "✅ Muvaffaqiyatli! Telegram hisobingiz {email} ga bog'landi",
		MsgLinkAlready:      "⚠️ Bu Telegram hisobi boshqa administratorga bog'langan.",
		MsgLinkInvalidCode:  "❌ Noto'g'ri yoki muddati o'tgan kod. Iltimos, boshqaruv panelidan yangi kod yarating.",
		MsgLinkError:        "❌ Xatolik yuz berdi. Iltimos, qaytadan urinib ko'ring.",
		MsgResetPrompt:      "Iltimos, administrator email manzilingizni kiriting:",
		MsgResetSent:        "✅ Parolni tiklash havolasi yuborildi!\n\nParolni tiklash uchun shu yerni bosing:\n{url}\n\n⏰ Bu havola 15 daqiqadan keyin amal qilmaydi.",
		MsgResetTooMany:     "⚠️ Juda ko'p tiklash so'rovlari. Iltimos, keyinroq urinib ko'ring.",
		MsgResetNotEligible: "❌ Tiklash havolasini yuborib bo'lmadi. Iltimos, tekshiring:\n• Email manzilingiz to'g'ri ekanligini\n• Telegram hisobingiz bog'langanligini\n• Administrator hisobingiz faol ekanligini",
		MsgStartHint:        "Boshlash uchun /start buyrug'ini yuboring.",
	},
	LangRu: {
		MsgWelcome:                "Добро пожаловать! Давайте начнем регистрацию. Как вас зовут?",
		MsgNameShort:              "Имя слишком короткое.",
		MsgAskAge:                 "Отлично. Сколько вам лет?",
		MsgAgeInvalid:             "Пожалуйста, введите корректный возраст (должен быть больше 16).",
		MsgAskGender:              "Ваш пол?",
		MsgMale:                   "Мужской",
		MsgFemale:                 "Женский",
		MsgGenderInvalid:          "Пожалуйста, выберите кнопку Мужской или Женский.",
		MsgAskCity:                "Выберите ваш город:",
		MsgCityNotFound:           "Город не найден. Попробуйте снова.",
		MsgCitySelected:           "Город: {city}\n\nПожалуйста, отправьте 2-5 фотографий. Нажмите \"Готово\" когда закончите.",
		MsgDone:                   "Готово",
		MsgCitySelectFromList:     "Пожалуйста, выберите город из списка выше.",
		MsgPhotosMin:              "Нужно минимум 2 фотографии. У вас {count}.",
		MsgPhotosSaved:            "Фотографии сохранены. Пожалуйста, поделитесь своим номером телефона.",
		MsgSendContact:            "Отправить контакт",
		MsgPhotosMax:              "Максимум 5 фотографий. Нажмите \"Готово\" чтобы продолжить.",
		MsgPhotoReceived:          "Фото получено ({count}/5). Отправьте еще или нажмите \"Готово\".",
		MsgSendPhotoOrDone:        "Пожалуйста, отправьте фото или нажмите \"Готово\".",
		MsgProvidePhone:           "Пожалуйста, укажите номер телефона.",
		MsgAskPrice:               "Какова ваша цена за видео (USD)?",
		MsgPriceInvalid:           "Пожалуйста, введите корректное число.",
		MsgAskSocials:             "Поделитесь ссылками на соцсети (Instagram, TikTok и т.д.) или напишите \"Пропустить\".",
		MsgSkip:                   "Пропустить",
		MsgSomethingWrong:         "Что-то пошло не так. Пожалуйста, начните заново с /start.",
		MsgConfirmRequest:         "Пожалуйста, подтвердите ваши данные:\n\n{summary}",
		MsgConfirm:                "Подтвердить",
		MsgRestart:                "Начать заново",
		MsgMissingData:            "Недостаточно данных. Пожалуйста, начните заново.",
		MsgRegistrationComplete:   "Регистрация завершена! Заявки рассматриваются администратором.",
		MsgErrorSaving:            "Ошибка сохранения данных. Пожалуйста, попробуйте снова.",
		MsgSelectConfirmOrRestart: "Пожалуйста, выберите Подтвердить или Начать заново.",
		MsgSummary:                "Имя: {fullName}\nВозраст: {age}\nПол: {gender}\nГород: {city}\nТелефон: {phone}\nЦена: {price}\nСоцсети: {socials}",

		MsgLanguageChosen:   "✅ Язык выбран: Русский\n\nДобро пожаловать в Casting Bot! 🎬\n\nНажмите кнопку ниже, чтобы начать регистрацию:",
		MsgStartRegButton:   "📝 Начать регистрацию",
		MsgLinkPrompt:       "Пожалуйста, введите 6-значный код подтверждения из панели управления:",
		MsgLinkSuccess:      "✅ Успешно! Ваш аккаунт Telegram привязан к {email}",
		MsgLinkAlready:      "⚠️ Этот аккаунт Telegram уже привязан к другому администратору.",
		MsgLinkInvalidCode:  "❌ Неверный или истекший код. Пожалуйста, сгенерируйте новый код в панели управления.",
		MsgLinkError:        "❌ Произошла ошибка. Пожалуйста, попробуйте снова.",
		MsgResetPrompt:      "Пожалуйста, введите ваш email администратора:",
		MsgResetSent:        "✅ Ссылка для сброса пароля отправлена!\n\nНажмите здесь, чтобы сбросить пароль:\n{url}\n\n⏰ Эта ссылка истечет через 15 минут.",
		MsgResetTooMany:     "⚠️ Слишком много запросов на сброс. Пожалуйста, попробуйте позже.",
		MsgResetNotEligible: "❌ Не удалось отправить ссылку для сброса. Убедитесь, что:\n• Ваш email указан правильно\n• Ваш аккаунт Telegram привязан\n• Ваш аккаунт администратора активен",
		MsgStartHint:        "Отправьте /start, чтобы начать.",
	},
	LangEn: {
		MsgWelcome:                "Welcome! Let's start your registration. What is your full name?",
		MsgNameShort:              "Name is too short.",
		MsgAskAge:                 "Great. How old are you?",
		MsgAgeInvalid:             "Please enter a valid age (must be > 16).",
		MsgAskGender:              "What is your gender?",
		MsgMale:                   "Male",
		MsgFemale:                 "Female",
		MsgGenderInvalid:          "Please select Male or Female button.",
		MsgAskCity:                "Select your city:",
		MsgCityNotFound:           "City not found. Please try again.",
		MsgCitySelected:           "City: {city}\n\nPlease send 2-5 photos. Click \"Done\" when finished.",
		MsgDone:                   "Done",
		MsgCitySelectFromList:     "Please select a city from the list above.",
		MsgPhotosMin:              "You need at least 2 photos. You have {count}.",
		MsgPhotosSaved:            "Photos saved. Please share your phone number.",
		MsgSendContact:            "Send Contact",
		MsgPhotosMax:              "Maximum 5 photos allowed. Click \"Done\" to proceed.",
		MsgPhotoReceived:          "Photo received ({count}/5). Send more or click \"Done\".",
		MsgSendPhotoOrDone:        "Please send a photo or click \"Done\".",
		MsgProvidePhone:           "Please provide a phone number.",
		MsgAskPrice:               "What is your price per video (USD)?",
		MsgPriceInvalid:           "Please enter a valid number.",
		MsgAskSocials:             "Share your social links (Instagram, TikTok, etc.) or type \"Skip\".",
		MsgSkip:                   "Skip",
		MsgSomethingWrong:         "Something went wrong. Please restart with /start.",
		MsgConfirmRequest:         "Please confirm your details:\n\n{summary}",
		MsgConfirm:                "Confirm",
		MsgRestart:                "Restart",
		MsgMissingData:            "Missing data. Please restart.",
		MsgRegistrationComplete:   "Registration complete! Applications are reviewed by admin.",
		MsgErrorSaving:            "Error saving data. Please try again.",
		MsgSelectConfirmOrRestart: "Please select Confirm or Restart.",
		MsgSummary:                "Name: {fullName}\nAge: {age}\nGender: {gender}\nCity: {city}\nPhone: {phone}\nPrice: {price}\nSocials: {socials}",

		MsgLanguageChosen:   "✅ Language selected: English\n\nWelcome to Casting Bot! 🎬\n\nClick the button below to start registration:",
		MsgStartRegButton:   "📝 Start Registration",
		MsgLinkPrompt:       "Please enter your 6-character verification code from the dashboard:",
		MsgLinkSuccess:      "✅ Success! Your Telegram account has been linked to {email}",
		MsgLinkAlready:      "⚠️ This Telegram account is already linked to another admin.",
		MsgLinkInvalidCode:  "❌ Invalid or expired code. Please generate a new code from the dashboard.",
		MsgLinkError:        "❌ An error occurred. Please try again.",
		MsgResetPrompt:      "Please enter your admin email address:",
		MsgResetSent:        "✅ Password reset link sent!\n\nClick here to reset your password:\n{url}\n\n⏰ This link will expire in 15 minutes.",
		MsgResetTooMany:     "⚠️ Too many reset requests. Please try again later.",
		MsgResetNotEligible: "❌ Could not send reset link. Please make sure:\n• Your email is correct\n• Your Telegram account is linked\n• Your admin account is active",
		MsgStartHint:        "Send /start to begin.",
	},
}

// T возвращает локализованное сообщение с подстановкой {placeholder}.
// Отсутствующий ключ возвращается как есть, чтобы дыра в таблице
// была видна в чате, а не терялась молча.
func T(lang Lang, key MsgKey, params map[string]string) string {
	table, ok := messages[lang]
	if !ok {
		table = messages[LangEn]
	}

	tmpl, ok := table[key]
	if !ok {
		return string(key)
	}

	for name, value := range params {
		tmpl = strings.ReplaceAll(tmpl, "{"+name+"}", value)
	}
	return tmpl
}
