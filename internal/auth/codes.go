package auth

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// CodeTTL - время жизни кода привязки Telegram
const CodeTTL = 10 * time.Minute

type codeEntry struct {
	code      string
	expiresAt time.Time
}

// CodeStore хранит одноразовые коды привязки Telegram-аккаунтов
// в памяти процесса. Коды не переживают рестарт - это осознанно:
// админ просто генерирует новый код из панели.
//
// Конкурентный Claim одного кода из двух чатов разрешается по
// принципу "кто первый" - второй вызов кода уже не найдет.
type CodeStore struct {
	mu    sync.Mutex
	codes map[int]codeEntry
	now   func() time.Time
}

func NewCodeStore() *CodeStore {
	return &CodeStore{
		codes: make(map[int]codeEntry),
		now:   time.Now,
	}
}

// Generate создает 6-символьный код для администратора и запоминает
// его на CodeTTL. Повторный вызов заменяет предыдущий код.
func (s *CodeStore) Generate(adminID int) (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := strings.ToUpper(hex.EncodeToString(buf))

	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[adminID] = codeEntry{
		code:      code,
		expiresAt: s.now().Add(CodeTTL),
	}

	return code, nil
}

// Claim обменивает код на ID администратора и удаляет его из стора.
// Просроченный или неизвестный код возвращает ok=false.
func (s *CodeStore) Claim(code string) (adminID int, ok bool) {
	code = strings.ToUpper(strings.TrimSpace(code))

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.codes {
		if entry.code != code {
			continue
		}
		if s.now().After(entry.expiresAt) {
			delete(s.codes, id)
			return 0, false
		}
		delete(s.codes, id)
		return id, true
	}

	return 0, false
}

// Revoke удаляет код администратора (напр. при отвязке аккаунта)
func (s *CodeStore) Revoke(adminID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, adminID)
}

// Sweep удаляет просроченные коды. Вызывается периодически из
// фонового воркера вместо таймера на каждую запись.
func (s *CodeStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for id, entry := range s.codes {
		if now.After(entry.expiresAt) {
			delete(s.codes, id)
			removed++
		}
	}
	return removed
}
