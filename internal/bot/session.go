package bot

import (
	"sync"

	"casting_backend/internal/models"
)

// Step - текущий шаг анкеты в диалоге
type Step int

const (
	StepIdle Step = iota
	StepName
	StepAge
	StepGender
	StepCity
	StepPhotos
	StepPhone
	StepPrice
	StepSocials
	StepConfirm
)

// Draft - накопленные поля анкеты
type Draft struct {
	FullName string
	Age      int
	Gender   models.Gender
	City     string
	CityID   *int
	Photos   []string
	Phone    string
	Price    float64
	Socials  string
}

// Session - состояние одного чата. Язык фиксируется при выборе
// и живет дольше одной регистрации.
type Session struct {
	ChatID   int64
	Lang     Lang
	Step     Step
	Draft    Draft
	Username string

	LinkPending  bool
	ResetPending bool
}

// SessionStore хранит состояния диалогов по chat ID.
// Обращения защищены мьютексом: обновления обрабатываются
// последовательно, но вебхук и long-poll не должны гоняться.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
	}
}

// Get возвращает сессию чата, создавая новую при первом обращении
func (s *SessionStore) Get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[chatID]
	if !ok {
		session = &Session{ChatID: chatID, Lang: LangEn}
		s.sessions[chatID] = session
	}
	return session
}

// ResetDraft сбрасывает анкету, сохраняя язык и chat ID
func (s *SessionStore) ResetDraft(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[chatID]
	if !ok {
		session = &Session{ChatID: chatID, Lang: LangEn}
		s.sessions[chatID] = session
	}

	session.Draft = Draft{}
	session.Step = StepIdle
	return session
}

func (s *SessionStore) Delete(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, chatID)
}

// Len возвращает число активных сессий
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
