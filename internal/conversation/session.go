package conversation

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ryder-music/lessonbot/internal/model"
)

// State - текущее состояние диалога пользователя
type State string

const (
	StateNone State = ""

	// Состояния записи на занятие
	StateAwaitingLevel          State = "awaiting_level"
	StateAwaitingInstrument     State = "awaiting_instrument"
	StateAwaitingTimezone       State = "awaiting_timezone"
	StateAwaitingCustomTimezone State = "awaiting_custom_timezone"
	StateAwaitingDay            State = "awaiting_day"
	StateAwaitingTime           State = "awaiting_time"

	// Состояния админ-панели
	StateAdminMenu    State = "admin_menu"
	StateAdminScope   State = "admin_scope"
	StateAdminWeekday State = "admin_weekday"
	StateAdminDate    State = "admin_date"
	StateAdminSlots   State = "admin_slots"

	// Терминальные состояния: после них сессия удаляется
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// Terminal сообщает, завершён ли диалог
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// Admin сообщает, относится ли состояние к админ-панели
func (s State) Admin() bool {
	switch s {
	case StateAdminMenu, StateAdminScope, StateAdminWeekday, StateAdminDate, StateAdminSlots:
		return true
	}
	return false
}

// Session - эфемерное состояние одного диалога.
// Telegram доставляет обновления в отдельных горутинах, поэтому сессия
// несёт собственный мьютекс: обработчик держит его на время одного события.
type Session struct {
	mu sync.Mutex

	UserID   int64
	Username string
	FullName string

	State State

	// Собранные ответы записи
	Level      string
	Instrument string
	Timezone   string
	Date       time.Time
	Slot       model.TimeSlot
	Offset     int

	// Выбор админа
	Scope   Scope
	Weekday model.Weekday

	UpdatedAt time.Time
}

// Lock захватывает сессию на время обработки одного события
func (s *Session) Lock() { s.mu.Lock() }

// Unlock освобождает сессию
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch отмечает активность сессии
func (s *Session) Touch() { s.UpdatedAt = time.Now() }

// SessionManager хранит активные сессии по идентификатору пользователя
// и удаляет простаивающие по таймауту.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	ttl      time.Duration
	logger   *zap.Logger
}

// NewSessionManager создаёт менеджер сессий с таймаутом неактивности
func NewSessionManager(ttl time.Duration, logger *zap.Logger) *SessionManager {
	return &SessionManager{
		sessions: make(map[int64]*Session),
		ttl:      ttl,
		logger:   logger,
	}
}

// Get возвращает активную сессию пользователя, если она есть
func (m *SessionManager) Get(userID int64) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sess, ok := m.sessions[userID]
	return sess, ok
}

// Create создаёт новую сессию, заменяя предыдущую, если та осталась
func (m *SessionManager) Create(userID int64, username, fullName string) *Session {
	sess := &Session{
		UserID:    userID,
		Username:  username,
		FullName:  fullName,
		UpdatedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[userID] = sess
	m.mu.Unlock()

	return sess
}

// Delete удаляет сессию пользователя
func (m *SessionManager) Delete(userID int64) {
	m.mu.Lock()
	delete(m.sessions, userID)
	m.mu.Unlock()
}

// Count возвращает количество активных сессий
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ExpireIdle удаляет сессии без событий дольше таймаута.
// Возвращает количество удалённых.
func (m *SessionManager) ExpireIdle(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	expired := 0
	for userID, sess := range m.sessions {
		if now.Sub(sess.UpdatedAt) > m.ttl {
			delete(m.sessions, userID)
			expired++
			m.logger.Info("Session expired",
				zap.Int64("telegram_id", userID),
				zap.String("state", string(sess.State)))
		}
	}
	return expired
}
