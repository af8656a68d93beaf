package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"truthlens/internal/chatbot"
	"truthlens/internal/history"
	"truthlens/internal/models"
	"truthlens/internal/presenter"
)

// Snapshot is the fully committed outcome of one analysis. The report
// builder only ever reads snapshots, never half-written state.
type Snapshot struct {
	Mode         models.InputMode           `json:"mode"`
	Result       models.PredictionResult    `json:"result"`
	Presentation presenter.PresentationState `json:"presentation"`
	Metrics      presenter.Metrics          `json:"metrics"`
	Debug        models.DebugMetadata       `json:"debug_info"`
	Preview      string                     `json:"extracted_preview"`
	AnalyzedAt   time.Time                  `json:"analyzed_at"`
}

// Session holds the current result and history for one user of the client.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.RWMutex
	current *Snapshot
	history *history.Log
	chat    *chatbot.Conversation
	busy    atomic.Bool

	// guarded by Store.mu
	lastSeen time.Time
}

// New creates an empty session with a random ID.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		history:   history.New(),
		chat:      chatbot.NewConversation(),
	}
}

// History returns the session history log.
func (s *Session) History() *history.Log {
	return s.history
}

// Chat returns the session's FAQ conversation.
func (s *Session) Chat() *chatbot.Conversation {
	return s.chat
}

// Begin marks an analysis as running on s. It returns false when one is
// already in flight.
func (s *Session) Begin() bool {
	return s.busy.CompareAndSwap(false, true)
}

// End clears the mark set by Begin.
func (s *Session) End() {
	s.busy.Store(false)
}

// Busy reports whether an analysis is running on s.
func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Commit replaces the current snapshot.
func (s *Session) Commit(snap Snapshot) {
	snap.Debug = snap.Debug.Clone()

	s.mu.Lock()
	s.current = &snap
	s.mu.Unlock()
}

// Clear drops the current snapshot, leaving history untouched.
func (s *Session) Clear() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Current returns a copy of the current snapshot.
func (s *Session) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Snapshot{}, false
	}
	snap := *s.current
	snap.Debug = snap.Debug.Clone()
	return snap, true
}

const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultMaxSessions = 1000
)

// Store keeps sessions by ID for the web shell. Sessions unused for longer
// than the idle timeout are dropped, and when the store is full the least
// recently used idle session makes room for a new one.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	idle     time.Duration
	max      int
	now      func() time.Time
}

// NewStore creates an empty store. Non-positive limits use the defaults.
func NewStore(idle time.Duration, maxSessions int) *Store {
	if idle <= 0 {
		idle = DefaultIdleTimeout
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Store{
		sessions: make(map[string]*Session),
		idle:     idle,
		max:      maxSessions,
		now:      time.Now,
	}
}

// Get returns the session for id, creating a fresh one when id is unknown,
// expired or empty.
func (st *Store) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.expire(now)

	if s, ok := st.sessions[id]; ok {
		s.lastSeen = now
		return s
	}

	if len(st.sessions) >= st.max {
		st.evictOldest()
	}
	s := New()
	s.lastSeen = now
	st.sessions[s.ID] = s
	return s
}

func (st *Store) expire(now time.Time) {
	for id, s := range st.sessions {
		if now.Sub(s.lastSeen) > st.idle && !s.Busy() {
			st.drop(id, s)
		}
	}
}

// evictOldest drops the least recently used session that is not analysing.
func (st *Store) evictOldest() {
	var oldest *Session
	for _, s := range st.sessions {
		if s.Busy() {
			continue
		}
		if oldest == nil || s.lastSeen.Before(oldest.lastSeen) {
			oldest = s
		}
	}
	if oldest != nil {
		st.drop(oldest.ID, oldest)
	}
}

func (st *Store) drop(id string, s *Session) {
	delete(st.sessions, id)
	s.chat.Close()
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
