package pantry

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/krisha-oswal/pantry-oracle/internal/logger"
)

// Store keeps live sessions in memory, keyed by session ID. Sessions
// are deliberately not persisted: a session dies with the process or
// when it sits idle past the TTL. Safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	log      *logger.Logger

	lastSweep time.Time
}

// NewStore creates a session store with the given idle TTL.
func NewStore(ttl time.Duration, log *logger.Logger) *Store {
	return &Store{
		sessions:  make(map[string]*Session),
		ttl:       ttl,
		log:       log,
		lastSweep: time.Now(),
	}
}

// Create makes a new session with a fresh UUID and registers it.
func (st *Store) Create() *Session {
	s := NewSession(uuid.New().String())

	st.mu.Lock()
	st.sessions[s.ID()] = s
	st.mu.Unlock()

	st.log.Debug("session created: %s", s.ID())
	return s
}

// Get returns the session with the given ID, or nil if it does not
// exist or has expired. Expired sessions are swept lazily on access.
func (st *Store) Get(id string) *Session {
	st.sweep()

	st.mu.RLock()
	s := st.sessions[id]
	st.mu.RUnlock()

	if s == nil {
		return nil
	}
	if time.Since(s.lastTouched()) > st.ttl {
		st.mu.Lock()
		delete(st.sessions, id)
		st.mu.Unlock()
		st.log.Debug("session expired: %s", id)
		return nil
	}
	return s
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// sweep drops idle sessions. Runs at most once per minute.
func (st *Store) sweep() {
	st.mu.Lock()
	defer st.mu.Unlock()

	if time.Since(st.lastSweep) < time.Minute {
		return
	}
	st.lastSweep = time.Now()

	for id, s := range st.sessions {
		if time.Since(s.lastTouched()) > st.ttl {
			delete(st.sessions, id)
			st.log.Debug("session expired: %s", id)
		}
	}
}
