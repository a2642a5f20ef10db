package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// StoreConfig controls session expiry.
type StoreConfig struct {
	// IdleTTL is how long an untouched session survives. Zero disables expiry.
	IdleTTL time.Duration
	// CleanupInterval is how often expired sessions are removed.
	CleanupInterval time.Duration
}

// DefaultStoreConfig returns a one hour idle expiry checked every minute.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		IdleTTL:         time.Hour,
		CleanupInterval: time.Minute,
	}
}

// Store keeps sessions in memory, keyed by ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	deps     Deps
	config   StoreConfig

	cleanupTicker *time.Ticker
	cleanupStop   chan struct{}
	stopOnce      sync.Once
}

// NewStore creates a store and starts the expiry goroutine when both IdleTTL
// and CleanupInterval are positive. Call Stop to end it.
func NewStore(deps Deps, config StoreConfig) *Store {
	st := &Store{
		sessions: make(map[uuid.UUID]*Session),
		deps:     deps.withDefaults(),
		config:   config,
	}
	if config.IdleTTL > 0 && config.CleanupInterval > 0 {
		st.cleanupTicker = time.NewTicker(config.CleanupInterval)
		st.cleanupStop = make(chan struct{})
		go st.cleanup()
	}
	return st
}

// Create starts a new session.
func (st *Store) Create(language string) *Session {
	s := New(language, st.deps)
	st.mu.Lock()
	st.sessions[s.ID()] = s
	st.mu.Unlock()
	return s
}

// Get returns the session with id.
func (st *Store) Get(id uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	return s, ok
}

// Delete removes a session and reports whether it existed.
func (st *Store) Delete(id uuid.UUID) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	_, ok := st.sessions[id]
	delete(st.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) cleanup() {
	for {
		select {
		case <-st.cleanupTicker.C:
			st.expire(time.Now())
		case <-st.cleanupStop:
			return
		}
	}
}

// expire removes sessions idle since before now minus IdleTTL and returns how
// many were removed.
func (st *Store) expire(now time.Time) int {
	if st.config.IdleTTL <= 0 {
		return 0
	}
	cutoff := now.Add(-st.config.IdleTTL)

	st.mu.RLock()
	var stale []uuid.UUID
	for id, s := range st.sessions {
		if s.LastAccess().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	st.mu.RUnlock()

	if len(stale) == 0 {
		return 0
	}

	st.mu.Lock()
	removed := 0
	for _, id := range stale {
		if s, ok := st.sessions[id]; ok && s.LastAccess().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	st.mu.Unlock()

	st.deps.Logger.Info("expired idle sessions", "removed", removed)
	return removed
}

// Stop ends the expiry goroutine. It is safe to call more than once.
func (st *Store) Stop() {
	st.stopOnce.Do(func() {
		if st.cleanupTicker != nil {
			st.cleanupTicker.Stop()
		}
		if st.cleanupStop != nil {
			close(st.cleanupStop)
		}
	})
}
