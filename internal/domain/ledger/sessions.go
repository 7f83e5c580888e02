package ledger

import (
	"strings"
	"sync"
	"time"
)

// DefaultSessionID is used when a caller does not identify its session
const DefaultSessionID = "default"

// SessionsConfig tunes session lifetime
type SessionsConfig struct {
	IdleTTL           time.Duration // zero keeps idle sessions forever
	MaxSessions       int           // zero means unlimited
	StrictTransitions bool
	Now               func() time.Time
}

type sessionEntry struct {
	store    *Store
	lastSeen time.Time
}

// Sessions maps session identifiers to their own Store. Stores are created on
// first use and dropped after IdleTTL without access.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	cfg     SessionsConfig
}

// NewSessions creates an empty session registry
func NewSessions(cfg SessionsConfig) *Sessions {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Sessions{
		entries: make(map[string]*sessionEntry),
		cfg:     cfg,
	}
}

// Get returns the store for id, creating it when absent
func (s *Sessions) Get(id string) *Store {
	id = normalizeSessionID(id)
	now := s.cfg.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictIdle(now)

	if e, ok := s.entries[id]; ok {
		e.lastSeen = now
		return e.store
	}

	if s.cfg.MaxSessions > 0 && len(s.entries) >= s.cfg.MaxSessions {
		s.evictOldest()
	}

	store := NewStore(
		WithStrictTransitions(s.cfg.StrictTransitions),
		WithClock(s.cfg.Now),
	)
	s.entries[id] = &sessionEntry{store: store, lastSeen: now}
	return store
}

// Find returns the store for id and marks the session as used. Unlike Get it
// never creates a store, so it cannot push another session out under
// MaxSessions.
func (s *Sessions) Find(id string) (*Store, bool) {
	id = normalizeSessionID(id)
	now := s.cfg.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictIdle(now)

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = now
	return e.store, true
}

// Peek returns the store for id without creating or touching it
func (s *Sessions) Peek(id string) (*Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[normalizeSessionID(id)]
	if !ok {
		return nil, false
	}
	return e.store, true
}

// Drop discards the store of a session. It reports whether one existed.
func (s *Sessions) Drop(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = normalizeSessionID(id)
	_, ok := s.entries[id]
	delete(s.entries, id)
	return ok
}

// Len returns the number of live sessions
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Sessions) evictIdle(now time.Time) {
	if s.cfg.IdleTTL <= 0 {
		return
	}
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.cfg.IdleTTL {
			delete(s.entries, id)
		}
	}
}

func (s *Sessions) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, e := range s.entries {
		if oldestID == "" || e.lastSeen.Before(oldest) {
			oldestID, oldest = id, e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.entries, oldestID)
	}
}

func normalizeSessionID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return DefaultSessionID
	}
	return id
}
