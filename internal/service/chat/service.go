package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gurukul-labs/tutor-backend/internal/model/chat"
)

// ErrSessionNotFound signals an append or read against a session that was
// never created or has been evicted.
var ErrSessionNotFound = errors.New("session not found")

// Service encapsulates conversation state management. Sessions live only in
// memory and are swept by age on demand; there is no background timer.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]chat.Session
	messages map[string][]chat.Message
	clock    func() time.Time
}

// NewService bootstraps the in-memory session store with the wall clock.
func NewService() *Service {
	return NewServiceWithClock(time.Now)
}

// NewServiceWithClock allows tests to control session timestamps and
// eviction deterministically.
func NewServiceWithClock(clock func() time.Time) *Service {
	return &Service{
		sessions: make(map[string]chat.Session),
		messages: make(map[string][]chat.Message),
		clock:    clock,
	}
}

// GetOrCreate returns the session for the given identifier, minting a fresh
// one when the identifier is empty or unknown. The returned bool reports
// whether a new session was created. Never fails.
func (s *Service) GetOrCreate(_ context.Context, sessionID, tierName string) (chat.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sessionID != "" {
		if session, ok := s.sessions[sessionID]; ok {
			return session, false
		}
	}

	session := chat.Session{
		ID:        uuid.NewString(),
		Tier:      tierName,
		CreatedAt: s.clock().UTC(),
	}
	s.sessions[session.ID] = session
	s.messages[session.ID] = make([]chat.Message, 0, 16)
	return session, true
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (chat.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return chat.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// SaveMessage appends a message to the session transcript. The transcript is
// append-only; stored messages are never mutated or removed individually.
func (s *Service) SaveMessage(_ context.Context, message chat.Message) error {
	if message.SessionID == "" {
		return ErrSessionNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[message.SessionID]; !ok {
		return ErrSessionNotFound
	}

	if message.ID == "" {
		message.ID = uuid.NewString()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = s.clock().UTC()
	}

	s.messages[message.SessionID] = append(s.messages[message.SessionID], message)
	return nil
}

// LoadTranscript returns a copy of the stored messages for the session.
func (s *Service) LoadTranscript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.messages[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// EvictExpired removes every session created more than ttl before now,
// transcript included, and reports how many were removed. Called at the
// start of each inbound request to bound memory growth.
func (s *Service) EvictExpired(_ context.Context, now time.Time, ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, session := range s.sessions {
		if now.Sub(session.CreatedAt) > ttl {
			delete(s.sessions, id)
			delete(s.messages, id)
			removed++
		}
	}
	return removed
}

// ActiveSessions reports the number of live sessions, for the health probe.
func (s *Service) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
