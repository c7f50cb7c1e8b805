package sessionstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/aqi-analyst/internal/domain/insights"
)

type sessionRecord struct {
	payload   insights.Session
	expiresAt time.Time
}

// MemoryStore keeps analysis sessions in process memory. Sessions expire
// after the configured TTL so abandoned uploads do not accumulate.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]sessionRecord
	ttl      time.Duration
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]sessionRecord),
		ttl:      ttl,
	}
}

// Save implements insights.SessionRepository.
func (s *MemoryStore) Save(_ context.Context, session insights.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cleanupLocked(time.Now())
	s.sessions[session.ID] = sessionRecord{
		payload:   session,
		expiresAt: s.expiry(),
	}
	return nil
}

// Get returns the session when present and unexpired.
func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (insights.Session, bool, error) {
	s.mu.RLock()
	record, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return insights.Session{}, false, nil
	}
	if hasExpired(record.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return insights.Session{}, false, nil
	}
	return record.payload, true, nil
}

// SetDigest memoizes the computed digest on an existing session.
func (s *MemoryStore) SetDigest(_ context.Context, id uuid.UUID, digest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.sessions[id]
	if !ok || hasExpired(record.expiresAt) {
		delete(s.sessions, id)
		return nil
	}
	record.payload.Digest = digest
	s.sessions[id] = record
	return nil
}

// Delete removes a session; unknown ids are a no-op.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return time.Now().Add(s.ttl)
}

func (s *MemoryStore) cleanupLocked(now time.Time) {
	for id, record := range s.sessions {
		if !record.expiresAt.IsZero() && record.expiresAt.Before(now) {
			delete(s.sessions, id)
		}
	}
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ insights.SessionRepository = (*MemoryStore)(nil)
