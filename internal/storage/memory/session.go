package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/jkruckivey/assessments/internal/core"
)

const cleanupInterval = 10 * time.Minute

// SessionStore keeps conversation history in process memory. Sessions expire
// after ttl without a save.
type SessionStore struct {
	cache *cache.Cache
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &SessionStore{
		cache: cache.New(ttl, cleanupInterval),
	}
}

func (s *SessionStore) GetHistory(_ context.Context, sessionID string) ([]core.Turn, error) {
	x, found := s.cache.Get(sessionID)
	if !found {
		return nil, nil
	}
	turns := x.([]core.Turn)
	out := make([]core.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

func (s *SessionStore) SaveHistory(_ context.Context, sessionID string, turns []core.Turn) error {
	trimmed := core.TrimHistory(turns, core.MaxHistoryTurns)
	stored := make([]core.Turn, len(trimmed))
	copy(stored, trimmed)
	s.cache.Set(sessionID, stored, cache.DefaultExpiration)
	return nil
}

func (s *SessionStore) ClearHistory(_ context.Context, sessionID string) error {
	s.cache.Delete(sessionID)
	return nil
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	return s.cache.ItemCount()
}
