package session

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps sessions in process. Sessions do not survive a restart
// and are not shared between replicas.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: cache.New(ttl, ttl/2+time.Minute),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, userID uuid.UUID) (*Session, error) {
	sess := newSession(userID, s.ttl, s.now())
	s.cache.Set(sess.ID, sess, cache.DefaultExpiration)
	return sess, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	cached, found := s.cache.Get(id)
	if !found {
		return nil, ErrNotFound
	}
	sess := cached.(*Session)
	if sess.Expired(s.now()) {
		s.cache.Delete(id)
		return nil, ErrNotFound
	}
	copied := *sess
	return &copied, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.cache.Delete(id)
	return nil
}
