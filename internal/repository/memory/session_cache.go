package memory

import (
	"time"

	"promptlycoach-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// SessionCache keeps recently looked-up chat sessions so the relay does not hit the
// database on every turn.
type SessionCache struct {
	cache *cache.Cache
}

func NewSessionCache(ttl time.Duration) *SessionCache {
	return &SessionCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (r *SessionCache) Save(session *entity.ChatSession) {
	copied := *session
	r.cache.Set(session.Id.String(), &copied, cache.DefaultExpiration)
}

func (r *SessionCache) Get(id uuid.UUID) (*entity.ChatSession, bool) {
	if x, found := r.cache.Get(id.String()); found {
		copied := *x.(*entity.ChatSession)
		return &copied, true
	}
	return nil, false
}

func (r *SessionCache) Delete(id uuid.UUID) {
	r.cache.Delete(id.String())
}
