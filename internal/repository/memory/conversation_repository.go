package memory

import (
	"context"
	"sync"
	"time"

	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// ConversationRepository keeps per-session turns in go-cache. Every append
// refreshes the session's expiration.
type ConversationRepository struct {
	mu       sync.Mutex
	cache    *cache.Cache
	maxMessages int
}

var _ contract.ConversationRepository = &ConversationRepository{}

func NewConversationRepository(ttl time.Duration, maxMessages int) *ConversationRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	// purge expired items every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &ConversationRepository{
		cache:    c,
		maxMessages: maxMessages,
	}
}

func key(sessionId, scope string) string {
	return sessionId + ":" + scope
}

func (r *ConversationRepository) Append(ctx context.Context, sessionId string, scope string, turns ...store.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(sessionId, scope)
	var history []store.Turn
	if x, found := r.cache.Get(k); found {
		history = x.([]store.Turn)
	}

	next := make([]store.Turn, 0, len(history)+len(turns))
	next = append(next, history...)
	next = append(next, turns...)
	if r.maxMessages > 0 && len(next) > r.maxMessages {
		next = next[len(next)-r.maxMessages:]
	}

	r.cache.Set(k, next, cache.DefaultExpiration)
	return nil
}

func (r *ConversationRepository) History(ctx context.Context, sessionId string, scope string) ([]store.Turn, error) {
	if x, found := r.cache.Get(key(sessionId, scope)); found {
		history := x.([]store.Turn)
		out := make([]store.Turn, len(history))
		copy(out, history)
		return out, nil
	}
	return nil, nil
}

func (r *ConversationRepository) Clear(ctx context.Context, sessionId string) error {
	r.cache.Delete(key(sessionId, store.ScopeRewriter))
	r.cache.Delete(key(sessionId, store.ScopeAnswer))
	return nil
}
