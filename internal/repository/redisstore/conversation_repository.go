package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rag-chat-be/internal/repository/contract"
	"rag-chat-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "rag:conversation:"

// ConversationRepository stores turns as a capped redis list per session and
// scope, so several API replicas share memory.
type ConversationRepository struct {
	rdb      redis.UniversalClient
	ttl      time.Duration
	maxMessages int
}

var _ contract.ConversationRepository = &ConversationRepository{}

func NewConversationRepository(rdb redis.UniversalClient, ttl time.Duration, maxMessages int) *ConversationRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ConversationRepository{rdb: rdb, ttl: ttl, maxMessages: maxMessages}
}

func key(sessionId, scope string) string {
	return fmt.Sprintf("%s%s:%s", keyPrefix, sessionId, scope)
}

func (r *ConversationRepository) Append(ctx context.Context, sessionId string, scope string, turns ...store.Turn) error {
	if len(turns) == 0 {
		return nil
	}
	values := make([]interface{}, len(turns))
	for i, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return err
		}
		values[i] = b
	}

	k := key(sessionId, scope)
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, values...)
		if r.maxMessages > 0 {
			pipe.LTrim(ctx, k, int64(-r.maxMessages), -1)
		}
		pipe.Expire(ctx, k, r.ttl)
		return nil
	})
	return err
}

func (r *ConversationRepository) History(ctx context.Context, sessionId string, scope string) ([]store.Turn, error) {
	raw, err := r.rdb.LRange(ctx, key(sessionId, scope), 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	turns := make([]store.Turn, 0, len(raw))
	for _, item := range raw {
		var t store.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			return nil, fmt.Errorf("decode turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, nil
}

func (r *ConversationRepository) Clear(ctx context.Context, sessionId string) error {
	return r.rdb.Del(ctx, key(sessionId, store.ScopeRewriter), key(sessionId, store.ScopeAnswer)).Err()
}
