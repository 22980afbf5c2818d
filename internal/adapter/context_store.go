package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"studyforge/internal/cache"
	"studyforge/internal/domain"
	"studyforge/internal/logger"

	"go.uber.org/zap"
)

// RedisContextStore keeps agent conversation contexts in Redis with a TTL, so
// abandoned sessions expire instead of accumulating for the process lifetime.
type RedisContextStore struct {
	cache domain.Cache
	ttl   time.Duration
}

func NewRedisContextStore(c domain.Cache, ttl time.Duration) domain.ContextStore {
	return &RedisContextStore{cache: c, ttl: ttl}
}

func contextKey(sessionID string) string {
	return cache.GenerateCacheKey("agent", "context", sessionID)
}

// Get returns the stored context for the session. A missing or expired entry
// yields a fresh empty context rather than an error; a corrupt entry is
// discarded the same way so one bad record cannot wedge a session.
func (s *RedisContextStore) Get(ctx context.Context, sessionID string) (*domain.ConversationContext, error) {
	raw, err := s.cache.Get(ctx, contextKey(sessionID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return domain.NewConversationContext(sessionID), nil
		}
		return nil, err
	}

	var conversation domain.ConversationContext
	if err := json.Unmarshal([]byte(raw), &conversation); err != nil {
		logger.Get().Warn("discarding unreadable conversation context",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return domain.NewConversationContext(sessionID), nil
	}
	return &conversation, nil
}

// Save persists the context and refreshes its TTL.
func (s *RedisContextStore) Save(ctx context.Context, conversation *domain.ConversationContext) error {
	data, err := json.Marshal(conversation)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, contextKey(conversation.SessionID), string(data), s.ttl)
}

// Clear removes the session's context. Clearing an absent session is a no-op.
func (s *RedisContextStore) Clear(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, contextKey(sessionID))
}
