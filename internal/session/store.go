package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leasematch-platform/leasematch/internal/conversation"
)

// Store persists serialized conversation state in Redis, keyed by session ID.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a session store. Sessions expire after ttl of inactivity.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("conv:%s", sessionID)
}

// Load returns the stored state for the session, or nil when none exists.
func (s *Store) Load(ctx context.Context, sessionID string) (*conversation.ConversationState, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("loading session %s: %w", sessionID, err)
	}

	state, err := conversation.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", sessionID, err)
	}
	return &state, nil
}

// Save stores the state and refreshes the session TTL.
func (s *Store) Save(ctx context.Context, state conversation.ConversationState) error {
	data, err := conversation.Serialize(state)
	if err != nil {
		return fmt.Errorf("encoding session %s: %w", state.SessionID, err)
	}
	if err := s.client.Set(ctx, sessionKey(state.SessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("saving session %s: %w", state.SessionID, err)
	}
	return nil
}

// Clear deletes the session.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clearing session %s: %w", sessionID, err)
	}
	return nil
}
