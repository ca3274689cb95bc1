package helper

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"event_manager/model"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps booking sessions for the lifetime of a checkout flow.
// There is no persistence contract beyond that; expiry is abandonment.
type SessionStore interface {
	Save(ctx context.Context, session *model.BookingSession) error
	Get(ctx context.Context, id string) (*model.BookingSession, error)
	Delete(ctx context.Context, id string) error
}

type RedisSessionStore struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Redis: client, TTL: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf("booking_session:%s", id)
}

func (s *RedisSessionStore) Save(ctx context.Context, session *model.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session store: encode session: %w", err)
	}
	return s.Redis.Set(ctx, sessionKey(session.ID), data, s.TTL).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*model.BookingSession, error) {
	data, err := s.Redis.Get(ctx, sessionKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var session model.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("session store: decode session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.Redis.Del(ctx, sessionKey(id)).Err()
}
