package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	fieldToken = "access_token"
	fieldEmail = "logged_in_email"
)

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    30 * 24 * time.Hour,
	}
}

// RedisStore keeps one hash per browser session id. Only the token and the
// email are ever stored; everything else the UI shows is re-fetched from the
// backend on demand.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func (r *RedisStore) Save(ctx context.Context, sid string, s Session) error {
	key := sessionKey(sid)
	if err := r.client.HSet(ctx, key, fieldToken, s.Token, fieldEmail, s.Email).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}
	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis expire failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, sid string) (Session, error) {
	fields, err := r.client.HGetAll(ctx, sessionKey(sid)).Result()
	if err != nil {
		return Session{}, fmt.Errorf("redis hgetall failed: %w", err)
	}
	if fields[fieldToken] == "" {
		return Session{}, ErrNoSession
	}
	return Session{
		Token: fields[fieldToken],
		Email: fields[fieldEmail],
	}, nil
}

func (r *RedisStore) Delete(ctx context.Context, sid string) error {
	if err := r.client.Del(ctx, sessionKey(sid)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}
