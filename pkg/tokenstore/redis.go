package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the session in Redis so several machines (or CI runners)
// can share one login per profile.
type RedisStore struct {
	client  *redis.Client
	profile string
}

func NewRedisStore(client *redis.Client, profile string) *RedisStore {
	if profile == "" {
		profile = "default"
	}
	return &RedisStore{client: client, profile: profile}
}

func (r *RedisStore) key(field string) string {
	return fmt.Sprintf("careerbridge:%s:%s", r.profile, field)
}

func (r *RedisStore) get(ctx context.Context, field string) (string, error) {
	val, err := r.client.Get(ctx, r.key(field)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: redis get %s: %w", field, err)
	}
	return val, nil
}

func (r *RedisStore) set(ctx context.Context, field, value string) error {
	if value == "" {
		return r.client.Del(ctx, r.key(field)).Err()
	}
	return r.client.Set(ctx, r.key(field), value, 0).Err()
}

func (r *RedisStore) Token(ctx context.Context) (string, error) {
	return r.get(ctx, "token")
}

func (r *RedisStore) SetToken(ctx context.Context, token string) error {
	return r.set(ctx, "token", token)
}

func (r *RedisStore) ClearToken(ctx context.Context) error {
	return r.set(ctx, "token", "")
}

func (r *RedisStore) RememberedEmail(ctx context.Context) (string, error) {
	return r.get(ctx, "email")
}

func (r *RedisStore) SetRememberedEmail(ctx context.Context, email string) error {
	return r.set(ctx, "email", email)
}

// Close releases the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
