// Package tokenstore persists the only client-local state CareerBridge keeps
// between runs: the bearer token and the optional remembered login email.
package tokenstore

import (
	"context"
	"fmt"
	"go-careerbridge/pkg/redis"
	"strings"
)

// Store is implemented by every persistence backend.
type Store interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
	RememberedEmail(ctx context.Context) (string, error)
	// SetRememberedEmail stores email; an empty email forgets it.
	SetRememberedEmail(ctx context.Context, email string) error
}

// Options selects and configures a backend.
type Options struct {
	Backend       string // file | redis | memory
	FilePath      string // file backend; empty derives the path from Profile
	Profile       string
	RedisURL      string
	RedisPassword string
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", "file":
		return NewFileStore(opts.FilePath, opts.Profile)
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		client, err := redis.NewClient(ctx, redis.Config{URL: opts.RedisURL, Password: opts.RedisPassword})
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, opts.Profile), nil
	default:
		return nil, fmt.Errorf("tokenstore: unknown backend %q", opts.Backend)
	}
}
