// Package redis backs the single-in-flight appointment submission guard with
// a shared Redis instance.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// guardTTL bounds how long a form token stays claimed after a successful
// submission, long enough to swallow a double-click, short enough that an
// abandoned modal does not pin the key.
const guardTTL = 2 * time.Minute

const defaultDialTimeout = 5 * time.Second

// Config captures the settings for the guard's Redis connection.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// SubmitGuard serializes appointment submissions per form instance using a
// SET NX claim on the form token.
type SubmitGuard struct {
	client *redis.Client
}

// Open dials Redis and validates connectivity with a ping before the guard
// is put in front of submissions. A non-positive timeout gets the default.
func Open(ctx context.Context, cfg Config) (*SubmitGuard, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("submit guard redis ping: %w", err)
	}

	return NewSubmitGuard(client), nil
}

// NewSubmitGuard wraps an already-connected client.
func NewSubmitGuard(client *redis.Client) *SubmitGuard {
	return &SubmitGuard{client: client}
}

// Acquire claims the token. It returns false when a submission with the same
// token is already in flight (or recently succeeded).
func (g *SubmitGuard) Acquire(ctx context.Context, token string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(token), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("submit guard acquire: %w", err)
	}
	return ok, nil
}

// Release frees the token so the user can retry a failed submission from the
// still-open form. Errors are ignored: at worst the TTL frees it.
func (g *SubmitGuard) Release(ctx context.Context, token string) {
	_ = g.client.Del(ctx, g.key(token)).Err()
}

func (g *SubmitGuard) key(token string) string {
	return "submit:" + token
}

// Ping reports whether Redis is reachable, for the readiness probe.
func (g *SubmitGuard) Ping(ctx context.Context) error {
	return g.client.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (g *SubmitGuard) Close() error {
	return g.client.Close()
}
