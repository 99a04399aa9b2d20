package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeCache keeps one-time email codes in Redis with a TTL, so expiry
// needs no sweeper of its own.
type CodeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCodeCache connects to Redis and verifies the connection before
// returning.
func NewCodeCache(redisURL string, ttl time.Duration) (*CodeCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &CodeCache{client: rdb, ttl: ttl}, nil
}

func codeKey(purpose, email string) string {
	return fmt.Sprintf("code:%s:%s", purpose, email)
}

// Store writes the code, replacing any earlier one for the same
// purpose and address.
func (c *CodeCache) Store(ctx context.Context, purpose, email, code string) error {
	return c.client.Set(ctx, codeKey(purpose, email), code, c.ttl).Err()
}

// Verify compares the stored code and deletes it on a match, so a code
// is good for exactly one attempt that succeeds.
func (c *CodeCache) Verify(ctx context.Context, purpose, email, code string) (bool, error) {
	key := codeKey(purpose, email)
	stored, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if stored != code {
		return false, nil
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return false, err
	}
	return true, nil
}

func (c *CodeCache) Close() error {
	return c.client.Close()
}
