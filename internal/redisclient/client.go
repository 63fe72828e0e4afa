// Package redisclient wraps the Redis connection used as the admin
// session store.
package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client and verifies connectivity.
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// CreateSession stores a session token for username with the given TTL.
func (c *Client) CreateSession(ctx context.Context, token, username string, ttl time.Duration) error {
	return c.rdb.Set(ctx, sessionKey(token), username, ttl).Err()
}

// GetSession returns the username a token was issued to, or ok=false when
// the token is unknown or expired.
func (c *Client) GetSession(ctx context.Context, token string) (username string, ok bool, err error) {
	val, err := c.rdb.Get(ctx, sessionKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// DeleteSession revokes a session token.
func (c *Client) DeleteSession(ctx context.Context, token string) error {
	return c.rdb.Del(ctx, sessionKey(token)).Err()
}
