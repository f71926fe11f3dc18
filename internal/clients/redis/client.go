package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finecho-server/internal/config"
	"finecho-server/internal/observability"

	"github.com/redis/go-redis/v9"
)

var ErrNotInitialized = errors.New("Redis client not initialized")

// Client wraps the Redis client with observability
type Client struct {
	client *redis.Client
	logger *observability.Logger
}

// NewClient creates a new Redis client. It returns nil without error when Redis is disabled.
func NewClient(cfg config.RedisConfig, logger *observability.Logger) (*Client, error) {
	if !cfg.Enabled {
		logger.Info(context.Background(), "Redis is disabled, skipping client initialization")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "host", Value: cfg.Host},
		observability.Field{Key: "port", Value: cfg.Port},
		observability.Field{Key: "db", Value: cfg.DB},
	), "successfully connected to Redis")

	return Wrap(client, logger), nil
}

// Wrap adapts an existing go-redis client, e.g. one pointed at a test server.
func Wrap(client *redis.Client, logger *observability.Logger) *Client {
	return &Client{client: client, logger: logger}
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	if c == nil {
		return nil
	}
	return c.client
}

// Close closes the Redis connection
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// SetNX sets key to value with a TTL only if the key does not exist
func (c *Client) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if !c.IsEnabled() {
		return false, ErrNotInitialized
	}
	return c.client.SetNX(ctx, key, value, ttl).Result()
}

// Get returns the string value of key, or redis.Nil when missing
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	if !c.IsEnabled() {
		return "", ErrNotInitialized
	}
	return c.client.Get(ctx, key).Result()
}

// RunScript executes a Lua script, loading it on first use
func (c *Client) RunScript(ctx context.Context, script *redis.Script, keys []string, args ...interface{}) (interface{}, error) {
	if !c.IsEnabled() {
		return nil, ErrNotInitialized
	}
	return script.Run(ctx, c.client, keys, args...).Result()
}

// Del deletes keys
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if !c.IsEnabled() {
		return ErrNotInitialized
	}
	return c.client.Del(ctx, keys...).Err()
}

// Ping checks connectivity
func (c *Client) Ping(ctx context.Context) error {
	if !c.IsEnabled() {
		return ErrNotInitialized
	}
	return c.client.Ping(ctx).Err()
}

// IsEnabled returns whether Redis is enabled
func (c *Client) IsEnabled() bool {
	return c != nil && c.client != nil
}
