// Package lock provides per-call mutual exclusion so a call id is never processed by
// two pipeline runs at once.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	redisclient "finecho-server/internal/clients/redis"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrCallLocked is returned when another run already holds the call.
var ErrCallLocked = errors.New("call is already being processed")

// Locker hands out a token for a call id. The token must be presented to Release,
// which lets the lock be released from a different process than the one that took it.
type Locker interface {
	Acquire(ctx context.Context, callID uuid.UUID) (string, error)
	Release(ctx context.Context, callID uuid.UUID, token string) error
}

const keyPrefix = "finecho:call-lock:"

func key(callID uuid.UUID) string {
	return keyPrefix + callID.String()
}

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker uses SET NX PX so the lock is shared by the API and the asynq worker.
type RedisLocker struct {
	client *redisclient.Client
	ttl    time.Duration
}

func NewRedisLocker(client *redisclient.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl}
}

func (l *RedisLocker) Acquire(ctx context.Context, callID uuid.UUID) (string, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key(callID), token, l.ttl)
	if err != nil {
		return "", fmt.Errorf("failed to acquire call lock: %w", err)
	}
	if !ok {
		return "", ErrCallLocked
	}
	return token, nil
}

func (l *RedisLocker) Release(ctx context.Context, callID uuid.UUID, token string) error {
	if _, err := l.client.RunScript(ctx, releaseScript, []string{key(callID)}, token); err != nil {
		return fmt.Errorf("failed to release call lock: %w", err)
	}
	return nil
}

// MemoryLocker is used when Redis is disabled. It only protects a single process,
// which is all the in-process dispatcher needs.
type MemoryLocker struct {
	mu    sync.Mutex
	held  map[uuid.UUID]memoryLease
	ttl   time.Duration
	clock func() time.Time
}

type memoryLease struct {
	token   string
	expires time.Time
}

func NewMemoryLocker(ttl time.Duration) *MemoryLocker {
	return &MemoryLocker{
		held:  make(map[uuid.UUID]memoryLease),
		ttl:   ttl,
		clock: time.Now,
	}
}

func (l *MemoryLocker) Acquire(_ context.Context, callID uuid.UUID) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if lease, ok := l.held[callID]; ok && (l.ttl <= 0 || now.Before(lease.expires)) {
		return "", ErrCallLocked
	}

	token := uuid.NewString()
	l.held[callID] = memoryLease{token: token, expires: now.Add(l.ttl)}
	return token, nil
}

func (l *MemoryLocker) Release(_ context.Context, callID uuid.UUID, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lease, ok := l.held[callID]; ok && lease.token == token {
		delete(l.held, callID)
	}
	return nil
}
