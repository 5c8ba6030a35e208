package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Locker provides mutual exclusion per key. The returned func releases the
// lock and is safe to call once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// LocalLocker serializes callers within one process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]chan struct{})}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	l.mu.Lock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return func() { <-ch }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

var ErrLockTimeout = errors.New("timed out waiting for lock")

// releaseScript deletes the key only if it still holds our token, so an
// expired lock taken over by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker serializes callers across every process sharing the Redis
// instance.
type RedisLocker struct {
	client  *redis.Client
	prefix  string
	ttl     time.Duration
	wait    time.Duration
	backoff time.Duration
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{
		client:  client,
		prefix:  "attractions:lock:",
		ttl:     10 * time.Second,
		wait:    5 * time.Second,
		backoff: 20 * time.Millisecond,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	name := l.prefix + key
	token := uuid.New().String()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, name, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrLockTimeout
		}

		select {
		case <-time.After(l.backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			if err := releaseScript.Run(context.Background(), l.client, []string{name}, token).Err(); err != nil {
				log.Warn().Err(err).Str("lock", name).Msg("failed to release lock")
			}
		})
	}, nil
}
