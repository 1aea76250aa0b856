// Package lock keeps a maintenance job from running twice at once, across replicas
// when redis is configured and within the process otherwise.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrHeld = errors.New("lock: held by another holder")

type Locker interface {
	// Acquire returns a release func, or ErrHeld when someone else holds key.
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// Open returns a redis locker when url is set and a process-local one otherwise.
// The close func releases the redis client and must run after the last Acquire.
func Open(url string) (Locker, func() error) {
	if url == "" {
		return NewLocal(), noClose
	}

	r, err := NewRedisFromURL(url)
	if err != nil {
		logrus.WithError(err).Warn("redis unavailable; job locks are process-local")
		return NewLocal(), noClose
	}
	return r, r.Close
}

func noClose() error { return nil }

// ===============================
// Redis
// ===============================

type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// NewRedisFromURL parses a redis:// URL into a client.
func NewRedisFromURL(url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return NewRedis(redis.NewClient(opts)), nil
}

// only the holder that set the token may delete the key
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHeld
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, r.client, []string{key}, token).Err()
	}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

// ===============================
// Local
// ===============================

type Local struct {
	mu   sync.Mutex
	held map[string]bool
}

func NewLocal() *Local {
	return &Local{held: map[string]bool{}}
}

func (l *Local) Acquire(_ context.Context, key string, _ time.Duration) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[key] {
		return nil, ErrHeld
	}
	l.held[key] = true

	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, nil
}
