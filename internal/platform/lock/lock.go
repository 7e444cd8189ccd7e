// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lock provides short-lived, named mutual exclusion.

Two implementations share the [Locker] contract:

  - [Redis]: SET NX PX with a random token, released by a compare-and-delete
    script so an expired holder never frees someone else's lock.
  - [Local]: an in-process table for single-replica and CLI runs.

Both are non-blocking: Acquire either takes the lock or returns [ErrHeld].
*/
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrHeld is returned when another holder owns the key.
var ErrHeld = errors.New("lock: already held")

// Release frees a lock obtained from [Locker.Acquire].
type Release func(ctx context.Context) error

// Locker grants exclusive ownership of a key for at most ttl.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

// # Redis

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis is a [Locker] shared by every process talking to the same server.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis wraps an existing client.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Acquire implements [Locker].
func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHeld
	}

	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, r.client, []string{key}, token).Err()
	}, nil
}

// # Local

type localEntry struct {
	token     string
	expiresAt time.Time
}

// Local is a process-wide [Locker]. Entries past their ttl count as free.
type Local struct {
	mu      sync.Mutex
	entries map[string]localEntry
	now     func() time.Time
}

// NewLocal returns an empty in-process lock table.
func NewLocal() *Local {
	return &Local{entries: make(map[string]localEntry), now: time.Now}
}

// Acquire implements [Locker].
func (l *Local) Acquire(_ context.Context, key string, ttl time.Duration) (Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry, found := l.entries[key]; found && l.now().Before(entry.expiresAt) {
		return nil, ErrHeld
	}

	token := uuid.NewString()
	l.entries[key] = localEntry{token: token, expiresAt: l.now().Add(ttl)}

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()

		if entry, found := l.entries[key]; found && entry.token == token {
			delete(l.entries, key)
		}
		return nil
	}, nil
}
