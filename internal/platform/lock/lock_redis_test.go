// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build integration

package lock_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/promptdb/internal/platform/lock"
	"github.com/taibuivan/promptdb/internal/platform/redis"
	"github.com/taibuivan/promptdb/internal/platform/testdb"
)

func newRedisLocker(t *testing.T) *lock.Redis {
	t.Helper()

	client, err := redis.NewClient(context.Background(), testdb.RedisURL(t), testdb.Logger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return lock.NewRedis(client)
}

/*
TestRedis_Exclusive shares one key between two lockers on the same server.
*/
func TestRedis_Exclusive(t *testing.T) {
	ctx := context.Background()
	key := "test:lock:" + uuid.NewString()

	first := newRedisLocker(t)
	second := newRedisLocker(t)

	release, err := first.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)

	_, err = second.Acquire(ctx, key, time.Minute)
	assert.ErrorIs(t, err, lock.ErrHeld)

	require.NoError(t, release(ctx))

	releaseSecond, err := second.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	require.NoError(t, releaseSecond(ctx))
}

/*
TestRedis_StaleReleaseKeepsNewHolder only deletes the key while it holds our token.
*/
func TestRedis_StaleReleaseKeepsNewHolder(t *testing.T) {
	ctx := context.Background()
	key := "test:lock:" + uuid.NewString()
	locker := newRedisLocker(t)

	staleRelease, err := locker.Acquire(ctx, key, 50*time.Millisecond)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		release, err := locker.Acquire(ctx, key, time.Minute)
		if err != nil {
			return false
		}
		t.Cleanup(func() { _ = release(ctx) })
		return true
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, staleRelease(ctx))

	_, err = locker.Acquire(ctx, key, time.Minute)
	assert.ErrorIs(t, err, lock.ErrHeld)
}
