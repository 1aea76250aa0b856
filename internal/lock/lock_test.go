package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalExcludesUntilReleased(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	release, err := l.Acquire(ctx, "job:calendar", time.Minute)
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "job:calendar", time.Minute)
	assert.ErrorIs(t, err, ErrHeld)

	other, err := l.Acquire(ctx, "job:retention", time.Minute)
	require.NoError(t, err)
	other()

	release()
	again, err := l.Acquire(ctx, "job:calendar", time.Minute)
	require.NoError(t, err)
	again()
}

func TestNewRedisFromURLRejectsBadURL(t *testing.T) {
	_, err := NewRedisFromURL("not a url")
	assert.Error(t, err)
}

func TestOpenWithoutURLIsLocal(t *testing.T) {
	l, closeFn := Open("")

	assert.IsType(t, &Local{}, l)
	assert.NoError(t, closeFn())
}

func TestOpenWithURLClosesRedisClient(t *testing.T) {
	l, closeFn := Open("redis://localhost:6379/0")

	r, ok := l.(*Redis)
	require.True(t, ok)
	require.NoError(t, closeFn())

	// a closed client refuses further commands
	assert.Error(t, r.client.Ping(context.Background()).Err())
}

func TestOpenWithBadURLFallsBackToLocal(t *testing.T) {
	l, closeFn := Open("not-a-redis-url")

	assert.IsType(t, &Local{}, l)
	assert.NoError(t, closeFn())
}
