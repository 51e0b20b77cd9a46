package lock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	ctx := context.Background()
	l := NewLocalLocker()

	release, err := l.Acquire(ctx, "refresh:2026-02-14")
	require.NoError(t, err)

	_, err = l.Acquire(ctx, "refresh:2026-02-14")
	assert.ErrorIs(t, err, ErrNotAcquired)

	other, err := l.Acquire(ctx, "refresh:2026-02-15")
	require.NoError(t, err)
	require.NoError(t, other(ctx))

	require.NoError(t, release(ctx))
	require.NoError(t, release(ctx), "double release is harmless")

	again, err := l.Acquire(ctx, "refresh:2026-02-14")
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestNewRedisLocker_InvalidURL(t *testing.T) {
	_, err := NewRedisLocker(context.Background(), "://nope", 0)
	assert.Error(t, err)
}
