package domain

import (
	"testing"
	"time"

	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyItem_SetStatusRewritesAllFields(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	item := NewDailyItem("2026-02-14", 10, now)
	assert.Equal(t, StatusTodo, item.Status)

	require.NoError(t, item.SetStatus(StatusDone, now, "2026-02-20"))
	assert.Equal(t, StatusDone, item.Status)
	require.NotNil(t, item.CompletedAt)
	assert.Equal(t, now, *item.CompletedAt)
	assert.True(t, item.DeferredTo.IsZero())

	require.NoError(t, item.SetStatus(StatusDeferred, now, "2026-02-15"))
	assert.Nil(t, item.CompletedAt)
	assert.Equal(t, DateKey("2026-02-15"), item.DeferredTo)

	for _, s := range []ItemStatus{StatusTodo, StatusSkipped} {
		require.NoError(t, item.SetStatus(s, now, "2026-02-15"))
		assert.Equal(t, s, item.Status)
		assert.Nil(t, item.CompletedAt)
		assert.True(t, item.DeferredTo.IsZero())
	}

	err := item.SetStatus("LATER", now, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.ErrorIs(t, err, sharedDomain.ErrValidation)
}

func TestDailyItem_DeferTarget(t *testing.T) {
	item := NewDailyItem("2026-02-14", 10, time.Now())

	target, err := item.DeferTarget("")
	require.NoError(t, err)
	assert.Equal(t, DateKey("2026-02-15"), target)

	target, err = item.DeferTarget("2026-02-14")
	require.NoError(t, err)
	assert.Equal(t, DateKey("2026-02-14"), target)

	target, err = item.DeferTarget("2026-03-01")
	require.NoError(t, err)
	assert.Equal(t, DateKey("2026-03-01"), target)

	_, err = item.DeferTarget("2026-02-13")
	assert.ErrorIs(t, err, ErrDeferBeforeSource)
}
