package application

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/shared/domain"
	"github.com/felixgeelhaar/dayquest/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	domain.BaseEvent
}

func TestNewEventMetadata(t *testing.T) {
	t.Run("uses correlation id from context", func(t *testing.T) {
		ctx := observability.WithCorrelationID(context.Background(), "corr-1")

		metadata := NewEventMetadata(ctx)

		assert.Equal(t, "corr-1", metadata.CorrelationID)
		assert.NotEmpty(t, metadata.CausationID)
	})

	t.Run("generates correlation id when absent", func(t *testing.T) {
		first := NewEventMetadata(context.Background())
		second := NewEventMetadata(context.Background())

		assert.NotEmpty(t, first.CorrelationID)
		assert.NotEqual(t, first.CorrelationID, second.CorrelationID)
		assert.NotEqual(t, first.CausationID, second.CausationID)
	})
}

func TestApplyEventMetadata(t *testing.T) {
	t.Run("applies metadata to every event", func(t *testing.T) {
		first := &testEvent{BaseEvent: domain.NewBaseEvent("1", "DailyItem", "today.item.status_changed", time.Now())}
		second := &testEvent{BaseEvent: domain.NewBaseEvent("2026-02-14", "Quest", "today.quest.achieved", time.Now())}
		metadata := NewEventMetadata(context.Background())

		ApplyEventMetadata([]domain.DomainEvent{first, second}, metadata)

		assert.Equal(t, metadata, first.Metadata())
		assert.Equal(t, metadata, second.Metadata())
	})

	t.Run("handles nil event list", func(t *testing.T) {
		require.NotPanics(t, func() {
			ApplyEventMetadata(nil, NewEventMetadata(context.Background()))
		})
	})
}
