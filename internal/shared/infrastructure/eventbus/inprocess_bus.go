package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// InProcessEventBus delivers events synchronously to registered consumers.
// It is the publisher used when no broker is configured.
type InProcessEventBus struct {
	mu        sync.RWMutex
	consumers map[string][]EventConsumer
	logger    *slog.Logger
}

// NewInProcessEventBus creates a new in-process event bus.
func NewInProcessEventBus(logger *slog.Logger) *InProcessEventBus {
	if logger == nil {
		logger = slog.Default()
	}
	return &InProcessEventBus{
		consumers: make(map[string][]EventConsumer),
		logger:    logger,
	}
}

// RegisterConsumer registers a consumer for each of its event types.
func (b *InProcessEventBus) RegisterConsumer(consumer EventConsumer) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, eventType := range consumer.EventTypes() {
		b.consumers[eventType] = append(b.consumers[eventType], consumer)
	}
}

// ConsumerCount returns the number of registrations across all types.
func (b *InProcessEventBus) ConsumerCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, c := range b.consumers {
		n += len(c)
	}
	return n
}

// Publish decodes the envelope and dispatches it to every consumer of the
// routing key. Consumer failures are logged; the publish itself succeeds.
func (b *InProcessEventBus) Publish(ctx context.Context, routingKey string, payload []byte) error {
	event := &ConsumedEvent{}
	if err := json.Unmarshal(payload, event); err != nil {
		b.logger.ErrorContext(ctx, "failed to unmarshal event payload",
			"routing_key", routingKey,
			"error", err,
		)
		return nil
	}
	event.Payload = payload
	if event.RoutingKey == "" {
		event.RoutingKey = routingKey
	}

	b.mu.RLock()
	consumers := append([]EventConsumer(nil), b.consumers[event.RoutingKey]...)
	b.mu.RUnlock()

	start := time.Now()
	for _, consumer := range consumers {
		if err := consumer.Handle(ctx, event); err != nil {
			b.logger.ErrorContext(ctx, "consumer failed to handle event",
				"routing_key", event.RoutingKey,
				"event_id", event.EventID,
				"error", err,
			)
		}
	}

	b.logger.DebugContext(ctx, "event dispatched",
		"routing_key", event.RoutingKey,
		"consumers", len(consumers),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// Close is a no-op for the in-process bus.
func (b *InProcessEventBus) Close() error {
	return nil
}
