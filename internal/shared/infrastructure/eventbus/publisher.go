package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/dayquest/internal/shared/domain"
)

// Publisher defines the interface for publishing events to a message broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}

// PublishDomainEvents serializes and publishes events after a unit of work
// committed. Delivery is best effort: failures are logged and counted, never
// returned, because the state change they describe is already durable.
func PublishDomainEvents(ctx context.Context, pub Publisher, events []domain.DomainEvent, logger *slog.Logger) int {
	if pub == nil || len(events) == 0 {
		return 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	failed := 0
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			failed++
			logger.ErrorContext(ctx, "failed to marshal domain event",
				"routing_key", event.RoutingKey(),
				"error", err,
			)
			continue
		}
		if err := pub.Publish(ctx, event.RoutingKey(), payload); err != nil {
			failed++
			logger.WarnContext(ctx, "domain event not delivered",
				"routing_key", event.RoutingKey(),
				"event_id", event.EventID(),
				"error", err,
			)
		}
	}
	return failed
}

// NoopPublisher is a no-op publisher for tests and headless runs.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a publisher that does nothing.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs the message but doesn't actually publish.
func (p *NoopPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.logger.DebugContext(ctx, "noop publish",
		"routing_key", routingKey,
		"size", len(payload),
	)
	return nil
}

// Close is a no-op.
func (p *NoopPublisher) Close() error {
	return nil
}

// MultiPublisher fans a message out to several publishers. The first error is
// returned after every publisher has been tried.
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	var first error
	for _, p := range m {
		if err := p.Publish(ctx, routingKey, payload); err != nil && first == nil {
			first = fmt.Errorf("publish %s: %w", routingKey, err)
		}
	}
	return first
}

func (m MultiPublisher) Close() error {
	var first error
	for _, p := range m {
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
