package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/reminders/domain"
	sharedApplication "github.com/felixgeelhaar/dayquest/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/eventbus"
)

// Dispatcher publishes ReminderDue for reminders whose instant has passed.
type Dispatcher struct {
	planner   *Planner
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(planner *Planner, publisher eventbus.Publisher, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{planner: planner, publisher: publisher, logger: logger}
}

// DispatchDue publishes every reminder with since < at <= now and returns
// how many were delivered. Callers pass the previous tick as since, so each
// instant is dispatched once per process.
func (d *Dispatcher) DispatchDue(ctx context.Context, since, now time.Time) (int, error) {
	if !now.After(since) {
		return 0, nil
	}
	days := int(now.Sub(since).Hours()/24) + 2
	upcoming, err := d.planner.Upcoming(ctx, since, days)
	if err != nil {
		return 0, err
	}

	var events []sharedDomain.DomainEvent
	for _, r := range upcoming {
		if r.At.After(since) && !r.At.After(now) {
			events = append(events, domain.NewReminderDue(r, now))
		}
	}
	if len(events) == 0 {
		return 0, nil
	}

	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx))
	failed := eventbus.PublishDomainEvents(ctx, d.publisher, events, d.logger)
	d.logger.InfoContext(ctx, "reminders dispatched", "due", len(events), "failed", failed)
	return len(events) - failed, nil
}
