// Package subscribers delivers user-facing notifications for domain events.
package subscribers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/dayquest/internal/reminders/domain"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/eventbus"
	todayDomain "github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// EnabledFunc reports whether notifications are currently on.
type EnabledFunc func(ctx context.Context) bool

// Notifier renders due reminders and achieved quests as one-line
// notifications on an output stream.
type Notifier struct {
	mu      sync.Mutex
	out     io.Writer
	enabled EnabledFunc
	logger  *slog.Logger
}

// NewNotifier creates a Notifier. A nil enabled func means always on.
func NewNotifier(out io.Writer, enabled EnabledFunc, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	if enabled == nil {
		enabled = func(context.Context) bool { return true }
	}
	return &Notifier{out: out, enabled: enabled, logger: logger}
}

// EventTypes returns the event types this subscriber handles.
func (n *Notifier) EventTypes() []string {
	return []string{
		domain.RoutingReminderDue,
		todayDomain.RoutingQuestAchieved,
	}
}

// Handle processes an event.
func (n *Notifier) Handle(ctx context.Context, event *eventbus.ConsumedEvent) error {
	if !n.enabled(ctx) {
		n.logger.DebugContext(ctx, "notifications disabled, skipping event",
			"routing_key", event.RoutingKey,
		)
		return nil
	}

	switch event.RoutingKey {
	case domain.RoutingReminderDue:
		return n.handleReminderDue(ctx, event)
	case todayDomain.RoutingQuestAchieved:
		return n.handleQuestAchieved(ctx, event)
	default:
		n.logger.WarnContext(ctx, "unknown event type",
			"routing_key", event.RoutingKey,
		)
		return nil
	}
}

func (n *Notifier) handleReminderDue(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload domain.ReminderDue
	if err := event.Decode(&payload); err != nil {
		return fmt.Errorf("decode reminder: %w", err)
	}
	r := payload.Reminder

	line := r.Title
	if r.Kind == domain.KindGoal {
		line = fmt.Sprintf("Goal time for %q.", r.Title)
	}
	n.logger.InfoContext(ctx, "reminder delivered",
		"reminder_id", r.ID,
		"kind", r.Kind,
		"at", r.At,
	)
	return n.write("[%s] %s", r.At.Format("15:04"), line)
}

func (n *Notifier) handleQuestAchieved(ctx context.Context, event *eventbus.ConsumedEvent) error {
	var payload todayDomain.QuestAchieved
	if err := event.Decode(&payload); err != nil {
		return fmt.Errorf("decode quest: %w", err)
	}
	n.logger.InfoContext(ctx, "quest achieved",
		"date", payload.Date,
		"quest_type", payload.Type,
	)
	return n.write("Quest complete: %s (%s)", payload.Title, payload.Date)
}

func (n *Notifier) write(format string, args ...any) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintf(n.out, format+"\n", args...)
	return err
}
