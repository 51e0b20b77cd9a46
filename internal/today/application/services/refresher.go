package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	sharedApplication "github.com/felixgeelhaar/dayquest/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/lock"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/felixgeelhaar/dayquest/pkg/observability"
)

// RefreshResult summarizes one EnsureTodayReady run.
type RefreshResult struct {
	Date      domain.DateKey
	Generated int
	Achieved  []*domain.Quest
	Streak    *domain.Streak
}

// TransitionOutcome is a transition plus the progress it caused.
type TransitionOutcome struct {
	*TransitionResult
	Achieved []*domain.Quest
	Streak   *domain.Streak
}

// Refresher runs the daily pipeline in order and publishes what happened.
type Refresher struct {
	generator *Generator
	machine   *StatusMachine
	quests    *QuestSynchronizer
	streaks   *StreakCalculator
	locker    lock.Locker
	publisher eventbus.Publisher
	metrics   observability.Metrics
	logger    *slog.Logger
}

// RefresherDeps groups the Refresher's collaborators. Locker, Publisher and
// Metrics are optional.
type RefresherDeps struct {
	Generator *Generator
	Machine   *StatusMachine
	Quests    *QuestSynchronizer
	Streaks   *StreakCalculator
	Locker    lock.Locker
	Publisher eventbus.Publisher
	Metrics   observability.Metrics
	Logger    *slog.Logger
}

// NewRefresher creates a Refresher.
func NewRefresher(deps RefresherDeps) *Refresher {
	r := &Refresher{
		generator: deps.Generator,
		machine:   deps.Machine,
		quests:    deps.Quests,
		streaks:   deps.Streaks,
		locker:    deps.Locker,
		publisher: deps.Publisher,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
	if r.metrics == nil {
		r.metrics = observability.NoopMetrics{}
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// EnsureTodayReady generates the date's items, aligns quest targets and
// progress, then recalculates the streak. Every step is idempotent, so the
// refresh lock only avoids duplicate work; when it cannot be taken the
// pipeline still runs.
func (r *Refresher) EnsureTodayReady(ctx context.Context, date domain.DateKey, now time.Time) (*RefreshResult, error) {
	start := time.Now()
	logger := observability.LogOperation(r.logger, "ensure_today_ready", observability.DateKey, date)

	release := r.acquire(ctx, logger, date)
	defer release()

	generated, err := r.generator.Generate(ctx, date, now)
	if err != nil {
		return nil, err
	}
	if err := r.quests.EnsureMeta(ctx, date); err != nil {
		return nil, err
	}
	achieved, err := r.quests.SyncProgress(ctx, date, now)
	if err != nil {
		return nil, err
	}
	streak, err := r.streaks.Recalculate(ctx, date, now)
	if err != nil {
		return nil, err
	}

	var events []sharedDomain.DomainEvent
	if generated > 0 {
		events = append(events, domain.NewItemsGenerated(date, generated, now))
	}
	events = append(events, r.progressEvents(achieved, streak, now)...)
	r.publish(ctx, events)

	r.metrics.Counter("items_generated", int64(generated))
	r.metrics.Timing("ensure_today_ready", time.Since(start))
	logger.InfoContext(ctx, "today ready",
		"generated", generated,
		"achieved", len(achieved),
		"streak", streak.Streak.Current,
	)

	return &RefreshResult{
		Date:      date,
		Generated: generated,
		Achieved:  achieved,
		Streak:    streak.Streak,
	}, nil
}

// ApplyStatusTransition applies a transition, then resyncs quest progress
// and the streak for the item's date.
func (r *Refresher) ApplyStatusTransition(ctx context.Context, cmd TransitionCommand) (*TransitionOutcome, error) {
	result, err := r.machine.Transition(ctx, cmd)
	if err != nil {
		return nil, err
	}

	date := result.Item.DateKey
	achieved, err := r.quests.SyncProgress(ctx, date, cmd.Now)
	if err != nil {
		return nil, err
	}
	streak, err := r.streaks.Recalculate(ctx, date, cmd.Now)
	if err != nil {
		return nil, err
	}

	events := []sharedDomain.DomainEvent{domain.NewItemStatusChanged(result.Item, result.Previous, cmd.Now)}
	events = append(events, r.progressEvents(achieved, streak, cmd.Now)...)
	r.publish(ctx, events)

	r.metrics.Counter("item_transitions", 1, observability.T("status", string(cmd.To)))
	r.logger.DebugContext(ctx, "item transitioned",
		"item_id", result.Item.ID,
		"from", result.Previous,
		"to", result.Item.Status,
		"deferred_to", result.Item.DeferredTo,
	)

	return &TransitionOutcome{TransitionResult: result, Achieved: achieved, Streak: streak.Streak}, nil
}

func (r *Refresher) progressEvents(achieved []*domain.Quest, streak *StreakResult, now time.Time) []sharedDomain.DomainEvent {
	events := make([]sharedDomain.DomainEvent, 0, len(achieved)+1)
	for _, q := range achieved {
		events = append(events, domain.NewQuestAchieved(q, now))
	}
	if streak.Changed {
		events = append(events, domain.NewStreakUpdated(streak.Streak, now))
	}
	return events
}

func (r *Refresher) publish(ctx context.Context, events []sharedDomain.DomainEvent) {
	if len(events) == 0 || r.publisher == nil {
		return
	}
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(ctx))
	if failed := eventbus.PublishDomainEvents(ctx, r.publisher, events, r.logger); failed > 0 {
		r.metrics.Counter("events_failed", int64(failed))
	}
}

func (r *Refresher) acquire(ctx context.Context, logger *slog.Logger, date domain.DateKey) func() {
	noop := func() {}
	if r.locker == nil {
		return noop
	}

	release, err := r.locker.Acquire(ctx, "refresh:"+date.String())
	switch {
	case errors.Is(err, lock.ErrNotAcquired):
		logger.WarnContext(ctx, "refresh already running elsewhere, continuing")
		return noop
	case err != nil:
		logger.WarnContext(ctx, "refresh lock unavailable, continuing", "error", err)
		return noop
	}

	return func() {
		// The caller's context may already be cancelled.
		if err := release(context.WithoutCancel(ctx)); err != nil {
			logger.WarnContext(ctx, "failed to release refresh lock", "error", err)
		}
	}
}
