package subscribers_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/reminders/application/subscribers"
	"github.com/felixgeelhaar/dayquest/internal/reminders/domain"
	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
	"github.com/felixgeelhaar/dayquest/internal/shared/infrastructure/eventbus"
	todayDomain "github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func publish(t *testing.T, n *subscribers.Notifier, events ...sharedDomain.DomainEvent) {
	t.Helper()
	bus := eventbus.NewInProcessEventBus(discardLogger())
	bus.RegisterConsumer(n)
	failed := eventbus.PublishDomainEvents(context.Background(), bus, events, discardLogger())
	require.Zero(t, failed)
}

func TestNotifier_Reminders(t *testing.T) {
	at := time.Date(2026, 2, 14, 7, 0, 0, 0, time.UTC)
	fixed := domain.DefaultFixedReminders()[0]

	var out bytes.Buffer
	n := subscribers.NewNotifier(&out, nil, discardLogger())
	publish(t, n,
		domain.NewReminderDue(domain.Reminder{ID: fixed.ID, Kind: domain.KindFixed, Title: fixed.Message(), At: at}, at),
		domain.NewReminderDue(domain.Reminder{ID: "goal_task_3", Kind: domain.KindGoal, TaskID: 3, Title: "Stretch", At: at.Add(90 * time.Minute)}, at),
	)

	assert.Equal(t,
		"[07:00] Time to check your 07:00 tasks.\n"+
			"[08:30] Goal time for \"Stretch\".\n",
		out.String())
}

func TestNotifier_QuestAchieved(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	quest := todayDomain.NewQuest("2026-02-14", todayDomain.QuestCompleteOne, 1)

	var out bytes.Buffer
	n := subscribers.NewNotifier(&out, nil, discardLogger())
	publish(t, n, todayDomain.NewQuestAchieved(quest, now))

	assert.Equal(t, "Quest complete: "+quest.Title+" (2026-02-14)\n", out.String())
}

func TestNotifier_Disabled(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	quest := todayDomain.NewQuest("2026-02-14", todayDomain.QuestCompleteAll, 3)

	var out bytes.Buffer
	n := subscribers.NewNotifier(&out, func(context.Context) bool { return false }, discardLogger())
	publish(t, n, todayDomain.NewQuestAchieved(quest, now))

	assert.Empty(t, out.String())
}

func TestNotifier_EventTypes(t *testing.T) {
	n := subscribers.NewNotifier(io.Discard, nil, nil)
	assert.ElementsMatch(t,
		[]string{domain.RoutingReminderDue, todayDomain.RoutingQuestAchieved},
		n.EventTypes())
}
