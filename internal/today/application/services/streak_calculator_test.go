package services

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/dayquest/internal/today/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func achieveOn(t *testing.T, quests questStore, date domain.DateKey) {
	t.Helper()
	q := domain.NewQuest(date, domain.QuestCompleteOne, 1)
	q.ApplyProgress(1, now)
	_, err := quests.InsertIgnore(context.Background(), q)
	require.NoError(t, err)
}

func TestStreakCalculator_Recalculate(t *testing.T) {
	store := newMemStore()
	quests := questStore{store}
	streaks := streakStore{store}
	calc := NewStreakCalculator(quests, streaks)
	ctx := context.Background()

	require.NoError(t, streaks.Save(ctx, &domain.Streak{Current: 2, Best: 2, LastAchieved: "2026-02-13"}))

	// Not achieved yet today: untouched.
	res, err := calc.Recalculate(ctx, day, now)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, 2, res.Streak.Current)
	assert.Equal(t, now, res.Streak.UpdatedAt)

	achieveOn(t, quests, day)
	res, err = calc.Recalculate(ctx, day, now)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Equal(t, 3, res.Streak.Current)
	assert.Equal(t, 3, res.Streak.Best)

	// Re-running the same day is a no-op.
	res, err = calc.Recalculate(ctx, day, now)
	require.NoError(t, err)
	assert.False(t, res.Changed)
	assert.Equal(t, 3, res.Streak.Current)

	// Two days later without achievement the streak breaks.
	res, err = calc.Recalculate(ctx, day.AddDays(2), now)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Zero(t, res.Streak.Current)
	assert.Equal(t, 3, res.Streak.Best)

	saved, err := streaks.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, *res.Streak, *saved)
}

func TestStreakCalculator_StartsFromZero(t *testing.T) {
	store := newMemStore()
	calc := NewStreakCalculator(questStore{store}, streakStore{store})

	res, err := calc.Recalculate(context.Background(), day, now)
	require.NoError(t, err)
	assert.Equal(t, domain.Streak{UpdatedAt: now}, *res.Streak)
}
