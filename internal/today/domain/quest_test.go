package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuest_ApplyMeta(t *testing.T) {
	q := NewQuest("2026-02-14", QuestCompleteAll, 4)
	assert.Equal(t, "Complete all tasks today", q.Title)

	assert.False(t, q.ApplyMeta(QuestCompleteAll.Title(), 4))
	assert.True(t, q.ApplyMeta(QuestCompleteAll.Title(), 5))
	assert.Equal(t, 5, q.Target)
}

func TestQuest_ApplyProgress(t *testing.T) {
	first := time.Date(2026, 2, 14, 10, 0, 0, 0, time.UTC)
	later := first.Add(time.Hour)

	q := NewQuest("2026-02-14", QuestCompleteImportant, 2)

	changed, became := q.ApplyProgress(1, first)
	assert.True(t, changed)
	assert.False(t, became)
	assert.Equal(t, 1, q.Progress)
	assert.Nil(t, q.AchievedAt)

	changed, became = q.ApplyProgress(2, first)
	assert.True(t, changed)
	assert.True(t, became)
	assert.True(t, q.Achieved)
	require.NotNil(t, q.AchievedAt)
	assert.Equal(t, first, *q.AchievedAt)

	changed, became = q.ApplyProgress(2, later)
	assert.False(t, changed, "no-op sync must not write")
	assert.False(t, became)
	assert.Equal(t, first, *q.AchievedAt, "achievedAt is stable while achieved")

	changed, _ = q.ApplyProgress(1, later)
	assert.True(t, changed)
	assert.False(t, q.Achieved)
	assert.Nil(t, q.AchievedAt)
}

func TestQuest_ApplyProgressClamps(t *testing.T) {
	q := NewQuest("2026-02-14", QuestCompleteOne, 1)
	q.ApplyProgress(5, time.Now())
	assert.Equal(t, 1, q.Progress)
	assert.True(t, q.Achieved)

	empty := NewQuest("2026-02-14", QuestCompleteAll, 0)
	changed, became := empty.ApplyProgress(3, time.Now())
	assert.False(t, changed)
	assert.False(t, became)
	assert.Zero(t, empty.Progress)
	assert.False(t, empty.Achieved, "a zero target is never achieved")

	negative := NewQuest("2026-02-14", QuestCompleteAll, 2)
	negative.ApplyProgress(-1, time.Now())
	assert.Zero(t, negative.Progress)
}
