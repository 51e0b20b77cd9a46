package domain

import (
	"testing"
	"time"

	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	now := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)

	t.Run("normalizes fields", func(t *testing.T) {
		task, err := NewTask(Definition{
			Title:      "  Water plants ",
			Category:   " home ",
			Recurrence: RecurrenceDaily,
			Mask:       MaskOf(time.Monday),
		}, now)
		require.NoError(t, err)

		assert.True(t, task.IsNew())
		assert.True(t, task.IsActive())
		assert.Equal(t, "Water plants", task.Title())
		assert.Equal(t, "home", task.Category())
		assert.Equal(t, PriorityMedium, task.Priority())
		assert.Zero(t, task.WeekdayMask(), "daily tasks carry no mask")
		assert.Equal(t, now, task.CreatedAt())
	})

	t.Run("weekly keeps mask", func(t *testing.T) {
		mask := MaskOf(time.Tuesday, time.Thursday)
		task, err := NewTask(Definition{Title: "Gym", Recurrence: RecurrenceWeekly, Mask: mask}, now)
		require.NoError(t, err)
		assert.Equal(t, mask, task.WeekdayMask())
	})

	tests := []struct {
		name string
		def  Definition
		err  error
	}{
		{"empty title", Definition{Title: "   ", Recurrence: RecurrenceDaily}, ErrEmptyTitle},
		{"bad recurrence", Definition{Title: "x", Recurrence: "yearly"}, ErrInvalidRecurrence},
		{"bad priority", Definition{Title: "x", Recurrence: RecurrenceDaily, Priority: "urgent"}, ErrInvalidPriority},
		{"bad mask", Definition{Title: "x", Recurrence: RecurrenceCustom, Mask: 0xff}, ErrInvalidWeekdayMask},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.def, now)
			assert.ErrorIs(t, err, tt.err)
			assert.ErrorIs(t, err, sharedDomain.ErrValidation)
		})
	}
}

func TestTask_UpdateClearsMaskForMonthly(t *testing.T) {
	created := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	task, err := NewTask(Definition{Title: "Review", Recurrence: RecurrenceWeekly, Mask: MaskOf(time.Friday)}, created)
	require.NoError(t, err)

	later := created.Add(time.Hour)
	require.NoError(t, task.Update(Definition{Title: "Monthly review", Recurrence: RecurrenceMonthly, Mask: MaskOf(time.Friday)}, later))

	assert.Equal(t, RecurrenceMonthly, task.Recurrence())
	assert.Zero(t, task.WeekdayMask())
	assert.Equal(t, later, task.UpdatedAt())
	assert.Equal(t, created, task.CreatedAt())
}

func TestTask_Deactivate(t *testing.T) {
	task := RehydrateTask(3, Definition{Title: "Read", Recurrence: RecurrenceDaily, Priority: PriorityLow}, true, time.Unix(0, 0), time.Unix(0, 0))
	now := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

	task.Deactivate(now)
	assert.False(t, task.IsActive())
	assert.Equal(t, now, task.UpdatedAt())
}

func TestTask_BaseDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 2026-02-13 20:00 UTC is already the 14th at UTC+9.
	created := time.Date(2026, 2, 13, 20, 0, 0, 0, time.UTC)
	task := RehydrateTask(1, Definition{Title: "Stretch", Recurrence: RecurrenceWeekly, Priority: PriorityMedium}, true, created, created)

	assert.Equal(t, time.Date(2026, 2, 14, 0, 0, 0, 0, loc), task.BaseDate(loc))
	// Saturday the 14th is the fallback weekday.
	assert.True(t, task.OccursOn(time.Date(2026, 2, 21, 0, 0, 0, 0, loc), loc))
	assert.False(t, task.OccursOn(time.Date(2026, 2, 20, 0, 0, 0, 0, loc), loc))
	assert.False(t, task.OccursOn(time.Date(2026, 2, 13, 0, 0, 0, 0, loc), loc))
}

func TestParseGoalTime(t *testing.T) {
	g, err := ParseGoalTime("07:30")
	require.NoError(t, err)
	assert.Equal(t, GoalTime{Hour: 7, Minute: 30}, g)
	assert.Equal(t, "07:30", g.String())

	_, err = ParseGoalTime("25:00")
	assert.ErrorIs(t, err, ErrInvalidGoalTime)
}

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "water plants", NormalizeTitle("  Water Plants "))
}
