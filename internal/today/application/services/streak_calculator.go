package services

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// StreakResult is the streak after a recalculation.
type StreakResult struct {
	Streak *domain.Streak
	// Changed is true when current, best or the last achieved date moved.
	Changed bool
}

// StreakCalculator folds daily quest achievement into the streak.
type StreakCalculator struct {
	quests  domain.QuestRepository
	streaks domain.StreakRepository
}

// NewStreakCalculator creates a StreakCalculator.
func NewStreakCalculator(quests domain.QuestRepository, streaks domain.StreakRepository) *StreakCalculator {
	return &StreakCalculator{quests: quests, streaks: streaks}
}

// Recalculate treats date as achieved when any of its quests is achieved.
func (c *StreakCalculator) Recalculate(ctx context.Context, date domain.DateKey, now time.Time) (*StreakResult, error) {
	achieved, err := c.quests.CountAchievedByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("count achieved quests for %s: %w", date, err)
	}

	streak, err := c.streaks.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}

	changed := streak.Apply(date, achieved > 0, now)
	if err := c.streaks.Save(ctx, streak); err != nil {
		return nil, fmt.Errorf("save streak: %w", err)
	}
	return &StreakResult{Streak: streak, Changed: changed}, nil
}
