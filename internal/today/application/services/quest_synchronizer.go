package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// QuestSynchronizer derives quest targets and progress from a date's items.
type QuestSynchronizer struct {
	items  domain.ItemRepository
	quests domain.QuestRepository
}

// NewQuestSynchronizer creates a QuestSynchronizer.
func NewQuestSynchronizer(items domain.ItemRepository, quests domain.QuestRepository) *QuestSynchronizer {
	return &QuestSynchronizer{items: items, quests: quests}
}

// EnsureMeta creates or updates the date's quests so their targets match the
// current item counts. The important quest only exists on days with at least
// one important item.
func (s *QuestSynchronizer) EnsureMeta(ctx context.Context, date domain.DateKey) error {
	total, err := s.items.CountByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("count items for %s: %w", date, err)
	}
	important, err := s.items.CountImportantByDate(ctx, date)
	if err != nil {
		return fmt.Errorf("count important items for %s: %w", date, err)
	}

	one := 0
	if total > 0 {
		one = 1
	}
	if err := s.upsertMeta(ctx, date, domain.QuestCompleteOne, one); err != nil {
		return err
	}
	if err := s.upsertMeta(ctx, date, domain.QuestCompleteAll, total); err != nil {
		return err
	}
	if important > 0 {
		return s.upsertMeta(ctx, date, domain.QuestCompleteImportant, important)
	}
	return nil
}

func (s *QuestSynchronizer) upsertMeta(ctx context.Context, date domain.DateKey, questType domain.QuestType, target int) error {
	quest, err := s.quests.FindByType(ctx, date, questType)
	if errors.Is(err, domain.ErrQuestNotFound) {
		if _, err := s.quests.InsertIgnore(ctx, domain.NewQuest(date, questType, target)); err != nil {
			return fmt.Errorf("insert quest %s for %s: %w", questType, date, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("find quest %s for %s: %w", questType, date, err)
	}

	if !quest.ApplyMeta(questType.Title(), target) {
		return nil
	}
	if err := s.quests.Update(ctx, quest); err != nil {
		return fmt.Errorf("update quest %s for %s: %w", questType, date, err)
	}
	return nil
}

// SyncProgress recomputes progress for every quest of the date and returns
// the quests that became achieved during this call.
func (s *QuestSynchronizer) SyncProgress(ctx context.Context, date domain.DateKey, now time.Time) ([]*domain.Quest, error) {
	done, err := s.items.CountByDateAndStatus(ctx, date, domain.StatusDone)
	if err != nil {
		return nil, fmt.Errorf("count done items for %s: %w", date, err)
	}
	importantDone, err := s.items.CountImportantByDateAndStatus(ctx, date, domain.StatusDone)
	if err != nil {
		return nil, fmt.Errorf("count important done items for %s: %w", date, err)
	}

	quests, err := s.quests.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load quests for %s: %w", date, err)
	}

	var achieved []*domain.Quest
	for _, quest := range quests {
		count := done
		if quest.Type == domain.QuestCompleteImportant {
			count = importantDone
		}

		changed, became := quest.ApplyProgress(count, now)
		if !changed {
			continue
		}
		if err := s.quests.Update(ctx, quest); err != nil {
			return nil, fmt.Errorf("update quest %s for %s: %w", quest.Type, date, err)
		}
		if became {
			achieved = append(achieved, quest)
		}
	}
	return achieved, nil
}
