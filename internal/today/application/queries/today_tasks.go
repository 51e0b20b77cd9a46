package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// QuestDTO is a data transfer object for quests.
type QuestDTO struct {
	Type       string     `json:"type" yaml:"type"`
	Title      string     `json:"title" yaml:"title"`
	Target     int        `json:"target" yaml:"target"`
	Progress   int        `json:"progress" yaml:"progress"`
	Achieved   bool       `json:"achieved" yaml:"achieved"`
	AchievedAt *time.Time `json:"achieved_at,omitempty" yaml:"achieved_at,omitempty"`
}

// ToQuestDTO converts a quest.
func ToQuestDTO(q *domain.Quest) QuestDTO {
	return QuestDTO{
		Type:       string(q.Type),
		Title:      q.Title,
		Target:     q.Target,
		Progress:   q.Progress,
		Achieved:   q.Achieved,
		AchievedAt: q.AchievedAt,
	}
}

// TodayView is everything the today screen shows for one date.
type TodayView struct {
	Date   string           `json:"date" yaml:"date"`
	Items  []domain.TaskRow `json:"items" yaml:"items"`
	Quests []QuestDTO       `json:"quests" yaml:"quests"`
	Streak StreakDTO        `json:"streak" yaml:"streak"`
	Done   int              `json:"done" yaml:"done"`
	Total  int              `json:"total" yaml:"total"`
}

// TodayTasksHandler reads the today view. It never writes; callers run the
// refresh pipeline first when they need the date materialized.
type TodayTasksHandler struct {
	items   domain.ItemRepository
	quests  domain.QuestRepository
	streaks domain.StreakRepository
}

// NewTodayTasksHandler creates a new TodayTasksHandler.
func NewTodayTasksHandler(items domain.ItemRepository, quests domain.QuestRepository, streaks domain.StreakRepository) *TodayTasksHandler {
	return &TodayTasksHandler{items: items, quests: quests, streaks: streaks}
}

// Handle returns the view for date.
func (h *TodayTasksHandler) Handle(ctx context.Context, date domain.DateKey) (*TodayView, error) {
	rows, err := h.items.ListTaskRows(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list items for %s: %w", date, err)
	}
	quests, err := h.quests.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load quests for %s: %w", date, err)
	}
	streak, err := h.streaks.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}

	view := &TodayView{
		Date:   date.String(),
		Items:  rows,
		Quests: make([]QuestDTO, 0, len(quests)),
		Streak: ToStreakDTO(streak),
		Total:  len(rows),
	}
	if view.Items == nil {
		view.Items = []domain.TaskRow{}
	}
	for _, row := range rows {
		if row.Status == domain.StatusDone {
			view.Done++
		}
	}
	for _, q := range quests {
		view.Quests = append(view.Quests, ToQuestDTO(q))
	}
	return view, nil
}
