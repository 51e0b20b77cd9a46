package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
)

// ErrQuestNotFound is returned when no quest of a type exists for a date.
var ErrQuestNotFound = sharedDomain.NewNotFound("quest not found")

// QuestType identifies one of the daily goals.
type QuestType string

const (
	QuestCompleteOne       QuestType = "COMPLETE_ONE"
	QuestCompleteAll       QuestType = "COMPLETE_ALL"
	QuestCompleteImportant QuestType = "COMPLETE_IMPORTANT"
)

// QuestTypes lists every type in display order.
var QuestTypes = []QuestType{QuestCompleteOne, QuestCompleteAll, QuestCompleteImportant}

// Title is the display title of the quest.
func (t QuestType) Title() string {
	switch t {
	case QuestCompleteOne:
		return "Complete 1 task today"
	case QuestCompleteAll:
		return "Complete all tasks today"
	case QuestCompleteImportant:
		return "Complete important tasks"
	default:
		return string(t)
	}
}

// Quest is a derived goal over one date's items.
type Quest struct {
	ID         int64
	DateKey    DateKey
	Type       QuestType
	Title      string
	Target     int
	Progress   int
	Achieved   bool
	AchievedAt *time.Time
}

// NewQuest creates an unachieved quest.
func NewQuest(date DateKey, questType QuestType, target int) *Quest {
	return &Quest{
		DateKey: date,
		Type:    questType,
		Title:   questType.Title(),
		Target:  target,
	}
}

// ApplyMeta sets title and target and reports whether anything changed.
func (q *Quest) ApplyMeta(title string, target int) bool {
	if q.Title == title && q.Target == target {
		return false
	}
	q.Title = title
	q.Target = target
	return true
}

// ApplyProgress folds the done count into progress and achievement.
// achievedAt is stamped the first time the quest is achieved and kept while
// it stays achieved. It reports whether the quest changed and whether it
// became achieved in this call.
func (q *Quest) ApplyProgress(done int, now time.Time) (changed, becameAchieved bool) {
	progress := min(max(done, 0), max(q.Target, 0))
	achieved := q.Target > 0 && progress >= q.Target

	achievedAt := q.AchievedAt
	switch {
	case achieved && achievedAt == nil:
		stamp := now
		achievedAt = &stamp
		becameAchieved = true
	case !achieved:
		achievedAt = nil
	}

	changed = progress != q.Progress || achieved != q.Achieved || !sameTime(achievedAt, q.AchievedAt)
	q.Progress = progress
	q.Achieved = achieved
	q.AchievedAt = achievedAt
	return changed, becameAchieved
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
