package domain

import (
	"strconv"
	"time"

	sharedDomain "github.com/felixgeelhaar/dayquest/internal/shared/domain"
)

const (
	RoutingItemsGenerated    = "today.items.generated"
	RoutingItemStatusChanged = "today.item.status_changed"
	RoutingQuestAchieved     = "today.quest.achieved"
	RoutingStreakUpdated     = "today.streak.updated"
)

// ItemsGenerated is emitted when a date's items were materialized.
type ItemsGenerated struct {
	sharedDomain.BaseEvent
	Date  DateKey `json:"date"`
	Count int     `json:"count"`
}

// NewItemsGenerated creates an ItemsGenerated event.
func NewItemsGenerated(date DateKey, count int, now time.Time) *ItemsGenerated {
	return &ItemsGenerated{
		BaseEvent: sharedDomain.NewBaseEvent(date.String(), "DailyPlan", RoutingItemsGenerated, now),
		Date:      date,
		Count:     count,
	}
}

// ItemStatusChanged is emitted after a transition.
type ItemStatusChanged struct {
	sharedDomain.BaseEvent
	ItemID     int64      `json:"item_id"`
	TaskID     int64      `json:"task_id"`
	Date       DateKey    `json:"date"`
	From       ItemStatus `json:"from"`
	To         ItemStatus `json:"to"`
	DeferredTo DateKey    `json:"deferred_to,omitempty"`
}

// NewItemStatusChanged creates an ItemStatusChanged event.
func NewItemStatusChanged(item *DailyItem, from ItemStatus, now time.Time) *ItemStatusChanged {
	return &ItemStatusChanged{
		BaseEvent:  sharedDomain.NewBaseEvent(strconv.FormatInt(item.ID, 10), "DailyItem", RoutingItemStatusChanged, now),
		ItemID:     item.ID,
		TaskID:     item.TaskID,
		Date:       item.DateKey,
		From:       from,
		To:         item.Status,
		DeferredTo: item.DeferredTo,
	}
}

// QuestAchieved is emitted the first time a quest is achieved.
type QuestAchieved struct {
	sharedDomain.BaseEvent
	Date   DateKey   `json:"date"`
	Type   QuestType `json:"quest_type"`
	Title  string    `json:"title"`
	Target int       `json:"target"`
}

// NewQuestAchieved creates a QuestAchieved event.
func NewQuestAchieved(q *Quest, now time.Time) *QuestAchieved {
	return &QuestAchieved{
		BaseEvent: sharedDomain.NewBaseEvent(q.DateKey.String()+"/"+string(q.Type), "Quest", RoutingQuestAchieved, now),
		Date:      q.DateKey,
		Type:      q.Type,
		Title:     q.Title,
		Target:    q.Target,
	}
}

// StreakUpdated is emitted when the current or best streak changed.
type StreakUpdated struct {
	sharedDomain.BaseEvent
	Current      int     `json:"current"`
	Best         int     `json:"best"`
	LastAchieved DateKey `json:"last_achieved,omitempty"`
}

// NewStreakUpdated creates a StreakUpdated event.
func NewStreakUpdated(s *Streak, now time.Time) *StreakUpdated {
	return &StreakUpdated{
		BaseEvent:    sharedDomain.NewBaseEvent("1", "Streak", RoutingStreakUpdated, now),
		Current:      s.Current,
		Best:         s.Best,
		LastAchieved: s.LastAchieved,
	}
}
