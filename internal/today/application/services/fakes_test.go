package services

import (
	"context"
	"sort"
	"sync"
	"time"

	tasksDomain "github.com/felixgeelhaar/dayquest/internal/tasks/domain"
	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// memStore is an in-memory implementation of the today ports that enforces
// the same uniqueness rules as the database schema.
type memStore struct {
	mu       sync.Mutex
	tasks    []*tasksDomain.Task
	items    map[int64]*domain.DailyItem
	quests   map[int64]*domain.Quest
	streak   *domain.Streak
	nextID   int64
	updates  int
	inserted int
}

func newMemStore(tasks ...*tasksDomain.Task) *memStore {
	return &memStore{
		tasks:  tasks,
		items:  make(map[int64]*domain.DailyItem),
		quests: make(map[int64]*domain.Quest),
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) task(id int64) *tasksDomain.Task {
	for _, t := range s.tasks {
		if t.ID() == id {
			return t
		}
	}
	return nil
}

// TaskCatalog

func (s *memStore) FindActive(context.Context) ([]*tasksDomain.Task, error) {
	var out []*tasksDomain.Task
	for _, t := range s.tasks {
		if t.IsActive() {
			out = append(out, t)
		}
	}
	return out, nil
}

// ItemRepository

func (s *memStore) count(date domain.DateKey, status domain.ItemStatus, importantOnly bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, it := range s.items {
		if it.DateKey != date || (status != "" && it.Status != status) {
			continue
		}
		if importantOnly {
			if t := s.task(it.TaskID); t == nil || !t.IsImportant() {
				continue
			}
		}
		n++
	}
	return n
}

func (s *memStore) CountByDate(_ context.Context, date domain.DateKey) (int, error) {
	return s.count(date, "", false), nil
}

func (s *memStore) CountByDateAndStatus(_ context.Context, date domain.DateKey, status domain.ItemStatus) (int, error) {
	return s.count(date, status, false), nil
}

func (s *memStore) CountImportantByDate(_ context.Context, date domain.DateKey) (int, error) {
	return s.count(date, "", true), nil
}

func (s *memStore) CountImportantByDateAndStatus(_ context.Context, date domain.DateKey, status domain.ItemStatus) (int, error) {
	return s.count(date, status, true), nil
}

func (s *memStore) FindByID(_ context.Context, id int64) (*domain.DailyItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *it
	return &cp, nil
}

func (s *memStore) InsertIgnore(_ context.Context, items []*domain.DailyItem) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
outer:
	for _, item := range items {
		for _, existing := range s.items {
			if existing.DateKey == item.DateKey && existing.TaskID == item.TaskID {
				continue outer
			}
		}
		cp := *item
		cp.ID = s.id()
		s.items[cp.ID] = &cp
		n++
	}
	s.inserted += n
	return n, nil
}

func (s *memStore) UpdateState(_ context.Context, item *domain.DailyItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[item.ID]
	if !ok {
		return domain.ErrItemNotFound
	}
	existing.Status = item.Status
	existing.CompletedAt = item.CompletedAt
	existing.DeferredTo = item.DeferredTo
	return nil
}

func (s *memStore) ListTaskRows(_ context.Context, date domain.DateKey) ([]domain.TaskRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []domain.TaskRow
	for _, it := range s.items {
		if it.DateKey != date {
			continue
		}
		t := s.task(it.TaskID)
		rows = append(rows, domain.TaskRow{
			ItemID:     it.ID,
			TaskID:     it.TaskID,
			Title:      t.Title(),
			Important:  t.IsImportant(),
			Status:     it.Status,
			DeferredTo: it.DeferredTo,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ItemID < rows[j].ItemID })
	return rows, nil
}

// itemsOn returns copies of the date's items ordered by id.
func (s *memStore) itemsOn(date domain.DateKey) []domain.DailyItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.DailyItem
	for _, it := range s.items {
		if it.DateKey == date {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// questStore adapts memStore to QuestRepository; method names clash with
// ItemRepository otherwise.
type questStore struct{ *memStore }

func (q questStore) FindByType(_ context.Context, date domain.DateKey, questType domain.QuestType) (*domain.Quest, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, quest := range q.quests {
		if quest.DateKey == date && quest.Type == questType {
			cp := *quest
			return &cp, nil
		}
	}
	return nil, domain.ErrQuestNotFound
}

func (q questStore) FindByDate(_ context.Context, date domain.DateKey) ([]*domain.Quest, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*domain.Quest
	for _, quest := range q.quests {
		if quest.DateKey == date {
			cp := *quest
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (q questStore) InsertIgnore(_ context.Context, quest *domain.Quest) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, existing := range q.quests {
		if existing.DateKey == quest.DateKey && existing.Type == quest.Type {
			return false, nil
		}
	}
	cp := *quest
	cp.ID = q.id()
	q.quests[cp.ID] = &cp
	return true, nil
}

func (q questStore) Update(_ context.Context, quest *domain.Quest) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	cp := *quest
	q.quests[quest.ID] = &cp
	q.updates++
	return nil
}

func (q questStore) CountAchievedByDate(_ context.Context, date domain.DateKey) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for _, quest := range q.quests {
		if quest.DateKey == date && quest.Achieved {
			n++
		}
	}
	return n, nil
}

func (q questStore) quest(date domain.DateKey, questType domain.QuestType) *domain.Quest {
	found, err := q.FindByType(context.Background(), date, questType)
	if err != nil {
		return nil
	}
	return found
}

// streakStore adapts memStore to StreakRepository.
type streakStore struct{ *memStore }

func (s streakStore) Get(context.Context) (*domain.Streak, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streak == nil {
		return &domain.Streak{}, nil
	}
	cp := *s.streak
	return &cp, nil
}

func (s streakStore) Save(_ context.Context, streak *domain.Streak) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *streak
	s.streak = &cp
	return nil
}

func makeTask(id int64, title string, kind tasksDomain.RecurrenceKind, mask tasksDomain.WeekdayMask, important bool, created time.Time) *tasksDomain.Task {
	return tasksDomain.RehydrateTask(id, tasksDomain.Definition{
		Title:      title,
		Priority:   tasksDomain.PriorityMedium,
		Important:  important,
		Recurrence: kind,
		Mask:       mask,
	}, true, created, created)
}
