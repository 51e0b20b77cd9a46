package queries

import (
	"context"

	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// StreakDTO is a data transfer object for the streak.
type StreakDTO struct {
	Current      int    `json:"current" yaml:"current"`
	Best         int    `json:"best" yaml:"best"`
	LastAchieved string `json:"last_achieved,omitempty" yaml:"last_achieved,omitempty"`
}

// ToStreakDTO converts a streak.
func ToStreakDTO(s *domain.Streak) StreakDTO {
	return StreakDTO{Current: s.Current, Best: s.Best, LastAchieved: s.LastAchieved.String()}
}

// GetStreakHandler reads the streak.
type GetStreakHandler struct {
	streaks domain.StreakRepository
}

// NewGetStreakHandler creates a new GetStreakHandler.
func NewGetStreakHandler(streaks domain.StreakRepository) *GetStreakHandler {
	return &GetStreakHandler{streaks: streaks}
}

// Handle returns the current streak.
func (h *GetStreakHandler) Handle(ctx context.Context) (StreakDTO, error) {
	s, err := h.streaks.Get(ctx)
	if err != nil {
		return StreakDTO{}, err
	}
	return ToStreakDTO(s), nil
}
