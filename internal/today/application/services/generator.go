// Package services implements the daily pipeline: item generation, status
// transitions, quest synchronization and streak recalculation.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// Generator materializes a date's items from the active task definitions.
type Generator struct {
	tasks  domain.TaskCatalog
	items  domain.ItemRepository
	loc    *time.Location
	logger *slog.Logger
}

// NewGenerator creates a Generator. Task creation dates are truncated to
// calendar days in loc.
func NewGenerator(tasks domain.TaskCatalog, items domain.ItemRepository, loc *time.Location, logger *slog.Logger) *Generator {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{tasks: tasks, items: items, loc: loc, logger: logger}
}

// Generate creates one TODO item per task occurring on date and returns the
// number of rows inserted. A date that already has any item is left alone,
// so calling it repeatedly is safe.
func (g *Generator) Generate(ctx context.Context, date domain.DateKey, now time.Time) (int, error) {
	target, err := date.Time(g.loc)
	if err != nil {
		return 0, fmt.Errorf("generate items for %q: %w", date, err)
	}

	existing, err := g.items.CountByDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("count items for %s: %w", date, err)
	}
	if existing > 0 {
		g.logger.DebugContext(ctx, "items already generated", "date", date, "existing", existing)
		return 0, nil
	}

	tasks, err := g.tasks.FindActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("load active tasks: %w", err)
	}

	items := make([]*domain.DailyItem, 0, len(tasks))
	for _, t := range tasks {
		if t.OccursOn(target, g.loc) {
			items = append(items, domain.NewDailyItem(date, t.ID(), now))
		}
	}
	if len(items) == 0 {
		return 0, nil
	}

	inserted, err := g.items.InsertIgnore(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("insert items for %s: %w", date, err)
	}
	g.logger.DebugContext(ctx, "items generated", "date", date, "candidates", len(items), "inserted", inserted)
	return inserted, nil
}
