package mcp

import (
	"fmt"

	"github.com/felixgeelhaar/dayquest/internal/today/domain"
)

// parseDate returns today's key for an empty value.
func parseDate(value string, today domain.DateKey) (domain.DateKey, error) {
	if value == "" {
		return today, nil
	}
	date, err := domain.ParseDateKey(value)
	if err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD: %w", err)
	}
	return date, nil
}

func parseStatus(value string) (domain.ItemStatus, error) {
	status := domain.ItemStatus(value)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid status %q, use TODO, DONE, DEFERRED or SKIPPED", value)
	}
	return status, nil
}
