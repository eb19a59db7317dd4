package cmd

import (
	"strings"
	"time"

	apperrors "todo-list.com/todo-list/internal/errors"
)

var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseDue reads a due date typed on the command line. Layouts without a
// zone are taken in loc. An empty string means no due date.
func parseDue(s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, nil
		}
	}
	return nil, apperrors.ErrInvalidDueDate
}
