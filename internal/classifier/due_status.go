package classifier

import (
	"time"

	"todo-list.com/todo-list/internal/constants"
	model "todo-list.com/todo-list/internal/models"
)

const dueSoonDays = 2

// DueStatus grades a dated todo for display: overdue, due within the next
// two days, or on track. Undated todos report false.
func DueStatus(t model.Todo, now time.Time) (constants.DueStatus, bool) {
	if t.DueDate == nil {
		return "", false
	}

	due := *t.DueDate
	if due.Before(now) && !SameDay(due, now) {
		return constants.DueStatusOverdue, true
	}
	if due.Before(now.AddDate(0, 0, dueSoonDays)) {
		return constants.DueStatusDueSoon, true
	}
	return constants.DueStatusOnTrack, true
}
