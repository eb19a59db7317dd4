// Package classifier partitions todos into view buckets relative to a
// reference time. Every function is pure; callers pass "now" explicitly.
package classifier

import (
	"time"

	"todo-list.com/todo-list/internal/constants"
	model "todo-list.com/todo-list/internal/models"
)

// Buckets holds each bucket's todos in the order they were given.
type Buckets struct {
	Overdue   []model.Todo
	DueToday  []model.Todo
	Upcoming  []model.Todo
	NoDueDate []model.Todo
	Completed []model.Todo
}

// Classify returns the single bucket t belongs to. Completion wins over any
// due-date rule, and a due date on now's calendar day is always dueToday.
func Classify(t model.Todo, now time.Time) constants.Bucket {
	switch {
	case t.Completed:
		return constants.BucketCompleted
	case t.DueDate == nil:
		return constants.BucketNoDueDate
	case SameDay(*t.DueDate, now):
		return constants.BucketDueToday
	case t.DueDate.Before(now):
		return constants.BucketOverdue
	default:
		return constants.BucketUpcoming
	}
}

func Categorize(todos []model.Todo, now time.Time) Buckets {
	var b Buckets
	for _, t := range todos {
		switch Classify(t, now) {
		case constants.BucketCompleted:
			b.Completed = append(b.Completed, t)
		case constants.BucketNoDueDate:
			b.NoDueDate = append(b.NoDueDate, t)
		case constants.BucketDueToday:
			b.DueToday = append(b.DueToday, t)
		case constants.BucketOverdue:
			b.Overdue = append(b.Overdue, t)
		default:
			b.Upcoming = append(b.Upcoming, t)
		}
	}
	return b
}

func (b Buckets) Get(bucket constants.Bucket) []model.Todo {
	switch bucket {
	case constants.BucketOverdue:
		return b.Overdue
	case constants.BucketDueToday:
		return b.DueToday
	case constants.BucketUpcoming:
		return b.Upcoming
	case constants.BucketNoDueDate:
		return b.NoDueDate
	case constants.BucketCompleted:
		return b.Completed
	}
	return nil
}

func (b Buckets) Counts() map[constants.Bucket]int {
	counts := make(map[constants.Bucket]int, len(constants.Buckets))
	for _, bucket := range constants.Buckets {
		counts[bucket] = len(b.Get(bucket))
	}
	return counts
}

func (b Buckets) Len() int {
	return len(b.Overdue) + len(b.DueToday) + len(b.Upcoming) + len(b.NoDueDate) + len(b.Completed)
}

// Default is overdue when anything is overdue, otherwise dueToday, even
// when dueToday is empty too.
func (b Buckets) Default() constants.Bucket {
	if len(b.Overdue) > 0 {
		return constants.BucketOverdue
	}
	return constants.BucketDueToday
}

// SameDay reports whether t falls on ref's calendar date in ref's location.
func SameDay(t, ref time.Time) bool {
	ty, tm, td := t.In(ref.Location()).Date()
	ry, rm, rd := ref.Date()
	return ty == ry && tm == rm && td == rd
}
