package services

import (
	"slices"

	model "todo-list.com/todo-list/internal/models"
)

// CompareTodos orders incomplete todos before completed ones, then dated
// before undated. Dated todos run latest due date first and undated todos
// newest first.
func CompareTodos(a, b model.Todo) int {
	if a.Completed != b.Completed {
		if a.Completed {
			return 1
		}
		return -1
	}

	switch {
	case a.DueDate != nil && b.DueDate != nil:
		return b.DueDate.Compare(*a.DueDate)
	case a.DueDate != nil:
		return -1
	case b.DueDate != nil:
		return 1
	default:
		return b.CreatedAt.Compare(a.CreatedAt)
	}
}

func SortTodos(todos []model.Todo) {
	slices.SortStableFunc(todos, CompareTodos)
}
