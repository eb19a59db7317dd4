package model

import "time"

type Todo struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
	Completed bool       `json:"completed"`
	IsEditing bool       `json:"isEditing"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Clone returns a copy that shares no memory with t.
func (t Todo) Clone() Todo {
	if t.DueDate != nil {
		due := *t.DueDate
		t.DueDate = &due
	}
	return t
}

func CloneTodos(todos []Todo) []Todo {
	out := make([]Todo, len(todos))
	for i, t := range todos {
		out[i] = t.Clone()
	}
	return out
}
