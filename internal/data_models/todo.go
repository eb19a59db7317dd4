package dto

import (
	"time"

	"todo-list.com/todo-list/internal/constants"
	model "todo-list.com/todo-list/internal/models"
)

// TodoRequestData is the body of create and update requests.
type TodoRequestData struct {
	Title   string     `json:"title" validate:"required,max=200"`
	Body    string     `json:"body" validate:"max=5000"`
	DueDate *time.Time `json:"dueDate"`
}

type TodoView struct {
	model.Todo
	DueStatus constants.DueStatus `json:"dueStatus,omitempty"`
}

type TodoListResponse struct {
	Count int        `json:"count"`
	Todos []TodoView `json:"todos"`
}

type BucketsResponse struct {
	Default constants.Bucket                `json:"default"`
	Empty   bool                            `json:"empty"`
	Counts  map[constants.Bucket]int        `json:"counts"`
	Buckets map[constants.Bucket][]TodoView `json:"buckets"`
}
