package persistence

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"

	model "todo-list.com/todo-list/internal/models"
)

const untitled = "(untitled)"

// decodeLoose accepts the versioned layout as well as a bare array of
// todo records, which is what an untransformed save leaves behind.
func decodeLoose(data []byte) (Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var todos []WireTodo
		if err := json.Unmarshal(trimmed, &todos); err != nil {
			return Snapshot{}, err
		}
		return Snapshot{Todos: todos}, nil
	}

	var s Snapshot
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// recoverTodos keeps every record, substituting a fallback for each field
// that cannot be read and renumbering duplicate or non-positive ids.
func recoverTodos(s Snapshot, now time.Time, logger zerolog.Logger) []model.Todo {
	var maxID int64
	for _, w := range s.Todos {
		maxID = max(maxID, w.ID)
	}

	todos := make([]model.Todo, 0, len(s.Todos))
	seen := make(map[int64]struct{}, len(s.Todos))
	for _, w := range s.Todos {
		id := w.ID
		if _, dup := seen[id]; dup || id <= 0 {
			maxID++
			logger.Warn().Int64("todo_id", id).Int64("new_id", maxID).Msg("renumbered todo with unusable id")
			id = maxID
		}
		seen[id] = struct{}{}

		title := strings.TrimSpace(w.Title)
		if title == "" {
			logger.Warn().Int64("todo_id", id).Msg("recovered todo without title")
			title = untitled
		}

		createdAt, err := parseTime(w.CreatedAt)
		if err != nil {
			createdAt, err = parseTime(w.UpdatedAt)
			if err != nil {
				createdAt = now
			}
			logger.Warn().Int64("todo_id", id).Str("value", w.CreatedAt).Msg("unreadable createdAt")
		}

		updatedAt, err := parseTime(w.UpdatedAt)
		if err != nil {
			logger.Warn().Int64("todo_id", id).Str("value", w.UpdatedAt).Msg("unreadable updatedAt")
			updatedAt = createdAt
		}
		if updatedAt.Before(createdAt) {
			updatedAt = createdAt
		}

		t := model.Todo{
			ID:        id,
			Title:     title,
			Body:      strings.TrimSpace(w.Body),
			Completed: w.Completed,
			IsEditing: w.IsEditing,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		}
		if w.DueDate != "" {
			due, err := parseTime(w.DueDate)
			if err != nil {
				logger.Warn().Int64("todo_id", id).Str("value", w.DueDate).Msg("unreadable dueDate, todo is now unscheduled")
			} else {
				t.DueDate = &due
			}
		}
		todos = append(todos, t)
	}
	return todos
}
