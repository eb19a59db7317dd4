package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	model "todo-list.com/todo-list/internal/models"
)

const (
	WireVersion = 1
	DefaultKey  = "todos"

	timeLayout = time.RFC3339Nano
)

var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// Snapshot is the stored layout of the whole collection.
type Snapshot struct {
	Version int        `json:"version"`
	Todos   []WireTodo `json:"todos"`
}

// WireTodo mirrors model.Todo with every timestamp as RFC 3339 text.
type WireTodo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body,omitempty"`
	DueDate   string `json:"dueDate,omitempty"`
	Completed bool   `json:"completed"`
	IsEditing bool   `json:"isEditing"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func ToWire(todos []model.Todo) Snapshot {
	out := Snapshot{
		Version: WireVersion,
		Todos:   make([]WireTodo, 0, len(todos)),
	}
	for _, t := range todos {
		w := WireTodo{
			ID:        t.ID,
			Title:     t.Title,
			Body:      t.Body,
			Completed: t.Completed,
			IsEditing: t.IsEditing,
			CreatedAt: formatTime(t.CreatedAt),
			UpdatedAt: formatTime(t.UpdatedAt),
		}
		if t.DueDate != nil {
			w.DueDate = formatTime(*t.DueDate)
		}
		out.Todos = append(out.Todos, w)
	}
	return out
}

// FromWire is the strict inverse of ToWire. Any unreadable field, blank
// title, duplicate id or updatedAt earlier than createdAt fails the whole
// snapshot.
func FromWire(s Snapshot) ([]model.Todo, error) {
	if s.Version > WireVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, s.Version)
	}

	todos := make([]model.Todo, 0, len(s.Todos))
	seen := make(map[int64]struct{}, len(s.Todos))
	for _, w := range s.Todos {
		if _, dup := seen[w.ID]; dup {
			return nil, fmt.Errorf("todo %d: duplicate id", w.ID)
		}
		seen[w.ID] = struct{}{}

		if strings.TrimSpace(w.Title) == "" {
			return nil, fmt.Errorf("todo %d: empty title", w.ID)
		}

		createdAt, err := parseTime(w.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("todo %d: createdAt: %w", w.ID, err)
		}
		updatedAt, err := parseTime(w.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("todo %d: updatedAt: %w", w.ID, err)
		}
		if updatedAt.Before(createdAt) {
			return nil, fmt.Errorf("todo %d: updatedAt %s before createdAt %s", w.ID, w.UpdatedAt, w.CreatedAt)
		}

		t := model.Todo{
			ID:        w.ID,
			Title:     w.Title,
			Body:      w.Body,
			Completed: w.Completed,
			IsEditing: w.IsEditing,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		}
		if w.DueDate != "" {
			due, err := parseTime(w.DueDate)
			if err != nil {
				return nil, fmt.Errorf("todo %d: dueDate: %w", w.ID, err)
			}
			t.DueDate = &due
		}
		todos = append(todos, t)
	}
	return todos, nil
}

func Encode(todos []model.Todo) ([]byte, error) {
	return json.Marshal(ToWire(todos))
}

func Decode(data []byte) ([]model.Todo, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return FromWire(s)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}
