package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"todo-list.com/todo-list/internal/classifier"
	"todo-list.com/todo-list/internal/constants"
	apperrors "todo-list.com/todo-list/internal/errors"
	"todo-list.com/todo-list/internal/metrics"
	model "todo-list.com/todo-list/internal/models"
)

// Persister stores and restores the whole collection.
type Persister interface {
	Save(ctx context.Context, todos []model.Todo) error
	Load(ctx context.Context) ([]model.Todo, error)
}

// TodoService owns the canonical todo collection. Commands run one at a time;
// after each one the collection is sorted, persisted and published.
type TodoService struct {
	mu        sync.Mutex
	todos     []model.Todo
	lastID    int64
	persister Persister
	clock     func() time.Time
	logger    zerolog.Logger
	metrics   *metrics.Metrics

	subscribers map[int]func([]model.Todo)
	nextSubID   int
}

type Option func(*TodoService)

func WithClock(clock func() time.Time) Option {
	return func(s *TodoService) {
		s.clock = clock
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *TodoService) {
		s.metrics = m
	}
}

// NewTodoService builds an empty store. A nil persister keeps state in memory.
func NewTodoService(logger zerolog.Logger, persister Persister, opts ...Option) *TodoService {
	s := &TodoService{
		persister:   persister,
		clock:       time.Now,
		logger:      logger,
		subscribers: make(map[int]func([]model.Todo)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the collection with the persisted one.
func (s *TodoService) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	todos, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load todos")
		return err
	}

	SortTodos(todos)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.todos = todos
	s.lastID = 0
	for _, t := range todos {
		s.lastID = max(s.lastID, t.ID)
	}
	s.metrics.SetTodoCount(len(todos))
	s.publish()

	s.logger.Info().Int("count", len(todos)).Msg("loaded todos")
	return nil
}

// Flush writes the current collection, reporting any storage failure.
func (s *TodoService) Flush(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persister.Save(ctx, model.CloneTodos(s.todos))
}

func (s *TodoService) Create(ctx context.Context, title, body string, dueDate *time.Time) (model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		s.metrics.ObserveCommand("create", "invalid")
		return model.Todo{}, apperrors.ErrTitleRequired
	}

	var created model.Todo
	s.apply(ctx, "create", true, func(todos []model.Todo, now time.Time) ([]model.Todo, bool) {
		created = model.Todo{
			ID:        s.nextID(now),
			Title:     title,
			Body:      strings.TrimSpace(body),
			DueDate:   copyTime(dueDate),
			CreatedAt: now,
			UpdatedAt: now,
		}
		return append(todos, created), true
	})

	s.logger.Info().Int64("todo_id", created.ID).Msg("created todo")
	return created.Clone(), nil
}

func (s *TodoService) ToggleComplete(ctx context.Context, id int64) {
	s.apply(ctx, "toggle", true, func(todos []model.Todo, now time.Time) ([]model.Todo, bool) {
		t := find(todos, id)
		if t == nil {
			return todos, false
		}
		t.Completed = !t.Completed
		touch(t, now)
		return todos, true
	})
}

func (s *TodoService) Edit(ctx context.Context, id int64, title, body string, dueDate *time.Time) error {
	title = strings.TrimSpace(title)
	if title == "" {
		s.metrics.ObserveCommand("edit", "invalid")
		return apperrors.ErrTitleRequired
	}

	s.apply(ctx, "edit", true, func(todos []model.Todo, now time.Time) ([]model.Todo, bool) {
		t := find(todos, id)
		if t == nil {
			return todos, false
		}
		t.Title = title
		t.Body = strings.TrimSpace(body)
		t.DueDate = copyTime(dueDate)
		t.IsEditing = false
		touch(t, now)
		return todos, true
	})
	return nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) {
	s.apply(ctx, "delete", false, func(todos []model.Todo, _ time.Time) ([]model.Todo, bool) {
		i := index(todos, id)
		if i < 0 {
			return todos, false
		}
		return append(todos[:i], todos[i+1:]...), true
	})
}

func (s *TodoService) BeginEdit(ctx context.Context, id int64) {
	s.setEditing(ctx, "begin_edit", id, true)
}

func (s *TodoService) CancelEdit(ctx context.Context, id int64) {
	s.setEditing(ctx, "cancel_edit", id, false)
}

func (s *TodoService) setEditing(ctx context.Context, command string, id int64, editing bool) {
	s.apply(ctx, command, false, func(todos []model.Todo, _ time.Time) ([]model.Todo, bool) {
		t := find(todos, id)
		if t == nil {
			return todos, false
		}
		t.IsEditing = editing
		return todos, true
	})
}

// List returns a copy of the sorted collection.
func (s *TodoService) List() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return model.CloneTodos(s.todos)
}

func (s *TodoService) Get(id int64) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t := find(s.todos, id); t != nil {
		return t.Clone(), nil
	}
	return model.Todo{}, apperrors.ErrTodoNotFound
}

func (s *TodoService) Buckets(now time.Time) classifier.Buckets {
	return classifier.Categorize(s.List(), now)
}

func (s *TodoService) DefaultBucket(now time.Time) constants.Bucket {
	return s.Buckets(now).Default()
}

// Subscribe registers fn to receive a snapshot after every state change and
// returns a func that removes it. fn runs while the store is locked, so it
// must not call back into the service.
func (s *TodoService) Subscribe(fn func([]model.Todo)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// apply runs one command against a private copy of the collection. The copy
// replaces the canonical collection only when fn reports a change.
func (s *TodoService) apply(
	ctx context.Context,
	command string,
	resort bool,
	fn func(todos []model.Todo, now time.Time) ([]model.Todo, bool),
) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := fn(model.CloneTodos(s.todos), s.clock())
	if !changed {
		s.metrics.ObserveCommand(command, "noop")
		return
	}
	if resort {
		SortTodos(next)
	}

	s.todos = next
	s.metrics.ObserveCommand(command, "ok")
	s.metrics.SetTodoCount(len(next))
	s.persist(ctx, command)
	s.publish()
}

// persist writes the collection even when ctx is already cancelled: the
// in-memory change has been applied and storage must follow it.
func (s *TodoService) persist(ctx context.Context, command string) {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(context.WithoutCancel(ctx), model.CloneTodos(s.todos)); err != nil {
		s.metrics.ObservePersistFailure("save")
		s.logger.Error().
			Err(err).
			Str("command", command).
			Msg("failed to persist todos")
	}
}

func (s *TodoService) publish() {
	for _, fn := range s.subscribers {
		fn(model.CloneTodos(s.todos))
	}
}

// nextID derives an id from the clock, bumping past the last one issued so
// two creates in the same millisecond stay distinct.
func (s *TodoService) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func touch(t *model.Todo, now time.Time) {
	if now.Before(t.CreatedAt) {
		now = t.CreatedAt
	}
	t.UpdatedAt = now
}

func find(todos []model.Todo, id int64) *model.Todo {
	if i := index(todos, id); i >= 0 {
		return &todos[i]
	}
	return nil
}

func index(todos []model.Todo, id int64) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
