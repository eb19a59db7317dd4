package cmd

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "todo-list.com/todo-list/internal/errors"
	"todo-list.com/todo-list/internal/services"
)

func newEditCommand(t *testing.T, flags map[string]string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "edit"}
	addEditFlags(cmd)
	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	return cmd
}

func TestEditTodo_OverlaysChangedFlags(t *testing.T) {
	ctx := context.Background()
	todos := services.NewTodoService(zerolog.Nop(), nil)

	due := time.Date(2024, 6, 20, 9, 0, 0, 0, time.UTC)
	created, err := todos.Create(ctx, "write report", "draft", &due)
	require.NoError(t, err)

	cmd := newEditCommand(t, map[string]string{"title": "ship report"})
	require.NoError(t, editTodo(ctx, cmd, todos, created.ID))

	got, err := todos.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ship report", got.Title)
	assert.Equal(t, "draft", got.Body)
	require.NotNil(t, got.DueDate)
	assert.True(t, due.Equal(*got.DueDate))

	cmd = newEditCommand(t, map[string]string{"no-due": "true"})
	require.NoError(t, editTodo(ctx, cmd, todos, created.ID))

	got, err = todos.Get(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.DueDate)
}

func TestEditTodo_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	todos := services.NewTodoService(zerolog.Nop(), nil)

	cmd := newEditCommand(t, map[string]string{"title": "anything"})
	assert.NoError(t, editTodo(ctx, cmd, todos, 42))
	assert.Empty(t, todos.List())
}

func TestEditTodo_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	todos := services.NewTodoService(zerolog.Nop(), nil)

	created, err := todos.Create(ctx, "keep me", "", nil)
	require.NoError(t, err)

	err = editTodo(ctx, newEditCommand(t, map[string]string{"due": "someday"}), todos, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDueDate)

	err = editTodo(ctx, newEditCommand(t, map[string]string{"title": "  "}), todos, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrTitleRequired)

	got, err := todos.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "keep me", got.Title)
}
