package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "todo-list.com/todo-list/internal/errors"
)

func TestParseDue(t *testing.T) {
	loc := time.FixedZone("test", 3*60*60)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-06-15T23:00:00Z", time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)},
		{"2024-06-15 23:00", time.Date(2024, 6, 15, 23, 0, 0, 0, loc)},
		{"  2024-06-16 ", time.Date(2024, 6, 16, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		got, err := parseDue(tt.in, loc)
		require.NoError(t, err, tt.in)
		require.NotNil(t, got)
		assert.True(t, tt.want.Equal(*got), "%s: got %v", tt.in, *got)
	}

	got, err := parseDue("", loc)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseDue("next tuesday", loc)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDueDate)
}

func TestParseTodoID(t *testing.T) {
	id, err := parseTodoID("1718445600000")
	require.NoError(t, err)
	assert.Equal(t, int64(1718445600000), id)

	for _, bad := range []string{"", "x", "0", "-1"} {
		_, err := parseTodoID(bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTodoID, bad)
	}
}
