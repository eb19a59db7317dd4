package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"todo-list.com/todo-list/internal/constants"
	apperrors "todo-list.com/todo-list/internal/errors"
	"todo-list.com/todo-list/internal/services"
)

var addCmd = &cobra.Command{
	Use:   "add TITLE...",
	Short: "Create a todo",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, _ := cmd.Flags().GetString("body")
		dueFlag, _ := cmd.Flags().GetString("due")

		due, err := parseDue(dueFlag, time.Local)
		if err != nil {
			return err
		}

		return withApplication(cmd, func(ctx context.Context, app *application) error {
			todo, err := app.todos.Create(ctx, strings.Join(args, " "), body, due)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d\n", todo.ID)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show todos in a bucket",
	Long:  "Shows one bucket, overdue when anything is overdue and due today otherwise. --all shows the full sorted list.",
	RunE: func(cmd *cobra.Command, args []string) error {
		bucketFlag, _ := cmd.Flags().GetString("bucket")
		all, _ := cmd.Flags().GetBool("all")

		var selected constants.Bucket
		if bucketFlag != "" {
			b, ok := constants.ParseBucket(bucketFlag)
			if !ok {
				return fmt.Errorf("unknown bucket %q", bucketFlag)
			}
			selected = b
		}

		return withApplication(cmd, func(ctx context.Context, app *application) error {
			now := time.Now()
			out := cmd.OutOrStdout()

			if all {
				renderTodos(out, app.todos.List(), now)
				return nil
			}

			buckets := app.todos.Buckets(now)
			if selected == "" {
				selected = buckets.Default()
			}
			renderBucketSummary(out, buckets, selected)
			renderTodos(out, buckets.Get(selected), now)
			return nil
		})
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle ID",
	Short: "Flip a todo between done and not done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}

		return withApplication(cmd, func(ctx context.Context, app *application) error {
			app.todos.ToggleComplete(ctx, id)
			return nil
		})
	},
}

var editCmd = &cobra.Command{
	Use:   "edit ID",
	Short: "Change a todo's title, body or due date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}

		return withApplication(cmd, func(ctx context.Context, app *application) error {
			return editTodo(ctx, cmd, app.todos, id)
		})
	},
}

// editTodo overlays the flags that were set on the stored todo. An unknown
// id is a no-op, like every other command.
func editTodo(ctx context.Context, cmd *cobra.Command, todos *services.TodoService, id int64) error {
	current, err := todos.Get(id)
	if errors.Is(err, apperrors.ErrTodoNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	title, body, due := current.Title, current.Body, current.DueDate
	flags := cmd.Flags()
	if flags.Changed("title") {
		title, _ = flags.GetString("title")
	}
	if flags.Changed("body") {
		body, _ = flags.GetString("body")
	}
	if flags.Changed("due") {
		dueFlag, _ := flags.GetString("due")
		if due, err = parseDue(dueFlag, time.Local); err != nil {
			return err
		}
	}
	if noDue, _ := flags.GetBool("no-due"); noDue {
		due = nil
	}

	return todos.Edit(ctx, id, title, body, due)
}

var rmCmd = &cobra.Command{
	Use:     "rm ID",
	Aliases: []string{"delete"},
	Short:   "Delete a todo",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTodoID(args[0])
		if err != nil {
			return err
		}

		return withApplication(cmd, func(ctx context.Context, app *application) error {
			app.todos.Delete(ctx, id)
			return nil
		})
	},
}

func parseTodoID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidTodoID
	}
	return id, nil
}

func addEditFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "new title")
	cmd.Flags().String("body", "", "new body")
	cmd.Flags().String("due", "", "new due date")
	cmd.Flags().Bool("no-due", false, "remove the due date")
}

func init() {
	addCmd.Flags().String("body", "", "free-text details")
	addCmd.Flags().String("due", "", `due date: RFC 3339, "2006-01-02 15:04" or "2006-01-02"`)

	listCmd.Flags().String("bucket", "", "overdue, dueToday, upcoming, noDueDate or completed")
	listCmd.Flags().Bool("all", false, "show every todo in stored order")

	addEditFlags(editCmd)

	rootCmd.AddCommand(addCmd, listCmd, toggleCmd, editCmd, rmCmd)
}
