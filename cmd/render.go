package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"todo-list.com/todo-list/internal/classifier"
	"todo-list.com/todo-list/internal/constants"
	model "todo-list.com/todo-list/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dueStatusStyles = map[constants.DueStatus]lipgloss.Style{
		constants.DueStatusOverdue: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		constants.DueStatusDueSoon: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		constants.DueStatusOnTrack: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func renderBucketSummary(w io.Writer, buckets classifier.Buckets, selected constants.Bucket) {
	parts := make([]string, 0, len(constants.Buckets))
	for _, bucket := range constants.Buckets {
		label := fmt.Sprintf("%s (%d)", bucket, len(buckets.Get(bucket)))
		if bucket == selected {
			label = headerStyle.Render("[" + label + "]")
		}
		parts = append(parts, label)
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
}

func renderTodos(w io.Writer, todos []model.Todo, now time.Time) {
	if len(todos) == 0 {
		fmt.Fprintln(w, dimStyle.Render("nothing here"))
		return
	}

	for _, t := range todos {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %d  %s", mark, t.ID, t.Title)

		if status, ok := classifier.DueStatus(t, now); ok {
			due := t.DueDate.In(now.Location()).Format("Mon Jan 2 15:04")
			label := fmt.Sprintf("%s - %s", status, due)
			if t.Completed {
				label = dimStyle.Render(label)
			} else {
				label = dueStatusStyles[status].Render(label)
			}
			line += "  " + label
		}
		if t.IsEditing {
			line += "  " + dimStyle.Render("(editing)")
		}
		fmt.Fprintln(w, line)

		if t.Body != "" {
			fmt.Fprintln(w, dimStyle.Render("      "+t.Body))
		}
	}
}
