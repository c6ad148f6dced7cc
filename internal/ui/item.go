package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/nissyi-gh/taskdeck/internal/model"
)

var priorityColors = map[model.Priority]lipgloss.Color{
	model.PriorityHigh:   lipgloss.Color("196"),
	model.PriorityMedium: lipgloss.Color("214"),
	model.PriorityLow:    lipgloss.Color("34"),
}

// TaskItem wraps model.Task to satisfy the list.DefaultItem interface.
type TaskItem struct {
	Task model.Task
	Now  time.Time
}

func (i TaskItem) Title() string {
	check := "[ ]"
	if i.Task.Completed {
		check = "[x]"
	}
	badge := lipgloss.NewStyle().
		Foreground(priorityColors[i.Task.Priority]).
		Bold(true).
		Render(strings.ToUpper(string(i.Task.Priority)))
	title := i.Task.Title
	if i.Task.Completed {
		title = doneStyle.Render(title)
	}
	return fmt.Sprintf("%s %s %s", check, title, badge)
}

func (i TaskItem) Description() string {
	desc := i.Task.Category
	if i.Task.DueDate != nil {
		due := "due " + *i.Task.DueDate
		if i.Task.IsOverdue(i.Now) {
			due = errorStyle.Render("⚠️ " + due + " (overdue)")
		} else if i.Task.IsDueToday(i.Now) {
			due = "📅 " + due
		}
		desc += "  " + due
	}
	return desc
}

func (i TaskItem) FilterValue() string {
	return i.Task.Title
}
