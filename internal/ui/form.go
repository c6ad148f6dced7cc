package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/nissyi-gh/taskdeck/internal/query"
)

const (
	fieldTitle = iota
	fieldCategory
	fieldPriority
	fieldDue
	fieldCount
)

// taskForm collects the fields of a new or edited task.
type taskForm struct {
	editing  *model.Task
	title    textinput.Model
	category textinput.Model
	priority model.Priority
	due      dateInput
	focus    int
}

func newTaskForm(now func() time.Time) taskForm {
	title := textinput.New()
	title.Placeholder = "Task title..."
	title.CharLimit = 256

	category := textinput.New()
	category.Placeholder = strings.Join(model.SuggestedCategories, ", ")
	category.CharLimit = 32
	category.SetValue(model.DefaultCategory)

	return taskForm{
		title:    title,
		category: category,
		priority: model.PriorityMedium,
		due:      newDateInput(now),
	}
}

// editTaskForm returns a form prefilled from t.
func editTaskForm(t model.Task, now func() time.Time) taskForm {
	f := newTaskForm(now)
	f.editing = &t
	f.title.SetValue(t.Title)
	f.category.SetValue(t.Category)
	f.priority = t.Priority
	f.due.SetValue(t.DueDate)
	return f
}

func (f *taskForm) Focus() tea.Cmd {
	return f.focusField(fieldTitle)
}

func (f *taskForm) focusField(idx int) tea.Cmd {
	f.focus = idx
	f.title.Blur()
	f.category.Blur()
	f.due.Blur()
	switch idx {
	case fieldTitle:
		return f.title.Focus()
	case fieldCategory:
		return f.category.Focus()
	case fieldDue:
		return f.due.Focus()
	}
	return nil
}

// Draft returns the entered values. The due date must be valid or empty.
func (f *taskForm) Draft() (model.Draft, error) {
	due, err := f.due.Value()
	if err != nil {
		return model.Draft{}, err
	}
	d := model.Draft{
		Title:    f.title.Value(),
		Category: strings.TrimSpace(f.category.Value()),
		Priority: f.priority,
		DueDate:  due,
	}
	if f.editing != nil {
		d.Completed = f.editing.Completed
	}
	return d, nil
}

func (f taskForm) Update(msg tea.Msg) (taskForm, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			cmd := f.focusField((f.focus + 1) % fieldCount)
			return f, cmd
		case "shift+tab", "up":
			cmd := f.focusField((f.focus + fieldCount - 1) % fieldCount)
			return f, cmd
		case "ctrl+n":
			switch f.focus {
			case fieldCategory:
				f.category.SetValue(query.Next(model.SuggestedCategories, f.category.Value()))
				f.category.CursorEnd()
				return f, nil
			case fieldPriority:
				f.priority = nextPriority(f.priority)
				return f, nil
			}
		}
		if f.focus == fieldPriority {
			switch keyMsg.String() {
			case "left", "right", " ", "h", "l":
				f.priority = nextPriority(f.priority)
			}
			return f, nil
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldCategory:
		f.category, cmd = f.category.Update(msg)
	case fieldDue:
		f.due, cmd = f.due.Update(msg)
	}
	return f, cmd
}

func nextPriority(p model.Priority) model.Priority {
	opts := make([]string, len(model.Priorities))
	for i, o := range model.Priorities {
		opts[i] = string(o)
	}
	return model.Priority(query.Next(opts, string(p)))
}

func (f taskForm) View() string {
	label := func(idx int, name string) string {
		if idx == f.focus {
			return focusStyle.Render("> " + name)
		}
		return statusStyle.Render("  " + name)
	}

	var prio []string
	for _, p := range model.Priorities {
		s := string(p)
		if p == f.priority {
			s = "[" + s + "]"
			s = focusStyle.Render(s)
		}
		prio = append(prio, s)
	}

	return label(fieldTitle, "Title") + "\n  " + f.title.View() + "\n\n" +
		label(fieldCategory, "Category") + "\n  " + f.category.View() + "\n\n" +
		label(fieldPriority, "Priority") + "\n  " + strings.Join(prio, " ") + "\n\n" +
		label(fieldDue, "Due date") + "\n  " + f.due.View()
}
