package model

import (
	"strings"
	"time"
)

// DateLayout is the format of due dates: a calendar date without time.
const DateLayout = "2006-01-02"

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// SuggestedCategories are offered by the form. Any other value is accepted.
var SuggestedCategories = []string{"Work", "Personal", "Shopping", "Health", "Education", "Other"}

// DefaultCategory is preselected when adding a task.
const DefaultCategory = "Work"

// ParsePriority returns the priority named by s and whether it is known.
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, true
	}
	return PriorityMedium, false
}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task represents a single tracked task.
type Task struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Priority  Priority  `json:"priority"`
	DueDate   *string   `json:"dueDate,omitempty"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Draft holds the user-supplied fields of a task that does not exist yet.
type Draft struct {
	Title     string
	Category  string
	Priority  Priority
	DueDate   *string
	Completed bool
}

// Today returns now truncated to its calendar date in now's location.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// Due parses the task's due date in loc. ok is false when the task has no
// due date or it does not parse.
func (t Task) Due(loc *time.Location) (time.Time, bool) {
	if t.DueDate == nil || *t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.ParseInLocation(DateLayout, *t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// IsDueToday returns true if the task's due date is the date of now.
func (t Task) IsDueToday(now time.Time) bool {
	d, ok := t.Due(now.Location())
	return ok && d.Equal(Today(now))
}

// IsOverdue returns true if the task is not completed and its due date is
// strictly before the date of now. A task due today is not overdue.
func (t Task) IsOverdue(now time.Time) bool {
	if t.Completed {
		return false
	}
	d, ok := t.Due(now.Location())
	return ok && d.Before(Today(now))
}

// NormalizeDueDate trims s and returns nil when it is empty. A present value
// must parse as DateLayout.
func NormalizeDueDate(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, v)
	if err != nil {
		return nil, err
	}
	v = d.Format(DateLayout)
	return &v, nil
}
