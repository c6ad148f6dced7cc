// Package query derives filtered views of the task collection.
package query

import (
	"strings"

	"github.com/nissyi-gh/taskdeck/internal/model"
)

// All is the selector value matching every category or priority.
const All = "all"

// Filter holds the three independent criteria of the task list. All of them
// must match for a task to be shown. Category is an exact match unless it is
// All; an empty Category only matches tasks without a category.
type Filter struct {
	Search   string
	Category string
	Priority string
}

// NewFilter returns a filter matching every task.
func NewFilter() Filter {
	return Filter{Category: All, Priority: All}
}

// Match reports whether t satisfies every criterion of f.
func (f Filter) Match(t model.Task) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(t.Title), strings.ToLower(f.Search)) {
		return false
	}
	if f.Category != All && t.Category != f.Category {
		return false
	}
	if !isAll(f.Priority) && string(t.Priority) != f.Priority {
		return false
	}
	return true
}

// Apply returns the tasks matching f in their original order. The input is
// not modified.
func Apply(tasks []model.Task, f Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Categories returns All followed by each distinct category in the order it
// first appears.
func Categories(tasks []model.Task) []string {
	seen := make(map[string]bool)
	out := []string{All}
	for _, t := range tasks {
		if seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}

// Priorities returns the values offered by the priority selector.
func Priorities() []string {
	out := []string{All}
	for _, p := range model.Priorities {
		out = append(out, string(p))
	}
	return out
}

// Next returns the value following current in options, wrapping around. An
// unknown current yields the first option.
func Next(options []string, current string) string {
	if len(options) == 0 {
		return All
	}
	for i, o := range options {
		if o == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// isAll treats an empty priority as All; stored tasks always carry a priority.
func isAll(v string) bool {
	return v == "" || v == All
}
