// Package stats aggregates read-only metrics over the task collection.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/nissyi-gh/taskdeck/internal/model"
)

// Stats is a snapshot of collection-wide counts.
type Stats struct {
	Total               int `json:"total"`
	Completed           int `json:"completed"`
	Pending             int `json:"pending"`
	CompletionRate      int `json:"completionRate"`
	HighPriorityPending int `json:"highPriorityPending"`
	Overdue             int `json:"overdue"`
}

// Compute derives Stats from the full collection. now decides which due
// dates are in the past.
func Compute(tasks []model.Task, now time.Time) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Completed {
			s.Completed++
			continue
		}
		if t.Priority == model.PriorityHigh {
			s.HighPriorityPending++
		}
		if t.IsOverdue(now) {
			s.Overdue++
		}
	}
	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	return s
}

// Progress buckets the completion rate.
type Progress int

const (
	ProgressPoor Progress = iota
	ProgressFair
	ProgressGood
	ProgressExcellent
)

func (p Progress) String() string {
	switch p {
	case ProgressExcellent:
		return "excellent"
	case ProgressGood:
		return "good"
	case ProgressFair:
		return "fair"
	}
	return "poor"
}

// Progress returns the band of the completion rate.
func (s Stats) Progress() Progress {
	switch {
	case s.CompletionRate >= 80:
		return ProgressExcellent
	case s.CompletionRate >= 60:
		return ProgressGood
	case s.CompletionRate >= 40:
		return ProgressFair
	}
	return ProgressPoor
}

// AlertKind says what an Alert warns about.
type AlertKind int

const (
	AlertOverdue AlertKind = iota
	AlertHighPriority
)

// Alert is one warning line of the statistics panel.
type Alert struct {
	Kind AlertKind
	Text string
}

// Alerts returns warnings for overdue and high priority work, overdue first.
func (s Stats) Alerts() []Alert {
	var out []Alert
	if s.Overdue > 0 {
		out = append(out, Alert{
			Kind: AlertOverdue,
			Text: fmt.Sprintf("%d %s overdue", s.Overdue, plural(s.Overdue, "task")),
		})
	}
	if s.HighPriorityPending > 0 {
		out = append(out, Alert{
			Kind: AlertHighPriority,
			Text: fmt.Sprintf("%d high priority %s pending", s.HighPriorityPending, plural(s.HighPriorityPending, "task")),
		})
	}
	return out
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
