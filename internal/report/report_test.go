package report

import (
	"strings"
	"testing"
	"time"

	"github.com/nissyi-gh/taskdeck/internal/model"
)

func TestSummary(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	past := "2024-06-01"
	today := "2024-06-15"
	tasks := []model.Task{
		{Title: "Buy milk", Category: "Shopping", Priority: model.PriorityLow},
		{Title: "Ship release", Category: "Work", Priority: model.PriorityHigh, DueDate: &past},
		{Title: "Call mom", Category: "Personal", Priority: model.PriorityMedium, DueDate: &today},
		{Title: "Old chore", Category: "Other", Priority: model.PriorityHigh, Completed: true},
	}

	got := Summary(tasks, now)
	for _, want := range []string{
		"# Tasks (2024-06-15)",
		"- Total: 4",
		"- Completed: 1",
		"- Progress: 25% (poor)",
		"- 1 task overdue",
		"## High priority\n- [ ] Ship release (Work) due 2024-06-01 OVERDUE",
		"- [ ] Call mom (Personal) due 2024-06-15 today",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Old chore") {
		t.Error("completed tasks should not be listed")
	}
	if strings.Index(got, "Ship release") > strings.Index(got, "Buy milk") {
		t.Error("high priority tasks should come before low priority ones")
	}
}

func TestSummaryEmpty(t *testing.T) {
	got := Summary(nil, time.Now())
	if !strings.Contains(got, "- Total: 0") || strings.Contains(got, "## Attention") {
		t.Errorf("unexpected empty summary:\n%s", got)
	}
}
