package model

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestIsOverdue(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{"no due date", Task{}, false},
		{"yesterday", Task{DueDate: strPtr("2024-03-09")}, true},
		{"today", Task{DueDate: strPtr("2024-03-10")}, false},
		{"tomorrow", Task{DueDate: strPtr("2024-03-11")}, false},
		{"yesterday but completed", Task{DueDate: strPtr("2024-03-09"), Completed: true}, false},
		{"unparseable", Task{DueDate: strPtr("soon")}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDueToday(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 1, 0, time.UTC)
	if !(Task{DueDate: strPtr("2024-03-10")}).IsDueToday(now) {
		t.Error("expected task due 2024-03-10 to be due today")
	}
	if (Task{DueDate: strPtr("2024-03-11")}).IsDueToday(now) {
		t.Error("expected task due 2024-03-11 not to be due today")
	}
}

func TestParsePriority(t *testing.T) {
	if p, ok := ParsePriority(" HIGH "); !ok || p != PriorityHigh {
		t.Errorf("ParsePriority(HIGH) = %q, %v", p, ok)
	}
	if p, ok := ParsePriority("urgent"); ok || p != PriorityMedium {
		t.Errorf("ParsePriority(urgent) = %q, %v; want medium, false", p, ok)
	}
	if Priority("High").Valid() {
		t.Error("Valid() should be case sensitive")
	}
}

func TestNormalizeDueDate(t *testing.T) {
	got, err := NormalizeDueDate(strPtr("  "))
	if err != nil || got != nil {
		t.Errorf("blank due date: got %v, %v", got, err)
	}
	got, err = NormalizeDueDate(strPtr(" 2024-01-05 "))
	if err != nil || got == nil || *got != "2024-01-05" {
		t.Errorf("valid due date: got %v, %v", got, err)
	}
	if _, err := NormalizeDueDate(strPtr("2024-13-01")); err == nil {
		t.Error("expected error for month 13")
	}
}
