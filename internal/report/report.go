// Package report renders a plain-text summary of the task list.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/nissyi-gh/taskdeck/internal/stats"
)

// Summary returns a markdown report of the statistics and the pending tasks,
// grouped by priority and otherwise in collection order.
func Summary(tasks []model.Task, now time.Time) string {
	st := stats.Compute(tasks, now)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Tasks (%s)\n\n", now.Format(model.DateLayout)))
	sb.WriteString(fmt.Sprintf("- Total: %d\n", st.Total))
	sb.WriteString(fmt.Sprintf("- Completed: %d\n", st.Completed))
	sb.WriteString(fmt.Sprintf("- Pending: %d\n", st.Pending))
	sb.WriteString(fmt.Sprintf("- Progress: %d%% (%s)\n", st.CompletionRate, st.Progress()))

	if alerts := st.Alerts(); len(alerts) > 0 {
		sb.WriteString("\n## Attention\n")
		for _, a := range alerts {
			sb.WriteString("- " + a.Text + "\n")
		}
	}

	for _, p := range model.Priorities {
		var lines []string
		for _, t := range tasks {
			if t.Completed || t.Priority != p {
				continue
			}
			lines = append(lines, line(t, now))
		}
		if len(lines) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("\n## %s priority\n", strings.ToUpper(string(p[:1]))+string(p[1:])))
		for _, l := range lines {
			sb.WriteString(l + "\n")
		}
	}

	return sb.String()
}

func line(t model.Task, now time.Time) string {
	s := fmt.Sprintf("- [ ] %s (%s)", t.Title, t.Category)
	if t.DueDate != nil {
		s += " due " + *t.DueDate
		if t.IsOverdue(now) {
			s += " OVERDUE"
		} else if t.IsDueToday(now) {
			s += " today"
		}
	}
	return s
}
