package importer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/nissyi-gh/taskdeck/internal/logger"
	"github.com/nissyi-gh/taskdeck/internal/model"
	"github.com/nissyi-gh/taskdeck/internal/store"
)

func newStore() *store.TaskStore {
	clock := func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return store.New(nil, nil, store.WithClock(clock), store.WithLogger(logger.Discard()))
}

func TestImport(t *testing.T) {
	input := `
tasks:
  - title: Buy milk
    category: Shopping
    priority: low
  - title: "   "
  - title: Dentist
    category: Health
    priority: HIGH
    due_date: 2024-02-01
  - title: Read book
`
	s := newStore()
	res, err := Import(s, strings.NewReader(input))
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if res.Created != 3 || res.Skipped != 1 {
		t.Errorf("Result = %+v, want 3 created, 1 skipped", res)
	}

	tasks := s.Tasks()
	if len(tasks) != 3 {
		t.Fatalf("got %d tasks", len(tasks))
	}
	if tasks[1].Priority != model.PriorityHigh || tasks[1].DueDate == nil || *tasks[1].DueDate != "2024-02-01" {
		t.Errorf("unexpected dentist task: %+v", tasks[1])
	}
	if tasks[2].Category != model.DefaultCategory || tasks[2].Priority != model.PriorityMedium {
		t.Errorf("defaults not applied: %+v", tasks[2])
	}
}

func TestImportErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"no tasks":     "tasks: []\n",
		"not yaml":     "tasks: [unclosed\n",
		"bad priority": "tasks:\n  - title: x\n    priority: urgent\n",
		"bad due date": "tasks:\n  - title: x\n    due_date: tomorrow\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Import(newStore(), strings.NewReader(input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExportThenImport(t *testing.T) {
	src := newStore()
	due := "2024-03-03"
	src.Create(model.Draft{Title: "Gym", Category: "Health", Priority: model.PriorityHigh, DueDate: &due})
	src.Create(model.Draft{Title: "Groceries", Category: "Shopping", Priority: model.PriorityLow, Completed: true})

	var buf bytes.Buffer
	if err := Export(&buf, src.Tasks()); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !strings.Contains(buf.String(), "due_date: \"2024-03-03\"") && !strings.Contains(buf.String(), "due_date: 2024-03-03") {
		t.Errorf("export missing due date:\n%s", buf.String())
	}

	dst := newStore()
	if _, err := Import(dst, &buf); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	want, got := src.Tasks(), dst.Tasks()
	if len(got) != len(want) {
		t.Fatalf("got %d tasks, want %d", len(got), len(want))
	}
	for i := range want {
		w, g := want[i], got[i]
		if g.Title != w.Title || g.Category != w.Category || g.Priority != w.Priority || g.Completed != w.Completed {
			t.Errorf("task %d = %+v, want %+v", i, g, w)
		}
	}
	if got[0].DueDate == nil || *got[0].DueDate != due {
		t.Errorf("due date lost: %+v", got[0])
	}
}
