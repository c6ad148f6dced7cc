package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nissyi-gh/taskdeck/internal/config"
	"github.com/nissyi-gh/taskdeck/internal/storage"
)

func run(t *testing.T, slot storage.Slot, args ...string) (string, error) {
	t.Helper()
	a := &app{
		cfg: &config.Config{
			LogFile:  filepath.Join(t.TempDir(), "test.log"),
			LogLevel: "debug",
			SlotKey:  config.DefaultSlotKey,
		},
		slot: slot,
	}
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr, a)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if cerr := a.close(); cerr != nil {
		t.Errorf("close: %v", cerr)
	}
	return stdout.String(), err
}

func TestAddListStats(t *testing.T) {
	slot := storage.NewMemorySlot()

	out, err := run(t, slot, "add", "Buy milk", "--category", "Shopping", "--priority", "low")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(out, "Added task") {
		t.Errorf("add output = %q", out)
	}
	if _, err := run(t, slot, "add", "Ship release", "-c", "Work", "-p", "high", "-d", "2000-01-01"); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	out, err = run(t, slot, "list", "--search", "MILK")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Buy milk") || strings.Contains(out, "Ship release") {
		t.Errorf("list output:\n%s", out)
	}

	out, err = run(t, slot, "list", "--priority", "high")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "2000-01-01 (overdue)") {
		t.Errorf("overdue mark missing:\n%s", out)
	}

	out, err = run(t, slot, "stats")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	for _, want := range []string{"Total:          2", "High priority:  1", "Overdue:        1"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats missing %q:\n%s", want, out)
		}
	}
}

func TestAddRejectsEmptyTitle(t *testing.T) {
	slot := storage.NewMemorySlot()
	if _, err := run(t, slot, "add", "   "); err == nil {
		t.Error("expected error for blank title")
	}
	if _, err := run(t, slot, "add", "x", "--priority", "urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
	out, _ := run(t, slot, "list")
	if !strings.Contains(out, "No tasks found") {
		t.Errorf("list output = %q", out)
	}
}

func firstID(t *testing.T, slot storage.Slot) string {
	t.Helper()
	out, err := run(t, slot, "list")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		t.Fatalf("no tasks listed:\n%s", out)
	}
	return strings.Fields(lines[1])[0]
}

func TestToggleEditRemove(t *testing.T) {
	slot := storage.NewMemorySlot()
	if _, err := run(t, slot, "add", "Read book", "-d", "2030-05-05"); err != nil {
		t.Fatal(err)
	}
	id := firstID(t, slot)

	out, err := run(t, slot, "toggle", id)
	if err != nil || !strings.Contains(out, "completed") {
		t.Fatalf("toggle: %q %v", out, err)
	}

	if _, err := run(t, slot, "edit", id, "--title", "Read two books", "--clear-due"); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	out, _ = run(t, slot, "list")
	if !strings.Contains(out, "Read two books") || strings.Contains(out, "2030-05-05") {
		t.Errorf("edit not applied:\n%s", out)
	}
	if _, err := run(t, slot, "edit", id, "--title", " "); err == nil {
		t.Error("expected error for blank title edit")
	}

	out, err = run(t, slot, "rm", id)
	if err != nil || !strings.Contains(out, "Deleted") {
		t.Fatalf("rm: %q %v", out, err)
	}
	out, err = run(t, slot, "rm", id)
	if err != nil || !strings.Contains(out, "No task") {
		t.Errorf("second rm: %q %v", out, err)
	}
	if _, err := run(t, slot, "toggle", "abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.yaml")
	if err := os.WriteFile(in, []byte("tasks:\n  - title: Gym\n    category: Health\n  - title: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	slot := storage.NewMemorySlot()

	out, err := run(t, slot, "import", in)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 1 tasks (1 skipped)") {
		t.Errorf("import output = %q", out)
	}

	outFile := filepath.Join(dir, "out.yaml")
	if _, err := run(t, slot, "export", outFile); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "title: Gym") {
		t.Errorf("export content:\n%s", data)
	}
}

func TestReport(t *testing.T) {
	slot := storage.NewMemorySlot()
	run(t, slot, "add", "Ship release", "-p", "high")
	out, err := run(t, slot, "report")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if !strings.Contains(out, "## High priority") || !strings.Contains(out, "Ship release") {
		t.Errorf("report output:\n%s", out)
	}
}

func TestEphemeralAndSQLite(t *testing.T) {
	db := filepath.Join(t.TempDir(), "tasks.db")
	a := &app{cfg: &config.Config{DBPath: db, LogFile: filepath.Join(t.TempDir(), "x.log"), SlotKey: "tasks"}}
	cmd := newRootCommand(&bytes.Buffer{}, &bytes.Buffer{}, a)
	cmd.SetArgs([]string{"add", "Persisted"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	b := &app{cfg: &config.Config{DBPath: db, LogFile: filepath.Join(t.TempDir(), "y.log"), SlotKey: "tasks"}}
	var out bytes.Buffer
	cmd = newRootCommand(&out, &bytes.Buffer{}, b)
	cmd.SetArgs([]string{"list"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Persisted") {
		t.Errorf("task not persisted in SQLite:\n%s", out.String())
	}

	c := &app{cfg: &config.Config{DBPath: db, LogFile: filepath.Join(t.TempDir(), "z.log"), SlotKey: "tasks"}}
	out.Reset()
	cmd = newRootCommand(&out, &bytes.Buffer{}, c)
	cmd.SetArgs([]string{"list", "--ephemeral"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("ephemeral list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No tasks found") {
		t.Errorf("ephemeral run should not read the database:\n%s", out.String())
	}
}
