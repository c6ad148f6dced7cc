package storage

import (
	"path/filepath"
	"testing"
)

func TestSQLiteSlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "test.db")
	slot, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer slot.Close()

	if _, found, err := slot.Get("tasks"); err != nil || found {
		t.Fatalf("Get on empty db: found=%v err=%v", found, err)
	}

	if err := slot.Set("tasks", []byte("[1]")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := slot.Set("tasks", []byte("[2]")); err != nil {
		t.Fatalf("second Set failed: %v", err)
	}
	v, found, err := slot.Get("tasks")
	if err != nil || !found {
		t.Fatalf("Get: found=%v err=%v", found, err)
	}
	if string(v) != "[2]" {
		t.Errorf("Get = %q, want [2]", v)
	}
}

func TestSQLiteSlotPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	slot, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	a := NewAdapter(slot, "tasks", nil)
	if err := a.Save(sampleTasks()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	slot.Close()

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()
	got := NewAdapter(reopened, "tasks", nil).Load()
	if len(got) != 2 || got[0].Title != "Buy milk" || got[1].Title != "Write report" {
		t.Errorf("unexpected tasks after reopen: %+v", got)
	}
}

func TestOpenSQLiteEmptyPath(t *testing.T) {
	if _, err := OpenSQLite(""); err == nil {
		t.Error("expected error for empty path")
	}
}
