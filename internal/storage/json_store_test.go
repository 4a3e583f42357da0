package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/reciteapp/recite/internal/models"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	store := NewJSONStore(filepath.Join(t.TempDir(), "recite.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return store
}

func TestJSONInitRefusesExistingFile(t *testing.T) {
	store := newTestJSONStore(t)
	if err := store.Init(); err == nil {
		t.Error("second Init should fail on an existing file")
	}
}

func TestJSONLoadRequiresInit(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "recite.json"))
	if err := store.Load(); err == nil {
		t.Error("Load on a missing file should fail")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recite.json")

	store := NewJSONStore(path)
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}

	note := models.Note{ID: "n1", Path: "notes/go.md", Title: "go", CreatedAt: time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)}
	if err := store.AddNote(note); err != nil {
		t.Fatalf("AddNote: %v", err)
	}

	next := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	sched := models.NewSM2Schedule("n1", models.SM2State{Ease: 250, Interval: 6, Category: models.CategorySpaced}, next)
	if err := store.SaveSchedule(sched); err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}

	history := []models.HistoryItem{{ID: "h1", NoteID: "n1", Timestamp: next, Response: 4, IntervalDays: 1, Ease: 250}}
	if err := store.SaveHistory(history); err != nil {
		t.Fatalf("SaveHistory: %v", err)
	}
	if err := store.SaveCustomOrder([]string{"n1"}); err != nil {
		t.Fatalf("SaveCustomOrder: %v", err)
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	settings.BaseEase = 220
	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	// Everything must survive a reload from disk.
	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	gotNote, err := reopened.GetNote("n1")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if gotNote.Title != "go" || !gotNote.CreatedAt.Equal(note.CreatedAt) {
		t.Errorf("note mismatch: %+v", gotNote)
	}

	gotSched, err := reopened.GetSchedule("n1")
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	if gotSched.SM2 == nil || gotSched.SM2.Interval != 6 || !gotSched.NextReviewDate.Equal(next) {
		t.Errorf("schedule mismatch: %+v", gotSched)
	}

	gotHistory, err := reopened.GetHistory()
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(gotHistory) != 1 || gotHistory[0].ID != "h1" {
		t.Errorf("history mismatch: %+v", gotHistory)
	}

	gotOrder, err := reopened.GetCustomOrder()
	if err != nil {
		t.Fatalf("GetCustomOrder: %v", err)
	}
	if len(gotOrder) != 1 || gotOrder[0] != "n1" {
		t.Errorf("custom order mismatch: %v", gotOrder)
	}

	gotSettings, err := reopened.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if gotSettings.BaseEase != 220 {
		t.Errorf("base ease = %d, want 220", gotSettings.BaseEase)
	}
}

func TestJSONDeleteNoteAndSchedule(t *testing.T) {
	store := newTestJSONStore(t)

	note := models.Note{ID: "n1", Path: "p", Title: "t", CreatedAt: time.Now().UTC()}
	if err := store.AddNote(note); err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	sched := models.NewSM2Schedule("n1", models.SM2State{Ease: 250}, time.Now().UTC())
	if err := store.SaveSchedule(sched); err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}

	if err := store.DeleteSchedule("n1"); err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}
	if err := store.DeleteNote("n1"); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}
	if _, err := store.GetNote("n1"); err == nil {
		t.Error("expected error for deleted note")
	}
	if _, err := store.GetSchedule("n1"); err == nil {
		t.Error("expected error for deleted schedule")
	}
}

func TestJSONStoreNotLoaded(t *testing.T) {
	store := NewJSONStore(filepath.Join(t.TempDir(), "recite.json"))
	if _, err := store.GetSettings(); err == nil {
		t.Error("expected error before Load")
	}
	if err := store.AddNote(models.Note{ID: "x"}); err == nil {
		t.Error("expected error before Load")
	}
}
