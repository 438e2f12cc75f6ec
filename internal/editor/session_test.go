package editor

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"LocalNotes/internal/export"
	"LocalNotes/internal/state"
	"LocalNotes/internal/store"
)

type memStorage struct {
	notes   map[string]store.Record
	saves   int
	failErr error
	nextID  int
}

func newMemStorage() *memStorage { return &memStorage{notes: map[string]store.Record{}} }

func (m *memStorage) LoadScene(_ context.Context, id string) (store.Record, error) {
	rec, ok := m.notes[id]
	if !ok {
		return store.Record{}, store.ErrNotFound
	}
	return rec, nil
}

func (m *memStorage) SaveScene(_ context.Context, rec store.Record) (string, error) {
	if m.failErr != nil {
		return "", m.failErr
	}
	if rec.ID == "" {
		m.nextID++
		rec.ID = fmt.Sprintf("note-%d", m.nextID)
	}
	m.notes[rec.ID] = rec
	m.saves++
	return rec.ID, nil
}

func (m *memStorage) MoveNote(_ context.Context, id, folderID string) error {
	rec, ok := m.notes[id]
	if !ok {
		return store.ErrNotFound
	}
	rec.FolderID = folderID
	m.notes[id] = rec
	return nil
}

type fakeExporter struct{ got export.Request }

func (f *fakeExporter) Export(_ context.Context, req export.Request) (string, error) {
	f.got = req
	return "/tmp/" + req.Title + ".pdf", nil
}

func TestSessionSaveAndReopen(t *testing.T) {
	ctx := context.Background()
	mem := newMemStorage()
	s := NewSession(New(), mem, nil, SwitchAutosave)
	drawStroke(s.Editor(), [2]float64{0, 0}, [2]float64{10, 10})
	s.SetTitle("Groceries")

	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.NoteID() == "" || s.Dirty() {
		t.Fatalf("after save id=%q dirty=%v", s.NoteID(), s.Dirty())
	}
	id := s.NoteID()

	s.New()
	if s.NoteID() != "" || len(s.Editor().Items()) != 0 {
		t.Fatalf("New kept old note")
	}
	if err := s.Open(ctx, id); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.Title() != "Groceries" || len(s.Editor().Items()) != 1 {
		t.Fatalf("reopened title=%q items=%d", s.Title(), len(s.Editor().Items()))
	}
	if s.Editor().CanUndo() {
		t.Fatalf("history survived a reopen")
	}
}

func TestSessionOpenMalformedIsEmpty(t *testing.T) {
	mem := newMemStorage()
	mem.notes["bad"] = store.Record{ID: "bad", Title: "Broken", Items: []byte("{not json")}
	s := NewSession(New(), mem, nil, SwitchAutosave)
	if err := s.Open(context.Background(), "bad"); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(s.Editor().Items()) != 0 {
		t.Fatalf("malformed note opened with items")
	}
}

func TestSessionOpenMissing(t *testing.T) {
	s := NewSession(New(), newMemStorage(), nil, SwitchAutosave)
	if err := s.Open(context.Background(), "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestSwitchAutosaves(t *testing.T) {
	ctx := context.Background()
	mem := newMemStorage()
	data, _ := state.EncodeItems(nil)
	mem.notes["other"] = store.Record{ID: "other", Title: "Other", Items: data}

	s := NewSession(New(), mem, nil, SwitchAutosave)
	drawStroke(s.Editor(), [2]float64{0, 0}, [2]float64{10, 10})
	if err := s.SwitchNote(ctx, "other"); err != nil {
		t.Fatalf("SwitchNote: %v", err)
	}
	if mem.saves != 1 {
		t.Fatalf("saves = %d, want 1", mem.saves)
	}
	if s.NoteID() != "other" || s.Dirty() {
		t.Fatalf("switched to %q dirty=%v", s.NoteID(), s.Dirty())
	}
}

func TestSwitchAbortsOnSaveFailure(t *testing.T) {
	mem := newMemStorage()
	mem.notes["other"] = store.Record{ID: "other"}
	mem.failErr = errors.New("disk full")

	s := NewSession(New(), mem, nil, SwitchAutosave)
	drawStroke(s.Editor(), [2]float64{0, 0}, [2]float64{10, 10})
	if err := s.SwitchNote(context.Background(), "other"); err == nil {
		t.Fatalf("expected switch to fail")
	}
	if s.NoteID() != "" || len(s.Editor().Items()) != 1 || !s.Dirty() {
		t.Fatalf("failed switch lost the open note")
	}
}

func TestSwitchDiscards(t *testing.T) {
	mem := newMemStorage()
	s := NewSession(New(), mem, nil, SwitchDiscard)
	drawStroke(s.Editor(), [2]float64{0, 0}, [2]float64{10, 10})
	if err := s.SwitchNote(context.Background(), ""); err != nil {
		t.Fatalf("SwitchNote: %v", err)
	}
	if mem.saves != 0 || len(s.Editor().Items()) != 0 {
		t.Fatalf("discard saved=%d items=%d", mem.saves, len(s.Editor().Items()))
	}
}

func TestMoveToFolder(t *testing.T) {
	ctx := context.Background()
	mem := newMemStorage()
	s := NewSession(New(), mem, nil, SwitchAutosave)

	if err := s.MoveToFolder(ctx, "work"); err != nil {
		t.Fatalf("MoveToFolder unsaved: %v", err)
	}
	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if got := mem.notes[s.NoteID()].FolderID; got != "work" {
		t.Fatalf("folder = %q, want work", got)
	}
	if err := s.MoveToFolder(ctx, "home"); err != nil {
		t.Fatalf("MoveToFolder: %v", err)
	}
	if got := mem.notes[s.NoteID()].FolderID; got != "home" {
		t.Fatalf("folder = %q, want home", got)
	}
}

func TestExportRequestIsDetached(t *testing.T) {
	exp := &fakeExporter{}
	s := NewSession(New(), newMemStorage(), exp, SwitchAutosave)
	drawStroke(s.Editor(), [2]float64{0, 0}, [2]float64{100, 100})

	if _, err := s.Export(context.Background()); err != nil {
		t.Fatalf("Export: %v", err)
	}
	want := state.Rect{X: -24, Y: -24, W: 148, H: 148}
	if exp.got.Crop != want {
		t.Fatalf("crop = %+v, want %+v", exp.got.Crop, want)
	}
	exp.got.Items[0].(*state.Stroke).Points[0].X = 999
	if s.Editor().Items()[0].(*state.Stroke).Points[0].X == 999 {
		t.Fatalf("export request shares items with the scene")
	}
}

func TestParseSwitchPolicy(t *testing.T) {
	if p, err := ParseSwitchPolicy("Discard"); err != nil || p != SwitchDiscard {
		t.Fatalf("ParseSwitchPolicy(Discard) = %v, %v", p, err)
	}
	if p, err := ParseSwitchPolicy(""); err != nil || p != SwitchAutosave {
		t.Fatalf("ParseSwitchPolicy(\"\") = %v, %v", p, err)
	}
	if _, err := ParseSwitchPolicy("prompt"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
