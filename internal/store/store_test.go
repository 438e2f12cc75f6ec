package store

import (
	"context"
	"errors"
	"testing"
)

func TestSaveAndLoadScene(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	id, err := s.SaveScene(ctx, Record{Title: "First", Items: []byte(`[{"type":"stroke"}]`)})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatal("expected generated id")
	}

	rec, err := s.LoadScene(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.Title != "First" || string(rec.Items) != `[{"type":"stroke"}]` || rec.FolderID != "" {
		t.Fatalf("unexpected record %+v", rec)
	}

	rec.Title = "Renamed"
	if _, err := s.SaveScene(ctx, rec); err != nil {
		t.Fatalf("update: %v", err)
	}
	notes, err := s.Notes(ctx, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(notes) != 1 || notes[0].Title != "Renamed" {
		t.Fatalf("notes = %+v, want one renamed note", notes)
	}
}

func TestLoadMissingNote(t *testing.T) {
	s := OpenMemory(t)
	_, err := s.LoadScene(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestEmptyItemsStoredAsEmptyArray(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()
	id, err := s.SaveScene(ctx, Record{Title: "blank"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	rec, err := s.LoadScene(ctx, id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(rec.Items) != "[]" {
		t.Fatalf("items = %q, want []", rec.Items)
	}
}

func TestFoldersAndMove(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()

	work, err := s.CreateFolder(ctx, "Work")
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	if _, err := s.CreateFolder(ctx, "  "); err == nil {
		t.Fatal("expected error for blank folder name")
	}
	if _, err := s.CreateFolder(ctx, "archive"); err != nil {
		t.Fatalf("create folder: %v", err)
	}
	folders, err := s.Folders(ctx)
	if err != nil {
		t.Fatalf("folders: %v", err)
	}
	if len(folders) != 2 || folders[0].Name != "archive" || folders[1].Name != "Work" {
		t.Fatalf("folders = %+v", folders)
	}

	id, _ := s.SaveScene(ctx, Record{Title: "n"})
	if err := s.MoveNote(ctx, id, work.ID); err != nil {
		t.Fatalf("move: %v", err)
	}
	inWork, err := s.Notes(ctx, work.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(inWork) != 1 || inWork[0].ID != id {
		t.Fatalf("notes in folder = %+v", inWork)
	}
	if err := s.MoveNote(ctx, "missing", work.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("move missing: err = %v, want ErrNotFound", err)
	}
}

func TestTags(t *testing.T) {
	s := OpenMemory(t)
	ctx := context.Background()
	a, _ := s.SaveScene(ctx, Record{Title: "a"})
	b, _ := s.SaveScene(ctx, Record{Title: "b"})

	for _, tag := range []string{"Ideas", "ideas", "todo"} {
		if err := s.AddTag(ctx, a, tag); err != nil {
			t.Fatalf("add tag %q: %v", tag, err)
		}
	}
	if err := s.AddTag(ctx, b, "todo"); err != nil {
		t.Fatalf("add tag: %v", err)
	}

	tags, err := s.Tags(ctx, a)
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if len(tags) != 2 || tags[0] != "ideas" || tags[1] != "todo" {
		t.Fatalf("tags = %v, want [ideas todo]", tags)
	}

	todo, err := s.NotesWithTag(ctx, "TODO")
	if err != nil {
		t.Fatalf("notes with tag: %v", err)
	}
	if len(todo) != 2 {
		t.Fatalf("notes with todo = %d, want 2", len(todo))
	}

	if err := s.RemoveTag(ctx, a, "todo"); err != nil {
		t.Fatalf("remove tag: %v", err)
	}
	if err := s.DeleteNote(ctx, b); err != nil {
		t.Fatalf("delete: %v", err)
	}
	todo, _ = s.NotesWithTag(ctx, "todo")
	if len(todo) != 0 {
		t.Fatalf("notes with todo after removal = %+v", todo)
	}
}
