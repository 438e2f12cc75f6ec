package editor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"LocalNotes/internal/export"
	"LocalNotes/internal/state"
	"LocalNotes/internal/store"
)

// Storage is the persistence collaborator of a Session.
type Storage interface {
	LoadScene(ctx context.Context, noteID string) (store.Record, error)
	SaveScene(ctx context.Context, rec store.Record) (string, error)
	MoveNote(ctx context.Context, noteID, folderID string) error
}

// SwitchPolicy decides what happens to unsaved changes when another note
// is opened.
type SwitchPolicy int

const (
	// SwitchAutosave saves a dirty note before switching away from it.
	SwitchAutosave SwitchPolicy = iota
	// SwitchDiscard drops unsaved changes.
	SwitchDiscard
)

// ParseSwitchPolicy maps "autosave" or "discard".
func ParseSwitchPolicy(s string) (SwitchPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "autosave":
		return SwitchAutosave, nil
	case "discard":
		return SwitchDiscard, nil
	}
	return SwitchAutosave, fmt.Errorf("unknown switch policy %q", s)
}

const untitled = "Untitled"

// Session binds an Editor to the note it is showing and to the storage
// and export collaborators. Like the Editor it must only be used from the
// UI event loop.
type Session struct {
	ed       *Editor
	storage  Storage
	exporter export.Exporter
	policy   SwitchPolicy

	noteID   string
	title    string
	folderID string
}

func NewSession(ed *Editor, storage Storage, exporter export.Exporter, policy SwitchPolicy) *Session {
	return &Session{ed: ed, storage: storage, exporter: exporter, policy: policy, title: untitled}
}

func (s *Session) Editor() *Editor { return s.ed }
func (s *Session) NoteID() string { return s.noteID }
func (s *Session) Title() string { return s.title }
func (s *Session) FolderID() string { return s.folderID }
func (s *Session) Dirty() bool { return s.ed.Dirty() }
func (s *Session) Policy() SwitchPolicy { return s.policy }

// SetTitle renames the open note. The change is persisted on the next save.
func (s *Session) SetTitle(title string) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = untitled
	}
	if title == s.title {
		return
	}
	s.title = title
	s.ed.MarkDirty()
}

// New starts an unsaved blank note.
func (s *Session) New() {
	s.noteID = ""
	s.title = untitled
	s.folderID = ""
	s.ed.LoadScene(nil)
}

// Open loads a note. Unreadable scene data opens as an empty canvas.
func (s *Session) Open(ctx context.Context, noteID string) error {
	rec, err := s.storage.LoadScene(ctx, noteID)
	if err != nil {
		return fmt.Errorf("open note: %w", err)
	}
	items := state.DecodeItems(rec.Items)
	s.noteID = rec.ID
	s.title = rec.Title
	if s.title == "" {
		s.title = untitled
	}
	s.folderID = rec.FolderID
	s.ed.LoadScene(items)
	log.Printf("[SESSION] Opened note %s (%d items)", noteID, len(items))
	return nil
}

// Save persists the committed scene. Ink still being drawn is not part of
// the scene and is not saved.
func (s *Session) Save(ctx context.Context) error {
	rev := s.ed.Revision()
	data, err := state.EncodeItems(s.ed.Items())
	if err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	id, err := s.storage.SaveScene(ctx, store.Record{
		ID:       s.noteID,
		Title:    s.title,
		Items:    data,
		FolderID: s.folderID,
	})
	if err != nil {
		return fmt.Errorf("save note: %w", err)
	}
	s.noteID = id
	s.ed.MarkSaved(rev)
	return nil
}

// SwitchNote opens another note. Under SwitchAutosave a dirty note is
// saved first and the switch is abandoned if that save fails. In-progress
// strokes and text edits are always discarded and history starts over.
func (s *Session) SwitchNote(ctx context.Context, noteID string) error {
	if noteID == s.noteID && noteID != "" {
		return nil
	}
	if s.ed.Dirty() {
		switch s.policy {
		case SwitchAutosave:
			if err := s.Save(ctx); err != nil {
				return fmt.Errorf("switch note: %w", err)
			}
		case SwitchDiscard:
			log.Printf("[SESSION] Discarding unsaved changes to %q", s.title)
		}
	}
	if noteID == "" {
		s.New()
		return nil
	}
	return s.Open(ctx, noteID)
}

// MoveToFolder files the open note. Unsaved notes remember the folder and
// are filed on their first save.
func (s *Session) MoveToFolder(ctx context.Context, folderID string) error {
	if s.noteID != "" {
		if err := s.storage.MoveNote(ctx, s.noteID, folderID); err != nil {
			return fmt.Errorf("move note: %w", err)
		}
	}
	s.folderID = folderID
	return nil
}

// ExportRequest snapshots the scene for the export collaborator.
func (s *Session) ExportRequest() export.Request {
	items := state.CloneItems(s.ed.Items())
	return export.Request{
		Title: s.title,
		Items: items,
		Crop:  export.ContentBounds(items),
	}
}

// Export hands the current scene to the export collaborator.
func (s *Session) Export(ctx context.Context) (string, error) {
	if s.exporter == nil {
		return "", fmt.Errorf("export: no exporter configured")
	}
	return s.exporter.Export(ctx, s.ExportRequest())
}
