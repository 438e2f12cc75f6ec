package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Record is a stored note. Items holds the encoded scene.
type Record struct {
	ID        string
	Title     string
	Items     []byte
	FolderID  string
	UpdatedAt time.Time
}

// Summary is a note without its scene, for list views.
type Summary struct {
	ID        string
	Title     string
	FolderID  string
	UpdatedAt time.Time
}

// LoadScene returns the note with the given id.
func (s *Store) LoadScene(ctx context.Context, noteID string) (Record, error) {
	var (
		rec     Record
		items   string
		folder  sql.NullString
		updated int64
	)
	err := s.DB.QueryRowContext(ctx, `
		SELECT id, title, items, folder_id, updated_at FROM notes WHERE id = ?`, noteID).
		Scan(&rec.ID, &rec.Title, &items, &folder, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("store: load %s: %w", noteID, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("store: load %s: %w", noteID, err)
	}
	rec.Items = []byte(items)
	rec.FolderID = folder.String
	rec.UpdatedAt = time.UnixMilli(updated)
	return rec, nil
}

// SaveScene inserts or updates a note and returns its id. Records without
// an id are created with a fresh one.
func (s *Store) SaveScene(ctx context.Context, rec Record) (string, error) {
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	items := string(rec.Items)
	if items == "" {
		items = "[]"
	}
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO notes (id, title, items, folder_id, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			items = excluded.items,
			folder_id = excluded.folder_id,
			updated_at = excluded.updated_at`,
		id, rec.Title, items, nullable(rec.FolderID), time.Now().UnixMilli())
	if err != nil {
		return "", fmt.Errorf("store: save %s: %w", id, err)
	}
	log.Printf("[STORE] Saved note %s (%d bytes)", id, len(items))
	return id, nil
}

// Notes lists notes, most recently updated first. An empty folderID lists
// every note.
func (s *Store) Notes(ctx context.Context, folderID string) ([]Summary, error) {
	query := `SELECT id, title, folder_id, updated_at FROM notes`
	var args []any
	if folderID != "" {
		query += ` WHERE folder_id = ?`
		args = append(args, folderID)
	}
	query += ` ORDER BY updated_at DESC, id`
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list notes: %w", err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}

// DeleteNote removes a note and its tags.
func (s *Store) DeleteNote(ctx context.Context, noteID string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, noteID)
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", noteID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: delete %s: %w", noteID, ErrNotFound)
	}
	return nil
}

func scanSummaries(rows *sql.Rows) ([]Summary, error) {
	var out []Summary
	for rows.Next() {
		var (
			sum     Summary
			folder  sql.NullString
			updated int64
		)
		if err := rows.Scan(&sum.ID, &sum.Title, &folder, &updated); err != nil {
			return nil, fmt.Errorf("store: scan note: %w", err)
		}
		sum.FolderID = folder.String
		sum.UpdatedAt = time.UnixMilli(updated)
		out = append(out, sum)
	}
	return out, rows.Err()
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
