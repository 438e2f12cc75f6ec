package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Folder is an entry of the folder catalog.
type Folder struct {
	ID   string
	Name string
}

// Folders returns the folder catalog sorted by name.
func (s *Store) Folders(ctx context.Context) ([]Folder, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name FROM folders ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list folders: %w", err)
	}
	defer rows.Close()
	var out []Folder
	for rows.Next() {
		var f Folder
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, fmt.Errorf("store: scan folder: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// CreateFolder adds a folder and returns it.
func (s *Store) CreateFolder(ctx context.Context, name string) (Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Folder{}, fmt.Errorf("store: create folder: empty name")
	}
	f := Folder{ID: uuid.NewString(), Name: name}
	_, err := s.DB.ExecContext(ctx, `INSERT INTO folders (id, name, created_at) VALUES (?, ?, ?)`,
		f.ID, f.Name, time.Now().UnixMilli())
	if err != nil {
		return Folder{}, fmt.Errorf("store: create folder %q: %w", name, err)
	}
	return f, nil
}

// MoveNote files a note under folderID. An empty folderID unfiles it.
func (s *Store) MoveNote(ctx context.Context, noteID, folderID string) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE notes SET folder_id = ? WHERE id = ?`, nullable(folderID), noteID)
	if err != nil {
		return fmt.Errorf("store: move %s: %w", noteID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: move %s: %w", noteID, ErrNotFound)
	}
	return nil
}
