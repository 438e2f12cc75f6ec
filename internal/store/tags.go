package store

import (
	"context"
	"fmt"
	"strings"
)

func normalizeTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// AddTag attaches tag to a note. Tags are case-insensitive; adding an
// existing tag is a no-op.
func (s *Store) AddTag(ctx context.Context, noteID, tag string) error {
	tag = normalizeTag(tag)
	if tag == "" {
		return fmt.Errorf("store: add tag: empty tag")
	}
	_, err := s.DB.ExecContext(ctx, `INSERT OR IGNORE INTO tags (note_id, tag) VALUES (?, ?)`, noteID, tag)
	if err != nil {
		return fmt.Errorf("store: add tag %q to %s: %w", tag, noteID, err)
	}
	return nil
}

func (s *Store) RemoveTag(ctx context.Context, noteID, tag string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM tags WHERE note_id = ? AND tag = ?`, noteID, normalizeTag(tag))
	if err != nil {
		return fmt.Errorf("store: remove tag from %s: %w", noteID, err)
	}
	return nil
}

// Tags returns the tags of a note in alphabetical order.
func (s *Store) Tags(ctx context.Context, noteID string) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT tag FROM tags WHERE note_id = ? ORDER BY tag`, noteID)
	if err != nil {
		return nil, fmt.Errorf("store: tags of %s: %w", noteID, err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

// NotesWithTag lists the notes carrying tag, most recent first.
func (s *Store) NotesWithTag(ctx context.Context, tag string) ([]Summary, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT n.id, n.title, n.folder_id, n.updated_at
		FROM notes n JOIN tags t ON t.note_id = n.id
		WHERE t.tag = ?
		ORDER BY n.updated_at DESC, n.id`, normalizeTag(tag))
	if err != nil {
		return nil, fmt.Errorf("store: notes with tag %q: %w", tag, err)
	}
	defer rows.Close()
	return scanSummaries(rows)
}
