package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/textoc/textoc/pkg/models"
)

// NotePatch is a partial note update. Nil fields are left unchanged.
// For NotebookID, a pointer to the empty string unfiles the note.
type NotePatch struct {
	Title      *string
	Content    *string
	NotebookID *string
	Hash       *string
}

// CreateNote inserts a new note. An empty notebookID leaves the note
// unfiled. Titles may be empty; the UI renders those as "Untitled Note".
func (s *Store) CreateNote(title, content, notebookID string) (*models.Note, error) {
	now := time.Now()
	note := &models.Note{
		ID:         uuid.NewString(),
		Title:      title,
		Content:    content,
		NotebookID: notebookID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := s.db.Exec(
		`INSERT INTO notes (id, title, content, notebook_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Content, nullable(note.NotebookID), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	return note, nil
}

// ListNotes returns all notes ordered by updated_at descending. Ties are
// broken by id so the order is stable across refreshes.
func (s *Store) ListNotes() ([]*models.Note, error) {
	rows, err := s.db.Query(
		`SELECT id, title, content, notebook_id, created_at, updated_at, hash
		 FROM notes ORDER BY updated_at DESC, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

// GetNote returns the note with the given id, or nil if no such note
// exists.
func (s *Store) GetNote(id string) (*models.Note, error) {
	row := s.db.QueryRow(
		`SELECT id, title, content, notebook_id, created_at, updated_at, hash
		 FROM notes WHERE id = ?`, id,
	)
	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return note, nil
}

// UpdateNote applies a partial patch to a note. Only supplied fields are
// modified; updated_at is always refreshed. The updated note is returned.
func (s *Store) UpdateNote(id string, patch NotePatch) (*models.Note, error) {
	now := time.Now()
	sets := []string{"updated_at = ?"}
	args := []any{now}

	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *patch.Content)
	}
	if patch.NotebookID != nil {
		sets = append(sets, "notebook_id = ?")
		args = append(args, nullable(*patch.NotebookID))
	}
	if patch.Hash != nil {
		sets = append(sets, "hash = ?")
		args = append(args, *patch.Hash)
	}

	args = append(args, id)
	query := "UPDATE notes SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	if _, err := s.db.Exec(query, args...); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	return s.GetNote(id)
}

// SetNoteHash records the content hash last written to the file mirror.
// This is mirror bookkeeping, not a user edit, so updated_at is left
// alone and the note keeps its place in the list.
func (s *Store) SetNoteHash(id, hash string) error {
	_, err := s.db.Exec("UPDATE notes SET hash = ? WHERE id = ?", hash, id)
	return err
}

// DeleteNote removes a note. Deleting a nonexistent note is a no-op.
// Associated note_tags rows are removed by the foreign key cascade.
func (s *Store) DeleteNote(id string) error {
	_, err := s.db.Exec("DELETE FROM notes WHERE id = ?", id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNote(row rowScanner) (*models.Note, error) {
	note := &models.Note{}
	var notebookID, hash sql.NullString
	err := row.Scan(
		&note.ID, &note.Title, &note.Content, &notebookID,
		&note.CreatedAt, &note.UpdatedAt, &hash,
	)
	if err != nil {
		return nil, err
	}
	note.NotebookID = notebookID.String
	note.Hash = hash.String
	return note, nil
}
