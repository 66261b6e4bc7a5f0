package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/textoc/textoc/pkg/models"
)

// CreateTag inserts a new tag. Tag names are globally unique; creating a
// tag whose name already exists returns the existing tag instead of an
// error.
func (s *Store) CreateTag(name string) (*models.Tag, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}

	tag := &models.Tag{ID: uuid.NewString(), Name: name}
	_, err = s.db.Exec("INSERT INTO tags (id, name) VALUES (?, ?)", tag.ID, tag.Name)
	if err != nil {
		// Most likely a UNIQUE violation on name. Return the existing
		// row if there is one; otherwise surface the original error.
		existing := &models.Tag{}
		scanErr := s.db.QueryRow(
			"SELECT id, name FROM tags WHERE name = ?", name,
		).Scan(&existing.ID, &existing.Name)
		if scanErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("insert tag: %w", err)
	}

	return tag, nil
}

// ListTags returns all tags ordered by name.
func (s *Store) ListTags() ([]*models.Tag, error) {
	rows, err := s.db.Query("SELECT id, name FROM tags ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		tag := &models.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// RenameTag changes a tag's name.
func (s *Store) RenameTag(id, name string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("UPDATE tags SET name = ? WHERE id = ?", name, id)
	return err
}

// DeleteTag removes a tag and, via cascade, all of its note associations.
func (s *Store) DeleteTag(id string) error {
	_, err := s.db.Exec("DELETE FROM tags WHERE id = ?", id)
	return err
}

// AddTagToNote associates a tag with a note. Adding an existing
// association is a no-op.
func (s *Store) AddTagToNote(noteID, tagID string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO note_tags (note_id, tag_id) VALUES (?, ?)",
		noteID, tagID,
	)
	return err
}

// RemoveTagFromNote removes a note/tag association. Removing a
// nonexistent association is a no-op.
func (s *Store) RemoveTagFromNote(noteID, tagID string) error {
	_, err := s.db.Exec(
		"DELETE FROM note_tags WHERE note_id = ? AND tag_id = ?",
		noteID, tagID,
	)
	return err
}

// ListTagsForNote returns the tags attached to a note, ordered by name.
func (s *Store) ListTagsForNote(noteID string) ([]*models.Tag, error) {
	rows, err := s.db.Query(
		`SELECT t.id, t.name FROM tags t
		 JOIN note_tags nt ON t.id = nt.tag_id
		 WHERE nt.note_id = ?
		 ORDER BY t.name`, noteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		tag := &models.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// ListNoteTags returns every note/tag association row.
func (s *Store) ListNoteTags() ([]models.NoteTag, error) {
	rows, err := s.db.Query("SELECT note_id, tag_id FROM note_tags")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assocs []models.NoteTag
	for rows.Next() {
		var nt models.NoteTag
		if err := rows.Scan(&nt.NoteID, &nt.TagID); err != nil {
			return nil, err
		}
		assocs = append(assocs, nt)
	}
	return assocs, rows.Err()
}
