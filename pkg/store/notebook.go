package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/textoc/textoc/pkg/models"
)

// ErrSelfParent is returned when a notebook is asked to become its own
// parent.
var ErrSelfParent = errors.New("a notebook cannot be its own parent")

// CreateNotebook inserts a new notebook. An empty parentID creates a root
// notebook.
func (s *Store) CreateNotebook(name, parentID string) (*models.Notebook, error) {
	name, err := requireName(name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	nb := &models.Notebook{
		ID:        uuid.NewString(),
		Name:      name,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.Exec(
		`INSERT INTO notebooks (id, name, parent_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		nb.ID, nb.Name, nullable(nb.ParentID), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert notebook: %w", err)
	}

	return nb, nil
}

// ListNotebooks returns all notebooks in creation order.
func (s *Store) ListNotebooks() ([]*models.Notebook, error) {
	rows, err := s.db.Query(
		`SELECT id, name, parent_id, created_at, updated_at
		 FROM notebooks ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notebooks []*models.Notebook
	for rows.Next() {
		nb := &models.Notebook{}
		var parentID sql.NullString
		err := rows.Scan(&nb.ID, &nb.Name, &parentID, &nb.CreatedAt, &nb.UpdatedAt)
		if err != nil {
			return nil, err
		}
		nb.ParentID = parentID.String
		notebooks = append(notebooks, nb)
	}
	return notebooks, rows.Err()
}

// RenameNotebook changes a notebook's name and refreshes updated_at.
func (s *Store) RenameNotebook(id, name string) error {
	name, err := requireName(name)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		"UPDATE notebooks SET name = ?, updated_at = ? WHERE id = ?",
		name, time.Now(), id,
	)
	return err
}

// ReparentNotebook moves a notebook under a new parent (empty for root).
// Cycle detection across the whole parent chain is the caller's job; the
// store only rejects the degenerate self-parent case.
func (s *Store) ReparentNotebook(id, parentID string) error {
	if id == parentID {
		return ErrSelfParent
	}

	_, err := s.db.Exec(
		"UPDATE notebooks SET parent_id = ?, updated_at = ? WHERE id = ?",
		nullable(parentID), time.Now(), id,
	)
	return err
}

// DeleteNotebook removes a notebook. Descendant notebooks are removed by
// the self-referencing cascade; notes that referenced any of them become
// unfiled. Deleting a nonexistent notebook is a no-op.
func (s *Store) DeleteNotebook(id string) error {
	_, err := s.db.Exec("DELETE FROM notebooks WHERE id = ?", id)
	return err
}
