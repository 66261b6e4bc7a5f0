package models

import "time"

// Notebook is a named container for notes. Notebooks form a forest through
// ParentID; an empty ParentID marks a root notebook.
type Notebook struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parent_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Note is a single markdown note. An empty NotebookID means the note is
// unfiled. Hash, when set, is the content fingerprint last written to the
// file mirror, used to detect drift between the store and the mirror.
type Note struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	NotebookID string    `json:"notebook_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Hash       string    `json:"hash,omitempty"`
}

// Tag is a label attachable to many notes. Names are globally unique and
// case-sensitive.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NoteTag is a note/tag association row.
type NoteTag struct {
	NoteID string `json:"note_id"`
	TagID  string `json:"tag_id"`
}
