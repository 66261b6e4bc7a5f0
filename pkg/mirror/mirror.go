package mirror

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/textoc/textoc/pkg/frontmatter"
	"github.com/textoc/textoc/pkg/models"
)

// Mirror projects notes onto a directory of markdown files, one file per
// note named {id}.md. It has no identity of its own: the caller supplies
// the note and its resolved notebook/tag names, and the mirror only
// serializes them.
type Mirror struct {
	dir      string
	collator *collate.Collator
}

// New creates a mirror rooted at dir. The directory is created lazily on
// first write.
func New(dir string) *Mirror {
	return &Mirror{
		dir:      dir,
		collator: collate.New(language.English),
	}
}

// Dir resolves (and creates if needed) the mirror directory.
func (m *Mirror) Dir() (string, error) {
	if err := os.MkdirAll(m.dir, 0755); err != nil {
		return "", fmt.Errorf("create notes dir: %w", err)
	}
	return m.dir, nil
}

// WriteNote serializes a note and its metadata to {id}.md, atomically so a
// concurrent git operation never sees a half-written file. Tag names are
// collated for a deterministic header. Returns the content hash written.
func (m *Mirror) WriteNote(note *models.Note, notebookName string, tagNames []string) (string, error) {
	dir, err := m.Dir()
	if err != nil {
		return "", err
	}

	sorted := append([]string(nil), tagNames...)
	m.collator.SortStrings(sorted)

	hash := ContentHash(note.Content)
	meta := &frontmatter.Metadata{
		ID:        note.ID,
		Title:     note.Title,
		CreatedAt: frontmatter.FormatTimestamp(note.CreatedAt),
		UpdatedAt: frontmatter.FormatTimestamp(note.UpdatedAt),
		Notebook:  notebookName,
		Tags:      sorted,
		Hash:      hash,
	}

	content := frontmatter.BuildContent(meta, note.Content)
	path := filepath.Join(dir, note.ID+".md")
	if err := atomic.WriteFile(path, strings.NewReader(content)); err != nil {
		return "", fmt.Errorf("write note file: %w", err)
	}

	return hash, nil
}

// DeleteNote removes a note's file. Deleting a file that does not exist
// succeeds silently.
func (m *Mirror) DeleteNote(id string) error {
	path := filepath.Join(m.dir, id+".md")
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete note file: %w", err)
	}
	return nil
}

// ReadNote parses a mirrored note file back into its metadata and body.
func (m *Mirror) ReadNote(id string) (*frontmatter.Metadata, string, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, id+".md"))
	if err != nil {
		return nil, "", err
	}
	return frontmatter.Parse(string(data))
}

// ContentHash returns the fingerprint of a note body, used to detect drift
// between the store and the mirror.
func ContentHash(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
