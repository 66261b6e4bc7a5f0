package mirror

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/textoc/textoc/pkg/models"
)

func testNote(id, title, content string) *models.Note {
	created := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return &models.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}
}

func TestWriteAndReadNote(t *testing.T) {
	m := New(filepath.Join(t.TempDir(), "notes"))

	note := testNote("abc-123", "Groceries", "- milk\n- eggs\n")
	hash, err := m.WriteNote(note, "home", []string{"shopping"})
	require.NoError(t, err)
	assert.Equal(t, ContentHash(note.Content), hash)

	meta, body, err := m.ReadNote("abc-123")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "abc-123", meta.ID)
	assert.Equal(t, "Groceries", meta.Title)
	assert.Equal(t, "home", meta.Notebook)
	assert.Equal(t, []string{"shopping"}, meta.Tags)
	assert.Equal(t, "2024-05-01T09:00:00Z", meta.CreatedAt)
	assert.Equal(t, "2024-05-01T10:00:00Z", meta.UpdatedAt)
	assert.Equal(t, hash, meta.Hash)
	assert.Contains(t, body, "- milk\n- eggs\n")
}

func TestWriteNoteCreatesDirLazily(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "notes")
	m := New(dir)

	// No directory until the first write.
	_, err := os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	_, err = m.WriteNote(testNote("n1", "t", "c"), "", nil)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "n1.md"))
	assert.NoError(t, err)
}

func TestWriteNoteSortsTags(t *testing.T) {
	m := New(t.TempDir())

	_, err := m.WriteNote(testNote("n1", "t", "c"), "", []string{"zebra", "apple", "Mango"})
	require.NoError(t, err)

	meta, _, err := m.ReadNote("n1")
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "Mango", "zebra"}, meta.Tags)
}

func TestWriteNoteOverwrites(t *testing.T) {
	m := New(t.TempDir())

	note := testNote("n1", "first", "v1")
	_, err := m.WriteNote(note, "", nil)
	require.NoError(t, err)

	note.Title = "second"
	note.Content = "v2"
	hash, err := m.WriteNote(note, "", nil)
	require.NoError(t, err)

	meta, body, err := m.ReadNote("n1")
	require.NoError(t, err)
	assert.Equal(t, "second", meta.Title)
	assert.Equal(t, hash, meta.Hash)
	assert.Contains(t, body, "v2")
	assert.NotContains(t, body, "v1")
}

func TestDeleteNote(t *testing.T) {
	m := New(t.TempDir())

	_, err := m.WriteNote(testNote("n1", "t", "c"), "", nil)
	require.NoError(t, err)
	require.NoError(t, m.DeleteNote("n1"))

	_, _, err = m.ReadNote("n1")
	assert.Error(t, err)

	// Deleting again is silent.
	assert.NoError(t, m.DeleteNote("n1"))
}

func TestContentHashStable(t *testing.T) {
	h1 := ContentHash("same input")
	h2 := ContentHash("same input")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, ContentHash("different input"))
}
