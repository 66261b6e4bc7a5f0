package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func strPtr(s string) *string { return &s }

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := Open(dbPath)
	require.NoError(t, err)
	_, err = s.CreateNote("keep me", "", "")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening runs schema init against the existing tables.
	s, err = Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	notes, err := s.ListNotes()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "keep me", notes[0].Title)
}

func TestCreateAndGetNote(t *testing.T) {
	s := openTestStore(t)

	nb, err := s.CreateNotebook("work", "")
	require.NoError(t, err)

	note, err := s.CreateNote("standup", "notes from standup", nb.ID)
	require.NoError(t, err)
	require.NotEmpty(t, note.ID)

	got, err := s.GetNote(note.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "standup", got.Title)
	assert.Equal(t, "notes from standup", got.Content)
	assert.Equal(t, nb.ID, got.NotebookID)
	assert.Empty(t, got.Hash)
}

func TestGetNoteMissing(t *testing.T) {
	s := openTestStore(t)

	got, err := s.GetNote("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateNoteAllowsEmptyTitle(t *testing.T) {
	s := openTestStore(t)

	note, err := s.CreateNote("", "", "")
	require.NoError(t, err)
	assert.Empty(t, note.Title)
	assert.Empty(t, note.NotebookID)
}

func TestListNotesNewestFirst(t *testing.T) {
	s := openTestStore(t)

	first, err := s.CreateNote("first", "", "")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	second, err := s.CreateNote("second", "", "")
	require.NoError(t, err)

	notes, err := s.ListNotes()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, second.ID, notes[0].ID)
	assert.Equal(t, first.ID, notes[1].ID)

	// Editing the older note moves it back to the front.
	time.Sleep(5 * time.Millisecond)
	_, err = s.UpdateNote(first.ID, NotePatch{Content: strPtr("edited")})
	require.NoError(t, err)

	notes, err = s.ListNotes()
	require.NoError(t, err)
	assert.Equal(t, first.ID, notes[0].ID)
}

func TestUpdateNotePartial(t *testing.T) {
	s := openTestStore(t)

	nb, err := s.CreateNotebook("inbox", "")
	require.NoError(t, err)
	note, err := s.CreateNote("title", "content", nb.ID)
	require.NoError(t, err)

	// Title-only patch leaves content and notebook alone.
	got, err := s.UpdateNote(note.ID, NotePatch{Title: strPtr("renamed")})
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "content", got.Content)
	assert.Equal(t, nb.ID, got.NotebookID)
	assert.True(t, got.UpdatedAt.After(note.UpdatedAt) || got.UpdatedAt.Equal(note.UpdatedAt))

	// A pointer to the empty string unfiles the note.
	got, err = s.UpdateNote(note.ID, NotePatch{NotebookID: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, got.NotebookID)
	assert.Equal(t, "renamed", got.Title)
}

func TestSetNoteHashKeepsListOrder(t *testing.T) {
	s := openTestStore(t)

	older, err := s.CreateNote("older", "", "")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	newer, err := s.CreateNote("newer", "", "")
	require.NoError(t, err)

	require.NoError(t, s.SetNoteHash(older.ID, "abc123"))

	notes, err := s.ListNotes()
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, newer.ID, notes[0].ID, "hash write must not bump updated_at")
	assert.Equal(t, "abc123", notes[1].Hash)
}

func TestDeleteNoteIsIdempotent(t *testing.T) {
	s := openTestStore(t)

	note, err := s.CreateNote("gone", "", "")
	require.NoError(t, err)
	require.NoError(t, s.DeleteNote(note.ID))
	require.NoError(t, s.DeleteNote(note.ID))

	got, err := s.GetNote(note.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNotebookNameValidation(t *testing.T) {
	s := openTestStore(t)

	_, err := s.CreateNotebook("   ", "")
	assert.ErrorIs(t, err, ErrEmptyName)

	nb, err := s.CreateNotebook("  padded  ", "")
	require.NoError(t, err)
	assert.Equal(t, "padded", nb.Name)

	assert.ErrorIs(t, s.RenameNotebook(nb.ID, ""), ErrEmptyName)
}

func TestReparentNotebookRejectsSelf(t *testing.T) {
	s := openTestStore(t)

	nb, err := s.CreateNotebook("solo", "")
	require.NoError(t, err)
	assert.ErrorIs(t, s.ReparentNotebook(nb.ID, nb.ID), ErrSelfParent)
}

func TestDeleteNotebookCascades(t *testing.T) {
	s := openTestStore(t)

	root, err := s.CreateNotebook("root", "")
	require.NoError(t, err)
	child, err := s.CreateNotebook("child", root.ID)
	require.NoError(t, err)
	grandchild, err := s.CreateNotebook("grandchild", child.ID)
	require.NoError(t, err)
	other, err := s.CreateNotebook("other", "")
	require.NoError(t, err)

	inChild, err := s.CreateNote("filed deep", "", grandchild.ID)
	require.NoError(t, err)
	inOther, err := s.CreateNote("elsewhere", "", other.ID)
	require.NoError(t, err)

	require.NoError(t, s.DeleteNotebook(root.ID))

	notebooks, err := s.ListNotebooks()
	require.NoError(t, err)
	require.Len(t, notebooks, 1)
	assert.Equal(t, other.ID, notebooks[0].ID)

	// Notes under the deleted subtree survive as unfiled.
	got, err := s.GetNote(inChild.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.NotebookID)

	got, err = s.GetNote(inOther.ID)
	require.NoError(t, err)
	assert.Equal(t, other.ID, got.NotebookID)
}

func TestCreateTagIdempotent(t *testing.T) {
	s := openTestStore(t)

	first, err := s.CreateTag("idea")
	require.NoError(t, err)
	second, err := s.CreateTag("idea")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	tags, err := s.ListTags()
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestTagAssociations(t *testing.T) {
	s := openTestStore(t)

	note, err := s.CreateNote("tagged", "", "")
	require.NoError(t, err)
	urgent, err := s.CreateTag("urgent")
	require.NoError(t, err)
	later, err := s.CreateTag("later")
	require.NoError(t, err)

	require.NoError(t, s.AddTagToNote(note.ID, urgent.ID))
	require.NoError(t, s.AddTagToNote(note.ID, later.ID))
	// Re-adding the same association is a no-op, not an error.
	require.NoError(t, s.AddTagToNote(note.ID, urgent.ID))

	tags, err := s.ListTagsForNote(note.ID)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "later", tags[0].Name)
	assert.Equal(t, "urgent", tags[1].Name)

	require.NoError(t, s.RemoveTagFromNote(note.ID, later.ID))
	tags, err = s.ListTagsForNote(note.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestDeleteNoteRemovesAssociations(t *testing.T) {
	s := openTestStore(t)

	note, err := s.CreateNote("doomed", "", "")
	require.NoError(t, err)
	tag, err := s.CreateTag("keep")
	require.NoError(t, err)
	require.NoError(t, s.AddTagToNote(note.ID, tag.ID))

	require.NoError(t, s.DeleteNote(note.ID))

	assocs, err := s.ListNoteTags()
	require.NoError(t, err)
	assert.Empty(t, assocs)

	// The tag itself survives.
	tags, err := s.ListTags()
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestDeleteTagRemovesAssociations(t *testing.T) {
	s := openTestStore(t)

	first, err := s.CreateNote("first", "body one", "")
	require.NoError(t, err)
	second, err := s.CreateNote("second", "body two", "")
	require.NoError(t, err)
	tag, err := s.CreateTag("doomed")
	require.NoError(t, err)
	require.NoError(t, s.AddTagToNote(first.ID, tag.ID))
	require.NoError(t, s.AddTagToNote(second.ID, tag.ID))

	require.NoError(t, s.DeleteTag(tag.ID))

	assocs, err := s.ListNoteTags()
	require.NoError(t, err)
	assert.Empty(t, assocs)

	// Both notes survive untouched.
	for _, id := range []string{first.ID, second.ID} {
		got, err := s.GetNote(id)
		require.NoError(t, err)
		require.NotNil(t, got)
	}
	got, err := s.GetNote(first.ID)
	require.NoError(t, err)
	assert.Equal(t, "body one", got.Content)
}
