package workspace

import (
	"time"

	"github.com/textoc/textoc/pkg/store"
)

// draftState is the in-memory edit buffer for the primary note's
// live-typed fields. Keystrokes land here immediately; the store commit
// is debounced behind a quiet period. At most one draft exists at a time,
// always for the current primary note.
type draftState struct {
	noteID  string
	title   *string
	content *string
	timer   *time.Timer
}

func (d *draftState) empty() bool {
	return d.title == nil && d.content == nil
}

// SetDraftTitle records a keystroke-level title edit for the primary note
// and (re)schedules the debounced commit.
func (m *Manager) SetDraftTitle(title string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.primary == "" {
		return
	}
	m.draft.noteID = m.primary
	m.draft.title = &title
	m.scheduleDraftLocked()
}

// SetDraftContent records a keystroke-level content edit for the primary
// note and (re)schedules the debounced commit.
func (m *Manager) SetDraftContent(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.primary == "" {
		return
	}
	m.draft.noteID = m.primary
	m.draft.content = &content
	m.scheduleDraftLocked()
}

// DraftTitle returns the draft title for a note when one is pending,
// falling back to the stored value.
func (m *Manager) DraftTitle(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft.noteID == id && m.draft.title != nil {
		return *m.draft.title
	}
	if note := m.noteByID(id); note != nil {
		return note.Title
	}
	return ""
}

// DraftContent returns the draft content for a note when one is pending,
// falling back to the stored value.
func (m *Manager) DraftContent(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft.noteID == id && m.draft.content != nil {
		return *m.draft.content
	}
	if note := m.noteByID(id); note != nil {
		return note.Content
	}
	return ""
}

// scheduleDraftLocked cancels any pending commit and starts a fresh quiet
// period. A new keystroke therefore always pushes the commit out.
func (m *Manager) scheduleDraftLocked() {
	if m.draft.timer != nil {
		m.draft.timer.Stop()
	}
	noteID := m.draft.noteID
	m.draft.timer = time.AfterFunc(m.debounce, func() {
		m.commitDraft(noteID)
	})
}

// commitDraft is the timer callback. It re-checks that the draft still
// belongs to the note the timer was armed for; a note switch in the
// meantime has already flushed or dropped it.
func (m *Manager) commitDraft(noteID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.draft.noteID != noteID {
		return
	}
	if err := m.flushDraftLocked(); err != nil {
		m.log.WithError(err).Warn("commit debounced draft")
	}
}

// flushDraftLocked commits the pending draft synchronously if it differs
// from the stored note, then clears it. Switching notes calls this before
// the primary changes, so the final keystrokes before a switch are
// persisted rather than racing the timer.
func (m *Manager) flushDraftLocked() error {
	if m.draft.empty() {
		m.dropDraftLocked()
		return nil
	}

	note := m.noteByID(m.draft.noteID)
	if note == nil {
		m.dropDraftLocked()
		return nil
	}

	var patch store.NotePatch
	if m.draft.title != nil && *m.draft.title != note.Title {
		patch.Title = m.draft.title
	}
	if m.draft.content != nil && *m.draft.content != note.Content {
		patch.Content = m.draft.content
	}
	m.dropDraftLocked()

	if patch.Title == nil && patch.Content == nil {
		return nil
	}
	if _, err := m.store.UpdateNote(note.ID, patch); err != nil {
		return err
	}
	return m.refreshLocked()
}

// dropDraftLocked discards the draft and cancels its timer without
// persisting anything. Used when the draft's note is deleted.
func (m *Manager) dropDraftLocked() {
	if m.draft.timer != nil {
		m.draft.timer.Stop()
	}
	m.draft = draftState{}
}
