package workspace

import (
	"strings"
)

// FocusRegion identifies which logical pane receives keyboard input.
type FocusRegion string

const (
	FocusNone      FocusRegion = "none"
	FocusNotebooks FocusRegion = "notebooks"
	FocusTags      FocusRegion = "tags"
	FocusNotes     FocusRegion = "notes"
	FocusEditor    FocusRegion = "editor"
)

// Modifiers are the selection modifier flags accompanying a note click.
type Modifiers struct {
	// Toggle adds or removes the clicked note from the selection set.
	Toggle bool
	// Range selects the contiguous filtered slice between the primary
	// note and the clicked note.
	Range bool
}

// --- Filtering ---

// applyFilterLocked recomputes the filtered note view. A note passes iff
// its title or content contains the search text case-insensitively, AND
// it matches the notebook filter when one is set, AND it matches the tag
// filter when one is set. Store order is preserved.
func (m *Manager) applyFilterLocked() {
	query := strings.ToLower(m.search)

	m.filtered = m.filtered[:0]
	for _, note := range m.notes {
		if query != "" &&
			!strings.Contains(strings.ToLower(note.Title), query) &&
			!strings.Contains(strings.ToLower(note.Content), query) {
			continue
		}
		if m.notebookFilter != "" && note.NotebookID != m.notebookFilter {
			continue
		}
		if m.tagFilter != "" && !m.hasTagLocked(note.ID, m.tagFilter) {
			continue
		}
		m.filtered = append(m.filtered, note)
	}
}

func (m *Manager) hasTagLocked(noteID, tagID string) bool {
	for _, assoc := range m.assocs {
		if assoc.NoteID == noteID && assoc.TagID == tagID {
			return true
		}
	}
	return false
}

// SetSearch updates the free-text filter.
func (m *Manager) SetSearch(query string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.search = query
	m.applyFilterLocked()
}

// SearchQuery returns the current free-text filter.
func (m *Manager) SearchQuery() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.search
}

// SelectNotebook activates a notebook filter. Notebook and tag filters
// are mutually exclusive: setting one clears the other. An empty id
// clears the notebook filter without touching focus.
func (m *Manager) SelectNotebook(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notebookFilter = id
	if id != "" {
		m.tagFilter = ""
		m.focus = FocusNotebooks
	}
	m.applyFilterLocked()
}

// SelectTag activates a tag filter, clearing any notebook filter.
func (m *Manager) SelectTag(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tagFilter = id
	if id != "" {
		m.notebookFilter = ""
		m.focus = FocusTags
	}
	m.applyFilterLocked()
}

// SelectedNotebook returns the active notebook filter, or "".
func (m *Manager) SelectedNotebook() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notebookFilter
}

// SelectedTag returns the active tag filter, or "".
func (m *Manager) SelectedTag() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tagFilter
}

// --- Selection ---

// SelectNote updates the multi-selection for a clicked note id. Changing
// the primary note flushes any draft pending for the previous one, so a
// fast note switch never loses or leaks keystrokes.
func (m *Manager) SelectNote(id string, mods Modifiers) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		m.clearSelectionLocked()
		return
	}

	if m.primary != id {
		if err := m.flushDraftLocked(); err != nil {
			m.log.WithError(err).Warn("flush draft on note switch")
		}
	}

	switch {
	case mods.Range && m.primary != "":
		start := m.filteredIndex(m.primary)
		end := m.filteredIndex(id)
		if start == -1 || end == -1 {
			// Either endpoint fell out of the filtered view; fall back
			// to a plain single selection.
			m.selected = []string{id}
			m.primary = id
			return
		}
		if start > end {
			start, end = end, start
		}
		m.selected = m.selected[:0]
		for _, note := range m.filtered[start : end+1] {
			m.selected = append(m.selected, note.ID)
		}

	case mods.Toggle:
		if i := indexOf(m.selected, id); i != -1 {
			m.selected = append(m.selected[:i], m.selected[i+1:]...)
		} else {
			m.selected = append(m.selected, id)
		}
		m.primary = id

	default:
		// Range with no primary falls through here: treated as a single
		// selection of the clicked note rather than a silent no-op.
		m.selected = []string{id}
		m.primary = id
	}
}

// ClearSelection empties the selection set, flushing any pending draft
// first.
func (m *Manager) ClearSelection() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearSelectionLocked()
}

func (m *Manager) clearSelectionLocked() {
	if err := m.flushDraftLocked(); err != nil {
		m.log.WithError(err).Warn("flush draft on clear selection")
	}
	m.selected = nil
	m.primary = ""
}

// Selection returns the selected note ids in selection order.
func (m *Manager) Selection() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.selected...)
}

// Primary returns the primary selected note id, or "".
func (m *Manager) Primary() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.primary
}

func (m *Manager) filteredIndex(id string) int {
	for i, note := range m.filtered {
		if note.ID == id {
			return i
		}
	}
	return -1
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

// --- Focus ---

// focusOrder is the forward cycle. Notebooks and tags share the sidebar
// slot: cycling forward from either lands on notes.
var focusOrder = []FocusRegion{FocusNotebooks, FocusNotes, FocusEditor}

// Focus returns the region currently receiving keyboard input.
func (m *Manager) Focus() FocusRegion {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focus
}

// FocusOn moves focus directly to a region, as a pointer click does. This
// is the only transition out of FocusNone.
func (m *Manager) FocusOn(region FocusRegion) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.focus = region
}

// CycleFocus advances focus in the fixed order
// notebooks/tags -> notes -> editor -> notebooks. No transition happens
// from FocusNone.
func (m *Manager) CycleFocus() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycleFocusLocked(1)
}

// CycleFocusBack walks the focus order backward.
func (m *Manager) CycleFocusBack() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cycleFocusLocked(-1)
}

func (m *Manager) cycleFocusLocked(dir int) {
	if m.focus == FocusNone {
		return
	}

	current := m.focus
	if current == FocusTags {
		current = FocusNotebooks
	}

	idx := 0
	for i, r := range focusOrder {
		if r == current {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(focusOrder)) % len(focusOrder)
	m.focus = focusOrder[idx]
}
