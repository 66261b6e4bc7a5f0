package workspace

// Command is a discrete input-surface action. The input layer translates
// raw key events into Command values; Apply is the single transition
// function consuming them, so input capture stays decoupled from state
// mutation.
type Command int

const (
	CmdNone Command = iota
	CmdNewNote
	CmdNewNotebook
	CmdNewSubNotebook
	CmdNewTag
	CmdDeleteSelected
	CmdRename
	CmdEditNote
	CmdNavigateUp
	CmdNavigateDown
	CmdExtendUp
	CmdExtendDown
	CmdToggleSelect
	CmdCycleFocus
	CmdCycleFocusBack
	CmdQuickOpen
	CmdClearSelection
)

// Request is what Apply hands back when a command needs input the core
// cannot collect itself (a name, a confirmation). Dialog presentation is
// the UI layer's job; it gathers the input and calls the matching
// mutation.
type Request int

const (
	RequestNone Request = iota
	RequestNewNote
	RequestNewNotebook
	RequestNewSubNotebook
	RequestNewTag
	RequestRename
	RequestEditNote
	RequestDeleteConfirm
	RequestQuickOpen
)

// Apply executes a command against the workspace state. Navigation,
// focus, and selection commands complete immediately; commands that need
// user input return the corresponding Request.
func (m *Manager) Apply(cmd Command) Request {
	switch cmd {
	case CmdNewNote:
		return RequestNewNote
	case CmdNewNotebook:
		return RequestNewNotebook
	case CmdNewSubNotebook:
		return RequestNewSubNotebook
	case CmdNewTag:
		return RequestNewTag
	case CmdRename:
		return RequestRename
	case CmdEditNote:
		m.mu.Lock()
		primary := m.primary
		m.mu.Unlock()
		if primary == "" {
			return RequestNone
		}
		return RequestEditNote
	case CmdDeleteSelected:
		return RequestDeleteConfirm
	case CmdQuickOpen:
		return RequestQuickOpen

	case CmdCycleFocus:
		m.CycleFocus()
	case CmdCycleFocusBack:
		m.CycleFocusBack()
	case CmdClearSelection:
		m.ClearSelection()

	case CmdNavigateUp:
		m.navigate(-1, Modifiers{})
	case CmdNavigateDown:
		m.navigate(1, Modifiers{})
	case CmdExtendUp:
		m.navigate(-1, Modifiers{Range: true})
	case CmdExtendDown:
		m.navigate(1, Modifiers{Range: true})

	case CmdToggleSelect:
		m.mu.Lock()
		primary := m.primary
		m.mu.Unlock()
		if primary != "" {
			m.SelectNote(primary, Modifiers{Toggle: true})
		}
	}

	return RequestNone
}

// navigate moves the cursor within the focused region: through the
// filtered notes, the depth-first notebook order, or the tag list.
func (m *Manager) navigate(dir int, mods Modifiers) {
	m.mu.Lock()

	switch m.focus {
	case FocusNotes:
		if len(m.filtered) == 0 {
			m.mu.Unlock()
			return
		}
		idx := m.filteredIndex(m.primary)
		next := step(idx, dir, len(m.filtered))
		id := m.filtered[next].ID
		m.mu.Unlock()
		m.SelectNote(id, mods)
		return

	case FocusNotebooks:
		order := m.forest.Flatten()
		if len(order) == 0 {
			m.mu.Unlock()
			return
		}
		idx := indexOf(order, m.notebookFilter)
		id := order[step(idx, dir, len(order))]
		m.mu.Unlock()
		m.SelectNotebook(id)
		return

	case FocusTags:
		if len(m.tags) == 0 {
			m.mu.Unlock()
			return
		}
		idx := -1
		for i, tag := range m.tags {
			if tag.ID == m.tagFilter {
				idx = i
				break
			}
		}
		id := m.tags[step(idx, dir, len(m.tags))].ID
		m.mu.Unlock()
		m.SelectTag(id)
		return
	}

	m.mu.Unlock()
}

// step clamps cursor movement to the list bounds. From no cursor (-1) any
// movement lands on the first element.
func step(idx, dir, length int) int {
	if idx == -1 {
		return 0
	}
	next := idx + dir
	if next < 0 {
		return 0
	}
	if next >= length {
		return length - 1
	}
	return next
}
