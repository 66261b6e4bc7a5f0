package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/textoc/textoc/pkg/store"
	"github.com/textoc/textoc/pkg/tree"
	"github.com/textoc/textoc/pkg/workspace"
)

var (
	focusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("5"))
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("8"))
	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Model is the bubbletea model for the workspace. It owns no entity or
// selection state of its own: every key event is translated into a
// workspace command and applied to the manager, and the view is rendered
// from the manager's accessors.
type Model struct {
	mgr  *workspace.Manager
	keys KeyMap

	width  int
	height int

	// Pending request state: when the manager asks for input, the model
	// collects it here before dispatching the matching mutation.
	pending   workspace.Request
	input     textinput.Model
	searching bool

	status string
	err    error
}

// New creates a TUI model over a loaded workspace manager.
func New(mgr *workspace.Manager) Model {
	ti := textinput.New()
	ti.CharLimit = 200

	return Model{
		mgr:   mgr,
		keys:  keys,
		input: ti,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.pending != workspace.RequestNone || m.searching {
			return m.updatePrompt(msg)
		}

		if key.Matches(msg, m.keys.Quit) {
			m.mgr.Close()
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Search) {
			m.searching = true
			m.input.Placeholder = "Search notes..."
			m.input.SetValue(m.mgr.SearchQuery())
			m.input.Focus()
			return m, textinput.Blink
		}

		cmd := m.keys.Translate(msg)
		if cmd == workspace.CmdNone {
			return m, nil
		}

		req := m.mgr.Apply(cmd)
		if req != workspace.RequestNone {
			return m.beginPrompt(req)
		}
		return m, nil
	}

	return m, nil
}

// beginPrompt opens the inline input for a manager request.
func (m Model) beginPrompt(req workspace.Request) (tea.Model, tea.Cmd) {
	m.pending = req
	m.input.SetValue("")

	switch req {
	case workspace.RequestNewNote:
		m.input.Placeholder = "Note title..."
	case workspace.RequestNewNotebook:
		m.input.Placeholder = "Notebook name..."
	case workspace.RequestNewSubNotebook:
		m.input.Placeholder = "Sub-notebook name..."
	case workspace.RequestNewTag:
		m.input.Placeholder = "Tag name..."
	case workspace.RequestRename:
		m.input.Placeholder = "New name..."
	case workspace.RequestEditNote:
		m.input.Placeholder = "Append line..."
	case workspace.RequestQuickOpen:
		m.input.Placeholder = "Jump to note..."
	case workspace.RequestDeleteConfirm:
		m.input.Placeholder = "Delete selected? (y/n)"
	}

	m.input.Focus()
	return m, textinput.Blink
}

// updatePrompt handles key events while an inline input is open.
func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.pending = workspace.RequestNone
		m.searching = false
		m.input.Blur()
		return m, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		m.input.Blur()

		if m.searching {
			m.mgr.SetSearch(value)
			m.searching = false
			return m, nil
		}

		req := m.pending
		m.pending = workspace.RequestNone
		m.err = m.dispatch(req, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.searching {
		// Live search: the filter tracks every keystroke.
		m.mgr.SetSearch(m.input.Value())
	}
	return m, cmd
}

// dispatch turns collected input into the matching manager mutation.
func (m *Model) dispatch(req workspace.Request, value string) error {
	switch req {
	case workspace.RequestNewNote:
		_, err := m.mgr.CreateNote(value, "")
		return err

	case workspace.RequestNewNotebook:
		_, err := m.mgr.CreateNotebook(value, "")
		return err

	case workspace.RequestNewSubNotebook:
		_, err := m.mgr.CreateNotebook(value, m.mgr.SelectedNotebook())
		return err

	case workspace.RequestNewTag:
		_, err := m.mgr.CreateTag(value)
		return err

	case workspace.RequestRename:
		switch m.mgr.Focus() {
		case workspace.FocusNotebooks:
			if id := m.mgr.SelectedNotebook(); id != "" {
				return m.mgr.RenameNotebook(id, value)
			}
		case workspace.FocusTags:
			if id := m.mgr.SelectedTag(); id != "" {
				return m.mgr.RenameTag(id, value)
			}
		default:
			if id := m.mgr.Primary(); id != "" {
				return m.mgr.UpdateNote(id, store.NotePatch{Title: &value})
			}
		}
		return nil

	case workspace.RequestEditNote:
		id := m.mgr.Primary()
		if id == "" {
			return nil
		}
		// Appended lines go through the draft layer, so the store write
		// rides the same debounce as live typing.
		content := m.mgr.DraftContent(id)
		if content != "" && !strings.HasSuffix(content, "\n") {
			content += "\n"
		}
		m.mgr.SetDraftContent(content + value)
		return nil

	case workspace.RequestDeleteConfirm:
		if !strings.EqualFold(value, "y") {
			return nil
		}
		switch m.mgr.Focus() {
		case workspace.FocusNotebooks:
			if id := m.mgr.SelectedNotebook(); id != "" {
				return m.mgr.DeleteNotebook(id)
			}
		case workspace.FocusTags:
			if id := m.mgr.SelectedTag(); id != "" {
				return m.mgr.DeleteTag(id)
			}
		default:
			if sel := m.mgr.Selection(); len(sel) > 0 {
				return m.mgr.DeleteNotes(sel)
			}
		}
		return nil

	case workspace.RequestQuickOpen:
		// Jump to the first note whose title contains the query.
		query := strings.ToLower(value)
		for _, note := range m.mgr.AllNotes() {
			if strings.Contains(strings.ToLower(note.Title), query) {
				m.mgr.SelectNote(note.ID, workspace.Modifiers{})
				m.mgr.FocusOn(workspace.FocusNotes)
				break
			}
		}
		return nil
	}

	return nil
}

// View implements tea.Model. Rendering stays deliberately plain: the
// panes show titles and selection markers, nothing more.
func (m Model) View() string {
	focus := m.mgr.Focus()

	sidebar := m.renderSidebar(focus)
	notes := m.renderNotes(focus)
	editor := m.renderEditor(focus)

	view := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, notes, editor)

	if m.pending != workspace.RequestNone || m.searching {
		view += "\n" + m.input.View()
	} else if m.err != nil {
		view += "\n" + dimStyle.Render("error: "+m.err.Error())
	} else if m.status != "" {
		view += "\n" + dimStyle.Render(m.status)
	}

	return view
}

func (m Model) renderSidebar(focus workspace.FocusRegion) string {
	var sb strings.Builder

	sb.WriteString("NOTEBOOKS\n")
	forest := m.mgr.NotebookTree()
	selected := m.mgr.SelectedNotebook()
	var walk func(node *tree.Node, depth int)
	walk = func(node *tree.Node, depth int) {
		marker := "  "
		if node.Notebook.ID == selected {
			marker = "> "
		}
		sb.WriteString(marker + strings.Repeat("  ", depth) + node.Notebook.Name + "\n")
		for _, child := range node.Children {
			walk(child, depth+1)
		}
	}
	for _, root := range forest.Roots() {
		walk(root, 0)
	}

	sb.WriteString("\nTAGS\n")
	selectedTag := m.mgr.SelectedTag()
	for _, tag := range m.mgr.Tags() {
		marker := "  "
		if tag.ID == selectedTag {
			marker = "> "
		}
		sb.WriteString(marker + tag.Name + "\n")
	}

	style := paneStyle
	if focus == workspace.FocusNotebooks || focus == workspace.FocusTags {
		style = focusedPaneStyle
	}
	return style.Render(sb.String())
}

func (m Model) renderNotes(focus workspace.FocusRegion) string {
	var sb strings.Builder

	sb.WriteString("NOTES\n")
	selection := make(map[string]bool)
	for _, id := range m.mgr.Selection() {
		selection[id] = true
	}
	primary := m.mgr.Primary()

	for _, note := range m.mgr.Notes() {
		marker := "  "
		if note.ID == primary {
			marker = "> "
		} else if selection[note.ID] {
			marker = "* "
		}
		title := note.Title
		if title == "" {
			title = "Untitled Note"
		}
		sb.WriteString(marker + title + "\n")
	}

	style := paneStyle
	if focus == workspace.FocusNotes {
		style = focusedPaneStyle
	}
	return style.Render(sb.String())
}

func (m Model) renderEditor(focus workspace.FocusRegion) string {
	var sb strings.Builder

	primary := m.mgr.Primary()
	if primary == "" {
		sb.WriteString(dimStyle.Render("no note selected"))
	} else {
		sb.WriteString(fmt.Sprintf("%s\n\n", m.mgr.DraftTitle(primary)))
		sb.WriteString(m.mgr.DraftContent(primary))
	}

	style := paneStyle
	if focus == workspace.FocusEditor {
		style = focusedPaneStyle
	}
	return style.Render(sb.String())
}
