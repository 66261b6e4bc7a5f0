package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/textoc/textoc/pkg/workspace"
)

// KeyMap defines the keybindings for the workspace TUI.
type KeyMap struct {
	NewNote        key.Binding
	NewNotebook    key.Binding
	NewSubNotebook key.Binding
	NewTag         key.Binding
	Delete         key.Binding
	Rename         key.Binding
	Edit           key.Binding
	Up             key.Binding
	Down           key.Binding
	ExtendUp       key.Binding
	ExtendDown     key.Binding
	ToggleSelect   key.Binding
	CycleFocus     key.Binding
	CycleFocusBack key.Binding
	QuickOpen      key.Binding
	ClearSelection key.Binding
	Search         key.Binding
	Quit           key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewNote, k.CycleFocus, k.QuickOpen, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewNote, k.NewNotebook, k.NewSubNotebook, k.NewTag},
		{k.Up, k.Down, k.ExtendUp, k.ExtendDown, k.ToggleSelect},
		{k.CycleFocus, k.CycleFocusBack, k.Search, k.QuickOpen},
		{k.Edit, k.Rename, k.Delete, k.ClearSelection, k.Quit},
	}
}

var keys = KeyMap{
	NewNote: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new note"),
	),
	NewNotebook: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "new notebook"),
	),
	NewSubNotebook: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "new sub-notebook"),
	),
	NewTag: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "new tag"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d", "delete"),
		key.WithHelp("d", "delete selected"),
	),
	Rename: key.NewBinding(
		key.WithKeys("r", "f2"),
		key.WithHelp("r", "rename"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e", "enter"),
		key.WithHelp("e", "append to note"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	ExtendUp: key.NewBinding(
		key.WithKeys("shift+up", "K"),
		key.WithHelp("shift+↑", "extend selection up"),
	),
	ExtendDown: key.NewBinding(
		key.WithKeys("shift+down", "J"),
		key.WithHelp("shift+↓", "extend selection down"),
	),
	ToggleSelect: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle select"),
	),
	CycleFocus: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next pane"),
	),
	CycleFocusBack: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous pane"),
	),
	QuickOpen: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "quick open"),
	),
	ClearSelection: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear selection"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// Translate maps a raw key event to a workspace command. This is the only
// place key events and state transitions meet.
func (k KeyMap) Translate(msg tea.KeyMsg) workspace.Command {
	switch {
	case key.Matches(msg, k.NewNote):
		return workspace.CmdNewNote
	case key.Matches(msg, k.NewNotebook):
		return workspace.CmdNewNotebook
	case key.Matches(msg, k.NewSubNotebook):
		return workspace.CmdNewSubNotebook
	case key.Matches(msg, k.NewTag):
		return workspace.CmdNewTag
	case key.Matches(msg, k.Delete):
		return workspace.CmdDeleteSelected
	case key.Matches(msg, k.Rename):
		return workspace.CmdRename
	case key.Matches(msg, k.Edit):
		return workspace.CmdEditNote
	case key.Matches(msg, k.Up):
		return workspace.CmdNavigateUp
	case key.Matches(msg, k.Down):
		return workspace.CmdNavigateDown
	case key.Matches(msg, k.ExtendUp):
		return workspace.CmdExtendUp
	case key.Matches(msg, k.ExtendDown):
		return workspace.CmdExtendDown
	case key.Matches(msg, k.ToggleSelect):
		return workspace.CmdToggleSelect
	case key.Matches(msg, k.CycleFocus):
		return workspace.CmdCycleFocus
	case key.Matches(msg, k.CycleFocusBack):
		return workspace.CmdCycleFocusBack
	case key.Matches(msg, k.QuickOpen):
		return workspace.CmdQuickOpen
	case key.Matches(msg, k.ClearSelection):
		return workspace.CmdClearSelection
	}
	return workspace.CmdNone
}
