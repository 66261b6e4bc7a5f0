package workspace

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/textoc/textoc/pkg/gitsync"
	"github.com/textoc/textoc/pkg/mirror"
	"github.com/textoc/textoc/pkg/models"
	"github.com/textoc/textoc/pkg/store"
	"github.com/textoc/textoc/pkg/tree"
)

// ErrCycle is returned when moving a notebook under itself or one of its
// descendants.
var ErrCycle = errors.New("move would create a notebook cycle")

// DefaultDebounce is the quiet period before a live-typed draft is
// committed to the store.
const DefaultDebounce = time.Second

// Manager is the in-memory coordinator between the store, the file
// mirror, and the UI. It loads all entities at startup, derives the
// filtered note view, tracks selection and focus, and serializes every
// mutation back through the store. The store stays the single source of
// truth: after any successful mutation the manager re-derives everything
// from a full refetch instead of patching its copies.
type Manager struct {
	mu    sync.Mutex
	store *store.Store

	mirror *mirror.Mirror
	syncer *gitsync.Syncer
	log    *logrus.Logger

	debounce time.Duration

	// Entity state, discarded and refetched on every refresh.
	notes     []*models.Note
	notebooks []*models.Notebook
	tags      []*models.Tag
	assocs    []models.NoteTag
	forest    *tree.Forest

	// Derived view state.
	search         string
	notebookFilter string
	tagFilter      string
	filtered       []*models.Note

	// Selection and focus state (process-local, never persisted).
	selected []string
	primary  string
	focus    FocusRegion

	draft draftState
}

// Option configures a Manager.
type Option func(*Manager)

// WithMirror attaches a file mirror; note saves and deletes are projected
// onto it.
func WithMirror(m *mirror.Mirror) Option {
	return func(mg *Manager) { mg.mirror = m }
}

// WithSyncer attaches a git syncer for the mirror directory.
func WithSyncer(s *gitsync.Syncer) Option {
	return func(mg *Manager) { mg.syncer = s }
}

// WithLogger sets the logger.
func WithLogger(log *logrus.Logger) Option {
	return func(mg *Manager) { mg.log = log }
}

// WithDebounce overrides the draft commit quiet period.
func WithDebounce(d time.Duration) Option {
	return func(mg *Manager) { mg.debounce = d }
}

// New creates a Manager around an already-opened store. The store handle
// is owned by the caller and injected once; the manager never opens
// connections of its own.
func New(st *store.Store, opts ...Option) *Manager {
	m := &Manager{
		store:    st,
		debounce: DefaultDebounce,
		focus:    FocusNone,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logrus.New()
	}
	return m
}

// Load performs the initial fetch and, when no filter is active yet,
// selects the first notebook and its first note.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.refreshLocked(); err != nil {
		return err
	}
	m.autoSelectLocked()
	return nil
}

// Refresh discards all in-memory entity state and refetches it from the
// store, then reconciles the derived and selection state.
func (m *Manager) Refresh() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshLocked()
}

func (m *Manager) refreshLocked() error {
	notes, err := m.store.ListNotes()
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}
	notebooks, err := m.store.ListNotebooks()
	if err != nil {
		return fmt.Errorf("list notebooks: %w", err)
	}
	tags, err := m.store.ListTags()
	if err != nil {
		return fmt.Errorf("list tags: %w", err)
	}
	assocs, err := m.store.ListNoteTags()
	if err != nil {
		return fmt.Errorf("list note tags: %w", err)
	}

	m.notes = notes
	m.notebooks = notebooks
	m.tags = tags
	m.assocs = assocs
	m.forest = tree.Build(notebooks)

	m.reconcileLocked()
	return nil
}

// reconcileLocked drops filter and selection references to entities that
// no longer exist, then recomputes the filtered view.
func (m *Manager) reconcileLocked() {
	if m.notebookFilter != "" && m.forest.Get(m.notebookFilter) == nil {
		m.notebookFilter = ""
	}
	if m.tagFilter != "" && m.tagByID(m.tagFilter) == nil {
		m.tagFilter = ""
	}

	kept := m.selected[:0]
	for _, id := range m.selected {
		if m.noteByID(id) != nil {
			kept = append(kept, id)
		}
	}
	m.selected = kept
	if m.primary != "" && m.noteByID(m.primary) == nil {
		m.primary = ""
	}

	m.applyFilterLocked()
}

// autoSelectLocked activates the first notebook and selects its first
// note once the initial load completes, unless a filter is already
// active.
func (m *Manager) autoSelectLocked() {
	if m.notebookFilter != "" || m.tagFilter != "" || len(m.notebooks) == 0 {
		return
	}

	m.notebookFilter = m.notebooks[0].ID
	m.tagFilter = ""
	m.focus = FocusNotebooks
	m.applyFilterLocked()

	for _, note := range m.notes {
		if note.NotebookID == m.notebookFilter {
			m.selected = []string{note.ID}
			m.primary = note.ID
			break
		}
	}
}

// Close flushes any pending draft and releases the underlying store.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	flushErr := m.flushDraftLocked()
	if err := m.store.Close(); err != nil {
		return err
	}
	return flushErr
}

// --- Accessors ---

// Notes returns the currently filtered notes in store order.
func (m *Manager) Notes() []*models.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Note(nil), m.filtered...)
}

// AllNotes returns every note regardless of filters.
func (m *Manager) AllNotes() []*models.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Note(nil), m.notes...)
}

// Notebooks returns all notebooks in fetch order.
func (m *Manager) Notebooks() []*models.Notebook {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Notebook(nil), m.notebooks...)
}

// NotebookTree returns the notebook forest from the last refresh.
func (m *Manager) NotebookTree() *tree.Forest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.forest
}

// Tags returns all tags.
func (m *Manager) Tags() []*models.Tag {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.Tag(nil), m.tags...)
}

// TagsForNote returns the tags attached to a note, resolved from the
// in-memory association rows.
func (m *Manager) TagsForNote(noteID string) []*models.Tag {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tagsForNoteLocked(noteID)
}

func (m *Manager) tagsForNoteLocked(noteID string) []*models.Tag {
	var out []*models.Tag
	for _, assoc := range m.assocs {
		if assoc.NoteID != noteID {
			continue
		}
		if tag := m.tagByID(assoc.TagID); tag != nil {
			out = append(out, tag)
		}
	}
	return out
}

// Note returns the note with the given id, or nil.
func (m *Manager) Note(id string) *models.Note {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.noteByID(id)
}

func (m *Manager) noteByID(id string) *models.Note {
	for _, note := range m.notes {
		if note.ID == id {
			return note
		}
	}
	return nil
}

func (m *Manager) tagByID(id string) *models.Tag {
	for _, tag := range m.tags {
		if tag.ID == id {
			return tag
		}
	}
	return nil
}

func (m *Manager) notebookName(id string) string {
	if node := m.forest.Get(id); node != nil {
		return node.Notebook.Name
	}
	return ""
}

// --- Mutations ---
//
// Every mutation follows the same shape: store call, then a full refresh,
// then selection reconciliation (done inside the refresh). A store
// failure aborts before any local state changes.

// CreateNote creates a note in the currently selected notebook (or
// unfiled when none is selected) and selects it. The new note becomes
// primary, so any draft pending for the old primary is flushed first,
// exactly as a note switch does.
func (m *Manager) CreateNote(title, content string) (*models.Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.flushDraftLocked(); err != nil {
		m.log.WithError(err).Warn("flush draft on note create")
	}

	note, err := m.store.CreateNote(title, content, m.notebookFilter)
	if err != nil {
		return nil, err
	}
	if err := m.refreshLocked(); err != nil {
		return nil, err
	}

	m.selected = []string{note.ID}
	m.primary = note.ID
	return note, nil
}

// UpdateNote applies a partial patch to a note.
func (m *Manager) UpdateNote(id string, patch store.NotePatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.store.UpdateNote(id, patch); err != nil {
		return err
	}
	return m.refreshLocked()
}

// DeleteNote removes a note, its mirror file when a mirror is attached,
// and any selection of it. A pending draft for the note is discarded.
func (m *Manager) DeleteNote(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteNotesLocked([]string{id})
}

// DeleteNotes removes several notes in one pass with a single refresh.
func (m *Manager) DeleteNotes(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteNotesLocked(ids)
}

func (m *Manager) deleteNotesLocked(ids []string) error {
	for _, id := range ids {
		if m.draft.noteID == id {
			m.dropDraftLocked()
		}
		if err := m.store.DeleteNote(id); err != nil {
			return err
		}
		if m.mirror != nil {
			if err := m.mirror.DeleteNote(id); err != nil {
				m.log.WithError(err).Warn("delete mirrored note file")
			}
		}
	}
	return m.refreshLocked()
}

// CreateNotebook creates a notebook. An empty parentID creates a root
// notebook.
func (m *Manager) CreateNotebook(name, parentID string) (*models.Notebook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	nb, err := m.store.CreateNotebook(name, parentID)
	if err != nil {
		return nil, err
	}
	if err := m.refreshLocked(); err != nil {
		return nil, err
	}
	return nb, nil
}

// RenameNotebook renames a notebook.
func (m *Manager) RenameNotebook(id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.RenameNotebook(id, name); err != nil {
		return err
	}
	return m.refreshLocked()
}

// MoveNotebook reparents a notebook after validating that the move does
// not introduce a cycle.
func (m *Manager) MoveNotebook(id, newParentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.forest.WouldCycle(id, newParentID) {
		return ErrCycle
	}
	if err := m.store.ReparentNotebook(id, newParentID); err != nil {
		return err
	}
	return m.refreshLocked()
}

// DeleteNotebook removes a notebook and its descendants. Notes that
// referenced them become unfiled; if the notebook was the active filter,
// the filter is cleared by reconciliation.
func (m *Manager) DeleteNotebook(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.DeleteNotebook(id); err != nil {
		return err
	}
	return m.refreshLocked()
}

// CreateTag creates a tag, or returns the existing one on a name
// collision.
func (m *Manager) CreateTag(name string) (*models.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tag, err := m.store.CreateTag(name)
	if err != nil {
		return nil, err
	}
	if err := m.refreshLocked(); err != nil {
		return nil, err
	}
	return tag, nil
}

// RenameTag renames a tag.
func (m *Manager) RenameTag(id, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.RenameTag(id, name); err != nil {
		return err
	}
	return m.refreshLocked()
}

// DeleteTag removes a tag and all its note associations.
func (m *Manager) DeleteTag(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.DeleteTag(id); err != nil {
		return err
	}
	return m.refreshLocked()
}

// TagNote attaches a tag to a note; already-attached is a no-op.
func (m *Manager) TagNote(noteID, tagID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.AddTagToNote(noteID, tagID); err != nil {
		return err
	}
	return m.refreshLocked()
}

// UntagNote detaches a tag from a note; not-attached is a no-op.
func (m *Manager) UntagNote(noteID, tagID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.RemoveTagFromNote(noteID, tagID); err != nil {
		return err
	}
	return m.refreshLocked()
}

// --- Mirror and sync ---

// SaveNote projects a note onto the file mirror and records the written
// content hash.
func (m *Manager) SaveNote(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveNoteLocked(id)
}

func (m *Manager) saveNoteLocked(id string) error {
	if m.mirror == nil {
		return errors.New("no file mirror configured")
	}
	note := m.noteByID(id)
	if note == nil {
		return nil
	}

	var tagNames []string
	for _, tag := range m.tagsForNoteLocked(id) {
		tagNames = append(tagNames, tag.Name)
	}

	hash, err := m.mirror.WriteNote(note, m.notebookName(note.NotebookID), tagNames)
	if err != nil {
		return err
	}
	if err := m.store.SetNoteHash(id, hash); err != nil {
		return err
	}
	note.Hash = hash
	return nil
}

// ExportAll writes every note to the file mirror.
func (m *Manager) ExportAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, note := range m.notes {
		if err := m.saveNoteLocked(note.ID); err != nil {
			return fmt.Errorf("export note %s: %w", note.ID, err)
		}
	}
	return nil
}

// Sync exports all notes to the mirror and runs a git sync over it. The
// returned Result carries any remote failure; local state is never at
// risk.
func (m *Manager) Sync() (gitsync.Result, error) {
	if m.syncer == nil {
		return gitsync.Result{}, errors.New("no syncer configured")
	}
	if err := m.ExportAll(); err != nil {
		return gitsync.Result{}, err
	}
	if err := m.syncer.Init(); err != nil {
		return gitsync.Result{}, err
	}
	return m.syncer.Sync(), nil
}
