//go:build integration

package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/textoc/textoc/pkg/gitsync"
	"github.com/textoc/textoc/pkg/mirror"
	"github.com/textoc/textoc/pkg/store"
	"github.com/textoc/textoc/pkg/workspace"
)

// TestFullPipeline walks a workspace through its whole lifecycle: create
// entities, edit, export to the mirror, and commit the mirror with git.
func TestFullPipeline(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	tmpDir := t.TempDir()
	notesDir := filepath.Join(tmpDir, "notes")

	st, err := store.Open(filepath.Join(tmpDir, "textoc.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	mgr := workspace.New(st,
		workspace.WithMirror(mirror.New(notesDir)),
		workspace.WithSyncer(gitsync.New(notesDir, log)),
		workspace.WithLogger(log),
	)
	defer mgr.Close()

	if err := mgr.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}

	nb, err := mgr.CreateNotebook("journal", "")
	if err != nil {
		t.Fatalf("create notebook: %v", err)
	}
	mgr.SelectNotebook(nb.ID)

	note, err := mgr.CreateNote("day one", "started the journal")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	tag, err := mgr.CreateTag("daily")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if err := mgr.TagNote(note.ID, tag.ID); err != nil {
		t.Fatalf("tag note: %v", err)
	}

	// Commits need an identity in the test repository.
	if err := gitsync.New(notesDir, log).Init(); err != nil {
		t.Fatalf("git init: %v", err)
	}
	for _, args := range [][]string{
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
	} {
		cmd := exec.Command("git", args...)
		cmd.Dir = notesDir
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	res, err := mgr.Sync()
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !res.Committed {
		t.Error("expected the export to produce a commit")
	}
	if res.Pushed {
		t.Error("no remote configured, nothing should have been pushed")
	}

	// The mirrored file exists and the store recorded its hash.
	if _, err := os.Stat(filepath.Join(notesDir, note.ID+".md")); err != nil {
		t.Errorf("mirrored file missing: %v", err)
	}
	if got := mgr.Note(note.ID); got == nil || got.Hash == "" {
		t.Error("store did not record the mirror hash")
	}
}
