package gitsync

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Result reports what a sync attempt did. Sync is best-effort background
// connectivity: remote failures are recorded here, never returned as
// errors, so a dead network can never lose a local commit.
type Result struct {
	Committed bool
	Pushed    bool
	Err       string
}

// OK reports whether the sync completed without recording a failure.
func (r Result) OK() bool {
	return r.Err == ""
}

// Syncer wraps the mirror directory in a git repository and pushes it to a
// configured remote when one exists.
type Syncer struct {
	dir string
	log *logrus.Logger
}

// New creates a Syncer for the given directory.
func New(dir string, log *logrus.Logger) *Syncer {
	if log == nil {
		log = logrus.New()
	}
	return &Syncer{dir: dir, log: log}
}

// Init initializes a git repository in the mirror directory, creating the
// directory if needed. Running it against an existing repository is
// harmless; git init is idempotent.
func (s *Syncer) Init() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create mirror dir: %w", err)
	}
	// Sync pushes to main, so start new repositories there. On an
	// existing repository -b is ignored.
	if _, err := s.git("init", "-b", "main"); err != nil {
		if _, err := s.git("init"); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
	}
	return nil
}

// Sync stages all changes, commits them when the working tree is dirty,
// and, if a remote is configured, pulls with rebase and pushes. Each
// network step is independently fault-tolerant: a failed pull (for
// example a first-time push) or failed push degrades the Result instead
// of aborting.
func (s *Syncer) Sync() Result {
	var res Result

	if _, err := s.git("add", "-A"); err != nil {
		res.Err = fmt.Sprintf("stage changes: %v", err)
		return res
	}

	status, err := s.git("status", "--porcelain")
	if err != nil {
		res.Err = fmt.Sprintf("check status: %v", err)
		return res
	}

	if strings.TrimSpace(status) != "" {
		msg := "sync: " + time.Now().UTC().Format(time.RFC3339)
		if _, err := s.git("commit", "-m", msg); err != nil {
			res.Err = fmt.Sprintf("commit: %v", err)
			return res
		}
		res.Committed = true
	}

	if !s.hasRemote() {
		// Nothing to push to; local commit is the whole job.
		return res
	}

	if _, err := s.git("pull", "--rebase", "origin", "main"); err != nil {
		// Tolerated: the remote may be empty on first sync.
		s.log.WithError(err).Debug("pull --rebase failed, continuing")
	}

	if _, err := s.git("push", "origin", "main"); err != nil {
		if _, err := s.git("push", "-u", "origin", "main"); err != nil {
			res.Err = fmt.Sprintf("push: %v", err)
			return res
		}
	}
	res.Pushed = true

	return res
}

// hasRemote reports whether any remote is configured.
func (s *Syncer) hasRemote() bool {
	out, err := s.git("remote")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) != ""
}

// git runs a git subcommand in the mirror directory.
func (s *Syncer) git(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = s.dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", args[0], err, string(output))
	}
	return string(output), nil
}
