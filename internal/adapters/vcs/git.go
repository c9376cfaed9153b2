// Package vcs connects the build engine to the project's git repository.
package vcs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/index"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.VCS = (*Git)(nil)

// ownerWrite is the permission bit restored on tracked files before they are regenerated.
const ownerWrite = 0o200

// Git implements ports.VCS with go-git.
// The repository is discovered from dir on first use. Outside a repository every
// operation is a no-op.
type Git struct {
	dir string

	once sync.Once
	repo *git.Repository
	root string
	err  error
}

// New creates a Git adapter for the repository containing dir.
func New(dir string) *Git {
	return &Git{dir: dir}
}

func (g *Git) open() (*git.Repository, error) {
	g.once.Do(func() {
		repo, err := git.PlainOpenWithOptions(g.dir, &git.PlainOpenOptions{DetectDotGit: true})
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return
		}
		if err != nil {
			g.err = zerr.With(zerr.Wrap(err, "open repository"), "dir", g.dir)
			return
		}
		wt, err := repo.Worktree()
		if err != nil {
			// Bare repositories have no files to edit.
			return
		}
		g.repo = repo
		g.root = wt.Filesystem.Root()
	})
	return g.repo, g.err
}

// Edit makes a tracked file writable so it can be regenerated.
// Untracked files and files outside the repository are left alone.
func (g *Git) Edit(path string) error {
	repo, err := g.open()
	if err != nil || repo == nil {
		return err
	}

	rel, err := filepath.Rel(g.root, path)
	if err != nil || !filepath.IsLocal(rel) {
		return nil //nolint:nilerr // The file lives outside the repository.
	}

	idx, err := repo.Storer.Index()
	if err != nil {
		return zerr.Wrap(err, "read index")
	}
	if _, err := idx.Entry(filepath.ToSlash(rel)); err != nil {
		if errors.Is(err, index.ErrEntryNotFound) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "look up index entry"), "path", rel)
	}

	info, err := os.Stat(path)
	if err != nil {
		// A tracked file that was deleted from the worktree is simply recreated.
		return nil //nolint:nilerr // Nothing to make writable.
	}
	if info.Mode().Perm()&ownerWrite != 0 {
		return nil
	}
	if err := os.Chmod(path, info.Mode().Perm()|ownerWrite); err != nil {
		return zerr.With(zerr.Wrap(err, "make writable"), "path", rel)
	}
	return nil
}

// Status returns a summary of the working tree.
func (g *Git) Status(ctx context.Context) (ports.VCSStatus, error) {
	repo, err := g.open()
	if err != nil || repo == nil {
		return ports.VCSStatus{}, err
	}
	if err := ctx.Err(); err != nil {
		return ports.VCSStatus{}, err
	}

	var summary ports.VCSStatus
	if head, err := repo.Head(); err == nil && head.Name().IsBranch() {
		summary.Branch = head.Name().Short()
	}

	wt, err := repo.Worktree()
	if err != nil {
		return ports.VCSStatus{}, zerr.Wrap(err, "open worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return ports.VCSStatus{}, zerr.Wrap(err, "read worktree status")
	}

	for _, st := range status {
		switch {
		case st.Worktree == git.Untracked:
			summary.Untracked++
		case st.Staging == git.Added:
			summary.Added++
		case st.Staging == git.Deleted || st.Worktree == git.Deleted:
			summary.Deleted++
		case st.Staging != git.Unmodified || st.Worktree != git.Unmodified:
			summary.Modified++
		}
	}
	return summary, nil
}
