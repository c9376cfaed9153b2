// Package documents is the editor side of the command line: it opens files in
// the user's editor and keeps the symbol database and VCS summary fresh.
package documents

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/google/shlex"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DocumentManager = (*Manager)(nil)

// defaultEditor is used when neither VISUAL nor EDITOR is set.
const defaultEditor = "vi"

// Config holds the project values the manager needs.
type Config struct {
	Dir     string
	Symbols string
	Env     []string
}

// Manager implements ports.DocumentManager for a terminal session.
// Nothing is ever held open, so saving is a no-op.
type Manager struct {
	cfg    Config
	runner ports.ProcessRunner
	vcs    ports.VCS
	logger ports.Logger

	mu      sync.Mutex
	symbols ports.Process
	wg      sync.WaitGroup
}

// New creates a Manager.
func New(cfg Config, runner ports.ProcessRunner, vcs ports.VCS, logger ports.Logger) *Manager {
	return &Manager{cfg: cfg, runner: runner, vcs: vcs, logger: logger}
}

// SaveFiles does nothing.
func (m *Manager) SaveFiles(_ ...string) error {
	return nil
}

// SaveAll does nothing and reports zero saved documents.
func (m *Manager) SaveAll() (int, error) {
	return 0, nil
}

// OpenFile runs $VISUAL or $EDITOR on path and waits for it to exit.
func (m *Manager) OpenFile(ctx context.Context, path string) error {
	args, err := editorCommand()
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrOpenFailed, err.Error()), "path", path)
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...) //nolint:gosec // The editor is chosen by the user
	cmd.Dir = m.cfg.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrOpenFailed, err.Error()), "path", path), "editor", args[0])
	}
	return nil
}

func editorCommand() ([]string, error) {
	editor := os.Getenv("VISUAL")
	if strings.TrimSpace(editor) == "" {
		editor = os.Getenv("EDITOR")
	}
	if strings.TrimSpace(editor) == "" {
		editor = defaultEditor
	}
	args, err := shlex.Split(editor)
	if err != nil {
		return nil, zerr.Wrap(err, "parse editor command")
	}
	if len(args) == 0 {
		return nil, domain.ErrEmptyCommand
	}
	return args, nil
}

// UpdateSymbolDatabase starts the project's symbols command in the background.
// A running update is replaced. Wait blocks until it has finished.
func (m *Manager) UpdateSymbolDatabase(ctx context.Context) error {
	if strings.TrimSpace(m.cfg.Symbols) == "" {
		return nil
	}
	args, err := shlex.Split(m.cfg.Symbols)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "parse symbols command"), "cmd", m.cfg.Symbols)
	}

	m.CancelUpdateSymbolDatabase()

	proc, err := m.runner.Start(ctx, ports.ProcessSpec{Dir: m.cfg.Dir, Args: args, Env: m.cfg.Env}, nil)
	if err != nil {
		return zerr.Wrap(err, "update symbol database")
	}

	m.mu.Lock()
	m.symbols = proc
	m.mu.Unlock()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		err := proc.Wait()

		m.mu.Lock()
		if m.symbols == proc {
			m.symbols = nil
		}
		m.mu.Unlock()

		switch {
		case err == nil:
			m.logger.Info("symbol database updated")
		case errors.Is(err, domain.ErrProcessCancelled):
		default:
			m.logger.Error(zerr.Wrap(err, "update symbol database"))
		}
	}()
	return nil
}

// CancelUpdateSymbolDatabase kills a running symbol update.
func (m *Manager) CancelUpdateSymbolDatabase() {
	m.mu.Lock()
	proc := m.symbols
	m.symbols = nil
	m.mu.Unlock()

	if proc != nil {
		if err := proc.Kill(); err != nil {
			m.logger.Warn(fmt.Sprintf("stop symbol update: %v", err))
		}
	}
}

// Wait blocks until background symbol updates have finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// RefreshVCSStatus logs a one-line summary of the working tree.
func (m *Manager) RefreshVCSStatus(ctx context.Context) error {
	st, err := m.vcs.Status(ctx)
	if err != nil {
		return zerr.Wrap(err, "refresh version control status")
	}
	m.logger.Info(describeStatus(st))
	return nil
}

func describeStatus(st ports.VCSStatus) string {
	prefix := "working tree"
	if st.Branch != "" {
		prefix = "on " + st.Branch + ":"
	}
	if st.Clean() {
		return prefix + " clean"
	}

	var parts []string
	for _, c := range []struct {
		n    int
		what string
	}{
		{st.Modified, "modified"},
		{st.Added, "added"},
		{st.Deleted, "deleted"},
		{st.Untracked, "untracked"},
	} {
		if c.n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c.n, c.what))
		}
	}
	return prefix + " " + strings.Join(parts, ", ")
}
