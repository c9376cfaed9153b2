// Package settings stores project state under .crusader and the user's global files.
package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SettingsStore = (*Store)(nil)

// Store implements ports.SettingsStore with one plain file per state stream.
type Store struct {
	globalDir string
	mu        sync.RWMutex
}

// NewStore creates a Store whose global files live in globalDir.
func NewStore(globalDir string) *Store {
	return &Store{globalDir: filepath.Clean(globalDir)}
}

// DefaultGlobalDir returns $XDG_CONFIG_HOME/crusader, falling back to ~/.config/crusader.
func DefaultGlobalDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, domain.GlobalConfigDirName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", zerr.Wrap(err, "locate home directory")
	}
	return filepath.Join(home, ".config", domain.GlobalConfigDirName), nil
}

// Read returns the named state file of the project, or nil if it does not exist.
func (s *Store) Read(projectDir, name string) ([]byte, error) {
	return s.read(domain.StatePath(projectDir, name))
}

// Write stores the named state file of the project.
func (s *Store) Write(projectDir, name string, data []byte) error {
	return s.write(domain.StatePath(projectDir, name), data)
}

// ReadGlobal returns the named global file, or nil if it does not exist.
func (s *Store) ReadGlobal(name string) ([]byte, error) {
	return s.read(filepath.Join(s.globalDir, name))
}

// WriteGlobal stores the named global file.
func (s *Store) WriteGlobal(name string, data []byte) error {
	return s.write(filepath.Join(s.globalDir, name), data)
}

func (s *Store) read(path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	//nolint:gosec // Path is built from the project directory and a fixed name
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrSettingsReadFailed, err.Error()), "path", path)
	}
	return data, nil
}

// write replaces path atomically through a temporary file.
func (s *Store) write(path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fail := func(err error) error {
		return zerr.With(zerr.Wrap(domain.ErrSettingsWriteFailed, err.Error()), "path", path)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return fail(err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return fail(err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fail(err)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		_ = tmp.Close()
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		return fail(err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fail(err)
	}
	return nil
}
