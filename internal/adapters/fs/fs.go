package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem implements ports.FileSystem on the local disk.
type FileSystem struct {
	hasher *Hasher
	vcs    ports.VCS
	logger ports.Logger
}

// New creates a FileSystem. vcs may be nil when the project is not under version control.
func New(hasher *Hasher, vcs ports.VCS, logger ports.Logger) *FileSystem {
	return &FileSystem{hasher: hasher, vcs: vcs, logger: logger}
}

// ReadFile reads the entire file at path.
func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrReadFailed, err.Error()), "path", path)
	}
	return data, nil
}

// WriteIfChanged writes data to path unless the file already holds exactly data.
func (f *FileSystem) WriteIfChanged(path string, data []byte) (bool, error) {
	before, err := os.ReadFile(path) //nolint:gosec // Path is controlled by caller
	existed := err == nil
	if err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return false, zerr.With(zerr.Wrap(domain.ErrReadFailed, err.Error()), "path", path)
	}
	if existed && f.hasher.Equal(before, data) {
		return false, nil
	}

	if f.vcs != nil {
		if err := f.vcs.Edit(path); err != nil {
			f.logger.Warn("version control edit of " + filepath.Base(path) + " failed: " + err.Error())
		}
	}

	if err := os.WriteFile(path, data, domain.FilePerm); err != nil { //nolint:gosec // Generated build files are world readable
		return false, zerr.With(zerr.Wrap(domain.ErrWriteFailed, err.Error()), "path", path)
	}

	f.logger.Info(summary(filepath.Base(path), before, data, existed))
	return true, nil
}

// ModTime returns the modification time of path.
func (f *FileSystem) ModTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// Exists reports whether path exists.
func (f *FileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Readable reports whether path is a regular file that can be opened for reading.
func (f *FileSystem) Readable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	file, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return false
	}
	_ = file.Close()
	return true
}

// IsDir reports whether path is an existing directory.
func (f *FileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// MakeExecutable adds execute permission for owner, group and others.
func (f *FileSystem) MakeExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWriteFailed, err.Error()), "path", path)
	}
	if err := os.Chmod(path, info.Mode().Perm()|domain.ExecPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrWriteFailed, err.Error()), "path", path)
	}
	return nil
}
