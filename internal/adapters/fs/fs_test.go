package fs_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crusader/internal/adapters/fs"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, ".git"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, domain.StateDirName), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "ignored"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "src"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".git", "config"), []byte("git config"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, domain.StateDirName, "build"), []byte("state"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "ignored", "file"), []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "src", "main.c"), []byte("int main;"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "README"), []byte("readme"), 0o600))

	var files []string
	for path := range fs.NewWalker().WalkFiles(tmpDir, []string{"ignored"}) {
		rel, err := filepath.Rel(tmpDir, path)
		require.NoError(t, err)
		files = append(files, rel)
	}

	assert.ElementsMatch(t, []string{"README", filepath.Join("src", "main.c")}, files)
}

func TestHasher_Equal(t *testing.T) {
	hasher := fs.NewHasher()

	assert.True(t, hasher.Equal([]byte(".c main\n"), []byte(".c main\n")))
	assert.True(t, hasher.Equal(nil, []byte{}))
	assert.False(t, hasher.Equal([]byte(".c main\n"), []byte(".c mainx\n")))
	assert.False(t, hasher.Equal([]byte(".c main\n"), []byte(".c maim\n")))
}

func newFileSystem(t *testing.T) (*fs.FileSystem, *mocks.MockVCS, *[]string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	vcs := mocks.NewMockVCS(ctrl)

	var logged []string
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).Do(func(msg string) { logged = append(logged, msg) }).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) { logged = append(logged, msg) }).AnyTimes()

	return fs.New(fs.NewHasher(), vcs, logger), vcs, &logged
}

func TestFileSystem_WriteIfChanged(t *testing.T) {
	fsys, vcs, logged := newFileSystem(t)
	path := filepath.Join(t.TempDir(), "Make.files")

	vcs.EXPECT().Edit(path).Return(nil).Times(2)

	written, err := fsys.WriteIfChanged(path, []byte("@demo\n\n.c main\n"))
	require.NoError(t, err)
	assert.True(t, written)

	written, err = fsys.WriteIfChanged(path, []byte("@demo\n\n.c main\n"))
	require.NoError(t, err)
	assert.False(t, written, "identical content must not touch the file")

	written, err = fsys.WriteIfChanged(path, []byte("@demo\n\n.c main\n.c util\n"))
	require.NoError(t, err)
	assert.True(t, written)

	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "@demo\n\n.c main\n.c util\n", string(data))
	assert.Equal(t, []string{"created Make.files", "updated Make.files (+1 -0 lines)"}, *logged)
}

func TestFileSystem_WriteIfChangedKeepsModTime(t *testing.T) {
	fsys, _, _ := newFileSystem(t)
	path := filepath.Join(t.TempDir(), "CMakeLists.txt")
	require.NoError(t, os.WriteFile(path, []byte("project(demo)\n"), 0o600))

	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, past, past))

	written, err := fsys.WriteIfChanged(path, []byte("project(demo)\n"))
	require.NoError(t, err)
	assert.False(t, written)

	mtime, ok := fsys.ModTime(path)
	require.True(t, ok)
	assert.True(t, mtime.Equal(past))
}

func TestFileSystem_WriteIfChangedSameLength(t *testing.T) {
	fsys, vcs, logged := newFileSystem(t)
	path := filepath.Join(t.TempDir(), "Make.files")
	require.NoError(t, os.WriteFile(path, []byte(".c main\n"), 0o600))
	vcs.EXPECT().Edit(path).Return(nil)

	written, err := fsys.WriteIfChanged(path, []byte(".c mail\n"))
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ".c mail\n", string(data))
	assert.Equal(t, []string{"updated Make.files (+1 -1 lines)"}, *logged)
}

func TestFileSystem_WriteIfChangedUnreadable(t *testing.T) {
	fsys, _, _ := newFileSystem(t)
	dir := filepath.Join(t.TempDir(), "Make.files")
	require.NoError(t, os.Mkdir(dir, 0o750))

	written, err := fsys.WriteIfChanged(dir, []byte(".c main\n"))
	require.ErrorIs(t, err, domain.ErrReadFailed)
	assert.False(t, written)
}

func TestFileSystem_EditFailureIsOnlyAWarning(t *testing.T) {
	fsys, vcs, logged := newFileSystem(t)
	path := filepath.Join(t.TempDir(), "Make.header")
	vcs.EXPECT().Edit(path).Return(os.ErrPermission)

	written, err := fsys.WriteIfChanged(path, []byte("CFLAGS := -g\n"))
	require.NoError(t, err)
	assert.True(t, written)
	require.Len(t, *logged, 2)
	assert.Contains(t, (*logged)[0], "version control edit of Make.header failed")
}

func TestFileSystem_Queries(t *testing.T) {
	fsys, _, _ := newFileSystem(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "demo.jmk")
	require.NoError(t, os.WriteFile(file, []byte("#!/bin/sh\n"), 0o600))

	assert.True(t, fsys.Exists(file))
	assert.True(t, fsys.Readable(file))
	assert.False(t, fsys.IsDir(file))
	assert.True(t, fsys.IsDir(dir))
	assert.False(t, fsys.Readable(dir))
	assert.False(t, fsys.Exists(filepath.Join(dir, "missing")))

	_, ok := fsys.ModTime(filepath.Join(dir, "missing"))
	assert.False(t, ok)

	require.NoError(t, fsys.MakeExecutable(file))
	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o711), info.Mode().Perm())

	_, err = fsys.ReadFile(filepath.Join(dir, "missing"))
	require.ErrorIs(t, err, domain.ErrReadFailed)
}
