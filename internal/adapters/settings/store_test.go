package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crusader/internal/adapters/settings"
	"go.trai.ch/crusader/internal/core/domain"
)

func TestStore_ProjectState(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	store := settings.NewStore(t.TempDir())

	got, err := store.Read(project, domain.BuildStateFileName)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Write(project, domain.BuildStateFileName, []byte("# build settings\n")))
	require.NoError(t, store.Write(project, domain.BuildStateFileName, []byte("# build settings\n1\n")))

	got, err = store.Read(project, domain.BuildStateFileName)
	require.NoError(t, err)
	assert.Equal(t, "# build settings\n1\n", string(got))

	entries, err := os.ReadDir(filepath.Join(project, domain.StateDirName))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files are cleaned up")

	info, err := entries[0].Info()
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())
}

func TestStore_Global(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "crusader")
	store := settings.NewStore(dir)

	got, err := store.ReadGlobal(domain.GlobalCommandsFileName)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.WriteGlobal(domain.GlobalCommandsFileName, []byte("4\n\"makemake\"\nF\n")))
	data, err := os.ReadFile(filepath.Join(dir, domain.GlobalCommandsFileName))
	require.NoError(t, err)
	assert.Equal(t, "4\n\"makemake\"\nF\n", string(data))
}

func TestStore_ReadFailure(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	require.NoError(t, os.MkdirAll(domain.StatePath(project, domain.SettingsStateFileName), domain.DirPerm))

	_, err := settings.NewStore(t.TempDir()).Read(project, domain.SettingsStateFileName)
	require.ErrorIs(t, err, domain.ErrSettingsReadFailed)
}

func TestStore_WriteFailure(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(project, domain.StateDirName), nil, domain.FilePerm))

	err := settings.NewStore(t.TempDir()).Write(project, domain.BuildStateFileName, []byte("x"))
	require.ErrorIs(t, err, domain.ErrSettingsWriteFailed)
}

func TestDefaultGlobalDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	dir, err := settings.DefaultGlobalDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "crusader"), dir)

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/dev")
	dir, err = settings.DefaultGlobalDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/dev", ".config", "crusader"), dir)
}
