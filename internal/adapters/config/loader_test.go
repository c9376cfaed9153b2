package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crusader/internal/adapters/config"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	return config.NewLoader(mocks.NewMockLogger(gomock.NewController(t)))
}

func TestLoader_Load(t *testing.T) {
	root := filepath.Join(t.TempDir(), "demo")
	createFile(t, root, domain.ConfigFileName, `
project: demo
files:
  - src/**/*.c
  - include/demo.h
libraries:
  - file: lib/libutil.a
    project: ../util
build:
  method: cmake
  target: demo, demo-test
  depList: $(wildcard *.tmpl)
  subProjectBuild: make -j4
makeDepend: cmake -G "Unix Makefiles" .
symbols: ctags -R .
environment:
  CC: clang
commands:
  - name: compile
    path: "@"
    cmd: cc -c $file_name
    oneAtATime: true
  - name: build
    cmd: make
    isMake: true
`)

	project, err := newLoader(t).Load(filepath.Join(root))
	require.NoError(t, err)

	assert.Equal(t, "demo", project.Name)
	assert.Equal(t, root, project.Dir)
	assert.Equal(t, []string{"src/**/*.c", "include/demo.h"}, project.Files)
	assert.Equal(t, []domain.Library{{File: "lib/libutil.a", Project: "../util"}}, project.Libraries)
	assert.Equal(t, `cmake -G "Unix Makefiles" .`, project.MakeDepend)
	assert.Equal(t, "ctags -R .", project.Symbols)
	assert.Equal(t, map[string]string{"CC": "clang"}, project.Environment)
	assert.Empty(t, project.EnvFile)

	require.NotNil(t, project.Build)
	assert.Equal(t, domain.MethodCMake, project.Build.Method)
	assert.Equal(t, []string{"demo", "demo-test"}, project.Build.Targets())
	assert.Equal(t, "$(wildcard *.tmpl)", project.Build.DepListExpr)
	assert.Equal(t, "make -j4", project.Build.SubProjectBuildCommand)
	assert.True(t, project.Build.NeedsFileRegeneration)

	require.Len(t, project.Commands, 2)
	assert.Equal(t, domain.CommandDescriptor{Name: "compile", Path: "@", Cmd: "cc -c $file_name", OneAtATime: true}, project.Commands[0])
	assert.True(t, project.Commands[1].IsMake)
}

func TestLoader_Defaults(t *testing.T) {
	root := filepath.Join(t.TempDir(), "widget")
	createFile(t, root, domain.ConfigFileName, "files: [main.c]\n")

	project, err := newLoader(t).Load(root)
	require.NoError(t, err)

	assert.Equal(t, "widget", project.Name)
	assert.Equal(t, domain.MethodMakemake, project.Build.Method)
	assert.Equal(t, "widget", project.Build.TargetName)
	assert.Equal(t, domain.DefaultSubProjectBuildCommand, project.Build.SubProjectBuildCommand)
	assert.Empty(t, project.MakeDepend)
}

func TestLoader_DiscoverRoot(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, "project: demo\n")
	nested := filepath.Join(root, "src", "util")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))

	loader := newLoader(t)
	got, err := loader.DiscoverRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	project, err := loader.Load(nested)
	require.NoError(t, err)
	assert.Equal(t, root, project.Dir)
}

func TestLoader_NotFound(t *testing.T) {
	_, err := newLoader(t).Load(t.TempDir())
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestLoader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		err     error
	}{
		{"malformed yaml", "files: [main.c\n", domain.ErrConfigParseFailed},
		{"unknown method", "build:\n  method: scons\n", domain.ErrInvalidBuildMethod},
		{"bad project name", "project: my project\n", domain.ErrInvalidProjectName},
		{"missing env file", "envFile: local.env\n", domain.ErrEnvFileFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			createFile(t, root, domain.ConfigFileName, tt.content)

			_, err := newLoader(t).Load(root)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoader_EnvFile(t *testing.T) {
	t.Run("default file is optional and merged", func(t *testing.T) {
		root := t.TempDir()
		createFile(t, root, domain.ConfigFileName, "environment:\n  CC: clang\n")
		createFile(t, root, domain.DefaultEnvFileName, "CC=gcc\nCFLAGS=-O2\n")

		project, err := newLoader(t).Load(root)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"CC": "clang", "CFLAGS": "-O2"}, project.Environment)
		assert.Equal(t, filepath.Join(root, domain.DefaultEnvFileName), project.EnvFile)
	})

	t.Run("configured file", func(t *testing.T) {
		root := t.TempDir()
		createFile(t, root, domain.ConfigFileName, "envFile: config/build.env\n")
		createFile(t, root, "config/build.env", "# toolchain\nexport PREFIX=/opt/demo\n")

		project, err := newLoader(t).Load(root)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"PREFIX": "/opt/demo"}, project.Environment)
	})
}

func TestLoader_WarnsDuplicateCommands(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(`command "build" is defined more than once in crusader.yaml`).Times(1)

	root := t.TempDir()
	createFile(t, root, domain.ConfigFileName, `
commands:
  - {name: build, cmd: make}
  - {name: build, cmd: make -k}
  - {cmd: ls}
  - {cmd: pwd}
`)

	_, err := config.NewLoader(log).Load(root)
	require.NoError(t, err)
}
