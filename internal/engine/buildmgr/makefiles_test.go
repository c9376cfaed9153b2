package buildmgr_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/engine/buildmgr"
	"go.trai.ch/zerr"
)

func TestUpdateMakeFiles_Makemake(t *testing.T) {
	t.Parallel()

	h := newHarness(t, makemakeConfig())
	h.writeFile("Make.header", "# project constants\nCFLAGS := -O2\n\n"+
		marker+"\nstale generated text\n"+marker+"\n\ninstall: demo\n\tcp demo /usr/local/bin\n")
	h.makeData = domain.MakeFilesData{
		Text:      ".c main\n.cc util/strings\n",
		Libraries: []domain.Library{{File: "lib/libutil.a", Project: "../util"}},
	}

	require.NoError(t, h.mgr.UpdateMakeFiles())
	assert.False(t, h.mgr.Config().NeedsFileRegeneration)

	g := goldie.New(t)
	g.Assert(t, "make_files", []byte(h.readFile("Make.files")))
	g.Assert(t, "make_header_splice", []byte(h.readFile("Make.header")))
	assert.Equal(t, [][]string{{h.path("Make.header")}}, h.saved)
}

func TestUpdateMakeFiles_CMake(t *testing.T) {
	t.Parallel()

	h := newHarness(t, domain.NewBuildConfig(domain.MethodCMake, "demo", "", ""))
	h.cmakeData = domain.SourceData{Sources: []string{"main.c", "util.c"}, Headers: []string{"util.h"}}

	require.NoError(t, h.mgr.UpdateMakeFiles())

	g := goldie.New(t)
	g.Assert(t, "cmake_lists", []byte(h.readFile("CMakeLists.txt")))
}

func TestUpdateMakeFiles_QMake(t *testing.T) {
	t.Parallel()

	h := newHarness(t, domain.NewBuildConfig(domain.MethodQMake, "demo", "", ""))
	h.qmakeData = domain.SourceData{Sources: []string{"main.cc"}}

	require.NoError(t, h.mgr.UpdateMakeFiles())

	g := goldie.New(t)
	g.Assert(t, "qmake_pro", []byte(h.readFile("demo.pro")))
}

func TestUpdateMakeFiles_HeaderWithoutInsertMarker(t *testing.T) {
	t.Parallel()

	h := newHarness(t, domain.NewBuildConfig(domain.MethodCMake, "demo", "", ""))
	h.writeFile("CMake.header", "project(demo)")
	h.cmakeData = domain.SourceData{Sources: []string{"main.c"}}

	require.NoError(t, h.mgr.UpdateMakeFiles())

	assert.Equal(t,
		"# Generated by crusader from the project's file list. Do not edit.\n"+
			"project(demo)\nset(SRCS main.c)\nset(HDRS)\nadd_executable(demo ${SRCS} ${HDRS})\n",
		h.readFile("CMakeLists.txt"))
}

func TestUpdateMakeFiles_UnchangedOutputKeepsModTime(t *testing.T) {
	t.Parallel()

	h := newHarness(t, makemakeConfig())
	h.makeData = domain.MakeFilesData{Text: ".c main\n"}
	require.NoError(t, h.mgr.UpdateMakeFiles())

	h.touch("Make.files", -time.Hour)
	h.touch("Make.header", -time.Hour)
	files, header := h.modTime("Make.files"), h.modTime("Make.header")

	require.NoError(t, h.mgr.UpdateMakeFiles())
	assert.Equal(t, files, h.modTime("Make.files"))
	assert.Equal(t, header, h.modTime("Make.header"))

	h.makeData = domain.MakeFilesData{Text: ".c main\n.c extra\n"}
	require.NoError(t, h.mgr.UpdateMakeFiles())
	assert.NotEqual(t, files, h.modTime("Make.files"))
	assert.Equal(t, header, h.modTime("Make.header"))
}

func TestUpdateMakeFiles_CMakeSkipsUpToDateInput(t *testing.T) {
	t.Parallel()

	h := newHarness(t, domain.NewBuildConfig(domain.MethodCMake, "demo", "", ""))
	h.cmakeData = domain.SourceData{Sources: []string{"main.c"}}
	h.scan()

	// Different sources are not picked up while nothing marks the input stale.
	h.cmakeData = domain.SourceData{Sources: []string{"main.c", "new.c"}}
	require.NoError(t, h.mgr.UpdateMakeFiles())
	assert.NotContains(t, h.readFile("CMakeLists.txt"), "new.c")

	h.mgr.ProjectChanged(&domain.ProjectFile{Path: "new.c", Kind: domain.KindSource})
	require.NoError(t, h.mgr.UpdateMakeFiles())
	assert.Contains(t, h.readFile("CMakeLists.txt"), "new.c")
}

func TestUpdateMakeFiles_CMakeHeaderEditRegenerates(t *testing.T) {
	t.Parallel()

	h := newHarness(t, domain.NewBuildConfig(domain.MethodCMake, "demo", "", ""))
	h.cmakeData = domain.SourceData{Sources: []string{"main.c"}}
	h.scan()

	h.writeFile("CMake.header", "add_definitions(-DDEBUG)\n"+h.readFile("CMake.header"))
	h.touch("CMake.header", time.Hour)

	require.NoError(t, h.mgr.UpdateMakeFiles())
	assert.Contains(t, h.readFile("CMakeLists.txt"), "add_definitions(-DDEBUG)\n")
}

func TestUpdateMakeFiles_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing target", func(t *testing.T) {
		t.Parallel()
		cfg := makemakeConfig()
		cfg.TargetName = " , "
		h := newHarness(t, cfg)
		h.makeData = domain.MakeFilesData{Text: ".c main\n"}

		err := h.mgr.UpdateMakeFiles()
		require.ErrorIs(t, err, domain.ErrMissingBuildTarget)
		assert.NoFileExists(t, h.path("Make.files"))
	})

	t.Run("missing source files", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, makemakeConfig())
		h.makeData = domain.MakeFilesData{Text: ".c main\n", Invalid: []string{"a.c", "lib/b.c"}}

		err := h.mgr.UpdateMakeFiles()
		require.ErrorIs(t, err, domain.ErrMissingSourceFiles)

		var ze *zerr.Error
		require.True(t, errors.As(err, &ze))
		assert.Equal(t, []string{"a.c", "lib/b.c"}, ze.Metadata()["files"])
		assert.Equal(t, [][]string{{"a.c", "lib/b.c"}}, h.selected)
		assert.True(t, h.mgr.Config().NeedsFileRegeneration)
	})

	t.Run("no source files", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, domain.NewBuildConfig(domain.MethodQMake, "demo", "", ""))
		h.qmakeData = domain.SourceData{Headers: []string{"a.h"}}

		err := h.mgr.UpdateMakeFiles()
		require.ErrorIs(t, err, domain.ErrNoSourceFiles)
		assert.NoFileExists(t, h.path("demo.pro"))
	})
}

func TestUpdateMakeFiles_ManualOnlySaves(t *testing.T) {
	t.Parallel()

	h := newHarness(t, domain.NewBuildConfig(domain.MethodManual, "demo", "", ""))
	require.NoError(t, h.mgr.UpdateMakeFiles())

	assert.Equal(t, [][]string{{
		h.path("Make.header"), h.path("Make.files"), h.path("CMakeLists.txt"), h.path("demo.pro"),
	}}, h.saved)
	entries, err := os.ReadDir(h.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteSubProjectBuildFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method domain.BuildMethod
		want   string
	}{
		{domain.MethodMakemake, "#!/bin/sh\nmakemake --check\nmake -k all\n"},
		{domain.MethodCMake, "#!/bin/sh\ncmake .\nmake -k all\n"},
		{domain.MethodQMake, "#!/bin/sh\nqmake demo.pro\nmake -k all\n"},
		{domain.MethodManual, "#!/bin/sh\n\nmake -k all\n"},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			t.Parallel()
			h := newHarness(t, domain.NewBuildConfig(tt.method, "demo", "", ""))

			require.NoError(t, h.mgr.WriteSubProjectBuildFile())
			assert.Equal(t, tt.want, h.readFile("demo.jmk"))

			info, err := os.Stat(h.path("demo.jmk"))
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
		})
	}
}

func TestWriteSubProjectBuildFile_SubstitutesVariables(t *testing.T) {
	t.Parallel()

	cfg := domain.NewBuildConfig(domain.MethodCMake, "demo", "demo-app", "")
	cfg.SubProjectBuildCommand = "make $program"
	h := newHarness(t, cfg)

	require.NoError(t, h.mgr.WriteSubProjectBuildFile())
	assert.Equal(t, "#!/bin/sh\ncmake .\nmake demo-app\n", h.readFile("demo.jmk"))
}

func TestRecreateMakeHeaderFile(t *testing.T) {
	t.Parallel()

	h := newHarness(t, domain.NewBuildConfig(domain.MethodCMake, "demo", "demo-app", ""))
	require.NoError(t, h.mgr.RecreateMakeHeaderFile())
	assert.Contains(t, h.readFile("CMake.header"), "project(demo-app)\n")

	h.writeFile("CMake.header", "custom\n")
	require.NoError(t, h.mgr.RecreateMakeHeaderFile())
	assert.Equal(t, "custom\n", h.readFile("CMake.header"))
}

func TestCreateMakeFiles(t *testing.T) {
	t.Parallel()

	t.Run("makemake writes both inputs", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, domain.NewBuildConfig(domain.MethodManual, "demo", "", ""))

		require.NoError(t, h.mgr.CreateMakeFiles(domain.MethodMakemake))
		assert.Equal(t, domain.MethodMakemake, h.mgr.Method())
		assert.FileExists(t, h.path("Make.header"))
		assert.FileExists(t, h.path("Make.files"))
		assert.Equal(t, "makemake", h.mgr.Commands().MakeDependCommand())

		lastSuccess, _ := h.mgr.Snapshots()
		assert.True(t, lastSuccess.Matches(domain.FileMakeHeader, h.modTime("Make.header")))
	})

	t.Run("makemake keeps an existing file list", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, domain.NewBuildConfig(domain.MethodManual, "demo", "", ""))
		h.writeFile("Make.files", "@demo\n")

		require.NoError(t, h.mgr.CreateMakeFiles(domain.MethodMakemake))
		assert.NoFileExists(t, h.path("Make.header"))
		assert.Equal(t, "@demo\n", h.readFile("Make.files"))
	})

	t.Run("qmake", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, domain.NewBuildConfig(domain.MethodManual, "demo", "", ""))

		require.NoError(t, h.mgr.CreateMakeFiles(domain.MethodQMake))
		assert.Contains(t, h.readFile("QMake.header"), buildmgr.InsertMarker)
		assert.Equal(t, "qmake $project_name.pro", h.mgr.Commands().MakeDependCommand())
	})

	t.Run("manual", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, makemakeConfig())

		require.NoError(t, h.mgr.CreateMakeFiles(domain.MethodManual))
		assert.Equal(t, domain.MethodManual, h.mgr.Method())
		assert.Equal(t, "makemake", h.mgr.Commands().MakeDependCommand())
	})
}

func TestEditMakeConfig(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("generated method opens its header", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, makemakeConfig())

		require.NoError(t, h.mgr.EditMakeConfig(ctx))
		assert.Equal(t, []string{"Make.header"}, h.opened)
		assert.FileExists(t, h.path("Make.header"))
	})

	t.Run("manual prefers readable files", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, domain.NewBuildConfig(domain.MethodManual, "demo", "", ""))
		h.writeFile("Makefile", "all:\n")

		require.NoError(t, h.mgr.EditMakeConfig(ctx))
		assert.Equal(t, []string{"Makefile"}, h.opened)
	})

	t.Run("falls back to any file that opens", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, domain.NewBuildConfig(domain.MethodManual, "demo", "", ""))
		h.openErr["demo.pro"] = domain.ErrOpenFailed

		require.NoError(t, h.mgr.EditMakeConfig(ctx))
		assert.Equal(t, []string{"CMakeLists.txt"}, h.opened)
	})

	t.Run("nothing opens", func(t *testing.T) {
		t.Parallel()
		h := newHarness(t, domain.NewBuildConfig(domain.MethodManual, "demo", "", ""))
		for _, name := range []string{"demo.pro", "CMakeLists.txt", "m3makefile", "Makefile", "makefile", "pom.xml", "build.xml"} {
			h.openErr[name] = domain.ErrOpenFailed
		}

		err := h.mgr.EditMakeConfig(ctx)
		require.ErrorIs(t, err, domain.ErrNoMakeFile)
		assert.Empty(t, h.opened)
	})
}
