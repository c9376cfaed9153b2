package command_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/engine/command"
	"go.trai.ch/zerr"
)

func TestManager_Substitute(t *testing.T) {
	h, project := newProjectHarness(t, domain.MethodMakemake)
	file := domain.FileRef{Path: filepath.Join(project.dir, "src", "main.cc"), Line: 42}

	tests := []struct {
		arg  string
		want string
	}{
		{"$project_path", project.dir},
		{"$project_name", "demo"},
		{"$program", "demo-app"},
		{"$full_name", file.Path},
		{"$relative_name", filepath.Join("src", "main.cc")},
		{"$file_name", "main.cc"},
		{"$file_name_root.o", "main.o"},
		{"$(file_name_root)_test", "main_test"},
		{"$file_name_suffix", ".cc"},
		{"$full_path", filepath.Join(project.dir, "src") + string(filepath.Separator)},
		{"$relative_path", "src" + string(filepath.Separator)},
		{"+$line", "+42"},
		{"$HOME and $(other)", "$HOME and $(other)"},
		{"cost: 5$", "cost: 5$"},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := h.mgr.Substitute(tt.arg, file)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManager_SubstituteRelativePathAtRoot(t *testing.T) {
	h, project := newProjectHarness(t, domain.MethodMakemake)
	got, err := h.mgr.Substitute("$relative_path", domain.FileRef{Path: filepath.Join(project.dir, "a.c")})
	require.NoError(t, err)
	assert.Equal(t, "./", got)
}

func TestManager_SubstituteRequirements(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.mgr.Substitute("$project_name", domain.FileRef{})
	require.ErrorIs(t, err, domain.ErrRequiresProject)

	_, err = h.mgr.Substitute("$relative_name", domain.FileRef{Path: "/tmp/a.c"})
	require.ErrorIs(t, err, domain.ErrRequiresProject)

	_, err = h.mgr.Substitute("$file_name", domain.FileRef{})
	require.ErrorIs(t, err, domain.ErrRequiresFile)

	_, err = h.mgr.Substitute("$file_name", domain.FileRef{Path: "relative.c"})
	require.ErrorIs(t, err, domain.ErrRequiresFile)

	got, err := h.mgr.Substitute("$file_name", domain.FileRef{Path: "/tmp/a.c"})
	require.NoError(t, err)
	assert.Equal(t, "a.c", got)
}

func TestManager_FileArgumentsExpandPerFile(t *testing.T) {
	h, project := newProjectHarness(t, domain.MethodManual)
	files := []domain.FileRef{
		{Path: filepath.Join(project.dir, "a.c")},
		{Path: filepath.Join(project.dir, "b.c")},
	}

	_, err := h.mgr.Exec(context.Background(), domain.CommandDescriptor{Cmd: "cc -c $file_name -o $program"}, files)
	require.NoError(t, err)
	h.run()

	assert.Equal(t, []string{"cc -c a.c b.c -o demo-app"}, h.started())
}

func TestManager_GroupsFilesByDirectory(t *testing.T) {
	h, project := newProjectHarness(t, domain.MethodManual)
	lib := filepath.Join(project.dir, "lib")
	app := filepath.Join(project.dir, "app")
	require.NoError(t, os.Mkdir(lib, 0o750))
	require.NoError(t, os.Mkdir(app, 0o750))

	files := []domain.FileRef{
		{Path: filepath.Join(lib, "a.c")},
		{Path: filepath.Join(app, "main.c")},
		{Path: filepath.Join(lib, "b.c")},
	}
	_, err := h.mgr.Exec(context.Background(), domain.CommandDescriptor{Path: "@", Cmd: "indent $file_name"}, files)
	require.NoError(t, err)
	h.run()

	assert.Equal(t, []string{"indent a.c b.c", "indent main.c"}, h.started())
	require.Len(t, h.specs, 2)
	assert.Equal(t, lib, h.specs[0].Dir)
	assert.Equal(t, app, h.specs[1].Dir)
}

func TestManager_PrepareErrors(t *testing.T) {
	h, project := newProjectHarness(t, domain.MethodManual)
	file := []domain.FileRef{{Path: filepath.Join(project.dir, "a.c")}}

	tests := []struct {
		name    string
		desc    domain.CommandDescriptor
		files   []domain.FileRef
		wantErr error
	}{
		{
			name:    "file command without files",
			desc:    domain.CommandDescriptor{Cmd: "lint $full_name"},
			wantErr: domain.ErrRequiresFile,
		},
		{
			name:    "file directory without files",
			desc:    domain.CommandDescriptor{Path: "@", Cmd: "make"},
			wantErr: domain.ErrRequiresFile,
		},
		{
			name:    "missing directory",
			desc:    domain.CommandDescriptor{Path: "no/such/dir", Cmd: "make"},
			wantErr: domain.ErrInvalidPath,
		},
		{
			name:    "unknown subroutine",
			desc:    domain.CommandDescriptor{Cmd: "&nothing"},
			wantErr: domain.ErrUnknownCommand,
		},
		{
			name:    "empty",
			desc:    domain.CommandDescriptor{Cmd: ""},
			files:   file,
			wantErr: domain.ErrEmptyCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.mgr.Prepare(tt.desc, tt.files)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, h.started())
}

func TestManager_RelativePathNeedsProject(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.mgr.Prepare(domain.CommandDescriptor{Path: "src", Cmd: "make"}, nil)
	require.ErrorIs(t, err, domain.ErrRequiresProject)

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "src", zErr.Metadata()["path"])
}

func TestManager_RejectsCycles(t *testing.T) {
	h, _ := newProjectHarness(t, domain.MethodManual)
	h.mgr.AppendCommand(domain.CommandDescriptor{Name: "a", Cmd: "&b"})
	h.mgr.AppendCommand(domain.CommandDescriptor{Name: "b", Cmd: "echo b ; &c"})
	h.mgr.AppendCommand(domain.CommandDescriptor{Name: "c", Cmd: "&a"})
	h.mgr.AppendCommand(domain.CommandDescriptor{Name: "self", Cmd: "&self"})

	tests := []struct {
		name  string
		cycle string
	}{
		{name: "a", cycle: "a -> b -> c -> a"},
		{name: "b", cycle: "b -> c -> a -> b"},
		{name: "self", cycle: "self -> self"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := h.mgr.PrepareNamed(tt.name, nil)
			require.ErrorIs(t, err, domain.ErrInfiniteRecursion)

			var zErr *zerr.Error
			require.ErrorAs(t, err, &zErr)
			assert.Equal(t, tt.cycle, zErr.Metadata()["cycle"])
		})
	}
	assert.Empty(t, h.started())
}

func TestManager_RepeatedCallIsNotACycle(t *testing.T) {
	h, _ := newProjectHarness(t, domain.MethodManual)
	h.mgr.AppendCommand(domain.CommandDescriptor{Name: "leaf", Cmd: "echo leaf"})
	h.mgr.AppendCommand(domain.CommandDescriptor{Name: "mid", Cmd: "&leaf ; &leaf"})

	_, err := h.mgr.Prepare(domain.CommandDescriptor{Name: "top", Cmd: "&mid ; &leaf"}, nil)
	require.NoError(t, err)
}

func TestManager_GlobalFallback(t *testing.T) {
	h, _ := newProjectHarness(t, domain.MethodManual)
	global := newHarness(t, nil)
	global.mgr.AppendCommand(domain.CommandDescriptor{Name: "fmt", Cmd: "gofmt -l $project_path"})
	global.mgr.AppendCommand(domain.CommandDescriptor{Name: "local", Cmd: "echo global"})
	h.mgr.SetGlobal(global.mgr)
	h.mgr.AppendCommand(domain.CommandDescriptor{Name: "local", Cmd: "echo local"})

	_, err := h.mgr.ExecNamed(context.Background(), "fmt", nil)
	require.NoError(t, err)
	_, err = h.mgr.ExecNamed(context.Background(), "local", nil)
	require.NoError(t, err)
	h.run()

	started := h.started()
	require.Len(t, started, 2)
	assert.True(t, strings.HasPrefix(started[0], "gofmt -l /"), "global command runs in project context")
	assert.Equal(t, "echo local", started[1])

	_, err = h.mgr.ExecNamed(context.Background(), "missing", nil)
	require.ErrorIs(t, err, domain.ErrUnknownCommand)
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, "missing", zErr.Metadata()["cmd"])
}

func TestManager_DuplicateName(t *testing.T) {
	h, _ := newProjectHarness(t, domain.MethodManual)
	h.mgr.AppendCommand(domain.CommandDescriptor{Name: "x", Cmd: "echo 1"})
	h.mgr.AppendCommand(domain.CommandDescriptor{Name: "x", Cmd: "echo 2"})

	_, _, err := h.mgr.PrepareNamed("x", nil)
	require.ErrorIs(t, err, domain.ErrDuplicateCommand)

	_, err = h.mgr.Prepare(domain.CommandDescriptor{Cmd: "&x"}, nil)
	require.ErrorIs(t, err, domain.ErrDuplicateCommand)
}

func TestManager_MakeDepend(t *testing.T) {
	h, project := newProjectHarness(t, domain.MethodMakemake)
	assert.Equal(t, "makemake", h.mgr.MakeDependCommand())

	cmd, err := h.mgr.MakeDependCmdString()
	require.NoError(t, err)
	assert.Equal(t, "makemake --check", cmd)

	h.mgr.SetMakeDependCommand("depend $project_name.pro")
	cmd, err = h.mgr.MakeDependCmdString()
	require.NoError(t, err)
	assert.Equal(t, "depend demo.pro --check", cmd)

	p, err := h.mgr.MakeDepend(context.Background(), nil)
	require.NoError(t, err)
	h.run()

	assert.Equal(t, []string{"depend demo.pro --check"}, h.started())
	assert.Equal(t, project.dir, h.specs[0].Dir)
	assert.True(t, p.Success())
	assert.Equal(t, 1, h.closed)
}

func TestManager_MakeDependRejectsCalls(t *testing.T) {
	h, _ := newProjectHarness(t, domain.MethodCMake)
	h.mgr.SetMakeDependCommand("&prepare ; cmake .")

	_, err := h.mgr.MakeDepend(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrFnsNotAllowed)
	assert.Empty(t, h.started())
}

func TestManager_MakeDependWithoutProject(t *testing.T) {
	h := newHarness(t, nil)
	_, err := h.mgr.MakeDepend(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrRequiresProject)
}

func TestManager_Setup(t *testing.T) {
	h, _ := newProjectHarness(t, domain.MethodQMake)
	h.mgr.SetMakeDependCommand("qmake \"$project_name.pro\"")
	h.mgr.AppendCommand(domain.CommandDescriptor{
		Path: ".", Cmd: "make", Name: "build",
		IsMake: true, SaveAll: true, RaiseOnStart: true,
		MenuText: "Build", MenuShortcut: "Ctrl-M", SeparatorAfter: true,
	})
	h.mgr.AppendCommand(domain.CommandDescriptor{
		Path: "@", Cmd: "git add $file_name", Name: "add",
		IsVCS: true, OneAtATime: true, UseWindow: true, BeepOnFinish: true,
		MenuID: "fixed-id",
	})

	var buf bytes.Buffer
	require.NoError(t, h.mgr.WriteSetup(&buf))
	assert.True(t, strings.HasPrefix(buf.String(), "4\n\"qmake \\\"$project_name.pro\\\"\"\n"))

	other, _ := newProjectHarness(t, domain.MethodManual)
	require.NoError(t, other.mgr.ReadSetup(bytes.NewReader(buf.Bytes())))

	assert.Equal(t, h.mgr.MakeDependCommand(), other.mgr.MakeDependCommand())
	assert.Equal(t, h.mgr.Commands().All(), other.mgr.Commands().All())
	assert.True(t, strings.HasSuffix(other.mgr.Commands().At(0).MenuID, "::crusader"))
	assert.Equal(t, "fixed-id", other.mgr.Commands().At(1).MenuID)
}

func TestManager_ReadSetupErrors(t *testing.T) {
	h, _ := newProjectHarness(t, domain.MethodManual)
	h.mgr.AppendCommand(domain.CommandDescriptor{Name: "keep", Cmd: "true"})

	err := h.mgr.ReadSetup(strings.NewReader("5\n\"x\"\nF\n"))
	require.ErrorIs(t, err, domain.ErrUnsupportedVersion)

	err = h.mgr.ReadSetup(strings.NewReader("4\n\"x\"\nT\n\"path\"\n"))
	require.ErrorIs(t, err, domain.ErrMalformedStream)

	assert.Equal(t, 1, h.mgr.Commands().Len(), "a failed read leaves the list alone")
	assert.Equal(t, "echo Makefile must be updated manually", h.mgr.MakeDependCommand())
}

func TestNewMenuID(t *testing.T) {
	a := command.NewMenuID()
	b := command.NewMenuID()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, "::crusader"))
}
