package buildmgr_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/crusader/internal/adapters/fs"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/crusader/internal/core/ports/mocks"
	"go.trai.ch/crusader/internal/engine/buildmgr"
	"go.trai.ch/crusader/internal/engine/command"
	"go.trai.ch/crusader/internal/engine/eventloop"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// harness wires a Manager to the real file system adapter in a temp directory.
// The file tree, documents and processes are scripted.
type harness struct {
	t    *testing.T
	dir  string
	loop *eventloop.Loop
	mgr  *buildmgr.Manager
	now  time.Time

	makeData  domain.MakeFilesData
	cmakeData domain.SourceData
	qmakeData domain.SourceData
	selected  [][]string

	started  []string
	scanErr  error
	openErr  map[string]error
	opened   []string
	saved    [][]string
	warnings []string
}

func newHarness(t *testing.T, config domain.BuildConfig) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		t:       t,
		dir:     t.TempDir(),
		loop:    eventloop.New(),
		now:     time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		openErr: make(map[string]error),
	}

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) { h.warnings = append(h.warnings, msg) }).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	tree := mocks.NewMockFileTree(ctrl)
	tree.EXPECT().BuildMakeFiles().DoAndReturn(func() (domain.MakeFilesData, error) {
		return h.makeData, nil
	}).AnyTimes()
	tree.EXPECT().BuildCMakeData().DoAndReturn(func() (domain.SourceData, error) {
		return h.cmakeData, nil
	}).AnyTimes()
	tree.EXPECT().BuildQMakeData().DoAndReturn(func() (domain.SourceData, error) {
		return h.qmakeData, nil
	}).AnyTimes()
	tree.EXPECT().SelectFiles(gomock.Any()).Do(func(paths []string) {
		h.selected = append(h.selected, paths)
	}).AnyTimes()

	docs := mocks.NewMockDocumentManager(ctrl)
	docs.EXPECT().SaveFiles(gomock.Any()).DoAndReturn(func(paths ...string) error {
		h.saved = append(h.saved, paths)
		return nil
	}).AnyTimes()
	docs.EXPECT().OpenFile(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, path string) error {
		if err := h.openErr[filepath.Base(path)]; err != nil {
			return err
		}
		h.opened = append(h.opened, filepath.Base(path))
		return nil
	}).AnyTimes()
	docs.EXPECT().SaveAll().Return(0, nil).AnyTimes()
	docs.EXPECT().CancelUpdateSymbolDatabase().AnyTimes()
	docs.EXPECT().UpdateSymbolDatabase(gomock.Any()).Return(nil).AnyTimes()
	docs.EXPECT().RefreshVCSStatus(gomock.Any()).Return(nil).AnyTimes()

	runner := mocks.NewMockProcessRunner(ctrl)
	runner.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, spec ports.ProcessSpec, _ io.Writer) (ports.Process, error) {
			h.started = append(h.started, strings.Join(spec.Args, " "))
			return &fakeProcess{exit: h.scanErr}, nil
		}).AnyTimes()

	consoles := mocks.NewMockConsoleFactory(ctrl)
	consoles.EXPECT().Open(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ports.ConsoleKind, string) ports.ConsoleSink {
			sink := mocks.NewMockConsoleSink(ctrl)
			sink.EXPECT().Activate().AnyTimes()
			sink.EXPECT().Close().Return(nil).AnyTimes()
			return sink
		}).AnyTimes()
	consoles.EXPECT().Beep().AnyTimes()

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().End().AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	files := fs.New(fs.NewHasher(), nil, logger)
	deps := buildmgr.Deps{
		FS:     files,
		Tree:   tree,
		Docs:   docs,
		Logger: logger,
		Commands: command.Deps{
			Runner:   runner,
			Consoles: consoles,
			Docs:     docs,
			FS:       files,
			Tracer:   tracer,
			Logger:   logger,
			Loop:     h.loop,
		},
	}
	opts := buildmgr.Options{
		RebuildDaily:   true,
		UpdateInterval: domain.UpdateMakefileInterval,
		Now:            func() time.Time { return h.now },
	}
	h.mgr = buildmgr.New("demo", h.dir, config, deps, opts)
	return h
}

func (h *harness) path(name string) string {
	return filepath.Join(h.dir, name)
}

func (h *harness) writeFile(name, content string) {
	h.t.Helper()
	require.NoError(h.t, os.MkdirAll(filepath.Dir(h.path(name)), 0o750))
	require.NoError(h.t, os.WriteFile(h.path(name), []byte(content), 0o600))
}

func (h *harness) readFile(name string) string {
	h.t.Helper()
	data, err := os.ReadFile(h.path(name))
	require.NoError(h.t, err)
	return string(data)
}

func (h *harness) remove(name string) {
	h.t.Helper()
	require.NoError(h.t, os.Remove(h.path(name)))
}

// touch moves the modification time of name by d.
func (h *harness) touch(name string, d time.Duration) {
	h.t.Helper()
	info, err := os.Stat(h.path(name))
	require.NoError(h.t, err)
	mtime := info.ModTime().Add(d)
	require.NoError(h.t, os.Chtimes(h.path(name), mtime, mtime))
}

func (h *harness) modTime(name string) time.Time {
	h.t.Helper()
	info, err := os.Stat(h.path(name))
	require.NoError(h.t, err)
	return info.ModTime()
}

func (h *harness) run() {
	h.t.Helper()
	require.NoError(h.t, h.loop.Run(context.Background()))
}

// scan runs UpdateMakefile and waits for the dependency scan it starts.
func (h *harness) scan() {
	h.t.Helper()
	wait, scan, err := h.mgr.UpdateMakefile(context.Background(), nil, false)
	require.NoError(h.t, err)
	require.True(h.t, wait)
	require.NotNil(h.t, scan)
	h.run()
	require.True(h.t, scan.Success())
}

func makemakeConfig() domain.BuildConfig {
	return domain.NewBuildConfig(domain.MethodMakemake, "demo", "demo, demo-test", "$(wildcard *.tmpl)")
}

type fakeProcess struct {
	exit error
}

func (p *fakeProcess) Wait() error { return p.exit }
func (p *fakeProcess) Kill() error { return nil }

func scanFailure() error {
	return zerr.With(zerr.Wrap(domain.ErrProcessFailed, "exit status 1"), "exit_code", 1)
}
