package command_test

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/crusader/internal/core/ports/mocks"
	"go.trai.ch/crusader/internal/engine/command"
	"go.trai.ch/crusader/internal/engine/eventloop"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// harness runs pipelines against scripted processes and records what happened.
type harness struct {
	t    *testing.T
	ctrl *gomock.Controller
	loop *eventloop.Loop
	mgr  *command.Manager

	runner   *mocks.MockProcessRunner
	consoles *mocks.MockConsoleFactory

	mu       sync.Mutex
	events   []string
	specs    []ports.ProcessSpec
	exit     map[string]error
	spawnErr map[string]error
	block    map[string]chan struct{}
	procs    map[string]*fakeProcess

	opened     map[ports.ConsoleKind]int
	closed     int
	beeps      int
	activated  int
	symbols    int
	vcsRefresh int
	saved      int
	errs       []error
}

func newHarness(t *testing.T, project command.Project) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		t:        t,
		ctrl:     ctrl,
		loop:     eventloop.New(),
		runner:   mocks.NewMockProcessRunner(ctrl),
		consoles: mocks.NewMockConsoleFactory(ctrl),
		exit:     make(map[string]error),
		spawnErr: make(map[string]error),
		block:    make(map[string]chan struct{}),
		procs:    make(map[string]*fakeProcess),
		opened:   make(map[ports.ConsoleKind]int),
	}

	h.runner.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(h.start).AnyTimes()

	h.consoles.EXPECT().Open(gomock.Any(), gomock.Any()).DoAndReturn(
		func(kind ports.ConsoleKind, _ string) ports.ConsoleSink {
			h.opened[kind]++
			sink := mocks.NewMockConsoleSink(ctrl)
			sink.EXPECT().Activate().Do(func() { h.activated++ }).AnyTimes()
			sink.EXPECT().Close().DoAndReturn(func() error {
				h.closed++
				return nil
			}).Times(1)
			return sink
		}).AnyTimes()
	h.consoles.EXPECT().Beep().Do(func() { h.beeps++ }).AnyTimes()

	docs := mocks.NewMockDocumentManager(ctrl)
	docs.EXPECT().SaveAll().DoAndReturn(func() (int, error) { return h.saved, nil }).AnyTimes()
	docs.EXPECT().CancelUpdateSymbolDatabase().AnyTimes()
	docs.EXPECT().UpdateSymbolDatabase(gomock.Any()).DoAndReturn(func(context.Context) error {
		h.symbols++
		return nil
	}).AnyTimes()
	docs.EXPECT().RefreshVCSStatus(gomock.Any()).DoAndReturn(func(context.Context) error {
		h.vcsRefresh++
		return nil
	}).AnyTimes()

	fs := mocks.NewMockFileSystem(ctrl)
	fs.EXPECT().IsDir(gomock.Any()).DoAndReturn(func(path string) bool {
		info, err := os.Stat(path)
		return err == nil && info.IsDir()
	}).AnyTimes()

	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().End().AnyTimes()
	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()

	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any()).Do(func(err error) { h.errs = append(h.errs, err) }).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Info(gomock.Any()).AnyTimes()

	deps := command.Deps{
		Runner:   h.runner,
		Consoles: h.consoles,
		Docs:     docs,
		FS:       fs,
		Tracer:   tracer,
		Logger:   logger,
		Loop:     h.loop,
	}
	h.mgr = command.NewManager(deps, command.Options{}, project)
	return h
}

func (h *harness) start(_ context.Context, spec ports.ProcessSpec, _ io.Writer) (ports.Process, error) {
	name := strings.Join(spec.Args, " ")

	h.mu.Lock()
	defer h.mu.Unlock()
	h.specs = append(h.specs, spec)
	if err, ok := h.spawnErr[name]; ok {
		return nil, err
	}
	h.events = append(h.events, "start "+name)

	p := &fakeProcess{h: h, name: name, exit: h.exit[name], block: h.block[name], killed: make(chan struct{})}
	h.procs[name] = p
	return p, nil
}

func (h *harness) record(event string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

// fail makes the process with the given command line exit unsuccessfully.
func (h *harness) fail(name string) {
	h.exit[name] = zerr.With(zerr.Wrap(domain.ErrProcessFailed, "exit status 1"), "exit_code", 1)
}

// hold keeps the named process running until the returned func is called.
func (h *harness) hold(name string) func() {
	ch := make(chan struct{})
	h.block[name] = ch
	return func() { close(ch) }
}

func (h *harness) run() {
	h.t.Helper()
	require.NoError(h.t, h.loop.Run(context.Background()))
}

func (h *harness) started() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, e := range h.events {
		if name, ok := strings.CutPrefix(e, "start "); ok {
			out = append(out, name)
		}
	}
	return out
}

func (h *harness) log() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.events...)
}

type fakeProcess struct {
	h      *harness
	name   string
	exit   error
	block  chan struct{}
	killed chan struct{}
	once   sync.Once
}

func (p *fakeProcess) Wait() error {
	if p.block != nil {
		select {
		case <-p.block:
		case <-p.killed:
			p.h.record("killed " + p.name)
			return zerr.Wrap(domain.ErrProcessCancelled, "signal: killed")
		}
	}
	p.h.record("end " + p.name)
	return p.exit
}

func (p *fakeProcess) Kill() error {
	p.once.Do(func() { close(p.killed) })
	return nil
}

// fakeProject is a project whose builds optionally wait for a dependency scan.
type fakeProject struct {
	dir    string
	method domain.BuildMethod
	mgr    *command.Manager
	scan   bool
	scans  int
	err    error
}

func (p *fakeProject) Dir() string { return p.dir }
func (p *fakeProject) Name() string { return "demo" }
func (p *fakeProject) TargetName() string { return "demo-app" }
func (p *fakeProject) Method() domain.BuildMethod { return p.method }

func (p *fakeProject) UpdateMakefile(ctx context.Context, console *command.Console, _ bool) (bool, *command.Pipeline, error) {
	if p.err != nil {
		return true, nil, p.err
	}
	if !p.scan {
		return false, nil, nil
	}
	p.scans++
	scan, err := p.mgr.MakeDepend(ctx, console)
	if err != nil {
		return true, nil, err
	}
	return true, scan, nil
}

func newProjectHarness(t *testing.T, method domain.BuildMethod) (*harness, *fakeProject) {
	t.Helper()
	project := &fakeProject{dir: t.TempDir(), method: method}
	h := newHarness(t, project)
	project.mgr = h.mgr
	return h, project
}
