// Package app implements the application layer for crusader.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"time"

	"go.trai.ch/crusader/internal/adapters/console"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/documents" //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/filetree"  //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/crusader/internal/engine/buildmgr"
	"go.trai.ch/crusader/internal/engine/command"
	"go.trai.ch/crusader/internal/engine/eventloop"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader   ports.ProjectLoader
	settings ports.SettingsStore
	fs       ports.FileSystem
	walker   *fs.Walker
	vcs      ports.VCS
	runner   ports.ProcessRunner
	terminal *console.Terminal
	tracer   ports.Tracer
	watcher  ports.Watcher
	logger   ports.Logger

	opts     buildmgr.Options
	debounce time.Duration
	workDir  string
}

// New creates a new App instance.
func New(
	loader ports.ProjectLoader,
	settings ports.SettingsStore,
	fsys ports.FileSystem,
	walker *fs.Walker,
	vcs ports.VCS,
	runner ports.ProcessRunner,
	terminal *console.Terminal,
	tracer ports.Tracer,
	w ports.Watcher,
	log ports.Logger,
) *App {
	return &App{
		loader:   loader,
		settings: settings,
		fs:       fsys,
		walker:   walker,
		vcs:      vcs,
		runner:   runner,
		terminal: terminal,
		tracer:   tracer,
		watcher:  w,
		logger:   log,
		opts:     buildmgr.DefaultOptions(),
		debounce: watcher.DefaultDebounceWindow,
	}
}

// WithOptions replaces the build manager options.
func (a *App) WithOptions(opts buildmgr.Options) *App {
	a.opts = opts
	return a
}

// WithDebounce sets how long watch mode waits for file events to settle.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// WithWorkDir sets the directory the project is looked up from.
// It defaults to the process working directory.
func (a *App) WithWorkDir(dir string) *App {
	a.workDir = dir
	return a
}

// SetOutputMode selects how consoles are rendered: "auto", "tty" or "plain".
func (a *App) SetOutputMode(mode string) {
	a.terminal.SetMode(detector.ResolveMode(detector.DetectEnvironment(), mode))
}

// session is one loaded project and the managers working on it.
type session struct {
	project *domain.Project
	loop    *eventloop.Loop
	tree    *filetree.Tree
	docs    *documents.Manager
	build   *buildmgr.Manager
	global  *command.Manager
}

func (a *App) cwd() (string, error) {
	if a.workDir != "" {
		return a.workDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", zerr.Wrap(err, "get working directory")
	}
	return wd, nil
}

// open loads the project and restores its persisted state.
func (a *App) open() (*session, error) {
	cwd, err := a.cwd()
	if err != nil {
		return nil, err
	}
	project, err := a.loader.Load(cwd)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load project")
	}

	env := environment(project.Environment)
	s := &session{
		project: project,
		loop:    eventloop.New(),
		tree:    filetree.New(project, a.walker, a.logger),
	}
	s.docs = documents.New(documents.Config{
		Dir:     project.Dir,
		Symbols: project.Symbols,
		Env:     env,
	}, a.runner, a.vcs, a.logger)

	cmdDeps := command.Deps{
		Runner:   a.runner,
		Consoles: a.terminal,
		Docs:     s.docs,
		FS:       a.fs,
		Tracer:   a.tracer,
		Logger:   a.logger,
		Loop:     s.loop,
	}

	cfg := domain.NewBuildConfig(domain.MethodMakemake, project.Name, "", "")
	if project.Build != nil {
		cfg = *project.Build
	}
	s.build = buildmgr.New(project.Name, project.Dir, cfg, buildmgr.Deps{
		FS:       a.fs,
		Tree:     s.tree,
		Docs:     s.docs,
		Logger:   a.logger,
		Commands: cmdDeps,
	}, a.opts)

	cmds := s.build.Commands()
	cmds.SetCommands(project.Commands)
	if project.MakeDepend != "" {
		cmds.SetMakeDependCommand(project.MakeDepend)
	}
	cmds.SetEnvironment(env)

	if err := a.restore(s); err != nil {
		return nil, err
	}

	s.global, err = a.globalCommands(cmdDeps)
	if err != nil {
		return nil, err
	}
	s.global.SetEnvironment(env)
	cmds.SetGlobal(s.global)
	return s, nil
}

// restore reads the build configuration and the tracked modification times.
// The stored build configuration wins over crusader.yaml.
func (a *App) restore(s *session) error {
	dir := s.project.Dir

	data, err := a.settings.Read(dir, domain.BuildStateFileName)
	if err != nil {
		return err
	}
	if data != nil {
		if err := s.build.StreamIn(bytes.NewReader(data)); err != nil {
			a.logger.Warn(fmt.Sprintf("ignoring stored build configuration: %v", err))
		}
	}

	data, err = a.settings.Read(dir, domain.SettingsStateFileName)
	if err != nil {
		return err
	}
	if data != nil {
		if err := s.build.StreamInSettings(bytes.NewReader(data)); err != nil {
			a.logger.Warn(fmt.Sprintf("ignoring stored build state: %v", err))
		}
	}
	return nil
}

// globalCommands loads the commands shared by every project.
func (a *App) globalCommands(deps command.Deps) (*command.Manager, error) {
	global := command.NewManager(deps, a.opts.Commands, nil)
	data, err := a.settings.ReadGlobal(domain.GlobalCommandsFileName)
	if err != nil {
		return nil, err
	}
	if data != nil {
		if err := global.ReadSetup(bytes.NewReader(data)); err != nil {
			a.logger.Warn(fmt.Sprintf("ignoring global commands: %v", err))
		}
	}
	return global, nil
}

// save persists the build configuration and the tracked modification times.
func (a *App) save(s *session) error {
	var build, state bytes.Buffer
	if err := s.build.StreamOut(&build); err != nil {
		return err
	}
	if err := s.build.StreamOutSettings(&state); err != nil {
		return err
	}
	if err := a.settings.Write(s.project.Dir, domain.BuildStateFileName, build.Bytes()); err != nil {
		return err
	}
	return a.settings.Write(s.project.Dir, domain.SettingsStateFileName, state.Bytes())
}

// run opens the project, calls fn, drives the event loop until nothing is left
// running and saves the project state.
func (a *App) run(ctx context.Context, fn func(s *session) error) error {
	s, err := a.open()
	if err != nil {
		return err
	}

	err = fn(s)
	loopErr := s.loop.Run(ctx)
	s.docs.Wait()
	return errors.Join(err, loopErr, a.save(s))
}

// environment turns the project variables into sorted "KEY=VALUE" entries.
func environment(vars map[string]string) []string {
	keys := slices.Sorted(maps.Keys(vars))
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env
}

// outcome records how a started pipeline finished.
type outcome struct {
	name   string
	done   bool
	result command.Result
}

func track(p *command.Pipeline, name string) *outcome {
	o := &outcome{name: name}
	p.OnFinished(func(r command.Result) {
		o.done = true
		o.result = r
	})
	return o
}

// err converts a failed run into an error. It must be called after the loop went idle.
func (o *outcome) err() error {
	if o == nil || (o.done && o.result.Success && !o.result.Cancelled) {
		return nil
	}
	switch {
	case o.result.Cancelled:
		return zerr.With(zerr.Wrap(domain.ErrProcessCancelled, "run command"), "cmd", o.name)
	case o.result.Err != nil:
		// The pipeline has reported the error already.
		return zerr.With(zerr.Wrap(domain.ErrBuildFailed, o.result.Err.Error()), "cmd", o.name)
	default:
		return zerr.With(zerr.Wrap(domain.ErrBuildFailed, "run command"), "cmd", o.name)
	}
}
