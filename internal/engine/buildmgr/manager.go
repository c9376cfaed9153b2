// Package buildmgr keeps a project's generated build files current and decides
// when the dependency scan has to run before a build.
package buildmgr

import (
	"context"
	"time"

	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/crusader/internal/engine/command"
	"go.trai.ch/zerr"
)

// Options tunes when the makefile is regenerated.
type Options struct {
	// RebuildDaily forces a dependency scan once UpdateInterval has passed since the last one.
	RebuildDaily bool
	// UpdateInterval is how long a dependency scan stays fresh.
	UpdateInterval time.Duration
	// Now returns the current time.
	Now func() time.Time
	// Commands tunes the project's command manager.
	Commands command.Options
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		RebuildDaily:   true,
		UpdateInterval: domain.UpdateMakefileInterval,
		Now:            time.Now,
		Commands:       command.DefaultOptions(),
	}
}

// Deps are the collaborators of a Manager.
type Deps struct {
	FS     ports.FileSystem
	Tree   ports.FileTree
	Docs   ports.DocumentManager
	Logger ports.Logger
	// Commands are handed to the project's command manager.
	Commands command.Deps
}

// Manager owns the build configuration of one project.
type Manager struct {
	deps Deps
	opts Options

	name   string
	dir    string
	config domain.BuildConfig
	cmds   *command.Manager

	// makePath is the directory the tracked times were recorded in.
	makePath    string
	lastSuccess domain.ModTimeSnapshot
	pending     domain.ModTimeSnapshot
	lastUpdate  time.Time
	// rewritten is set when an input changed on disk after the last successful scan.
	rewritten bool

	scan *command.Pipeline
}

var _ command.Project = (*Manager)(nil)

// New creates the build manager of the project name in dir.
// It also creates the project's command manager.
func New(name, dir string, config domain.BuildConfig, deps Deps, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.UpdateInterval <= 0 {
		opts.UpdateInterval = domain.UpdateMakefileInterval
	}
	m := &Manager{
		deps:   deps,
		opts:   opts,
		name:   name,
		dir:    dir,
		config: config,
	}
	m.cmds = command.NewManager(deps.Commands, opts.Commands, m)
	return m
}

// Dir returns the project directory.
func (m *Manager) Dir() string {
	return m.dir
}

// Name returns the project name.
func (m *Manager) Name() string {
	return m.name
}

// TargetName returns the comma separated build targets.
func (m *Manager) TargetName() string {
	return m.config.TargetName
}

// Method returns the build method.
func (m *Manager) Method() domain.BuildMethod {
	return m.config.Method
}

// Commands returns the project's command manager.
func (m *Manager) Commands() *command.Manager {
	return m.cmds
}

// Config returns a copy of the build configuration.
func (m *Manager) Config() domain.BuildConfig {
	return m.config
}

// SetConfig replaces the build configuration. Changing the method, the targets or
// the dependency expression marks the generated files for regeneration.
func (m *Manager) SetConfig(cfg domain.BuildConfig) {
	if cfg.Method != m.config.Method ||
		cfg.TargetName != m.config.TargetName ||
		cfg.DepListExpr != m.config.DepListExpr {
		cfg.NeedsFileRegeneration = true
	}
	if m.config.NeedsFileRegeneration {
		cfg.NeedsFileRegeneration = true
	}
	m.config = cfg
}

// ProjectChanged records a change to the project's file tree. A nil node means the
// whole tree changed.
func (m *Manager) ProjectChanged(node *domain.ProjectFile) {
	if node == nil || node.IncludedIn(m.config.Method) {
		m.config.NeedsFileRegeneration = true
	}
}

// Scanning reports whether a dependency scan started by UpdateMakefile is still running.
func (m *Manager) Scanning() bool {
	return m.scan != nil
}

// LastUpdate returns when the dependency scan was last started.
func (m *Manager) LastUpdate() time.Time {
	return m.lastUpdate
}

// Snapshots returns the times of the last successful scan and of the scan in progress.
func (m *Manager) Snapshots() (lastSuccess, pending domain.ModTimeSnapshot) {
	return m.lastSuccess, m.pending
}

// UpdateMakefile regenerates the build files when needed and starts the dependency
// scan on console when the makefile is out of date. It returns true when the
// caller must wait for the returned scan before building.
// A running scan is returned as is.
func (m *Manager) UpdateMakefile(ctx context.Context, console *command.Console, force bool) (bool, *command.Pipeline, error) {
	if m.scan != nil {
		return true, m.scan, nil
	}

	if err := m.UpdateMakeFiles(); err != nil {
		return true, nil, err
	}

	now := m.opts.Now()
	stale := m.opts.RebuildDaily && now.After(m.lastUpdate.Add(m.opts.UpdateInterval))
	if m.config.Method == domain.MethodManual || !(force || m.rewritten || m.MakeFilesChanged() || stale) {
		return false, nil, nil
	}

	scan, err := m.cmds.MakeDepend(ctx, console)
	if err != nil {
		return true, nil, zerr.Wrap(err, "update makefile")
	}

	m.pending = m.SaveMakeFileModTimes()
	m.lastUpdate = now
	m.scan = scan
	scan.OnFinished(func(r command.Result) {
		m.scan = nil
		if r.Success {
			m.lastSuccess = m.pending
			m.rewritten = false
		}
	})
	return true, scan, nil
}
