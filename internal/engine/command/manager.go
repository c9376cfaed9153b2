// Package command prepares and runs the named shell commands of a project.
package command

import (
	"context"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/crusader/internal/engine/eventloop"
	"go.trai.ch/zerr"
)

// menuIDSuffix marks menu identifiers generated by this program.
const menuIDSuffix = "::crusader"

// Options tunes command execution.
type Options struct {
	// SaveAllDelay is how long to wait after saving documents so that files
	// written by the command get a later timestamp.
	SaveAllDelay time.Duration
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{SaveAllDelay: time.Second}
}

// Deps are the collaborators of a Manager.
type Deps struct {
	Runner   ports.ProcessRunner
	Consoles ports.ConsoleFactory
	Docs     ports.DocumentManager
	FS       ports.FileSystem
	Tracer   ports.Tracer
	Logger   ports.Logger
	Loop     *eventloop.Loop
}

// Project is the project a Manager runs commands for.
type Project interface {
	Dir() string
	Name() string
	TargetName() string
	Method() domain.BuildMethod

	// UpdateMakefile brings the generated build files up to date before a build.
	// It returns true when the build must wait for the returned dependency scan.
	UpdateMakefile(ctx context.Context, console *Console, force bool) (bool, *Pipeline, error)
}

// Manager owns the command list of a project, or the global list when it has no project.
type Manager struct {
	deps    Deps
	opts    Options
	project Project
	global  *Manager

	list          *domain.CommandList
	makeDependCmd string
	env           []string
	consoles      map[ports.ConsoleKind]*Console
}

// NewManager creates a manager for project, which may be nil.
func NewManager(deps Deps, opts Options, project Project) *Manager {
	m := &Manager{
		deps:     deps,
		opts:     opts,
		project:  project,
		list:     domain.NewCommandList(),
		consoles: make(map[ports.ConsoleKind]*Console),
	}
	if project != nil {
		m.makeDependCmd = project.Method().DefaultDependCommand()
	}
	return m
}

// SetGlobal sets the manager consulted when a named command is not in this list.
func (m *Manager) SetGlobal(g *Manager) {
	m.global = g
}

// SetEnvironment sets extra "KEY=VALUE" entries for spawned processes.
func (m *Manager) SetEnvironment(env []string) {
	m.env = slices.Clone(env)
}

func (m *Manager) environment() []string {
	return m.env
}

// Commands returns the command list.
func (m *Manager) Commands() *domain.CommandList {
	return m.list
}

// AppendCommand adds d to the list, giving it a menu ID if it has none.
func (m *Manager) AppendCommand(d domain.CommandDescriptor) {
	if d.MenuID == "" {
		d.MenuID = NewMenuID()
	}
	m.list.Append(d)
}

// SetCommands replaces the command list.
func (m *Manager) SetCommands(items []domain.CommandDescriptor) {
	m.list = domain.NewCommandList()
	for _, d := range items {
		m.AppendCommand(d)
	}
}

// MakeDependCommand returns the dependency scan command template.
func (m *Manager) MakeDependCommand() string {
	return m.makeDependCmd
}

// SetMakeDependCommand sets the dependency scan command template.
func (m *Manager) SetMakeDependCommand(cmd string) {
	m.makeDependCmd = cmd
}

// NewMenuID returns a new unique menu identifier.
func NewMenuID() string {
	return uuid.NewString() + menuIDSuffix
}

func (m *Manager) makeDependTemplate() string {
	cmd := strings.TrimSpace(m.makeDependCmd)
	if cmd != "" && m.project != nil && m.project.Method() == domain.MethodMakemake {
		cmd += " --check"
	}
	return cmd
}

// MakeDependCmdString returns the dependency scan command with all variables substituted.
func (m *Manager) MakeDependCmdString() (string, error) {
	queue, err := parse(m.makeDependTemplate(), false)
	if err != nil {
		return "", err
	}

	segments := make([]string, 0, len(queue))
	for _, args := range queue {
		out := make([]string, 0, len(args))
		for _, arg := range args {
			v, err := m.Substitute(arg, domain.FileRef{})
			if err != nil {
				return "", err
			}
			out = append(out, v)
		}
		segments = append(segments, strings.Join(out, " "))
	}
	return strings.Join(segments, " ; "), nil
}

// MakeDepend starts the dependency scan on console.
// Commands may not call other commands from the scan.
func (m *Manager) MakeDepend(ctx context.Context, console *Console) (*Pipeline, error) {
	if m.project == nil {
		return nil, zerr.Wrap(domain.ErrRequiresProject, "dependency scan")
	}

	desc := domain.CommandDescriptor{Path: m.project.Dir(), Cmd: m.makeDependTemplate()}
	p, err := m.prepare(desc, nil, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "prepare dependency scan")
	}
	if !p.StartMakeProcess(ctx, console) {
		if err := p.Err(); err != nil {
			return nil, err
		}
		return nil, zerr.Wrap(domain.ErrEmptyCommand, "dependency scan")
	}
	return p, nil
}

// Exec prepares desc for files and starts it.
func (m *Manager) Exec(ctx context.Context, desc domain.CommandDescriptor, files []domain.FileRef) (*Pipeline, error) {
	p, err := m.Prepare(desc, files)
	if err != nil {
		return nil, err
	}
	p.Start(ctx, desc)
	return p, nil
}

// ExecNamed looks up the command called name and starts it for files.
func (m *Manager) ExecNamed(ctx context.Context, name string, files []domain.FileRef) (*Pipeline, error) {
	desc, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	return m.Exec(ctx, desc, files)
}

// Prepare builds the pipeline for desc without starting it.
func (m *Manager) Prepare(desc domain.CommandDescriptor, files []domain.FileRef) (*Pipeline, error) {
	stack := []string{}
	if desc.Name != "" {
		stack = append(stack, desc.Name)
	}
	return m.prepare(desc, files, &stack)
}

// PrepareNamed builds the pipeline for the command called name.
func (m *Manager) PrepareNamed(name string, files []domain.FileRef) (*Pipeline, domain.CommandDescriptor, error) {
	desc, err := m.lookup(name)
	if err != nil {
		return nil, domain.CommandDescriptor{}, err
	}
	p, err := m.Prepare(desc, files)
	return p, desc, err
}

// lookup finds name in this list, then in the global list.
func (m *Manager) lookup(name string) (domain.CommandDescriptor, error) {
	for mgr := m; mgr != nil; mgr = mgr.global {
		desc, ok, err := mgr.list.Find(name)
		if err != nil {
			return domain.CommandDescriptor{}, err
		}
		if ok {
			return desc, nil
		}
	}
	return domain.CommandDescriptor{}, zerr.With(zerr.Wrap(domain.ErrUnknownCommand, "lookup command"), "cmd", name)
}

// prepare builds a pipeline. A nil stack forbids calls to other commands.
func (m *Manager) prepare(desc domain.CommandDescriptor, files []domain.FileRef, stack *[]string) (*Pipeline, error) {
	withFiles := usesFile(desc.Cmd)
	if withFiles && len(files) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrRequiresFile, "prepare command"), "cmd", desc.Cmd)
	}

	queue, err := parse(desc.Cmd, stack != nil)
	if err != nil {
		return nil, err
	}

	b := &builder{mgr: m, desc: desc, stack: stack}
	switch {
	case withFiles && desc.OneAtATime:
		for _, f := range files {
			dir, err := m.resolvePath(desc.Path, f.Path)
			if err != nil {
				return nil, err
			}
			if err := b.addQueue(dir, queue, []domain.FileRef{f}); err != nil {
				return nil, err
			}
			b.root.markEndOfSequence()
		}

	case withFiles && strings.HasPrefix(desc.Path, "@"):
		for _, group := range groupByDir(files) {
			dir, err := m.resolvePath(desc.Path, group[0].Path)
			if err != nil {
				return nil, err
			}
			if err := b.addQueue(dir, queue, group); err != nil {
				return nil, err
			}
			b.root.markEndOfSequence()
		}

	default:
		dir, err := m.resolvePath(desc.Path, "")
		if err != nil {
			return nil, err
		}
		if err := b.addQueue(dir, queue, files); err != nil {
			return nil, err
		}
	}

	return b.root, nil
}

// groupByDir groups files by directory, keeping the order of first appearance.
func groupByDir(files []domain.FileRef) [][]domain.FileRef {
	var (
		order  []string
		groups = make(map[string][]domain.FileRef)
	)
	for _, f := range files {
		dir := filepath.Dir(f.Path)
		if _, ok := groups[dir]; !ok {
			order = append(order, dir)
		}
		groups[dir] = append(groups[dir], f)
	}

	out := make([][]domain.FileRef, 0, len(order))
	for _, dir := range order {
		out = append(out, groups[dir])
	}
	return out
}

// resolvePath turns a command path into an absolute, existing directory.
// A leading "@" stands for the directory of file.
func (m *Manager) resolvePath(path, file string) (string, error) {
	if strings.HasPrefix(path, "@") {
		if file == "" || !filepath.IsAbs(file) {
			return "", zerr.With(zerr.Wrap(domain.ErrRequiresFile, "resolve path"), "path", path)
		}
		path = filepath.Join(filepath.Dir(file), path[1:])
	}

	if !filepath.IsAbs(path) {
		if m.project == nil {
			return "", zerr.With(zerr.Wrap(domain.ErrRequiresProject, "resolve path"), "path", path)
		}
		path = filepath.Join(m.project.Dir(), path)
	}

	path = filepath.Clean(path)
	if !m.deps.FS.IsDir(path) {
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidPath, "resolve path"), "path", path)
	}
	return path, nil
}

// builder accumulates the steps of one prepared command.
type builder struct {
	mgr   *Manager
	desc  domain.CommandDescriptor
	stack *[]string
	root  *Pipeline
}

// addQueue substitutes every argument vector of queue for files and appends it.
func (b *builder) addQueue(dir string, queue [][]string, files []domain.FileRef) error {
	for _, args := range queue {
		expanded, err := b.expand(args, files)
		if err != nil {
			return err
		}
		if err := b.add(dir, expanded, files); err != nil {
			return err
		}
	}
	return nil
}

// expand substitutes args. An argument that refers to the file is repeated once per file.
func (b *builder) expand(args []string, files []domain.FileRef) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if len(files) == 0 {
			v, err := b.mgr.Substitute(arg, domain.FileRef{})
			if err != nil {
				return nil, err
			}
			out = append(out, v)
			continue
		}

		perFile := usesFile(arg)
		for _, f := range files {
			v, err := b.mgr.Substitute(arg, f)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
			if !perFile {
				break
			}
		}
	}
	return out, nil
}

func (b *builder) add(dir string, args []string, files []domain.FileRef) error {
	if b.root == nil {
		b.root = newPipeline(b.mgr, dir, b.desc.IsVCS, b.desc.BeepOnFinish)
	}

	if dir == b.root.dir {
		return b.appendTo(b.root, args, files)
	}

	sub := newPipeline(b.mgr, dir, b.desc.IsVCS, false)
	if err := b.appendTo(sub, args, files); err != nil {
		return err
	}
	b.root.appendSub(sub, b.desc)
	return nil
}

// appendTo adds args to p, preparing a nested pipeline for a call to a named command.
func (b *builder) appendTo(p *Pipeline, args []string, files []domain.FileRef) error {
	if !isCall(args[0]) {
		p.appendArgs(args)
		return nil
	}

	name := args[0][1:]
	stack := *b.stack
	if i := slices.Index(stack, name); i >= 0 {
		cycle := strings.Join(append(slices.Clone(stack[i:]), name), " -> ")
		return zerr.With(zerr.Wrap(domain.ErrInfiniteRecursion, "prepare command"), "cycle", cycle)
	}

	desc, err := b.mgr.lookup(name)
	if err != nil {
		return err
	}

	*b.stack = append(stack, name)
	sub, err := b.mgr.prepare(desc, files, b.stack)
	*b.stack = stack
	if err != nil {
		return err
	}

	p.appendSub(sub, desc)
	return nil
}

func (m *Manager) openConsole(kind ports.ConsoleKind, title string) *Console {
	if c, ok := m.consoles[kind]; ok {
		return c.acquire()
	}
	c := &Console{
		mgr:  m,
		kind: kind,
		sink: m.deps.Consoles.Open(kind, title),
	}
	m.consoles[kind] = c
	return c.acquire()
}

// BuildConsole returns the shared build console, opening it if needed.
// The caller must hand it to a pipeline or call Close.
func (m *Manager) BuildConsole(title string) *Console {
	return m.openConsole(ports.ConsoleBuild, title)
}

func (m *Manager) forgetConsole(c *Console) {
	if m.consoles[c.kind] == c {
		delete(m.consoles, c.kind)
	}
}
