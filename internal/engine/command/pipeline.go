package command

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/zerr"
)

// State is the lifecycle state of a pipeline.
type State int

const (
	// StateIdle means the pipeline has not been started.
	StateIdle State = iota
	// StateQueued means the pipeline waits for its console.
	StateQueued
	// StateRunning means a step is active.
	StateRunning
	// StateSucceeded means every step that ran succeeded.
	StateSucceeded
	// StateFailed means at least one step failed.
	StateFailed
	// StateCancelled means a step was killed.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateQueued:
		return "queued"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Done reports whether the state is final.
func (s State) Done() bool {
	return s >= StateSucceeded
}

// Result is the outcome of a finished pipeline.
type Result struct {
	Success   bool
	Cancelled bool
	// Err is the error that aborted the pipeline, if any.
	// Steps that merely exit non-zero do not set it.
	Err error
}

type stepKind int

const (
	stepProcess stepKind = iota
	stepSub
	stepEnd
	stepMakeDepend
)

type step struct {
	kind stepKind
	args []string
	sub  *Pipeline
	desc domain.CommandDescriptor
}

// Pipeline runs a sequence of processes and nested pipelines in one directory.
// All methods must be called from the event loop goroutine, or before the loop runs.
type Pipeline struct {
	mgr   *Manager
	ctx   context.Context
	dir   string
	title string
	beep  bool
	steps []step

	parent     *Pipeline
	callParent bool

	build *Console
	run   *Console
	out   *Console

	active     *Pipeline
	makeDepend *Pipeline
	proc       ports.Process

	state         State
	inQueue       bool
	success       bool
	cancelled     bool
	updateSymbols bool
	refreshVCS    bool
	err           error

	finishing bool
	listeners []func(Result)
}

func newPipeline(m *Manager, dir string, isVCS, beep bool) *Pipeline {
	return &Pipeline{
		mgr:        m,
		ctx:        context.Background(),
		dir:        dir,
		beep:       beep,
		callParent: true,
		success:    true,
		refreshVCS: isVCS,
	}
}

// Dir returns the working directory of the pipeline's processes.
func (p *Pipeline) Dir() string {
	return p.dir
}

// State returns the current state.
func (p *Pipeline) State() State {
	return p.state
}

// Success reports whether every step that ran succeeded.
func (p *Pipeline) Success() bool {
	return p.success
}

// Cancelled reports whether the pipeline was cancelled.
func (p *Pipeline) Cancelled() bool {
	return p.cancelled
}

// Err returns the error that aborted the pipeline.
func (p *Pipeline) Err() error {
	return p.err
}

// OnFinished registers fn to be called once the pipeline has finished.
// Callbacks run on the event loop in registration order.
func (p *Pipeline) OnFinished(fn func(Result)) {
	if p.state.Done() {
		r := p.result()
		p.mgr.deps.Loop.Post(func() { fn(r) })
		return
	}
	p.listeners = append(p.listeners, fn)
}

func (p *Pipeline) result() Result {
	return Result{Success: p.success, Cancelled: p.cancelled, Err: p.err}
}

func (p *Pipeline) appendArgs(args []string) {
	p.steps = append(p.steps, step{kind: stepProcess, args: args})
}

func (p *Pipeline) appendSub(sub *Pipeline, desc domain.CommandDescriptor) {
	sub.parent = p
	p.steps = append(p.steps, step{kind: stepSub, sub: sub, desc: desc})
}

func (p *Pipeline) markEndOfSequence() {
	p.steps = append(p.steps, step{kind: stepEnd})
}

// Start runs the pipeline on behalf of desc.
// It returns false if the pipeline finished or failed without anything left running.
func (p *Pipeline) Start(ctx context.Context, desc domain.CommandDescriptor) bool {
	p.ctx = ctx
	p.title = desc.MenuText
	if p.title == "" {
		p.title = desc.Cmd
	}

	docs := p.mgr.deps.Docs
	if desc.IsMake {
		p.updateSymbols = true
		p.build = p.inheritConsole(ports.ConsoleBuild)
		p.out = p.build
	} else if desc.UseWindow {
		p.run = p.inheritConsole(ports.ConsoleRun)
		p.out = p.run
	}

	if desc.SaveAll {
		n, err := docs.SaveAll()
		if err != nil {
			p.mgr.deps.Logger.Error(err)
		}
		if n > 0 && p.mgr.opts.SaveAllDelay > 0 {
			// Later writes must get a newer timestamp than the saved files.
			time.Sleep(p.mgr.opts.SaveAllDelay)
		}
	}

	if desc.IsVCS {
		p.updateSymbols = true
	}
	if p.updateSymbols {
		docs.CancelUpdateSymbolDatabase()
	}

	if desc.IsMake && p.mgr.project != nil {
		wait, scan, err := p.mgr.project.UpdateMakefile(ctx, p.build, false)
		if err != nil {
			p.abort(err)
			return false
		}
		if wait {
			if scan == nil {
				p.abort(zerr.Wrap(domain.ErrBuildFailed, "dependency scan did not start"))
				return false
			}
			p.waitForMakeDepend(scan)
			return true
		}
	}

	started := p.startProcess()
	if started && desc.RaiseOnStart && p.out != nil {
		p.out.Activate()
	}
	return started
}

// StartMakeProcess runs the pipeline as a dependency scan attached to console.
// A nil console opens the build console.
func (p *Pipeline) StartMakeProcess(ctx context.Context, console *Console) bool {
	p.ctx = ctx
	p.title = "make depend"
	if console != nil {
		p.build = console.acquire()
	} else {
		p.build = p.mgr.openConsole(ports.ConsoleBuild, p.title)
	}
	p.out = p.build
	return p.startProcess()
}

// Cancel kills whatever the pipeline is running and finishes it as cancelled.
func (p *Pipeline) Cancel() {
	if p.finishing {
		return
	}
	switch {
	case p.active != nil:
		p.active.Cancel()
	case p.makeDepend != nil:
		p.makeDepend.Cancel()
	case p.proc != nil:
		if err := p.proc.Kill(); err != nil {
			p.mgr.deps.Logger.Error(err)
		}
	default:
		if p.out != nil {
			p.out.dequeue(p)
		}
		p.success = false
		p.cancelled = true
		p.finish()
	}
}

func (p *Pipeline) inheritConsole(kind ports.ConsoleKind) *Console {
	for a := p.parent; a != nil; a = a.parent {
		c := a.build
		if kind == ports.ConsoleRun {
			c = a.run
		}
		if c != nil {
			return c.acquire()
		}
	}
	return p.mgr.openConsole(kind, p.title)
}

func (p *Pipeline) waitForMakeDepend(scan *Pipeline) {
	p.steps = append([]step{{kind: stepMakeDepend, sub: scan}}, p.steps...)
	p.makeDepend = scan
	p.state = StateRunning
	scan.OnFinished(func(r Result) {
		p.makeDepend = nil
		p.processFinished(r.Success && !r.Cancelled, r.Cancelled)
	})
}

func (p *Pipeline) headIs(kind stepKind) bool {
	return len(p.steps) > 0 && p.steps[0].kind == kind
}

func (p *Pipeline) startProcess() bool {
	for p.headIs(stepEnd) {
		p.steps = p.steps[1:]
	}
	if len(p.steps) == 0 {
		if p.beep && p.parent == nil {
			p.mgr.deps.Consoles.Beep()
		}
		p.finish()
		return false
	}

	p.inQueue = false
	if p.out != nil && p.out.Running() {
		p.inQueue = true
		p.state = StateQueued
		p.out.enqueue(p)
		return true
	}

	head := p.steps[0]
	switch head.kind {
	case stepSub:
		p.steps = p.steps[1:]
		p.active = head.sub
		p.state = StateRunning
		return head.sub.Start(p.ctx, head.desc)
	case stepMakeDepend:
		return true
	}

	if err := p.spawn(head.args); err != nil {
		p.abort(err)
		return false
	}
	p.steps = p.steps[1:]
	p.state = StateRunning
	return true
}

func (p *Pipeline) spawn(args []string) error {
	deps := p.mgr.deps
	spec := ports.ProcessSpec{
		Dir:      p.dir,
		Args:     args,
		Env:      p.mgr.environment(),
		Attached: p.out != nil,
	}

	ctx, span := deps.Tracer.Start(p.ctx, p.stepName(args))
	span.SetAttribute("dir", p.dir)

	var err error
	if p.out != nil {
		span.SetAttribute("console", p.out.kind.String())
		err = p.out.run(ctx, p, spec, span)
	} else {
		err = p.runDetached(ctx, spec, span)
	}
	if err != nil {
		span.RecordError(err)
		span.End()
		return zerr.With(zerr.Wrap(err, "start step"), "dir", p.dir)
	}
	return nil
}

func (p *Pipeline) stepName(args []string) string {
	name := strings.Join(args, " ")
	if p.out != nil {
		return "[" + p.out.kind.String() + "] " + name
	}
	return name
}

func (p *Pipeline) runDetached(ctx context.Context, spec ports.ProcessSpec, span ports.Span) error {
	proc, err := p.mgr.deps.Runner.Start(ctx, spec, nil)
	if err != nil {
		return err
	}
	p.proc = proc

	loop := p.mgr.deps.Loop
	loop.Hold()
	go func() {
		err := proc.Wait()
		loop.Post(func() { p.processDone(span, err) })
		loop.Release()
	}()
	return nil
}

// processDone runs on the loop when a process started by p exits.
func (p *Pipeline) processDone(span ports.Span, err error) {
	p.proc = nil
	cancelled := errors.Is(err, domain.ErrProcessCancelled) || (err != nil && p.ctx.Err() != nil)
	if err != nil {
		span.RecordError(err)
	}
	span.End()
	p.processFinished(err == nil, cancelled)
}

// consoleFree is called when the console p queued on has become idle.
func (p *Pipeline) consoleFree() {
	if p.finishing || !p.inQueue {
		return
	}
	p.processFinished(true, false)
}

// processFinished advances the pipeline after a step ended.
// A failure skips to the next independent sequence unless it was cancelled
// or the dependency scan failed, both of which end the pipeline.
func (p *Pipeline) processFinished(success, cancelled bool) {
	if p.finishing {
		return
	}
	p.active = nil
	if !p.inQueue {
		p.success = p.success && success
		p.cancelled = cancelled
	}

	switch {
	case success || p.inQueue:
		if p.headIs(stepMakeDepend) {
			p.steps = p.steps[1:]
		}
		p.startProcess()
	case p.headIs(stepMakeDepend):
		p.steps = p.steps[1:]
		p.finish()
	case !cancelled:
		for len(p.steps) > 0 && p.steps[0].kind != stepEnd {
			p.steps = p.steps[1:]
		}
		p.startProcess()
	default:
		p.finish()
	}
}

func (p *Pipeline) abort(err error) {
	p.err = err
	p.success = false
	p.mgr.deps.Logger.Error(err)
	p.finish()
}

// finish schedules finalization on the loop. It is idempotent.
func (p *Pipeline) finish() {
	if p.finishing {
		return
	}
	p.finishing = true
	p.mgr.deps.Loop.Post(p.finalize)
}

func (p *Pipeline) finalize() {
	switch {
	case p.cancelled:
		p.state = StateCancelled
	case p.success:
		p.state = StateSucceeded
	default:
		p.state = StateFailed
	}

	parent := p.parent
	if parent != nil {
		parent.build = handOver(parent.build, p.build)
		parent.run = handOver(parent.run, p.run)
		parent.updateSymbols = parent.updateSymbols || (p.updateSymbols && p.success)
		parent.refreshVCS = parent.refreshVCS || p.refreshVCS
		if parent.err == nil {
			parent.err = p.err
		}
	} else {
		p.runDeferred()
		p.releaseConsoles()
	}
	p.build, p.run, p.out = nil, nil, nil

	if parent != nil && p.callParent {
		parent.processFinished(p.success, p.cancelled)
	}

	r := p.result()
	listeners := p.listeners
	p.listeners = nil
	for _, fn := range listeners {
		fn(r)
	}

	for _, s := range p.steps {
		if s.sub != nil && s.kind == stepSub {
			s.sub.callParent = false
		}
	}
	p.steps = nil
}

// runDeferred performs the expensive follow-ups once per command tree.
func (p *Pipeline) runDeferred() {
	docs := p.mgr.deps.Docs
	if p.updateSymbols && p.success {
		if err := docs.UpdateSymbolDatabase(p.ctx); err != nil {
			p.mgr.deps.Logger.Error(err)
		}
	}
	if p.refreshVCS {
		if err := docs.RefreshVCSStatus(p.ctx); err != nil {
			p.mgr.deps.Logger.Error(err)
		}
	}
}

func (p *Pipeline) releaseConsoles() {
	if p.build != nil {
		p.build.release()
	}
	if p.run != nil {
		p.run.release()
	}
}

// handOver gives a child's console reference to its parent if the parent has none.
func handOver(parent, child *Console) *Console {
	if child == nil {
		return parent
	}
	if parent == nil {
		return child
	}
	child.release()
	return parent
}
