package command

import (
	"context"
	"slices"

	"go.trai.ch/crusader/internal/core/ports"
)

// Console is an output console shared by the pipelines of one command tree.
// At most one process writes to it at a time. Pipelines that find it busy wait
// in a queue and are woken when the running process ends.
// The console is reference counted and closed when the last holder releases it.
type Console struct {
	mgr  *Manager
	kind ports.ConsoleKind
	sink ports.ConsoleSink
	refs int

	owner   *Pipeline
	waiters []*Pipeline
}

// Kind returns the console category.
func (c *Console) Kind() ports.ConsoleKind {
	return c.kind
}

// Running reports whether a process is attached.
func (c *Console) Running() bool {
	return c.owner != nil
}

// Activate brings the console to the front.
func (c *Console) Activate() {
	c.sink.Activate()
}

// Close releases a console obtained from Manager.BuildConsole.
func (c *Console) Close() {
	c.release()
}

func (c *Console) acquire() *Console {
	c.refs++
	return c
}

func (c *Console) release() {
	c.refs--
	if c.refs > 0 {
		return
	}
	if err := c.sink.Close(); err != nil {
		c.mgr.deps.Logger.Warn("closing " + c.kind.String() + " console: " + err.Error())
	}
	c.mgr.forgetConsole(c)
}

func (c *Console) enqueue(p *Pipeline) {
	if !slices.Contains(c.waiters, p) {
		c.waiters = append(c.waiters, p)
	}
}

func (c *Console) dequeue(p *Pipeline) {
	c.waiters = slices.DeleteFunc(c.waiters, func(w *Pipeline) bool { return w == p })
}

// run starts spec for p with its output attached to the console.
func (c *Console) run(ctx context.Context, p *Pipeline, spec ports.ProcessSpec, span ports.Span) error {
	proc, err := c.mgr.deps.Runner.Start(ctx, spec, c.sink)
	if err != nil {
		return err
	}
	c.owner = p
	p.proc = proc

	loop := c.mgr.deps.Loop
	loop.Hold()
	go func() {
		err := proc.Wait()
		loop.Post(func() { c.finished(p, span, err) })
		loop.Release()
	}()
	return nil
}

// finished runs on the loop. The owner hears first, then every pipeline that was
// waiting gets a chance to claim the console in queue order.
func (c *Console) finished(p *Pipeline, span ports.Span, err error) {
	c.owner = nil
	p.processDone(span, err)

	waiters := c.waiters
	c.waiters = nil
	for _, w := range waiters {
		w.consoleFree()
	}
}
