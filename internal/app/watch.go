package app

import (
	"context"
	"errors"

	"go.trai.ch/crusader/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Watch keeps the build files of the project current until ctx is cancelled.
// Changes to project files are batched and each batch triggers an update.
func (a *App) Watch(ctx context.Context) error {
	s, err := a.open()
	if err != nil {
		return err
	}
	if err := a.watcher.Start(ctx, s.project.Dir); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	a.logger.Info("watching " + s.project.Dir)

	batches := make(chan []ports.WatchEvent)
	debouncer := watcher.NewDebouncer(a.debounce, func(events []ports.WatchEvent) {
		select {
		case batches <- events:
		case <-ctx.Done():
		}
	})

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for event := range a.watcher.Events() {
			debouncer.Add(event)
		}
		return nil
	})

	// Project state is only touched from this goroutine.
	g.Go(func() error {
		defer func() {
			_ = a.watcher.Stop()
		}()

		a.refresh(ctx, s, nil)
		for {
			select {
			case <-ctx.Done():
				return nil
			case events := <-batches:
				a.refresh(ctx, s, events)
			}
		}
	})

	err = g.Wait()
	s.docs.Wait()
	return errors.Join(err, a.save(s))
}

// refresh applies a batch of file events and brings the build files up to date.
// Failures are reported and watching goes on.
func (a *App) refresh(ctx context.Context, s *session, events []ports.WatchEvent) {
	for _, event := range events {
		if event.Operation == ports.OpWrite {
			continue
		}
		if node, ok := s.tree.Node(event.Path); ok {
			s.build.ProjectChanged(&node)
		}
	}

	var scan *outcome
	wait, p, err := s.build.UpdateMakefile(ctx, nil, false)
	switch {
	case err != nil:
		a.logger.Error(err)
	case wait:
		scan = track(p, "dependency scan")
	}

	if err := s.loop.Run(ctx); err != nil {
		return
	}
	if err := scan.err(); err != nil {
		a.logger.Error(err)
	}
	if err := a.save(s); err != nil {
		a.logger.Error(err)
	}
}
