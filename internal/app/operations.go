package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/engine/buildmgr"
	"go.trai.ch/crusader/internal/ui/style"
	"go.trai.ch/zerr"
)

// defaultMake is run by Build when the project has no make command.
var defaultMake = domain.CommandDescriptor{Cmd: "make", IsMake: true, MenuText: "make"}

// Update regenerates the build files and runs the dependency scan when the
// makefile is out of date. force runs the scan regardless.
func (a *App) Update(ctx context.Context, force bool) error {
	var scan *outcome
	err := a.run(ctx, func(s *session) error {
		wait, p, err := s.build.UpdateMakefile(ctx, nil, force)
		if err != nil {
			return err
		}
		if !wait {
			a.logger.Info("build files are up to date")
			return nil
		}
		scan = track(p, "dependency scan")
		return nil
	})
	return errors.Join(err, scan.err())
}

// Build runs the first make command of the project, falling back to the global
// commands and then to plain make.
func (a *App) Build(ctx context.Context) error {
	var build *outcome
	err := a.run(ctx, func(s *session) error {
		desc := makeCommand(s)
		p, err := s.build.Commands().Exec(ctx, desc, nil)
		if err != nil {
			return err
		}
		build = track(p, commandName(desc))
		return nil
	})
	return errors.Join(err, build.err())
}

func makeCommand(s *session) domain.CommandDescriptor {
	lists := [][]domain.CommandDescriptor{
		s.build.Commands().Commands().All(),
		s.global.Commands().All(),
	}
	for _, list := range lists {
		for _, d := range list {
			if d.IsMake {
				return d
			}
		}
	}
	return defaultMake
}

func commandName(d domain.CommandDescriptor) string {
	if d.Name != "" {
		return d.Name
	}
	return d.Cmd
}

// ExecOptions configuration for the Exec method.
type ExecOptions struct {
	// Files are passed to the command. Relative paths are taken from the working directory.
	Files []string
	// Line is substituted for $line.
	Line int
}

// Exec runs the named command.
func (a *App) Exec(ctx context.Context, name string, opts ExecOptions) error {
	cwd, err := a.cwd()
	if err != nil {
		return err
	}
	files := make([]domain.FileRef, 0, len(opts.Files))
	for _, f := range opts.Files {
		if !filepath.IsAbs(f) {
			f = filepath.Join(cwd, f)
		}
		files = append(files, domain.FileRef{Path: filepath.Clean(f), Line: opts.Line})
	}

	var cmd *outcome
	err = a.run(ctx, func(s *session) error {
		p, err := s.build.Commands().ExecNamed(ctx, name, files)
		if err != nil {
			return err
		}
		cmd = track(p, name)
		return nil
	})
	return errors.Join(err, cmd.err())
}

// InitOptions configuration for the Init method.
type InitOptions struct {
	Method string
	// Target replaces the target name when set.
	Target string
}

// Init creates the hand-edited build files for a build method.
func (a *App) Init(ctx context.Context, opts InitOptions) error {
	method, err := domain.ParseBuildMethod(opts.Method)
	if err != nil {
		return err
	}
	return a.run(ctx, func(s *session) error {
		if opts.Target != "" {
			cfg := s.build.Config()
			cfg.TargetName = opts.Target
			s.build.SetConfig(cfg)
		}
		if err := s.build.CreateMakeFiles(method); err != nil {
			return zerr.With(zerr.Wrap(err, "create build files"), "method", method.String())
		}
		a.logger.Info(fmt.Sprintf("initialized %s build files in %s", method, s.project.Dir))
		return nil
	})
}

// SetMethod switches the build method and proposes the matching dependency scan command.
func (a *App) SetMethod(ctx context.Context, name string) error {
	method, err := domain.ParseBuildMethod(name)
	if err != nil {
		return err
	}
	return a.run(ctx, func(s *session) error {
		cfg := s.build.Config()
		old := cfg.Method
		cfg.Method = method
		s.build.SetConfig(cfg)

		if ok, cmd := buildmgr.UpdateMakeDependCmd(old, method); ok {
			s.build.Commands().SetMakeDependCommand(cmd)
			a.logger.Info(fmt.Sprintf("dependency scan command is now %q", cmd))
		}
		a.logger.Info(fmt.Sprintf("build method changed from %s to %s", old, method))
		return nil
	})
}

// EditConfig opens the file that configures the build in the user's editor.
func (a *App) EditConfig(ctx context.Context) error {
	return a.run(ctx, func(s *session) error {
		return s.build.EditMakeConfig(ctx)
	})
}

// ListCommands writes a table of the project and global commands to w.
func (a *App) ListCommands(ctx context.Context, w io.Writer) error {
	return a.run(ctx, func(s *session) error {
		cell := lipgloss.NewStyle().PaddingRight(2)
		header := cell.Bold(true).Foreground(style.Iris)

		t := table.New().
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderHeader(false).
			BorderColumn(false).
			Headers("NAME", "COMMAND", "PATH", "SCOPE", "FLAGS").
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return header
				}
				return cell
			})

		scopes := []struct {
			name  string
			items []domain.CommandDescriptor
		}{
			{"project", s.build.Commands().Commands().All()},
			{"global", s.global.Commands().All()},
		}
		for _, scope := range scopes {
			for _, d := range scope.items {
				t.Row(d.Name, d.Cmd, d.Path, scope.name, flags(d))
			}
		}

		if _, err := fmt.Fprintln(w, t.Render()); err != nil {
			return zerr.Wrap(err, "write command list")
		}
		dep, err := s.build.Commands().MakeDependCmdString()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "dependency scan: %s\n", dep)
		return err
	})
}

func flags(d domain.CommandDescriptor) string {
	var out []string
	set := []struct {
		on   bool
		name string
	}{
		{d.IsMake, "make"},
		{d.IsVCS, "vcs"},
		{d.SaveAll, "save"},
		{d.OneAtATime, "each"},
		{d.UseWindow, "window"},
		{d.RaiseOnStart, "raise"},
		{d.BeepOnFinish, "beep"},
	}
	for _, f := range set {
		if f.on {
			out = append(out, f.name)
		}
	}
	return strings.Join(out, ",")
}

// ExportCommands writes the project's commands in the setup format to w.
// The output can be installed as the global command list.
func (a *App) ExportCommands(ctx context.Context, w io.Writer) error {
	return a.run(ctx, func(s *session) error {
		return s.build.Commands().WriteSetup(w)
	})
}
