package command

import (
	"io"

	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/zerr"
)

// setupVersion is the version of the command setup stream.
const setupVersion = 4

// WriteSetup writes the dependency scan command and the command list to w.
func (m *Manager) WriteSetup(w io.Writer) error {
	s := domain.NewStreamWriter(w)
	s.Int(setupVersion)
	s.String(m.makeDependCmd)

	for _, d := range m.list.All() {
		s.Bool(true)
		s.String(d.Path)
		s.String(d.Cmd)
		s.String(d.Name)
		s.Bool(d.IsMake)
		s.Bool(d.IsVCS)
		s.Bool(d.SaveAll)
		s.Bool(d.OneAtATime)
		s.Bool(d.UseWindow)
		s.Bool(d.RaiseOnStart)
		s.Bool(d.BeepOnFinish)
		s.String(d.MenuText)
		s.String(d.MenuShortcut)
		s.String(d.MenuID)
		s.Bool(d.SeparatorAfter)
	}
	s.Bool(false)

	if err := s.Flush(); err != nil {
		return zerr.Wrap(domain.ErrWriteFailed, err.Error())
	}
	return nil
}

// ReadSetup replaces the dependency scan command and the command list with
// the contents of r. Nothing changes if r cannot be read completely.
func (m *Manager) ReadSetup(r io.Reader) error {
	s := domain.NewStreamReader(r)
	version := s.Int()
	if err := s.Err(); err != nil {
		return err
	}
	if version != setupVersion {
		return zerr.With(zerr.Wrap(domain.ErrUnsupportedVersion, "read command setup"), "version", version)
	}

	makeDepend := s.String()
	var items []domain.CommandDescriptor
	for s.Bool() {
		items = append(items, domain.CommandDescriptor{
			Path:           s.String(),
			Cmd:            s.String(),
			Name:           s.String(),
			IsMake:         s.Bool(),
			IsVCS:          s.Bool(),
			SaveAll:        s.Bool(),
			OneAtATime:     s.Bool(),
			UseWindow:      s.Bool(),
			RaiseOnStart:   s.Bool(),
			BeepOnFinish:   s.Bool(),
			MenuText:       s.String(),
			MenuShortcut:   s.String(),
			MenuID:         s.String(),
			SeparatorAfter: s.Bool(),
		})
		if s.Err() != nil {
			break
		}
	}
	if err := s.Err(); err != nil {
		return zerr.Wrap(err, "read command setup")
	}

	m.makeDependCmd = makeDepend
	m.SetCommands(items)
	return nil
}
