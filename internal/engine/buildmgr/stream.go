package buildmgr

import (
	"io"

	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/zerr"
)

// StreamOut writes the build configuration followed by the dependency scan command.
func (m *Manager) StreamOut(w io.Writer) error {
	s := domain.NewStreamWriter(w)
	s.Comment("build settings")
	s.Int(int(m.config.Method))
	s.Bool(m.config.NeedsFileRegeneration)
	s.String(m.config.TargetName)
	s.String(m.config.DepListExpr)
	s.String(m.config.SubProjectBuildCommand)
	s.Comment("dependency scan")
	s.String(m.cmds.MakeDependCommand())

	if err := s.Flush(); err != nil {
		return zerr.Wrap(domain.ErrSettingsWriteFailed, err.Error())
	}
	return nil
}

// StreamIn replaces the build configuration with one written by StreamOut.
// Nothing changes if r cannot be read completely.
func (m *Manager) StreamIn(r io.Reader) error {
	s := domain.NewStreamReader(r)
	s.SkipLine()
	rawMethod := s.Int()
	cfg := domain.BuildConfig{
		NeedsFileRegeneration:  s.Bool(),
		TargetName:             s.String(),
		DepListExpr:            s.String(),
		SubProjectBuildCommand: s.String(),
	}
	s.SkipLine()
	makeDepend := s.String()
	if err := s.Err(); err != nil {
		return zerr.Wrap(err, "read build settings")
	}

	method, err := domain.DecodeBuildMethod(rawMethod)
	if err != nil {
		return err
	}
	cfg.Method = method

	m.config = cfg
	m.cmds.SetMakeDependCommand(makeDepend)
	return nil
}

// StreamOutSettings writes the make path, the tracked modification times of the
// last successful scan and the time of the last scan.
func (m *Manager) StreamOutSettings(w io.Writer) error {
	s := domain.NewStreamWriter(w)
	s.String(m.makePath)
	for _, f := range domain.GeneratedFiles() {
		s.TimeNano(m.lastSuccess.Get(f))
	}
	s.Time(m.lastUpdate)

	if err := s.Flush(); err != nil {
		return zerr.Wrap(domain.ErrSettingsWriteFailed, err.Error())
	}
	return nil
}

// StreamInSettings restores the state written by StreamOutSettings.
// Nothing changes if r cannot be read completely.
func (m *Manager) StreamInSettings(r io.Reader) error {
	s := domain.NewStreamReader(r)
	makePath := s.String()
	var snapshot domain.ModTimeSnapshot
	for _, f := range domain.GeneratedFiles() {
		snapshot.Set(f, s.TimeNano())
	}
	lastUpdate := s.Time()
	if err := s.Err(); err != nil {
		return zerr.Wrap(err, "read build state")
	}

	m.makePath = makePath
	m.lastSuccess = snapshot
	m.lastUpdate = lastUpdate
	return nil
}
