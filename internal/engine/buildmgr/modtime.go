package buildmgr

import (
	"path/filepath"

	"go.trai.ch/crusader/internal/core/domain"
)

func (m *Manager) headerChanged(f domain.GeneratedFile) bool {
	t, ok := m.deps.FS.ModTime(m.path(f))
	return ok && !m.lastSuccess.Matches(f, t)
}

// MakefileExists reports whether one of the makefiles that may be regenerated exists.
func (m *Manager) MakefileExists() bool {
	for _, name := range domain.MakefileNames[domain.FirstOverwritableMakefile:] {
		if m.deps.FS.Exists(filepath.Join(m.dir, name)) {
			return true
		}
	}
	return false
}

// MakeFilesChanged reports whether the makefile has to be rebuilt: the project moved,
// an input exists without its output, or an input changed since the last successful
// dependency scan.
func (m *Manager) MakeFilesChanged() bool {
	if m.dir != m.makePath {
		return true
	}

	exists := func(f domain.GeneratedFile) bool {
		return m.deps.FS.Exists(m.path(f))
	}
	makefile := m.MakefileExists()
	needsMakefile := (exists(domain.FileMakeHeader) && exists(domain.FileMakeFiles) && !makefile) ||
		(exists(domain.FileCMakeHeader) && !exists(domain.FileCMakeInput)) ||
		(exists(domain.FileQMakeHeader) && !exists(domain.FileQMakeInput)) ||
		((exists(domain.FileCMakeInput) || exists(domain.FileQMakeInput)) && !makefile)
	if needsMakefile {
		return true
	}

	for _, f := range domain.GeneratedFiles() {
		if m.headerChanged(f) {
			return true
		}
	}
	return false
}

// SaveMakeFileModTimes records the project directory as the make path and returns
// the current modification time of every tracked file.
func (m *Manager) SaveMakeFileModTimes() domain.ModTimeSnapshot {
	m.makePath = m.dir

	var s domain.ModTimeSnapshot
	for _, f := range domain.GeneratedFiles() {
		if t, ok := m.deps.FS.ModTime(m.path(f)); ok {
			s.Set(f, t)
		}
	}
	return s
}
