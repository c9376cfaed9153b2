package buildmgr

import (
	"context"
	"fmt"
	"path/filepath"

	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/zerr"
)

func (m *Manager) path(f domain.GeneratedFile) string {
	return f.Path(m.dir, m.name)
}

func (m *Manager) headerFile() (domain.GeneratedFile, bool) {
	switch m.config.Method {
	case domain.MethodMakemake:
		return domain.FileMakeHeader, true
	case domain.MethodCMake:
		return domain.FileCMakeHeader, true
	case domain.MethodQMake:
		return domain.FileQMakeHeader, true
	default:
		return 0, false
	}
}

func (m *Manager) write(path, data string) error {
	_, err := m.writeChanged(path, data)
	return err
}

func (m *Manager) writeChanged(path, data string) (bool, error) {
	changed, err := m.deps.FS.WriteIfChanged(path, []byte(data))
	if err != nil {
		return false, zerr.Wrap(err, "write "+filepath.Base(path))
	}
	return changed, nil
}

// writeGenerated writes one of the inputs the dependency scan reads and
// remembers whether its content changed.
func (m *Manager) writeGenerated(path, data string) error {
	changed, err := m.writeChanged(path, data)
	if err != nil {
		return err
	}
	if changed {
		m.rewritten = true
	}
	return nil
}

// UpdateMakeFiles regenerates the input files of the build method from the
// project's file tree. Open documents among the inputs are saved first.
// Manual projects only get their documents saved.
func (m *Manager) UpdateMakeFiles() error {
	if err := m.saveOpenInputs(); err != nil {
		return err
	}
	if m.config.Method == domain.MethodManual {
		return nil
	}

	if err := m.RecreateMakeHeaderFile(); err != nil {
		return err
	}
	if err := m.WriteSubProjectBuildFile(); err != nil {
		return err
	}

	needWrite := m.config.NeedsFileRegeneration || m.dir != m.makePath
	var primary domain.GeneratedFile
	switch m.config.Method {
	case domain.MethodMakemake:
		primary = domain.FileMakeFiles
		needWrite = true
	case domain.MethodCMake:
		primary = domain.FileCMakeInput
		needWrite = needWrite || m.headerChanged(domain.FileCMakeHeader)
	case domain.MethodQMake:
		primary = domain.FileQMakeInput
		needWrite = needWrite || m.headerChanged(domain.FileQMakeHeader)
	}
	if !needWrite && m.deps.FS.Exists(m.path(primary)) {
		return nil
	}

	if len(m.config.Targets()) == 0 {
		return zerr.Wrap(domain.ErrMissingBuildTarget, "update make files")
	}

	var invalid []string
	switch m.config.Method {
	case domain.MethodMakemake:
		data, err := m.deps.Tree.BuildMakeFiles()
		if err != nil {
			return zerr.Wrap(err, "update make files")
		}
		if len(data.Invalid) == 0 && data.Text != "" {
			return m.writeMakemake(data)
		}
		invalid = data.Invalid

	case domain.MethodCMake, domain.MethodQMake:
		build, format := m.deps.Tree.BuildCMakeData, cmakeData
		if m.config.Method == domain.MethodQMake {
			build, format = m.deps.Tree.BuildQMakeData, qmakeData
		}
		data, err := build()
		if err != nil {
			return zerr.Wrap(err, "update make files")
		}
		if len(data.Invalid) == 0 && len(data.Sources) > 0 {
			return m.writeInput(primary, format(m.config.TargetName, data))
		}
		invalid = data.Invalid
	}

	if len(invalid) > 0 {
		m.deps.Tree.SelectFiles(invalid)
		return zerr.With(zerr.Wrap(domain.ErrMissingSourceFiles, "update make files"), "files", invalid)
	}
	return zerr.Wrap(domain.ErrNoSourceFiles, "update make files")
}

func (m *Manager) saveOpenInputs() error {
	var paths []string
	switch m.config.Method {
	case domain.MethodMakemake:
		paths = []string{m.path(domain.FileMakeHeader)}
	case domain.MethodCMake:
		paths = []string{m.path(domain.FileCMakeHeader)}
	case domain.MethodQMake:
		paths = []string{m.path(domain.FileQMakeHeader)}
	default:
		paths = []string{
			m.path(domain.FileMakeHeader),
			m.path(domain.FileMakeFiles),
			m.path(domain.FileCMakeInput),
			m.path(domain.FileQMakeInput),
		}
	}
	if err := m.deps.Docs.SaveFiles(paths...); err != nil {
		return zerr.Wrap(err, "save build files")
	}
	return nil
}

func (m *Manager) writeMakemake(data domain.MakeFilesData) error {
	headerPath := m.path(domain.FileMakeHeader)
	header, err := m.deps.FS.ReadFile(headerPath)
	if err != nil {
		return zerr.Wrap(err, "update make files")
	}
	if err := m.writeGenerated(headerPath, SpliceMakeHeader(string(header), data.Libraries)); err != nil {
		return err
	}
	if err := m.writeGenerated(m.path(domain.FileMakeFiles), makeFilesContent(m.config, data.Text)); err != nil {
		return err
	}
	m.config.NeedsFileRegeneration = false
	return nil
}

func (m *Manager) writeInput(primary domain.GeneratedFile, data string) error {
	header := domain.FileCMakeHeader
	if primary == domain.FileQMakeInput {
		header = domain.FileQMakeHeader
	}
	text, err := m.deps.FS.ReadFile(m.path(header))
	if err != nil {
		return zerr.Wrap(err, "update make files")
	}
	if err := m.writeGenerated(m.path(primary), insertData(string(text), data)); err != nil {
		return err
	}
	m.config.NeedsFileRegeneration = false
	return nil
}

// RecreateMakeHeaderFile writes the default header of the build method if the
// header does not exist. An existing header is never touched.
func (m *Manager) RecreateMakeHeaderFile() error {
	f, ok := m.headerFile()
	if !ok || m.deps.FS.Exists(m.path(f)) {
		return nil
	}
	return m.write(m.path(f), headerInitText(m.config.Method, m.config.TargetName))
}

// CreateMakeFiles switches a new project to method and writes its initial input
// files. Existing files are kept.
func (m *Manager) CreateMakeFiles(method domain.BuildMethod) error {
	m.config.Method = method

	switch method {
	case domain.MethodManual:
		return nil
	case domain.MethodMakemake:
		header, files := m.path(domain.FileMakeHeader), m.path(domain.FileMakeFiles)
		if !m.deps.FS.Exists(header) && !m.deps.FS.Exists(files) {
			if err := m.write(header, makeHeaderInit); err != nil {
				return err
			}
			if err := m.write(files, makeFilesInit); err != nil {
				return err
			}
		}
	default:
		if err := m.RecreateMakeHeaderFile(); err != nil {
			return err
		}
	}

	m.cmds.SetMakeDependCommand(method.DefaultDependCommand())
	m.lastSuccess = m.SaveMakeFileModTimes()
	return nil
}

// WriteSubProjectBuildFile writes the script that builds this project when another
// project links it as a library: the dependency scan followed by the sub-project
// build command.
func (m *Manager) WriteSubProjectBuildFile() error {
	var update string
	if m.config.Method != domain.MethodManual {
		var err error
		if update, err = m.cmds.MakeDependCmdString(); err != nil {
			return zerr.Wrap(err, "write sub-project build file")
		}
	}

	build, err := m.cmds.Substitute(m.config.SubProjectBuildCommand, domain.FileRef{})
	if err != nil {
		return zerr.Wrap(err, "write sub-project build file")
	}

	path := filepath.Join(m.dir, domain.SubProjectBuildFileName(m.name))
	if err := m.write(path, fmt.Sprintf(subProjectScript, update, build)); err != nil {
		return err
	}
	if err := m.deps.FS.MakeExecutable(path); err != nil {
		m.deps.Logger.Warn(fmt.Sprintf("%s is not executable: %v", filepath.Base(path), err))
	}
	return nil
}

// EditMakeConfig opens the file that configures the build. Generated methods open
// their header, recreating it if needed. Otherwise the first readable build file
// is opened, falling back to the first one that opens at all.
func (m *Manager) EditMakeConfig(ctx context.Context) error {
	if f, ok := m.headerFile(); ok {
		if err := m.RecreateMakeHeaderFile(); err == nil {
			if err := m.deps.Docs.OpenFile(ctx, m.path(f)); err == nil {
				return nil
			}
		}
	}

	candidates := []string{
		domain.QMakeInputFileName(m.name),
		domain.CMakeInputFileName,
	}
	candidates = append(candidates, domain.MakefileNames...)
	candidates = append(candidates, "pom.xml", "build.xml")

	for _, name := range candidates {
		path := filepath.Join(m.dir, name)
		if m.deps.FS.Readable(path) && m.deps.Docs.OpenFile(ctx, path) == nil {
			return nil
		}
	}
	for _, name := range candidates {
		if m.deps.Docs.OpenFile(ctx, filepath.Join(m.dir, name)) == nil {
			return nil
		}
	}
	return zerr.With(zerr.Wrap(domain.ErrNoMakeFile, "edit build configuration"), "dir", m.dir)
}
