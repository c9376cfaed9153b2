package domain

import (
	"path/filepath"
	"time"
)

// GeneratedFile identifies one of the build input files whose modification time is tracked.
type GeneratedFile int

const (
	// FileMakeHeader is Make.header.
	FileMakeHeader GeneratedFile = iota
	// FileMakeFiles is Make.files.
	FileMakeFiles
	// FileCMakeHeader is CMake.header.
	FileCMakeHeader
	// FileCMakeInput is CMakeLists.txt.
	FileCMakeInput
	// FileQMakeHeader is QMake.header.
	FileQMakeHeader
	// FileQMakeInput is <project>.pro.
	FileQMakeInput

	generatedFileCount
)

// GeneratedFiles returns every tracked file in snapshot order.
func GeneratedFiles() []GeneratedFile {
	return []GeneratedFile{
		FileMakeHeader, FileMakeFiles,
		FileCMakeHeader, FileCMakeInput,
		FileQMakeHeader, FileQMakeInput,
	}
}

// Name returns the on-disk name of the file for the given project.
func (f GeneratedFile) Name(projectName string) string {
	switch f {
	case FileMakeHeader:
		return MakeHeaderFileName
	case FileMakeFiles:
		return MakeFilesFileName
	case FileCMakeHeader:
		return CMakeHeaderFileName
	case FileCMakeInput:
		return CMakeInputFileName
	case FileQMakeHeader:
		return QMakeHeaderFileName
	case FileQMakeInput:
		return QMakeInputFileName(projectName)
	default:
		return ""
	}
}

// Path returns the absolute path of the file inside the project directory.
func (f GeneratedFile) Path(dir, projectName string) string {
	return filepath.Join(dir, f.Name(projectName))
}

// ModTimeSnapshot records the last known modification time of each generated file.
// A zero time means the file did not exist.
type ModTimeSnapshot [generatedFileCount]time.Time

// Get returns the recorded time for f.
func (s *ModTimeSnapshot) Get(f GeneratedFile) time.Time {
	return s[f]
}

// Set records t for f with full precision.
func (s *ModTimeSnapshot) Set(f GeneratedFile, t time.Time) {
	if t.IsZero() {
		s[f] = time.Time{}
		return
	}
	s[f] = time.Unix(0, t.UnixNano())
}

// Matches reports whether t equals the recorded time for f to the nanosecond.
func (s *ModTimeSnapshot) Matches(f GeneratedFile, t time.Time) bool {
	recorded := s[f]
	if recorded.IsZero() || t.IsZero() {
		return recorded.IsZero() && t.IsZero()
	}
	return recorded.UnixNano() == t.UnixNano()
}
