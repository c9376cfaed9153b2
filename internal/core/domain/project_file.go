package domain

import (
	"path/filepath"
	"strings"
)

// FileKind classifies a project file for build generation.
type FileKind int

const (
	// KindOther files never take part in generated builds.
	KindOther FileKind = iota
	// KindSource files are compiled.
	KindSource
	// KindHeader files are listed but not compiled.
	KindHeader
	// KindLibrary files are linked.
	KindLibrary
)

var sourceSuffixes = map[string]struct{}{
	".c": {}, ".cc": {}, ".cpp": {}, ".cxx": {}, ".C": {}, ".c++": {},
	".m": {}, ".mm": {}, ".f": {}, ".for": {}, ".f77": {}, ".f90": {},
	".java": {}, ".y": {}, ".l": {}, ".s": {}, ".S": {},
}

var headerSuffixes = map[string]struct{}{
	".h": {}, ".hh": {}, ".hpp": {}, ".hxx": {}, ".H": {}, ".h++": {}, ".tmpl": {},
}

var librarySuffixes = map[string]struct{}{
	".a": {}, ".so": {}, ".o": {}, ".dylib": {},
}

// ClassifyFile derives the kind of a file from its suffix.
func ClassifyFile(path string) FileKind {
	ext := filepath.Ext(path)
	if _, ok := sourceSuffixes[ext]; ok {
		return KindSource
	}
	if _, ok := headerSuffixes[ext]; ok {
		return KindHeader
	}
	if _, ok := librarySuffixes[ext]; ok {
		return KindLibrary
	}
	if strings.Contains(filepath.Base(path), ".so.") {
		return KindLibrary
	}
	return KindOther
}

// ProjectFile is one entry of the project file tree.
type ProjectFile struct {
	// Path is relative to the project directory.
	Path string
	Kind FileKind
}

// IncludedIn reports whether the file affects the generated output of method.
func (f ProjectFile) IncludedIn(method BuildMethod) bool {
	switch method {
	case MethodMakemake:
		return f.Kind == KindSource || f.Kind == KindLibrary
	case MethodCMake, MethodQMake:
		return f.Kind == KindSource || f.Kind == KindHeader
	default:
		return false
	}
}

// Library is a sub-project whose output is linked into this project.
type Library struct {
	// File is the library target path, relative to the project.
	File string `yaml:"file"`
	// Project is the directory of the sub-project that builds File.
	Project string `yaml:"project"`
}

// FileRef is a file a command operates on, with an optional line number.
type FileRef struct {
	Path string
	Line int
}

// MakeFilesData is the file tree contribution to Make.files.
type MakeFilesData struct {
	Text      string
	Libraries []Library
	// Invalid lists project files that could not be found on disk.
	Invalid []string
}

// SourceData is the file tree contribution to CMakeLists.txt or a .pro file.
type SourceData struct {
	Sources []string
	Headers []string
	Invalid []string
}

// Project is a loaded project definition.
type Project struct {
	Name        string
	Dir         string
	Files       []string
	Libraries   []Library
	Build       *BuildConfig
	MakeDepend  string
	Commands    []CommandDescriptor
	Symbols     string
	Environment map[string]string
	EnvFile     string
}
