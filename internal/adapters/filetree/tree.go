// Package filetree resolves the files: section of crusader.yaml into project files.
package filetree

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/crusader/internal/adapters/fs" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
)

var _ ports.FileTree = (*Tree)(nil)

// headerSuffixes are tried, in order, when looking for the header that belongs to a source.
var headerSuffixes = []string{".h", ".hh", ".hpp", ".hxx", ".H", ".h++"}

// Tree implements ports.FileTree. Entries of files: are either explicit paths
// or doublestar patterns, all relative to the project directory. The tree is
// resolved on every call, so it always reflects the disk.
type Tree struct {
	dir       string
	patterns  []string
	libraries []domain.Library
	walker    *fs.Walker
	logger    ports.Logger
}

// New creates a Tree for project.
func New(project *domain.Project, walker *fs.Walker, logger ports.Logger) *Tree {
	return &Tree{
		dir:       project.Dir,
		patterns:  project.Files,
		libraries: project.Libraries,
		walker:    walker,
		logger:    logger,
	}
}

// resolution is the result of matching the patterns against the disk.
type resolution struct {
	files   []domain.ProjectFile
	missing []string
	present map[string]bool
}

// Files returns the project files that exist on disk, in pattern order.
func (t *Tree) Files() []domain.ProjectFile {
	return t.resolve().files
}

func (t *Tree) resolve() resolution {
	res := resolution{present: make(map[string]bool)}
	add := func(rel string) {
		if res.present[rel] {
			return
		}
		res.present[rel] = true
		res.files = append(res.files, domain.ProjectFile{Path: rel, Kind: domain.ClassifyFile(rel)})
	}

	var disk []string
	for _, pattern := range t.patterns {
		pattern = filepath.ToSlash(pattern)
		if !isGlob(pattern) {
			rel := path.Clean(pattern)
			if info, err := os.Stat(t.abs(rel)); err == nil && !info.IsDir() {
				add(rel)
			} else {
				res.missing = append(res.missing, rel)
			}
			continue
		}

		if !doublestar.ValidatePattern(pattern) {
			t.logger.Warn(fmt.Sprintf("ignoring invalid file pattern %q", pattern))
			continue
		}
		if disk == nil {
			disk = t.walk()
		}
		matched := false
		for _, rel := range disk {
			if ok, _ := doublestar.Match(pattern, rel); ok {
				add(rel)
				matched = true
			}
		}
		if !matched {
			t.logger.Warn(fmt.Sprintf("file pattern %q matches no files", pattern))
		}
	}
	return res
}

// walk lists every file of the project directory as a sorted, slash separated relative path.
func (t *Tree) walk() []string {
	var files []string
	for p := range t.walker.WalkFiles(t.dir, nil) {
		rel, err := filepath.Rel(t.dir, p)
		if err != nil {
			continue
		}
		files = append(files, filepath.ToSlash(rel))
	}
	slices.Sort(files)
	return files
}

func (t *Tree) abs(rel string) string {
	return filepath.Join(t.dir, filepath.FromSlash(rel))
}

// BuildMakeFiles returns one ".suffix root" line per source and library.
func (t *Tree) BuildMakeFiles() (domain.MakeFilesData, error) {
	res := t.resolve()

	var b strings.Builder
	for _, f := range res.files {
		if f.IncludedIn(domain.MethodMakemake) {
			writeMakeEntry(&b, f.Path)
		}
	}

	libs := make([]domain.Library, 0, len(t.libraries))
	for _, lib := range t.libraries {
		rel := path.Clean(filepath.ToSlash(lib.File))
		if !res.present[rel] {
			writeMakeEntry(&b, rel)
		}
		libs = append(libs, lib)
	}

	return domain.MakeFilesData{Text: b.String(), Libraries: libs, Invalid: res.missing}, nil
}

func writeMakeEntry(b *strings.Builder, rel string) {
	ext := path.Ext(rel)
	b.WriteString(ext)
	b.WriteByte(' ')
	b.WriteString(strings.TrimSuffix(rel, ext))
	b.WriteByte('\n')
}

// BuildCMakeData returns the sources and headers for CMakeLists.txt.
func (t *Tree) BuildCMakeData() (domain.SourceData, error) {
	return t.sourceData(), nil
}

// BuildQMakeData returns the sources and headers for the .pro file.
func (t *Tree) BuildQMakeData() (domain.SourceData, error) {
	return t.sourceData(), nil
}

// sourceData lists sources and headers. A header next to a source that is
// not itself part of the project is listed as well.
func (t *Tree) sourceData() domain.SourceData {
	res := t.resolve()
	data := domain.SourceData{Invalid: res.missing}

	for _, f := range res.files {
		switch f.Kind {
		case domain.KindSource:
			data.Sources = append(data.Sources, f.Path)
			if h, ok := t.complement(f.Path, res.present); ok {
				data.Headers = append(data.Headers, h)
			}
		case domain.KindHeader:
			data.Headers = append(data.Headers, f.Path)
		}
	}
	return data
}

func (t *Tree) complement(source string, present map[string]bool) (string, bool) {
	root := strings.TrimSuffix(source, path.Ext(source))
	for _, suffix := range headerSuffixes {
		h := root + suffix
		if present[h] {
			return "", false
		}
		if info, err := os.Stat(t.abs(h)); err == nil && !info.IsDir() {
			present[h] = true
			return h, true
		}
	}
	return "", false
}

// Node resolves a path to a project file. p may be absolute or relative to the project.
func (t *Tree) Node(p string) (domain.ProjectFile, bool) {
	if filepath.IsAbs(p) {
		rel, err := filepath.Rel(t.dir, p)
		if err != nil {
			return domain.ProjectFile{}, false
		}
		p = rel
	}
	rel := path.Clean(filepath.ToSlash(p))
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return domain.ProjectFile{}, false
	}

	for _, pattern := range t.patterns {
		pattern = filepath.ToSlash(pattern)
		var ok bool
		if isGlob(pattern) {
			ok, _ = doublestar.Match(pattern, rel)
		} else {
			ok = path.Clean(pattern) == rel
		}
		if ok {
			return domain.ProjectFile{Path: rel, Kind: domain.ClassifyFile(rel)}, true
		}
	}
	return domain.ProjectFile{}, false
}

// SelectFiles reports each path to the user.
func (t *Tree) SelectFiles(paths []string) {
	for _, p := range paths {
		t.logger.Warn(fmt.Sprintf("not found: %s", p))
	}
}

func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
