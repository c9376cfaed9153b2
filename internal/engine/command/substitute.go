package command

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/zerr"
)

var projectVars = []string{"project_path", "project_name", "program"}

var fileVars = []string{
	"full_name",
	"relative_name",
	"file_name",
	"file_name_root",
	"file_name_suffix",
	"full_path",
	"relative_path",
	"line",
}

// vars returns the variable names referenced by s, in either $name or $(name) form.
func vars(s string) []string {
	var names []string
	scanVars(s, func(name string, _ bool) string {
		names = append(names, name)
		return ""
	})
	return names
}

// scanVars returns s with every variable reference replaced by fn's result.
// paren tells fn whether the reference used the $(name) form.
func scanVars(s string, fn func(name string, paren bool) string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '$' || i+1 >= len(s) {
			b.WriteByte(s[i])
			continue
		}

		if s[i+1] == '(' {
			end := strings.IndexByte(s[i+2:], ')')
			if end < 0 {
				b.WriteByte(s[i])
				continue
			}
			b.WriteString(fn(s[i+2:i+2+end], true))
			i += end + 2
			continue
		}

		j := i + 1
		for j < len(s) && isIdentByte(s[j]) {
			j++
		}
		if j == i+1 {
			b.WriteByte(s[i])
			continue
		}
		b.WriteString(fn(s[i+1:j], false))
		i = j - 1
	}
	return b.String()
}

func isIdentByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

func containsAny(names, set []string) bool {
	return slices.ContainsFunc(names, func(n string) bool { return slices.Contains(set, n) })
}

// usesFile reports whether s refers to the file a command runs on.
func usesFile(s string) bool {
	return containsAny(vars(s), fileVars)
}

// Substitute replaces the variables in arg with values for the project and file.
// Unknown variables are left untouched.
func (m *Manager) Substitute(arg string, file domain.FileRef) (string, error) {
	names := vars(arg)

	values := make(map[string]string, len(projectVars)+len(fileVars))
	if m.project != nil {
		values["project_path"] = m.project.Dir()
		values["project_name"] = m.project.Name()
		values["program"] = m.project.TargetName()
	} else if containsAny(names, slices.Concat(projectVars, []string{"relative_name", "relative_path"})) {
		return "", zerr.With(zerr.Wrap(domain.ErrRequiresProject, "substitute"), "arg", arg)
	}

	onDisk := file.Path != "" && filepath.IsAbs(file.Path)
	if !onDisk && containsAny(names, fileVars) {
		return "", zerr.With(zerr.Wrap(domain.ErrRequiresFile, "substitute"), "arg", arg)
	}

	if onDisk {
		dir, name := filepath.Split(file.Path)
		values["full_name"] = file.Path
		values["file_name"] = name
		values["full_path"] = dir

		suffix := filepath.Ext(name)
		values["file_name_root"] = strings.TrimSuffix(name, suffix)
		values["file_name_suffix"] = suffix

		if m.project != nil {
			if rel, err := filepath.Rel(m.project.Dir(), file.Path); err == nil {
				values["relative_name"] = rel
			}
			if rel, err := filepath.Rel(m.project.Dir(), dir); err == nil {
				values["relative_path"] = withSeparator(rel)
			}
		}
	}
	values["line"] = strconv.Itoa(file.Line)

	return scanVars(arg, func(name string, paren bool) string {
		if v, ok := values[name]; ok {
			return v
		}
		if paren {
			return "$(" + name + ")"
		}
		return "$" + name
	}), nil
}

func withSeparator(dir string) string {
	if dir == "." {
		return "./"
	}
	return dir + string(filepath.Separator)
}
