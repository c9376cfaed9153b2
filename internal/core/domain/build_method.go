package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// BuildMethod selects which generated files drive the build.
// The numeric values are persisted and must never be renumbered.
type BuildMethod int

const (
	// MethodManual means the user maintains the Makefile by hand.
	MethodManual BuildMethod = iota
	// MethodMakemake generates Make.files and Make.header for makemake.
	MethodMakemake
	// MethodQMake generates a .pro file for qmake.
	MethodQMake
	// MethodCMake generates CMakeLists.txt for cmake.
	MethodCMake
)

var buildMethodNames = [...]string{
	MethodManual:   "manual",
	MethodMakemake: "makemake",
	MethodQMake:    "qmake",
	MethodCMake:    "CMake",
}

var defaultDependCommands = [...]string{
	MethodManual:   "echo Makefile must be updated manually",
	MethodMakemake: "makemake",
	MethodQMake:    "qmake $project_name.pro",
	MethodCMake:    "cmake .",
}

// BuildMethods returns every method in persisted order.
func BuildMethods() []BuildMethod {
	return []BuildMethod{MethodManual, MethodMakemake, MethodQMake, MethodCMake}
}

// Valid reports whether m is a known method.
func (m BuildMethod) Valid() bool {
	return m >= MethodManual && m <= MethodCMake
}

// String returns the method's display name.
func (m BuildMethod) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return buildMethodNames[m]
}

// DefaultDependCommand returns the conventional dependency scan command for the method.
func (m BuildMethod) DefaultDependCommand() string {
	if !m.Valid() {
		return defaultDependCommands[MethodManual]
	}
	return defaultDependCommands[m]
}

// ParseBuildMethod resolves a method name, ignoring case.
func ParseBuildMethod(name string) (BuildMethod, error) {
	for _, m := range BuildMethods() {
		if strings.EqualFold(name, buildMethodNames[m]) {
			return m, nil
		}
	}
	return MethodManual, zerr.With(zerr.Wrap(ErrInvalidBuildMethod, "parse build method"), "method", name)
}

// DecodeBuildMethod converts a persisted integer into a method.
func DecodeBuildMethod(v int) (BuildMethod, error) {
	m := BuildMethod(v)
	if !m.Valid() {
		return MethodManual, zerr.With(zerr.Wrap(ErrInvalidBuildMethod, "decode build method"), "value", v)
	}
	return m, nil
}

// MarshalText implements encoding.TextMarshaler.
func (m BuildMethod) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, zerr.With(zerr.Wrap(ErrInvalidBuildMethod, "marshal build method"), "value", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *BuildMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseBuildMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
