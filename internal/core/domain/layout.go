package domain

import (
	"path/filepath"
	"time"
)

const (
	// MakeHeaderFileName is the hand-edited header for Makemake.
	MakeHeaderFileName = "Make.header"

	// MakeFilesFileName is the generated file list for Makemake.
	MakeFilesFileName = "Make.files"

	// CMakeHeaderFileName is the hand-edited header for CMake.
	CMakeHeaderFileName = "CMake.header"

	// CMakeInputFileName is the generated CMake input.
	CMakeInputFileName = "CMakeLists.txt"

	// QMakeHeaderFileName is the hand-edited header for QMake.
	QMakeHeaderFileName = "QMake.header"

	// QMakeInputSuffix is appended to the project name to form the QMake input.
	QMakeInputSuffix = ".pro"

	// SubProjectBuildSuffix is appended to the project name to form the sub-project build script.
	SubProjectBuildSuffix = ".jmk"

	// FirstOverwritableMakefile is the index of the first entry in MakefileNames that may be regenerated.
	FirstOverwritableMakefile = 1

	// ConfigFileName is the name of the project definition file.
	ConfigFileName = "crusader.yaml"

	// StateDirName is the name of the per-project state directory.
	StateDirName = ".crusader"

	// BuildStateFileName holds the persisted build configuration.
	BuildStateFileName = "build"

	// SettingsStateFileName holds the persisted modification times.
	SettingsStateFileName = "settings"

	// GlobalCommandsFileName holds the commands available to every project.
	GlobalCommandsFileName = "commands"

	// GlobalConfigDirName is the directory under the user config dir.
	GlobalConfigDirName = "crusader"

	// DefaultEnvFileName is the dotenv file loaded when none is configured.
	DefaultEnvFileName = ".env"

	// DefaultSubProjectBuildCommand builds a sub-project when it is used as a library.
	DefaultSubProjectBuildCommand = "make -k all"

	// UpdateMakefileInterval is how long a dependency scan stays fresh.
	UpdateMakefileInterval = 24 * time.Hour

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// ExecPerm is the set of execute bits added to the sub-project build script.
	ExecPerm = 0o111
)

// MakefileNames lists the final makefile names in priority order.
// Only entries from FirstOverwritableMakefile on are ever generated.
var MakefileNames = []string{"m3makefile", "Makefile", "makefile"}

// QMakeInputFileName returns the QMake project file name for a project.
func QMakeInputFileName(projectName string) string {
	return projectName + QMakeInputSuffix
}

// SubProjectBuildFileName returns the sub-project build script name for a project.
func SubProjectBuildFileName(projectName string) string {
	return projectName + SubProjectBuildSuffix
}

// StatePath returns the path of a state file inside the project state directory.
func StatePath(projectDir, name string) string {
	return filepath.Join(projectDir, StateDirName, name)
}
