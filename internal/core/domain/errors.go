package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingBuildTarget is returned when makefile generation is requested without a target name.
	ErrMissingBuildTarget = zerr.New("please specify the name of the program to build")

	// ErrMissingSourceFiles is returned when the project references files that do not exist on disk.
	ErrMissingSourceFiles = zerr.New("some source files do not exist")

	// ErrNoSourceFiles is returned when the project contains no files that can be compiled.
	ErrNoSourceFiles = zerr.New("the project does not contain any source files to compile")

	// ErrNoMakeFile is returned when no build description file could be opened for editing.
	ErrNoMakeFile = zerr.New("unable to find a build configuration file to edit")

	// ErrUnknownCommand is returned when a named command cannot be found.
	ErrUnknownCommand = zerr.New("unknown command")

	// ErrDuplicateCommand is returned when more than one command shares a name.
	ErrDuplicateCommand = zerr.New("command name is not unique")

	// ErrInfiniteRecursion is returned when a command invokes itself through its subroutines.
	ErrInfiniteRecursion = zerr.New("infinite recursion in command")

	// ErrArgsNotAllowed is returned when a subroutine reference is followed by arguments.
	ErrArgsNotAllowed = zerr.New("arguments are not allowed after a command reference")

	// ErrFnsNotAllowed is returned when a command that must be self-contained references another command.
	ErrFnsNotAllowed = zerr.New("command references are not allowed here")

	// ErrRequiresFile is returned when a command needs a file but none was given.
	ErrRequiresFile = zerr.New("command requires a file")

	// ErrRequiresProject is returned when a command needs a project but none is open.
	ErrRequiresProject = zerr.New("command requires a project")

	// ErrInvalidPath is returned when a command directory does not exist.
	ErrInvalidPath = zerr.New("invalid command directory")

	// ErrEmptyCommand is returned when a command template produces nothing to run.
	ErrEmptyCommand = zerr.New("command is empty")

	// ErrInvalidBuildMethod is returned when a build method name or persisted value is unknown.
	ErrInvalidBuildMethod = zerr.New("invalid build method")

	// ErrUnsupportedVersion is returned when a persisted stream has a version this program cannot read.
	ErrUnsupportedVersion = zerr.New("unsupported data version")

	// ErrMalformedStream is returned when a persisted stream cannot be decoded.
	ErrMalformedStream = zerr.New("malformed data stream")

	// ErrProcessStartFailed is returned when a child process cannot be spawned.
	ErrProcessStartFailed = zerr.New("failed to start process")

	// ErrProcessCancelled is returned when a child process was killed before it finished.
	ErrProcessCancelled = zerr.New("process cancelled")

	// ErrProcessFailed is returned when a child process exits with a nonzero status.
	ErrProcessFailed = zerr.New("process failed")

	// ErrBuildFailed is returned when a command pipeline does not finish successfully.
	ErrBuildFailed = zerr.New("build failed")

	// ErrConfigNotFound is returned when no crusader.yaml can be found.
	ErrConfigNotFound = zerr.New("could not find crusader.yaml")

	// ErrInvalidProjectName is returned when the project name cannot be used in generated file names.
	ErrInvalidProjectName = zerr.New("invalid project name")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrEnvFileFailed is returned when the dotenv file cannot be loaded.
	ErrEnvFileFailed = zerr.New("failed to load environment file")

	// ErrSettingsReadFailed is returned when persisted project state cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read project state")

	// ErrSettingsWriteFailed is returned when project state cannot be written.
	ErrSettingsWriteFailed = zerr.New("failed to write project state")

	// ErrWriteFailed is returned when a generated file cannot be written.
	ErrWriteFailed = zerr.New("failed to write file")

	// ErrReadFailed is returned when a file cannot be read.
	ErrReadFailed = zerr.New("failed to read file")

	// ErrOpenFailed is returned when a file cannot be opened for editing.
	ErrOpenFailed = zerr.New("failed to open file")
)
