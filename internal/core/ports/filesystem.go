package ports

import "time"

// FileSystem is the file access used by the build engine.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)

	// WriteIfChanged writes data to path unless the file already holds exactly data.
	// The version control edit hook runs before the file is touched.
	// It reports whether the file was written.
	WriteIfChanged(path string, data []byte) (bool, error)

	// ModTime returns the modification time of path.
	// The second result is false if the file does not exist.
	ModTime(path string) (time.Time, bool)

	// Exists reports whether path exists.
	Exists(path string) bool

	// Readable reports whether path is a regular file that can be read.
	Readable(path string) bool

	// IsDir reports whether path is an existing directory.
	IsDir(path string) bool

	// MakeExecutable adds execute permission for owner, group and others.
	MakeExecutable(path string) error
}
