package ports

import "go.trai.ch/crusader/internal/core/domain"

// FileTree is the project's view of its files.
//
//go:generate mockgen -source=filetree.go -destination=mocks/mock_filetree.go -package=mocks
type FileTree interface {
	// BuildMakeFiles returns the file list section of Make.files.
	BuildMakeFiles() (domain.MakeFilesData, error)

	// BuildCMakeData returns the sources and headers for CMakeLists.txt.
	BuildCMakeData() (domain.SourceData, error)

	// BuildQMakeData returns the sources and headers for the .pro file.
	BuildQMakeData() (domain.SourceData, error)

	// Node resolves a path to a project file.
	// The second result is false if the path is not part of the project.
	Node(path string) (domain.ProjectFile, bool)

	// SelectFiles brings the given project files to the user's attention.
	SelectFiles(paths []string)
}
