package ports

import "context"

// VCSStatus summarizes the working tree.
type VCSStatus struct {
	Branch    string
	Modified  int
	Added     int
	Deleted   int
	Untracked int
}

// Clean reports whether the working tree has no changes.
func (s VCSStatus) Clean() bool {
	return s.Modified == 0 && s.Added == 0 && s.Deleted == 0 && s.Untracked == 0
}

// VCS is the version control system of the project.
//
//go:generate mockgen -source=vcs.go -destination=mocks/mock_vcs.go -package=mocks
type VCS interface {
	// Edit prepares path for modification.
	Edit(path string) error

	// Status returns a summary of the working tree.
	Status(ctx context.Context) (VCSStatus, error)
}
