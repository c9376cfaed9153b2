package ports

import "context"

// DocumentManager is the editor side of the application.
//
//go:generate mockgen -source=documents.go -destination=mocks/mock_documents.go -package=mocks
type DocumentManager interface {
	// SaveFiles saves any open, modified documents among paths.
	SaveFiles(paths ...string) error

	// SaveAll saves every open, modified document and returns how many were saved.
	SaveAll() (int, error)

	// OpenFile opens path for editing.
	OpenFile(ctx context.Context, path string) error

	// UpdateSymbolDatabase rebuilds the symbol database.
	UpdateSymbolDatabase(ctx context.Context) error

	// CancelUpdateSymbolDatabase stops a running symbol update before a build changes the files.
	CancelUpdateSymbolDatabase()

	// RefreshVCSStatus refreshes the version control status shown to the user.
	RefreshVCSStatus(ctx context.Context) error
}
