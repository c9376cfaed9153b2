package ports

// SettingsStore persists project and user state.
//
//go:generate mockgen -source=settings.go -destination=mocks/mock_settings.go -package=mocks
type SettingsStore interface {
	// Read returns the named state file of the project.
	// Returns nil, nil if it does not exist.
	Read(projectDir, name string) ([]byte, error)

	// Write stores the named state file of the project.
	Write(projectDir, name string, data []byte) error

	// ReadGlobal returns the named file from the user configuration.
	// Returns nil, nil if it does not exist.
	ReadGlobal(name string) ([]byte, error)

	// WriteGlobal stores the named file in the user configuration.
	WriteGlobal(name string, data []byte) error
}
