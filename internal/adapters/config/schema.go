package config

import "go.trai.ch/crusader/internal/core/domain"

// Crusaderfile represents the structure of crusader.yaml.
type Crusaderfile struct {
	Project     string                     `yaml:"project"`
	Files       []string                   `yaml:"files"`
	Libraries   []domain.Library           `yaml:"libraries"`
	Build       *BuildDTO                  `yaml:"build"`
	MakeDepend  string                     `yaml:"makeDepend"`
	Commands    []domain.CommandDescriptor `yaml:"commands"`
	Symbols     string                     `yaml:"symbols"`
	Environment map[string]string          `yaml:"environment"`
	EnvFile     string                     `yaml:"envFile"`
}

// BuildDTO seeds the build configuration of a fresh project.
type BuildDTO struct {
	Method          string `yaml:"method"`
	Target          string `yaml:"target"`
	DepList         string `yaml:"depList"`
	SubProjectBuild string `yaml:"subProjectBuild"`
}
