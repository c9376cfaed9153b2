// Package config loads the crusader.yaml project definition.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	"go.trai.ch/crusader/internal/core/domain"
	"go.trai.ch/crusader/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ProjectLoader = (*Loader)(nil)

var validProjectNameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+$`)

// Loader implements ports.ProjectLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// DiscoverRoot walks up from cwd to the first directory holding crusader.yaml.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "resolve working directory"), "cwd", cwd)
	}

	dir := abs
	for {
		if info, err := os.Stat(filepath.Join(dir, domain.ConfigFileName)); err == nil && !info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(domain.ErrConfigNotFound, "cwd", abs)
		}
		dir = parent
	}
}

// Load reads the project that contains cwd.
func (l *Loader) Load(cwd string) (*domain.Project, error) {
	root, err := l.DiscoverRoot(cwd)
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(root, domain.ConfigFileName)
	var file Crusaderfile
	if err := readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	name := file.Project
	if name == "" {
		name = filepath.Base(root)
	}
	if !validProjectNameRegex.MatchString(name) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidProjectName, "load project"), "project", name)
	}

	build, err := buildConfig(name, file.Build)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	env, envFile, err := l.environment(root, file)
	if err != nil {
		return nil, err
	}

	l.warnDuplicateCommands(file.Commands)

	return &domain.Project{
		Name:        name,
		Dir:         root,
		Files:       file.Files,
		Libraries:   file.Libraries,
		Build:       build,
		MakeDepend:  file.MakeDepend,
		Commands:    file.Commands,
		Symbols:     file.Symbols,
		Environment: env,
		EnvFile:     envFile,
	}, nil
}

func buildConfig(name string, dto *BuildDTO) (*domain.BuildConfig, error) {
	if dto == nil {
		cfg := domain.NewBuildConfig(domain.MethodMakemake, name, "", "")
		return &cfg, nil
	}

	method := domain.MethodMakemake
	if dto.Method != "" {
		m, err := domain.ParseBuildMethod(dto.Method)
		if err != nil {
			return nil, err
		}
		method = m
	}

	cfg := domain.NewBuildConfig(method, name, dto.Target, dto.DepList)
	if dto.SubProjectBuild != "" {
		cfg.SubProjectBuildCommand = dto.SubProjectBuild
	}
	return &cfg, nil
}

// environment merges the dotenv file with the environment section.
// Entries of the environment section win.
func (l *Loader) environment(root string, file Crusaderfile) (map[string]string, string, error) {
	envFile := file.EnvFile
	explicit := envFile != ""
	if !explicit {
		envFile = domain.DefaultEnvFileName
	}
	if !filepath.IsAbs(envFile) {
		envFile = filepath.Join(root, envFile)
	}

	env := make(map[string]string)
	values, err := godotenv.Read(envFile)
	switch {
	case err == nil:
		maps.Copy(env, values)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		envFile = ""
	default:
		return nil, "", zerr.With(zerr.Wrap(domain.ErrEnvFileFailed, err.Error()), "path", envFile)
	}

	maps.Copy(env, file.Environment)
	return env, envFile, nil
}

func (l *Loader) warnDuplicateCommands(cmds []domain.CommandDescriptor) {
	seen := make(map[string]bool, len(cmds))
	for _, c := range cmds {
		if c.Name == "" {
			continue
		}
		if seen[c.Name] {
			l.Logger.Warn(fmt.Sprintf("command %q is defined more than once in %s", c.Name, domain.ConfigFileName))
		}
		seen[c.Name] = true
	}
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is found by DiscoverRoot
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(domain.ErrConfigReadFailed, err.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
	}
	return nil
}
