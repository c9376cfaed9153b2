package domain

import "strings"

// BuildConfig holds the user-selected generation settings of a project.
type BuildConfig struct {
	Method                 BuildMethod
	NeedsFileRegeneration  bool
	TargetName             string
	DepListExpr            string
	SubProjectBuildCommand string
}

// NewBuildConfig returns a configuration for a project that has not been generated yet.
// An empty target name defaults to the project name.
func NewBuildConfig(method BuildMethod, projectName, targetName, depListExpr string) BuildConfig {
	if targetName == "" {
		targetName = projectName
	}
	return BuildConfig{
		Method:                 method,
		NeedsFileRegeneration:  true,
		TargetName:             targetName,
		DepListExpr:            depListExpr,
		SubProjectBuildCommand: DefaultSubProjectBuildCommand,
	}
}

// Targets splits the comma separated target name into trimmed, non-empty names.
func (c *BuildConfig) Targets() []string {
	parts := strings.Split(c.TargetName, ",")
	targets := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			targets = append(targets, p)
		}
	}
	return targets
}
