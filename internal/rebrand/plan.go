// Package rebrand turns a template project into a new project: it derives
// the substitutions for a new name and package, rewrites file contents and
// relocates the package directories.
package rebrand

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wizzomafizzo/rebrand/internal/config"
	"github.com/wizzomafizzo/rebrand/internal/pkgpath"
)

// ErrEmptyProjectName is returned when the new project name is blank.
var ErrEmptyProjectName = errors.New("project name cannot be empty")

// Substitution is one literal replacement applied across the tree.
type Substitution struct {
	// Label names the pass in progress output, e.g. "package name".
	Label string
	Old   string
	New   string
}

// Plan is everything derived from one invocation.
type Plan struct {
	ProjectName    string
	DisplayName    string
	ResourcePrefix string
	OldPackage     pkgpath.Package
	NewPackage     pkgpath.Package
	// Substitutions run in order: package, display name, project name, resource prefix.
	Substitutions []Substitution
}

// NewPlan validates the new project name and package against the template identity.
func NewPlan(old config.Identity, projectName, packageID string) (*Plan, error) {
	if strings.TrimSpace(projectName) == "" {
		return nil, ErrEmptyProjectName
	}
	if err := old.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template identity: %w", err)
	}

	newPackage, err := pkgpath.Parse(packageID)
	if err != nil {
		return nil, err //nolint:wrapcheck // message already names the package
	}
	oldPackage, err := pkgpath.Parse(old.Package)
	if err != nil {
		return nil, fmt.Errorf("invalid template package: %w", err)
	}

	displayName := DisplayName(projectName)
	resourcePrefix := ResourcePrefix(projectName)

	return &Plan{
		ProjectName:    projectName,
		DisplayName:    displayName,
		ResourcePrefix: resourcePrefix,
		OldPackage:     oldPackage,
		NewPackage:     newPackage,
		Substitutions: []Substitution{
			{Label: "package name", Old: old.Package, New: newPackage.String()},
			{Label: "app name", Old: old.AppName, New: displayName},
			{Label: "project name", Old: old.ProjectName, New: projectName},
			{Label: "Compose resources package prefix", Old: old.ResourcePrefix, New: resourcePrefix},
		},
	}, nil
}

// DisplayName is the project name with '-' and '_' turned into spaces.
func DisplayName(projectName string) string {
	return strings.NewReplacer("-", " ", "_", " ").Replace(projectName)
}

// ResourcePrefix is the project name lowercased with '-' and spaces turned into underscores.
func ResourcePrefix(projectName string) string {
	return strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(projectName))
}

// Summary is a one-line description of every substitution.
func (p *Plan) Summary() string {
	parts := make([]string, 0, len(p.Substitutions))
	for _, sub := range p.Substitutions {
		parts = append(parts, fmt.Sprintf("%q -> %q", sub.Old, sub.New))
	}
	return strings.Join(parts, ", ")
}
