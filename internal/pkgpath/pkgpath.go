// Package pkgpath parses dotted package identifiers such as com.example.app
// and renders them as directory paths.
package pkgpath

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrInvalidPackage is returned for identifiers that are not dot-separated
// Java/Kotlin style names with at least two segments.
var ErrInvalidPackage = errors.New("invalid package name")

var packagePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)+$`)

// Package is a validated dotted identifier.
type Package struct {
	id string
}

// Parse validates id and returns it as a Package.
func Parse(id string) (Package, error) {
	if !packagePattern.MatchString(id) {
		return Package{}, fmt.Errorf(
			"%w %q: must contain at least one '.' (e.g. com.example.myapp) "+
				"and each part must start with a letter or underscore",
			ErrInvalidPackage, id)
	}
	return Package{id: id}, nil
}

// MustParse is like Parse but panics on invalid input.
func MustParse(id string) Package {
	p, err := Parse(id)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Package) String() string {
	return p.id
}

// Segments returns the dot-separated parts.
func (p Package) Segments() []string {
	return strings.Split(p.id, ".")
}

// Dir renders the package as a relative directory path using the platform separator.
func (p Package) Dir() string {
	return filepath.Join(p.Segments()...)
}

// IsZero reports whether p was never parsed.
func (p Package) IsZero() bool {
	return p.id == ""
}

// Contains reports whether other is p itself or nested below it.
func (p Package) Contains(other Package) bool {
	return other.id == p.id || strings.HasPrefix(other.id, p.id+".")
}
