// Package pathfilter decides which paths of a project tree are excluded from
// traversal, scanning and rewriting.
package pathfilter

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Filter holds a compiled set of skip rules. A path is skipped if any rule
// matches its root-relative, slash-separated form.
type Filter struct {
	rules []*regexp.Regexp
}

// New compiles the given patterns into a Filter.
func New(patterns []string) (*Filter, error) {
	rules := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid skip pattern '%s': %w", pattern, err)
		}
		rules = append(rules, re)
	}
	return &Filter{rules: rules}, nil
}

// MustNew is like New but panics on an invalid pattern. Intended for
// package-level defaults and tests.
func MustNew(patterns []string) *Filter {
	f, err := New(patterns)
	if err != nil {
		panic(err)
	}
	return f
}

// ShouldSkip reports whether path, interpreted relative to root, matches a skip rule.
// The root itself is never skipped.
func (f *Filter) ShouldSkip(path, root string) bool {
	rel := Relative(path, root)
	if rel == "." || f == nil {
		return false
	}
	for _, re := range f.rules {
		if re.MatchString(rel) {
			return true
		}
	}
	return false
}

// Relative returns path relative to root with forward slashes. Paths outside
// root, or that cannot be made relative, are returned slash-normalised as-is.
func Relative(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), `\`, "/")
}
