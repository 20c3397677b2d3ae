// Package walker lazily enumerates the regular files of a project tree.
package walker

import (
	"iter"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/rebrand/internal/pathfilter"
)

// Walk returns a depth-first sequence of regular files under root, pruning
// directories and omitting files that the filter skips. A missing root yields
// nothing. Every range over the result reads the filesystem afresh.
func Walk(fs afero.Fs, root string, filter *pathfilter.Filter) iter.Seq[string] {
	return func(yield func(string) bool) {
		info, err := fs.Stat(root)
		if err != nil || !info.IsDir() {
			return
		}
		walkDir(fs, root, root, filter, yield)
	}
}

// Files collects Walk into a slice.
func Files(fs afero.Fs, root string, filter *pathfilter.Filter) []string {
	var files []string
	for path := range Walk(fs, root, filter) {
		files = append(files, path)
	}
	return files
}

// walkDir returns false once the consumer stops iterating.
func walkDir(fs afero.Fs, dir, root string, filter *pathfilter.Filter, yield func(string) bool) bool {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		// unreadable directories are treated as empty
		return true
	}

	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if filter.ShouldSkip(full, root) {
			continue
		}

		switch {
		case entry.IsDir():
			if !walkDir(fs, full, root, filter, yield) {
				return false
			}
		case entry.Mode().IsRegular():
			if !yield(full) {
				return false
			}
		}
	}
	return true
}
