// Package scanner finds the text files of a tree that contain a token.
package scanner

import (
	"bytes"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/rebrand/internal/pathfilter"
	"github.com/wizzomafizzo/rebrand/internal/walker"
)

// Find returns the sorted paths of every walked file whose contents contain
// needle. Files that cannot be read, or that are not UTF-8 text, never match.
func Find(fs afero.Fs, root, needle string, filter *pathfilter.Filter) []string {
	var matches []string
	for path := range walker.Walk(fs, root, filter) {
		content, ok := ReadText(fs, path)
		if !ok {
			continue
		}
		if strings.Contains(content, needle) {
			matches = append(matches, path)
		}
	}
	sort.Strings(matches)
	return matches
}

// ReadText reads a whole file as text. The boolean is false when the file is
// unreadable or looks binary.
func ReadText(fs afero.Fs, path string) (string, bool) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", false
	}
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return "", false
	}
	return string(data), true
}
