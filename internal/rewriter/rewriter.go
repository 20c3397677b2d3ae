// Package rewriter replaces a literal token with another across the text
// files of a tree, in place.
package rewriter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/rebrand/internal/config"
	"github.com/wizzomafizzo/rebrand/internal/logging"
	"github.com/wizzomafizzo/rebrand/internal/pathfilter"
	"github.com/wizzomafizzo/rebrand/internal/scanner"
)

// ErrEmptyToken is returned when asked to replace the empty string.
var ErrEmptyToken = errors.New("token to replace cannot be empty")

// Options configure a Rewriter.
type Options struct {
	Filter *pathfilter.Filter
	Policy config.ErrorPolicy
	// DryRun reports the files that would change without writing them.
	DryRun bool
}

// Rewriter performs in-place literal substitutions.
type Rewriter struct {
	fs     afero.Fs
	filter *pathfilter.Filter
	policy config.ErrorPolicy
	dryRun bool
}

// Failure records a file that could not be rewritten.
type Failure struct {
	Err  error
	Path string
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report describes the outcome of one ReplaceAll pass. Paths are
// slash-separated and relative to the root.
type Report struct {
	Old     string
	New     string
	Updated []string
	Failed  []Failure
}

// OK reports whether every candidate file was rewritten.
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// New creates a Rewriter. A zero Policy means best-effort.
func New(fs afero.Fs, opts Options) *Rewriter {
	policy := opts.Policy
	if policy == "" {
		policy = config.BestEffort
	}
	return &Rewriter{
		fs:     fs,
		filter: opts.Filter,
		policy: policy,
		dryRun: opts.DryRun,
	}
}

// ReplaceAll rewrites every file under root that contains oldToken, replacing
// each occurrence with newToken. With the best-effort policy failures are
// collected in the report and the error is nil; with fail-fast the first
// failure stops the pass and is returned.
func (r *Rewriter) ReplaceAll(ctx context.Context, root, oldToken, newToken string) (*Report, error) {
	if oldToken == "" {
		return nil, ErrEmptyToken
	}

	logger := logging.Get(ctx)
	report := &Report{Old: oldToken, New: newToken}

	for _, path := range scanner.Find(r.fs, root, oldToken, r.filter) {
		// candidates may be stale by the time they are written
		if r.filter.ShouldSkip(path, root) {
			continue
		}

		rel := pathfilter.Relative(path, root)
		changed, err := r.rewriteFile(path, oldToken, newToken)
		if err != nil {
			failure := Failure{Path: rel, Err: err}
			report.Failed = append(report.Failed, failure)
			logger.Error().Err(err).Str("path", rel).Str("old", oldToken).Msg("failed to update file")

			if r.policy == config.FailFast {
				return report, fmt.Errorf("failed to update %w", failure)
			}
			continue
		}
		if !changed {
			continue
		}

		report.Updated = append(report.Updated, rel)
		logger.Debug().Str("path", rel).Str("old", oldToken).Str("new", newToken).
			Msg("updated file")
	}

	return report, nil
}

// rewriteFile returns false when the replacement leaves the content unchanged.
func (r *Rewriter) rewriteFile(path, oldToken, newToken string) (bool, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}

	content := string(data)
	replaced := replaceToken(content, oldToken, newToken)
	if replaced == content {
		return false, nil
	}
	if r.dryRun {
		return true, nil
	}

	if err := afero.WriteFile(r.fs, path, []byte(replaced), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("failed to write file: %w", err)
	}
	return true, nil
}

// replaceToken replaces oldToken left to right. When newToken contains
// oldToken, occurrences of newToken already in the content are kept as they
// are so a second run leaves the first run's output alone.
func replaceToken(content, oldToken, newToken string) string {
	if !strings.Contains(newToken, oldToken) {
		return strings.ReplaceAll(content, oldToken, newToken)
	}

	var out strings.Builder
	out.Grow(len(content))
	for i := 0; i < len(content); {
		switch rest := content[i:]; {
		case strings.HasPrefix(rest, newToken):
			out.WriteString(newToken)
			i += len(newToken)
		case strings.HasPrefix(rest, oldToken):
			out.WriteString(newToken)
			i += len(oldToken)
		default:
			out.WriteByte(content[i])
			i++
		}
	}
	return out.String()
}
