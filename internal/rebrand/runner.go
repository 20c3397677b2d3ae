package rebrand

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/wizzomafizzo/rebrand/internal/config"
	"github.com/wizzomafizzo/rebrand/internal/logging"
	"github.com/wizzomafizzo/rebrand/internal/pathfilter"
	"github.com/wizzomafizzo/rebrand/internal/relocator"
	"github.com/wizzomafizzo/rebrand/internal/rewriter"
)

// Options configure a Runner.
type Options struct {
	Config *config.Config
	Out    io.Writer
	Err    io.Writer
	DryRun bool
}

// Runner executes a Plan against a project tree.
type Runner struct {
	rewriter  *rewriter.Rewriter
	relocator *relocator.Relocator
	out       io.Writer
	errOut    io.Writer
	dryRun    bool
}

// Result holds the per-pass reports of a run.
type Result struct {
	Rewrites   []*rewriter.Report
	Relocation *relocator.Report
}

// Failed returns every file that could not be rewritten, across all passes.
func (r *Result) Failed() []rewriter.Failure {
	var failed []rewriter.Failure
	for _, report := range r.Rewrites {
		failed = append(failed, report.Failed...)
	}
	return failed
}

// NewRunner wires a rewriter and relocator for the given configuration.
func NewRunner(fs afero.Fs, opts Options) (*Runner, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	filter, err := pathfilter.New(cfg.SkipPatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to build path filter: %w", err)
	}

	out, errOut := opts.Out, opts.Err
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}

	return &Runner{
		rewriter: rewriter.New(fs, rewriter.Options{
			Filter: filter,
			Policy: cfg.OnError,
			DryRun: opts.DryRun,
		}),
		relocator: relocator.New(fs, relocator.Options{
			Bases:  cfg.SourceBases,
			Policy: cfg.OnConflict,
			DryRun: opts.DryRun,
		}),
		out:    out,
		errOut: errOut,
		dryRun: opts.DryRun,
	}, nil
}

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	updatedColor = color.New(color.FgGreen)
	failedColor  = color.New(color.FgRed)
	doneColor    = color.New(color.FgGreen, color.Bold)
)

// Run applies the substitutions in order and relocates the package
// directories last, so a failed relocation still leaves rewritten contents.
func (r *Runner) Run(ctx context.Context, root string, plan *Plan) (*Result, error) {
	logger := logging.Get(ctx)
	result := &Result{}

	r.printf(headerColor, "Rebranding: %s\n", plan.Summary())
	logger.Info().
		Str("package", plan.NewPackage.String()).
		Str("project", plan.ProjectName).
		Msg("starting rebrand")

	for _, sub := range plan.Substitutions {
		r.printf(headerColor, "Replacing %s...\n", sub.Label)

		report, err := r.rewriter.ReplaceAll(ctx, root, sub.Old, sub.New)
		if report != nil {
			result.Rewrites = append(result.Rewrites, report)
			r.printRewrite(report)
		}
		if err != nil {
			return result, fmt.Errorf("replacing %s: %w", sub.Label, err)
		}
	}

	r.printf(headerColor, "Refactoring package directories...\n")
	relocation, err := r.relocator.Relocate(ctx, root, plan.OldPackage, plan.NewPackage)
	result.Relocation = relocation
	if relocation != nil {
		r.printRelocation(relocation)
	}
	if err != nil {
		return result, fmt.Errorf("relocating package directories: %w", err)
	}

	if r.dryRun {
		r.printf(doneColor, "Dry run done, no files were changed.\n")
	} else {
		r.printf(doneColor, "Rebrand done.\n")
	}
	logger.Info().Int("failed", len(result.Failed())).Msg("rebrand finished")

	return result, nil
}

func (r *Runner) printRewrite(report *rewriter.Report) {
	for _, path := range report.Updated {
		_, _ = updatedColor.Fprintln(r.out, "  updated:", path)
	}
	for _, failure := range report.Failed {
		_, _ = failedColor.Fprintln(r.errOut, "  failed to update:", failure.Path, failure.Err)
	}
}

func (r *Runner) printRelocation(report *relocator.Report) {
	for _, result := range report.Relocated() {
		_, _ = updatedColor.Fprintln(r.out, "  moved contents:",
			filepath.ToSlash(result.OldDir), "->", filepath.ToSlash(result.NewDir))

		sources := make([]string, 0, len(result.Entries))
		for src := range result.Entries {
			sources = append(sources, src)
		}
		sort.Strings(sources)
		for _, src := range sources {
			if filepath.Base(src) != filepath.Base(result.Entries[src]) {
				_, _ = fmt.Fprintln(r.out, "    renamed on conflict:", src, "->", result.Entries[src])
			}
		}
	}
}

func (r *Runner) printf(c *color.Color, format string, args ...any) {
	_, _ = c.Fprintf(r.out, format, args...)
}
