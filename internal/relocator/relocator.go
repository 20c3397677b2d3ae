// Package relocator moves the contents of a package directory to the
// directory of a new package under each known source base, then prunes the
// emptied ancestry of the old package.
package relocator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/wizzomafizzo/rebrand/internal/config"
	"github.com/wizzomafizzo/rebrand/internal/logging"
	"github.com/wizzomafizzo/rebrand/internal/pkgpath"
)

// ErrConflict is returned when a destination entry already exists and the
// conflict policy does not allow resolving it.
var ErrConflict = errors.New("relocation conflict")

// ConflictError lists every colliding destination of one source base.
type ConflictError struct {
	Base  string
	Paths []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s in %s: destination already exists: %s",
		ErrConflict, e.Base, strings.Join(e.Paths, ", "))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// Move is one entry of a relocation plan: the old and new package
// directories under a source base, all relative to the project root.
type Move struct {
	Base   string
	OldDir string
	NewDir string
}

// NewPlan builds one Move per source base.
func NewPlan(bases []string, oldPkg, newPkg pkgpath.Package) []Move {
	moves := make([]Move, 0, len(bases))
	for _, base := range bases {
		base = filepath.FromSlash(base)
		moves = append(moves, Move{
			Base:   base,
			OldDir: filepath.Join(base, oldPkg.Dir()),
			NewDir: filepath.Join(base, newPkg.Dir()),
		})
	}
	return moves
}

// Result is the outcome of one Move.
type Result struct {
	Move
	// Skipped is set when the old package directory does not exist under the base.
	Skipped bool
	// Entries are the moved paths, relative to the root, as source -> destination.
	Entries map[string]string
	// Pruned lists removed empty directories relative to the root, deepest first.
	Pruned []string
}

// Report collects the results of every planned Move.
type Report struct {
	Results []Result
}

// Relocated returns the results for bases where something was moved.
func (r *Report) Relocated() []Result {
	var moved []Result
	for _, result := range r.Results {
		if !result.Skipped {
			moved = append(moved, result)
		}
	}
	return moved
}

// Options configure a Relocator.
type Options struct {
	Bases  []string
	Policy config.ConflictPolicy
	// DryRun plans and checks conflicts without touching the filesystem.
	DryRun bool
}

// Relocator moves package directories under a fixed set of source bases.
type Relocator struct {
	fs     afero.Fs
	bases  []string
	policy config.ConflictPolicy
	dryRun bool
}

// New creates a Relocator. A zero Policy means ConflictFail.
func New(fs afero.Fs, opts Options) *Relocator {
	policy := opts.Policy
	if policy == "" {
		policy = config.ConflictFail
	}
	return &Relocator{
		fs:     fs,
		bases:  opts.Bases,
		policy: policy,
		dryRun: opts.DryRun,
	}
}

// Relocate moves oldPkg's directory contents to newPkg's directory under every
// source base of root. Bases without the old directory are skipped. The
// returned report covers every base processed before an error.
func (r *Relocator) Relocate(ctx context.Context, root string, oldPkg, newPkg pkgpath.Package) (*Report, error) {
	logger := logging.Get(ctx)
	report := &Report{}

	for _, move := range NewPlan(r.bases, oldPkg, newPkg) {
		result, err := r.relocateBase(root, move, oldPkg, newPkg)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, result)

		if result.Skipped {
			logger.Debug().Str("dir", move.OldDir).Msg("old package directory not found, skipping base")
			continue
		}
		logger.Info().
			Str("from", move.OldDir).
			Str("to", move.NewDir).
			Int("entries", len(result.Entries)).
			Strs("pruned", result.Pruned).
			Msg("relocated package directory")
	}

	return report, nil
}

func (r *Relocator) relocateBase(root string, move Move, oldPkg, newPkg pkgpath.Package) (Result, error) {
	result := Result{Move: move, Entries: map[string]string{}}
	oldDir := filepath.Join(root, move.OldDir)
	newDir := filepath.Join(root, move.NewDir)

	isDir, err := afero.IsDir(r.fs, oldDir)
	if err != nil || !isDir || oldPkg == newPkg {
		result.Skipped = true
		return result, nil
	}

	// when one package is nested in the other, the entry leading to the
	// nested directory must stay where it is
	exclude := ""
	if oldPkg.Contains(newPkg) {
		exclude = newPkg.Segments()[len(oldPkg.Segments())]
	}
	if newPkg.Contains(oldPkg) {
		child := oldPkg.Segments()[len(newPkg.Segments())]
		if exists, _ := afero.Exists(r.fs, filepath.Join(oldDir, child)); exists {
			return result, &ConflictError{
				Base:  filepath.ToSlash(move.Base),
				Paths: []string{filepath.ToSlash(filepath.Join(move.NewDir, child))},
			}
		}
	}

	ops, err := r.plan(root, move.Base, oldDir, newDir, exclude)
	if err != nil {
		return result, err
	}
	for _, op := range ops.renames {
		result.Entries[rel(root, op.src)] = rel(root, op.dst)
	}
	if r.dryRun {
		return result, nil
	}

	if err := r.fs.MkdirAll(newDir, 0o755); err != nil {
		return result, fmt.Errorf("failed to create %s: %w", move.NewDir, err)
	}
	if err := r.apply(ops); err != nil {
		return result, fmt.Errorf("failed to move %s to %s: %w", move.OldDir, move.NewDir, err)
	}

	result.Pruned = r.prune(root, filepath.Join(root, move.Base), oldPkg.Dir())
	return result, nil
}

type rename struct {
	src string
	dst string
}

type operations struct {
	// removals are destinations cleared before renaming (overwrite policy)
	removals []string
	renames  []rename
	// merged are source directories emptied by a merge, parents first
	merged []string
}

func (r *Relocator) plan(root, base, oldDir, newDir, exclude string) (*operations, error) {
	ops := &operations{}

	if r.policy == config.ConflictOverwrite {
		entries, err := afero.ReadDir(r.fs, oldDir)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", rel(root, oldDir), err)
		}
		for _, entry := range entries {
			if entry.Name() == exclude {
				continue
			}
			src := filepath.Join(oldDir, entry.Name())
			dst := filepath.Join(newDir, entry.Name())
			if exists, _ := afero.Exists(r.fs, dst); exists {
				ops.removals = append(ops.removals, dst)
			}
			ops.renames = append(ops.renames, rename{src: src, dst: dst})
		}
		return ops, nil
	}

	var conflicts []string
	reserved := map[string]bool{}
	if err := r.planMerge(ops, oldDir, newDir, exclude, reserved, func(dst string) {
		conflicts = append(conflicts, rel(root, dst))
	}); err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{Base: filepath.ToSlash(base), Paths: conflicts}
	}
	return ops, nil
}

// planMerge walks src against dst. Missing destinations become renames,
// directories present on both sides are merged recursively, and anything
// else is a collision resolved by the policy.
func (r *Relocator) planMerge(
	ops *operations, src, dst, exclude string, reserved map[string]bool, conflict func(string),
) error {
	entries, err := afero.ReadDir(r.fs, src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}

	for _, entry := range entries {
		if entry.Name() == exclude {
			continue
		}
		from := filepath.Join(src, entry.Name())
		to := filepath.Join(dst, entry.Name())

		existing, statErr := r.fs.Stat(to)
		switch {
		case statErr != nil && !reserved[to]:
			reserved[to] = true
			ops.renames = append(ops.renames, rename{src: from, dst: to})
		case statErr == nil && existing.IsDir() && entry.IsDir():
			ops.merged = append(ops.merged, from)
			if err := r.planMerge(ops, from, to, "", reserved, conflict); err != nil {
				return err
			}
		case r.policy == config.ConflictRename:
			free := r.freeName(to, reserved)
			reserved[free] = true
			ops.renames = append(ops.renames, rename{src: from, dst: free})
		default:
			conflict(to)
		}
	}
	return nil
}

// freeName returns the first name.N.ext next to path that neither exists nor is reserved.
func (r *Relocator) freeName(path string, reserved map[string]bool) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem, ext = base, ""
	}

	for n := 1; ; n++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s.%d%s", stem, n, ext))
		if reserved[candidate] {
			continue
		}
		if exists, _ := afero.Exists(r.fs, candidate); !exists {
			return candidate
		}
	}
}

func (r *Relocator) apply(ops *operations) error {
	for _, path := range ops.removals {
		if err := r.fs.RemoveAll(path); err != nil {
			return fmt.Errorf("failed to replace %s: %w", path, err)
		}
	}
	for _, op := range ops.renames {
		if err := r.fs.MkdirAll(filepath.Dir(op.dst), 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", filepath.Dir(op.dst), err)
		}
		if err := r.fs.Rename(op.src, op.dst); err != nil {
			return fmt.Errorf("failed to rename %s: %w", op.src, err)
		}
	}
	for i := len(ops.merged) - 1; i >= 0; i-- {
		if empty, _ := r.isEmptyDir(ops.merged[i]); empty {
			_ = r.fs.Remove(ops.merged[i])
		}
	}
	return nil
}

// prune removes pkgDir and its ancestors below baseDir while they are empty.
func (r *Relocator) prune(root, baseDir, pkgDir string) []string {
	var pruned []string
	for current := pkgDir; current != "." && current != string(filepath.Separator); current = filepath.Dir(current) {
		dir := filepath.Join(baseDir, current)
		empty, err := r.isEmptyDir(dir)
		if err != nil || !empty {
			break
		}
		if err := r.fs.Remove(dir); err != nil {
			break
		}
		pruned = append(pruned, rel(root, dir))
	}
	return pruned
}

func (r *Relocator) isEmptyDir(path string) (bool, error) {
	entries, err := afero.ReadDir(r.fs, path)
	if err != nil {
		return false, err //nolint:wrapcheck // only used as a stop signal
	}
	return len(entries) == 0, nil
}

func rel(root, path string) string {
	relative, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relative)
}
