package executor

import (
	"context"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/mmv/pkg/changeset"
	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/filesystem"
	"github.com/arthur-debert/mmv/pkg/logging"
)

// Options contains configuration for the executor
type Options struct {
	DryRun    bool
	Reflink   filesystem.CloneMode
	Strategy  Strategy
	Overwrite bool
	Logger    zerolog.Logger

	// FS overrides the change set's workspace filesystem
	FS filesystem.FS

	// Progress, if set, is called as each entry finishes
	Progress func(Result)
}

// Executor applies change sets
type Executor struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}
	return &Executor{opts: opts, logger: logger}
}

// step is one entry resolved against the workspace and destination root
type step struct {
	entry  changeset.Entry
	source string
	target string

	// inPlace is set when target already is the source file, possibly
	// reached through a symlink or a relative root
	inPlace bool
}

// Execute applies cs with destinations resolved under root. It returns
// the results of every entry it reached; on failure the last result holds
// the error, which is also returned.
func (e *Executor) Execute(ctx context.Context, cs *changeset.ChangeSet, root string) ([]Result, error) {
	fsys := e.opts.FS
	if fsys == nil {
		fsys = cs.Workspace().FS()
	}

	done := logging.LogOperationStart(e.logger, "execute")
	defer done()

	steps, err := plan(fsys, cs, root)
	if err != nil {
		return nil, err
	}
	if err := checkDuplicateTargets(steps); err != nil {
		return nil, err
	}

	e.logger.Info().
		Str("workspace", cs.Workspace().Dir()).
		Str("root", root).
		Int("entries", len(steps)).
		Str("strategy", e.opts.Strategy.String()).
		Str("reflink", e.opts.Reflink.String()).
		Bool("dry_run", e.opts.DryRun).
		Msg("Executing change set")

	if e.opts.DryRun {
		return e.dryRun(ctx, fsys, steps)
	}
	if e.opts.Strategy == Staged {
		return e.staged(ctx, fsys, steps)
	}
	return e.sequential(ctx, fsys, steps)
}

func plan(fsys filesystem.FS, cs *changeset.ChangeSet, root string) ([]step, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve %s", root)
	}

	entries := cs.Entries()
	steps := make([]step, len(entries))
	for i, entry := range entries {
		s := step{
			entry:  entry,
			source: filepath.Join(cs.Workspace().Dir(), filepath.FromSlash(entry.Source)),
		}
		if entry.Action.IsMove() {
			s.target = filepath.Join(absRoot, filepath.FromSlash(entry.Action.Target()))
			s.inPlace = sameFile(fsys, s.source, s.target)
		}
		steps[i] = s
	}
	return steps, nil
}

// sameFile reports whether both paths name one existing file. Copying a
// file onto itself truncates it before the first byte is read.
func sameFile(fsys filesystem.FS, a, b string) bool {
	if a == b {
		return true
	}
	ia, err := fsys.Stat(a)
	if err != nil {
		return false
	}
	ib, err := fsys.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ia, ib)
}

// checkDuplicateTargets rejects change sets where two sources would land
// on the same destination, before anything touches the disk.
func checkDuplicateTargets(steps []step) error {
	seen := make(map[string]string)
	for _, s := range steps {
		if s.target == "" {
			continue
		}
		if prev, ok := seen[s.target]; ok {
			return errors.Newf(errors.ErrInvalidInput, "%s and %s both move to %s", prev, s.entry.Source, s.entry.Action.Target()).
				WithDetail("target", s.target)
		}
		seen[s.target] = s.entry.Source
	}
	return nil
}

func (e *Executor) sequential(ctx context.Context, fsys filesystem.FS, steps []step) ([]Result, error) {
	results := make([]Result, 0, len(steps))
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		start := time.Now()
		result := e.newResult(s)

		switch {
		case s.entry.Action.IsIgnore():
			result.Skipped = true
			result.Success = true
			result.Message = "ignored"

		case s.entry.Action.IsMove():
			if s.inPlace {
				result.Skipped = true
				result.Success = true
				result.Message = "already in place"
				break
			}
			cloned, err := e.copy(fsys, s)
			if err == nil {
				err = e.remove(fsys, s)
			}
			result.Cloned = cloned
			result.Error = err
			result.Success = err == nil

		case s.entry.Action.IsDelete():
			err := e.remove(fsys, s)
			result.Error = err
			result.Success = err == nil
		}

		result.Duration = time.Since(start)
		results = e.record(results, result)
		if result.Error != nil {
			return results, result.Error
		}
	}
	return results, nil
}

func (e *Executor) staged(ctx context.Context, fsys filesystem.FS, steps []step) ([]Result, error) {
	type copied struct {
		target string
		cloned bool
	}
	copies := make(map[string]copied)
	var made []string

	rollback := func() {
		for _, target := range made {
			if err := fsys.Remove(target); err != nil {
				e.logger.Warn().Err(err).Str("target", target).Msg("Failed to remove staged copy")
			}
		}
	}

	for _, s := range steps {
		if !s.entry.Action.IsMove() || s.inPlace {
			continue
		}
		if err := ctx.Err(); err != nil {
			rollback()
			return nil, err
		}

		cloned, err := e.copy(fsys, s)
		if err != nil {
			rollback()
			result := e.newResult(s)
			result.Error = err
			return e.record(nil, result), err
		}
		copies[s.entry.Source] = copied{target: s.target, cloned: cloned}
		made = append(made, s.target)
	}

	results := make([]Result, 0, len(steps))
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		start := time.Now()
		result := e.newResult(s)

		switch {
		case s.entry.Action.IsIgnore():
			result.Skipped = true
			result.Success = true
			result.Message = "ignored"

		case s.entry.Action.IsMove() && s.inPlace:
			result.Skipped = true
			result.Success = true
			result.Message = "already in place"

		default:
			err := e.remove(fsys, s)
			result.Cloned = copies[s.entry.Source].cloned
			result.Error = err
			result.Success = err == nil
		}

		result.Duration = time.Since(start)
		results = e.record(results, result)
		if result.Error != nil {
			return results, result.Error
		}
	}
	return results, nil
}

// dryRun reports what would happen. Destination collisions are still
// detected since that only needs a stat.
func (e *Executor) dryRun(ctx context.Context, fsys filesystem.FS, steps []step) ([]Result, error) {
	results := make([]Result, 0, len(steps))
	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		result := e.newResult(s)
		result.Skipped = true
		result.Success = true
		result.Message = "dry run - no changes made"

		switch {
		case s.entry.Action.IsIgnore():
			result.Message = "ignored"
		case s.entry.Action.IsMove() && s.inPlace:
			result.Message = "already in place"
		case s.entry.Action.IsMove():
			if err := e.checkTarget(fsys, s); err != nil {
				result.Success = false
				result.Error = err
			}
		}

		results = e.record(results, result)
		if result.Error != nil {
			return results, result.Error
		}
	}
	return results, nil
}

func (e *Executor) newResult(s step) Result {
	return Result{
		Source:     s.entry.Source,
		Action:     s.entry.Action,
		SourcePath: s.source,
		TargetPath: s.target,
	}
}

func (e *Executor) record(results []Result, r Result) []Result {
	event := e.logger.Debug()
	if r.Error != nil {
		event = e.logger.Error().Err(r.Error)
	}
	event.
		Str("source", r.Source).
		Str("action", r.Action.Kind().String()).
		Str("target", r.TargetPath).
		Bool("skipped", r.Skipped).
		Bool("cloned", r.Cloned).
		Dur("duration", r.Duration).
		Msg("Entry processed")

	if e.opts.Progress != nil {
		e.opts.Progress(r)
	}
	return append(results, r)
}

func (e *Executor) checkTarget(fsys filesystem.FS, s step) error {
	if e.opts.Overwrite {
		return nil
	}
	if _, err := fsys.Lstat(s.target); err == nil {
		return errors.Newf(errors.ErrAlreadyExists, "%s already exists (use --overwrite to replace it)", s.target).
			WithDetail("source", s.entry.Source).
			WithDetail("target", s.target)
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, errors.ErrFileCopy, "failed to check %s", s.target)
	}
	return nil
}

func (e *Executor) copy(fsys filesystem.FS, s step) (bool, error) {
	if err := e.checkTarget(fsys, s); err != nil {
		return false, err
	}

	if err := fsys.MkdirAll(filepath.Dir(s.target), 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(s.target))
	}

	cloned, err := fsys.CopyFile(s.source, s.target, e.opts.Reflink)
	if err != nil {
		return false, errors.Wrapf(err, errors.ErrFileCopy, "failed to copy %s to %s", s.source, s.target).
			WithDetail("source", s.entry.Source)
	}
	return cloned, nil
}

func (e *Executor) remove(fsys filesystem.FS, s step) error {
	if err := fsys.Remove(s.source); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", s.source).
			WithDetail("source", s.entry.Source)
	}
	return nil
}
