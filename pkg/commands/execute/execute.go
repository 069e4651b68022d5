// Package execute implements mmv execute: apply a clean change set,
// placing moved files under a destination root.
package execute

import (
	"context"

	"github.com/arthur-debert/mmv/pkg/changeset"
	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/executor"
	"github.com/arthur-debert/mmv/pkg/filesystem"
	"github.com/arthur-debert/mmv/pkg/logging"
	"github.com/arthur-debert/mmv/pkg/paths"
)

// Options defines the options for the execute command.
type Options struct {
	// Dir is the workspace directory.
	Dir string
	// Target is the destination root move targets are resolved against.
	Target string
	FS     filesystem.FS

	DryRun    bool
	Reflink   filesystem.CloneMode
	Strategy  executor.Strategy
	Overwrite bool

	// Progress is called once per entry as it completes.
	Progress func(executor.Result)
}

// Result summarizes an execution.
type Result struct {
	Target  string            `json:"target" yaml:"target"`
	DryRun  bool              `json:"dry_run" yaml:"dry_run"`
	Moved   int               `json:"moved" yaml:"moved"`
	Deleted int               `json:"deleted" yaml:"deleted"`
	Skipped int               `json:"skipped" yaml:"skipped"`
	Entries []Outcome         `json:"entries" yaml:"entries"`
	Results []executor.Result `json:"-" yaml:"-"`
}

// Outcome is the serializable form of one executor.Result.
type Outcome struct {
	Source  string `json:"source" yaml:"source"`
	Action  string `json:"action" yaml:"action"`
	Target  string `json:"target,omitempty" yaml:"target,omitempty"`
	Skipped bool   `json:"skipped" yaml:"skipped"`
	Cloned  bool   `json:"cloned" yaml:"cloned"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Run executes the change set of the workspace at opts.Dir. The sidecars
// are left untouched so a run can be inspected afterwards.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("commands.execute")
	log.Debug().Str("dir", opts.Dir).Str("target", opts.Target).Msg("Executing command")

	if opts.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput, "a target directory is required")
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	ws, err := changeset.Open(fsys, opts.Dir)
	if err != nil {
		return nil, err
	}
	imp, err := ws.Import()
	if err != nil {
		return nil, err
	}
	cs, err := imp.RequireClean()
	if err != nil {
		return nil, err
	}

	if p, err := paths.New(opts.Dir); err == nil {
		if inside, _ := p.IsInSource(opts.Target); inside {
			log.Warn().Str("target", opts.Target).Msg("Target is inside the workspace")
		}
	}

	exec := executor.New(executor.Options{
		DryRun:    opts.DryRun,
		Reflink:   opts.Reflink,
		Strategy:  opts.Strategy,
		Overwrite: opts.Overwrite,
		Logger:    log,
		FS:        fsys,
		Progress:  opts.Progress,
	})

	results, err := exec.Execute(ctx, cs, opts.Target)
	return summarize(opts, results), err
}

func summarize(opts Options, results []executor.Result) *Result {
	r := &Result{
		Target:  opts.Target,
		DryRun:  opts.DryRun,
		Entries: make([]Outcome, 0, len(results)),
		Results: results,
	}
	for _, res := range results {
		o := Outcome{
			Source:  res.Source,
			Action:  res.Action.Kind().String(),
			Target:  res.TargetPath,
			Skipped: res.Skipped,
			Cloned:  res.Cloned,
			Message: res.Message,
		}
		if res.Error != nil {
			o.Error = res.Error.Error()
		}
		r.Entries = append(r.Entries, o)

		switch {
		case !res.Success:
		case res.Skipped:
			r.Skipped++
		case res.Action.IsMove():
			r.Moved++
		case res.Action.IsDelete():
			r.Deleted++
		}
	}
	return r
}
