// Package update implements mmv update: reconcile the change set with the
// files currently on disk.
package update

import (
	"github.com/arthur-debert/mmv/pkg/changeset"
	"github.com/arthur-debert/mmv/pkg/filesystem"
	"github.com/arthur-debert/mmv/pkg/logging"
	"github.com/arthur-debert/mmv/pkg/scan"
)

// Options defines the options for the update command.
type Options struct {
	Dir  string
	Scan scan.Options
	FS   filesystem.FS
}

// Result lists the paths that appeared and disappeared since the last
// export.
type Result struct {
	Dir     string   `json:"dir" yaml:"dir"`
	Added   []string `json:"added" yaml:"added"`
	Removed []string `json:"removed" yaml:"removed"`
	Files   int      `json:"files" yaml:"files"`
}

// Run reconciles the workspace. It fails with ErrNotInitialized or
// ErrNotClean before scanning anything.
func Run(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.update")
	log.Debug().Str("dir", opts.Dir).Msg("Executing command")

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

	tree, err := scan.Tree(fsys, opts.Dir, opts.Scan)
	if err != nil {
		return nil, err
	}

	reconciled, report := changeset.Reconcile(cs, tree)
	if err := reconciled.Export(); err != nil {
		return nil, err
	}

	log.Info().
		Int("added", len(report.Added)).
		Int("removed", len(report.Removed)).
		Msg("Updated change set")

	return &Result{
		Dir:     opts.Dir,
		Added:   report.Added,
		Removed: report.Removed,
		Files:   reconciled.Len(),
	}, nil
}
