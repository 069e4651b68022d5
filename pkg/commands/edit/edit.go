// Package edit implements mmv edit: open both sidecars in the user's
// editor, then report the resulting status.
package edit

import (
	"context"

	"github.com/arthur-debert/mmv/pkg/changeset"
	"github.com/arthur-debert/mmv/pkg/commands/status"
	"github.com/arthur-debert/mmv/pkg/config"
	"github.com/arthur-debert/mmv/pkg/editor"
	"github.com/arthur-debert/mmv/pkg/filesystem"
	"github.com/arthur-debert/mmv/pkg/logging"
)

// Options defines the options for the edit command.
type Options struct {
	Dir    string
	FS     filesystem.FS
	Editor config.Editor
	// Runner defaults to editor.ExecRunner on the process streams.
	Runner editor.Runner
}

// Result carries the status read back after the editor exits.
type Result struct {
	Status *status.Result `json:"status" yaml:"status"`
}

// Run launches the editor and blocks until it exits.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logging.GetLogger("commands.edit")
	log.Debug().Str("dir", opts.Dir).Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	runner := opts.Runner
	if runner == nil {
		runner = editor.ExecRunner{}
	}

	ws, err := changeset.Open(fsys, opts.Dir)
	if err != nil {
		return nil, err
	}

	// Fail before launching if a sidecar is unreadable.
	if _, err := ws.Import(); err != nil {
		return nil, err
	}

	if err := editor.Launch(ctx, runner, opts.Editor, ws.SourcesPath(), ws.TargetsPath()); err != nil {
		return nil, err
	}

	imp, err := ws.Import()
	if err != nil {
		return nil, err
	}
	st := status.FromImport(imp)
	log.Info().Bool("clean", st.Clean).Int("changes", len(st.Changes)).Msg("Editor closed")
	return &Result{Status: st}, nil
}
