// Package initialize implements mmv init: scan the workspace and write
// sidecars that ignore every file.
package initialize

import (
	"github.com/arthur-debert/mmv/pkg/changeset"
	"github.com/arthur-debert/mmv/pkg/filesystem"
	"github.com/arthur-debert/mmv/pkg/logging"
	"github.com/arthur-debert/mmv/pkg/scan"
)

// Options defines the options for the init command.
type Options struct {
	// Dir is the workspace directory.
	Dir string
	// Force re-initializes an existing workspace, dropping its change set.
	Force bool
	// Scan tunes the tree scan.
	Scan scan.Options
	// FS defaults to the OS filesystem.
	FS filesystem.FS
}

// Result reports what init did.
type Result struct {
	Dir string `json:"dir" yaml:"dir"`
	// AlreadyInitialized is set when init refused to run without Force.
	AlreadyInitialized bool `json:"already_initialized" yaml:"already_initialized"`
	// Reset is set when an existing change set was replaced.
	Reset bool `json:"reset" yaml:"reset"`
	Files int  `json:"files" yaml:"files"`
}

// Run initializes the workspace at opts.Dir.
func Run(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.init")
	log.Debug().Str("dir", opts.Dir).Bool("force", opts.Force).Msg("Executing command")

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	ws := changeset.At(fsys, opts.Dir)
	result := &Result{Dir: opts.Dir}

	if ws.IsInitialized() {
		if !opts.Force {
			result.AlreadyInitialized = true
			return result, nil
		}
		result.Reset = true
	}

	tree, err := scan.Tree(fsys, opts.Dir, opts.Scan)
	if err != nil {
		return nil, err
	}

	if err := changeset.FromTree(ws, tree).Export(); err != nil {
		return nil, err
	}

	result.Files = len(tree)
	log.Info().Str("dir", opts.Dir).Int("files", len(tree)).Msg("Initialized workspace")
	return result, nil
}
