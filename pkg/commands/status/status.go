// Package status implements mmv status. It reads the sidecars and never
// writes anything.
package status

import (
	"github.com/arthur-debert/mmv/pkg/changeset"
	"github.com/arthur-debert/mmv/pkg/filesystem"
	"github.com/arthur-debert/mmv/pkg/logging"
)

// Options defines the options for the status command.
type Options struct {
	Dir string
	FS  filesystem.FS
}

// Change is a pending move or delete.
type Change struct {
	Source string `json:"source" yaml:"source"`
	Action string `json:"action" yaml:"action"`
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}

// Result describes the state of a workspace.
type Result struct {
	Dir     string            `json:"dir" yaml:"dir"`
	Clean   bool              `json:"clean" yaml:"clean"`
	Entries int               `json:"entries" yaml:"entries"`
	Summary changeset.Summary `json:"summary" yaml:"summary"`
	Changes []Change          `json:"changes" yaml:"changes"`

	// Lines past the end of the shorter sidecar
	UnmappedSources []string `json:"unmapped_sources" yaml:"unmapped_sources"`
	UnmappedTargets []string `json:"unmapped_targets" yaml:"unmapped_targets"`
}

// Run reports the status of the workspace at opts.Dir.
func Run(opts Options) (*Result, error) {
	log := logging.GetLogger("commands.status")
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

	return FromImport(imp), nil
}

// FromImport summarizes an import without consuming it.
func FromImport(imp *changeset.Import) *Result {
	result := &Result{
		Dir:             imp.Workspace().Dir(),
		Clean:           imp.IsClean(),
		Entries:         imp.Len(),
		Summary:         imp.Summary(),
		Changes:         []Change{},
		UnmappedSources: append([]string{}, imp.UnmappedSources()...),
		UnmappedTargets: []string{},
	}

	for _, source := range sources(imp.Pairs()) {
		action, _ := imp.Get(source)
		if action.IsIgnore() {
			continue
		}
		result.Changes = append(result.Changes, Change{
			Source: source,
			Action: action.Kind().String(),
			Target: action.Target(),
		})
	}

	for _, a := range imp.UnmappedTargets() {
		result.UnmappedTargets = append(result.UnmappedTargets, a.String())
	}
	return result
}

// sources returns the distinct paired sources in path order.
func sources(pairs []changeset.Pair) []string {
	seen := make(map[string]bool, len(pairs))
	var out []string
	for _, p := range pairs {
		if !seen[p.Source] {
			seen[p.Source] = true
			out = append(out, p.Source)
		}
	}
	changeset.SortPaths(out)
	return out
}
