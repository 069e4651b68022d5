package changeset

import (
	"bufio"
	"io"
	"strings"

	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/logging"
)

// maxLineLength bounds a single sidecar line.
const maxLineLength = 1 << 20

// Pair is one positional match between the two sidecars.
type Pair struct {
	Source string
	Action Action
}

// Import is the result of reading the sidecars back after an edit. Lines
// are matched by index; lines past the end of the shorter file land in
// the unmapped lists.
type Import struct {
	workspace       Workspace
	pairs           []Pair
	mapping         map[string]Action
	unmappedSources []string
	unmappedTargets []Action
}

// Load reads both sidecars of ws. Source paths are cleaned, and a
// repeated source path keeps the action of its last occurrence.
func Load(ws Workspace) (*Import, error) {
	logger := logging.GetLogger("changeset")

	sources, err := readLines(ws, ws.SourcesPath())
	if err != nil {
		return nil, err
	}
	targets, err := readLines(ws, ws.TargetsPath())
	if err != nil {
		return nil, err
	}

	imp := &Import{
		workspace: ws,
		mapping:   make(map[string]Action, len(sources)),
	}

	for i := 0; i < len(sources) || i < len(targets); i++ {
		switch {
		case i < len(sources) && i < len(targets):
			source, action := CleanSource(sources[i]), Parse(targets[i])
			imp.pairs = append(imp.pairs, Pair{Source: source, Action: action})
			imp.mapping[source] = action
		case i < len(sources):
			imp.unmappedSources = append(imp.unmappedSources, sources[i])
		default:
			imp.unmappedTargets = append(imp.unmappedTargets, Parse(targets[i]))
		}
	}

	logger.Debug().
		Str("dir", ws.Dir()).
		Int("sources", len(sources)).
		Int("targets", len(targets)).
		Bool("clean", imp.IsClean()).
		Msg("Imported change set")

	return imp, nil
}

func readLines(ws Workspace, path string) ([]string, error) {
	f, err := ws.FS().Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to open %s", path)
	}
	defer f.Close()

	lines, err := scanLines(f)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRead, "failed to read %s", path)
	}
	return lines, nil
}

func scanLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

func (i *Import) Workspace() Workspace { return i.workspace }

// Pairs returns the matched lines in file order, duplicates included.
func (i *Import) Pairs() []Pair { return i.pairs }

// Len is the number of distinct paired sources.
func (i *Import) Len() int { return len(i.mapping) }

func (i *Import) Get(source string) (Action, bool) {
	a, ok := i.mapping[source]
	return a, ok
}

// UnmappedSources are source lines with no targets line.
func (i *Import) UnmappedSources() []string { return i.unmappedSources }

// UnmappedTargets are targets lines with no sources line.
func (i *Import) UnmappedTargets() []Action { return i.unmappedTargets }

// IsClean reports whether every line was paired.
func (i *Import) IsClean() bool {
	return len(i.unmappedSources) == 0 && len(i.unmappedTargets) == 0
}

// Summary counts the paired actions.
func (i *Import) Summary() Summary {
	var s Summary
	for _, a := range i.mapping {
		count(&s, a)
	}
	return s
}

// Clean promotes a clean import to a ChangeSet. The Import must not be
// used after a successful promotion.
func (i *Import) Clean() (*ChangeSet, bool) {
	if !i.IsClean() {
		return nil, false
	}
	cs := New(i.workspace, i.mapping)
	i.mapping = nil
	return cs, true
}

// RequireClean is Clean with the ErrNotClean error the commands report.
func (i *Import) RequireClean() (*ChangeSet, error) {
	cs, ok := i.Clean()
	if !ok {
		return nil, errors.New(errors.ErrNotClean, "Not clean - use mmv edit to correct your changeset").
			WithDetail("unmapped_sources", len(i.unmappedSources)).
			WithDetail("unmapped_targets", len(i.unmappedTargets))
	}
	return cs, nil
}
