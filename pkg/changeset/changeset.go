package changeset

import (
	"bytes"

	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/logging"
)

// Entry is one source path and its Action.
type Entry struct {
	Source string
	Action Action
}

// Summary counts the actions in a mapping.
type Summary struct {
	Moves   int `json:"moves" yaml:"moves"`
	Deletes int `json:"deletes" yaml:"deletes"`
	Ignores int `json:"ignores" yaml:"ignores"`
}

// ChangeSet is a fully paired mapping from source path to Action.
type ChangeSet struct {
	workspace Workspace
	mapping   map[string]Action
}

// New takes ownership of mapping.
func New(ws Workspace, mapping map[string]Action) *ChangeSet {
	if mapping == nil {
		mapping = make(map[string]Action)
	}
	return &ChangeSet{workspace: ws, mapping: mapping}
}

// FromTree builds the initial change set for a scan: every path is
// ignored with its own path as the comment.
func FromTree(ws Workspace, tree []string) *ChangeSet {
	mapping := make(map[string]Action, len(tree))
	for _, p := range tree {
		mapping[p] = Ignore(p)
	}
	return New(ws, mapping)
}

func (c *ChangeSet) Workspace() Workspace { return c.workspace }

func (c *ChangeSet) Len() int { return len(c.mapping) }

func (c *ChangeSet) Get(source string) (Action, bool) {
	a, ok := c.mapping[source]
	return a, ok
}

// Keys returns the source paths in ComparePaths order.
func (c *ChangeSet) Keys() []string {
	keys := make([]string, 0, len(c.mapping))
	for k := range c.mapping {
		keys = append(keys, k)
	}
	SortPaths(keys)
	return keys
}

// Entries returns the mapping in ComparePaths order.
func (c *ChangeSet) Entries() []Entry {
	keys := c.Keys()
	entries := make([]Entry, len(keys))
	for i, k := range keys {
		entries[i] = Entry{Source: k, Action: c.mapping[k]}
	}
	return entries
}

// Summary counts moves, deletes and ignores.
func (c *ChangeSet) Summary() Summary {
	var s Summary
	for _, a := range c.mapping {
		count(&s, a)
	}
	return s
}

func count(s *Summary, a Action) {
	switch a.Kind() {
	case KindMove:
		s.Moves++
	case KindDelete:
		s.Deletes++
	case KindIgnore:
		s.Ignores++
	}
}

// Split hands the workspace and mapping to the caller. The ChangeSet must
// not be used afterwards.
func (c *ChangeSet) Split() (Workspace, map[string]Action) {
	ws, mapping := c.workspace, c.mapping
	c.mapping = nil
	return ws, mapping
}

// Export writes both sidecars, one line per entry in key order. Each file
// is replaced atomically, but the pair is not: a failure on the second
// write leaves a fresh sources file next to the old targets.
func (c *ChangeSet) Export() error {
	logger := logging.GetLogger("changeset")

	var sources, targets bytes.Buffer
	for _, e := range c.Entries() {
		sources.WriteString(e.Source)
		sources.WriteByte('\n')
		targets.WriteString(e.Action.String())
		targets.WriteByte('\n')
	}

	fsys := c.workspace.FS()
	if err := fsys.WriteFile(c.workspace.SourcesPath(), sources.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", c.workspace.SourcesPath())
	}
	if err := fsys.WriteFile(c.workspace.TargetsPath(), targets.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", c.workspace.TargetsPath())
	}

	logger.Debug().
		Str("dir", c.workspace.Dir()).
		Int("entries", len(c.mapping)).
		Msg("Exported change set")
	return nil
}
