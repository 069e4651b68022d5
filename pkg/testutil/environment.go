package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mmv/pkg/changeset"
	"github.com/arthur-debert/mmv/pkg/filesystem"
	"github.com/arthur-debert/mmv/pkg/paths"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// TestEnvironment holds a workspace directory and a destination root
type TestEnvironment struct {
	WorkspaceDir string
	TargetDir    string
	FS           filesystem.FS
	Type         EnvType

	t *testing.T
}

// NewTestEnvironment creates a new test environment. The state directory
// always points at a temp dir so log files never leak out of the test.
func NewTestEnvironment(t *testing.T, envType EnvType) *TestEnvironment {
	t.Helper()

	env := &TestEnvironment{t: t, Type: envType}

	switch envType {
	case EnvMemoryOnly:
		env.WorkspaceDir = "/virtual/workspace"
		env.TargetDir = "/virtual/target"
		env.FS = filesystem.NewMemoryFS()
	case EnvIsolated:
		tempDir := t.TempDir()
		env.WorkspaceDir = filepath.Join(tempDir, "workspace")
		env.TargetDir = filepath.Join(tempDir, "target")
		env.FS = filesystem.NewOS()
	}

	require.NoError(t, env.FS.MkdirAll(env.WorkspaceDir, 0755))
	t.Setenv(paths.EnvStateDir, t.TempDir())
	t.Setenv(paths.EnvSource, env.WorkspaceDir)

	return env
}

// Workspace returns the workspace handle without checking its sidecars
func (env *TestEnvironment) Workspace() changeset.Workspace {
	return changeset.At(env.FS, env.WorkspaceDir)
}

// AddFile writes content to a workspace-relative path, creating parents
func (env *TestEnvironment) AddFile(rel, content string) string {
	env.t.Helper()
	return env.write(env.WorkspaceDir, rel, content)
}

// AddFiles writes each path with its own name as content
func (env *TestEnvironment) AddFiles(rels ...string) {
	env.t.Helper()
	for _, rel := range rels {
		env.AddFile(rel, rel)
	}
}

// AddTargetFile writes a file under the destination root
func (env *TestEnvironment) AddTargetFile(rel, content string) string {
	env.t.Helper()
	return env.write(env.TargetDir, rel, content)
}

func (env *TestEnvironment) write(root, rel, content string) string {
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(env.t, env.FS.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(env.t, env.FS.WriteFile(full, []byte(content), 0644))
	return full
}

// ReadFile returns the content of an absolute path, failing the test if
// it cannot be read
func (env *TestEnvironment) ReadFile(path string) string {
	env.t.Helper()
	data, err := env.FS.ReadFile(path)
	require.NoError(env.t, err)
	return string(data)
}

// Exists reports whether path exists, without following symlinks
func (env *TestEnvironment) Exists(path string) bool {
	_, err := env.FS.Lstat(path)
	return err == nil
}

// WorkspacePath joins rel onto the workspace directory
func (env *TestEnvironment) WorkspacePath(rel string) string {
	return filepath.Join(env.WorkspaceDir, filepath.FromSlash(rel))
}

// TargetPath joins rel onto the destination root
func (env *TestEnvironment) TargetPath(rel string) string {
	return filepath.Join(env.TargetDir, filepath.FromSlash(rel))
}

// WriteSidecars writes the given lines, one per line, to both sidecars
func (env *TestEnvironment) WriteSidecars(sources, targets []string) {
	env.t.Helper()
	ws := env.Workspace()
	require.NoError(env.t, env.FS.WriteFile(ws.SourcesPath(), []byte(joinLines(sources)), 0644))
	require.NoError(env.t, env.FS.WriteFile(ws.TargetsPath(), []byte(joinLines(targets)), 0644))
}

// WriteTargets rewrites only the targets sidecar, the way an edit would
func (env *TestEnvironment) WriteTargets(targets ...string) {
	env.t.Helper()
	require.NoError(env.t, env.FS.WriteFile(env.Workspace().TargetsPath(), []byte(joinLines(targets)), 0644))
}

// ReadSidecars returns the lines of both sidecars
func (env *TestEnvironment) ReadSidecars() (sources, targets []string) {
	env.t.Helper()
	ws := env.Workspace()
	return splitLines(env.ReadFile(ws.SourcesPath())), splitLines(env.ReadFile(ws.TargetsPath()))
}

// Tree lists regular files under root as sorted slash paths relative to
// root, sidecars included
func (env *TestEnvironment) Tree(root string) []string {
	env.t.Helper()
	var out []string
	err := env.FS.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			out = append(out, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(env.t, err)
	sort.Strings(out)
	return out
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
