package mmv

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/testutil"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, name string, args []string) error {
	return m.Called(name, args).Error(0)
}

func TestWorkflow(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddFile("a.txt", "alpha")
	env.AddFile("b.txt", "beta")

	res := runCLI(t, env, nil, "init")
	require.NoError(t, res.err)
	assert.Equal(t, "Initialized (2 files)\n", res.stdout)

	res = runCLI(t, env, nil, "init")
	require.NoError(t, res.err)
	assert.Equal(t, "Already initialized. Use -f to reset\n", res.stdout)

	res = runCLI(t, env, nil, "status")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Workspace is clean\n")

	env.WriteTargets("x/a.txt", "")

	res = runCLI(t, env, nil, "status")
	require.NoError(t, res.err)
	assert.Equal(t, "➤ a.txt -> x/a.txt\n✕ b.txt\nWorkspace is clean\n1 to move, 1 to delete, 0 ignored\n", res.stdout)

	res = runCLI(t, env, nil, "execute", env.TargetDir)
	require.NoError(t, res.err)
	assert.Equal(t,
		"➤ "+env.TargetPath("x/a.txt")+" ✓\n✕ "+env.WorkspacePath("b.txt")+" ✓\n1 moved, 1 deleted\n",
		res.stdout)

	assert.Equal(t, "alpha", env.ReadFile(env.TargetPath("x/a.txt")))
	assert.False(t, env.Exists(env.WorkspacePath("a.txt")))
	assert.False(t, env.Exists(env.WorkspacePath("b.txt")))
}

func TestUpdateCommand(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddFiles("a.txt", "b.txt")
	require.NoError(t, runCLI(t, env, nil, "init").err)

	require.NoError(t, env.FS.Remove(env.WorkspacePath("a.txt")))
	env.AddFiles("c.txt")

	res := runCLI(t, env, nil, "refresh")
	require.NoError(t, res.err)
	assert.Equal(t, "+ c.txt\n- a.txt\n", res.stdout)

	sources, _ := env.ReadSidecars()
	assert.Equal(t, []string{"b.txt", "c.txt"}, sources)
}

func TestNotCleanExitCode(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddFiles("a.txt", "b.txt", "c.txt")
	require.NoError(t, runCLI(t, env, nil, "init").err)
	env.WriteTargets(" a.txt", " b.txt")

	for _, args := range [][]string{{"update"}, {"execute", env.TargetDir}} {
		res := runCLI(t, env, nil, args...)
		require.Error(t, res.err, args[0])
		assert.True(t, errors.IsErrorCode(res.err, errors.ErrNotClean), args[0])
		assert.Equal(t, 65, errors.ExitCode(res.err))
	}

	res := runCLI(t, env, nil, "status")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Workspace is not clean\n")
}

func TestNotInitializedExitCode(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)

	for _, args := range [][]string{{"update"}, {"status"}, {"edit"}, {"execute", env.TargetDir}} {
		res := runCLI(t, env, &MockRunner{}, args...)
		assert.True(t, errors.IsErrorCode(res.err, errors.ErrNotInitialized), args[0])
		assert.Equal(t, 65, errors.ExitCode(res.err))
	}
}

func TestEditCommand(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddFiles("a.txt")
	require.NoError(t, runCLI(t, env, nil, "init").err)
	t.Setenv("MMV_EDITOR_COMMAND", "fake-editor --wait")

	runner := &MockRunner{}
	ws := env.Workspace()
	runner.On("Run", "fake-editor", []string{"--wait", ws.SourcesPath(), ws.TargetsPath()}).
		Run(func(mock.Arguments) { env.WriteTargets("b.txt") }).
		Return(nil)

	res := runCLI(t, env, runner, "edit")
	require.NoError(t, res.err)
	runner.AssertExpectations(t)
	assert.Contains(t, res.stdout, "➤ a.txt -> b.txt\n")
}

func TestExecuteTargetArguments(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddFile("a.txt", "alpha")
	require.NoError(t, runCLI(t, env, nil, "init").err)
	env.WriteTargets("z.txt")

	res := runCLI(t, env, nil, "exec")
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrInvalidInput))

	res = runCLI(t, env, nil, "exec", "-t", env.TargetDir, "/elsewhere")
	assert.True(t, errors.IsErrorCode(res.err, errors.ErrInvalidInput))

	res = runCLI(t, env, nil, "exec", "--dry-run", "-t", env.TargetDir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Dry run: 1 entries checked, nothing changed\n")
	assert.True(t, env.Exists(env.WorkspacePath("a.txt")))

	res = runCLI(t, env, nil, "exec", "-t", env.TargetDir)
	require.NoError(t, res.err)
	assert.Equal(t, "alpha", env.ReadFile(env.TargetPath("z.txt")))
}

func TestResolveTarget(t *testing.T) {
	got, err := resolveTarget("", []string{"out"})
	require.NoError(t, err)
	assert.Equal(t, "out", got)

	got, err = resolveTarget("out", nil)
	require.NoError(t, err)
	assert.Equal(t, "out", got)

	got, err = resolveTarget("out", []string{"out"})
	require.NoError(t, err)
	assert.Equal(t, "out", got)

	_, err = resolveTarget("", nil)
	assert.Error(t, err)
	_, err = resolveTarget("a", []string{"b"})
	assert.Error(t, err)
}

func TestStatusJSON(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddFiles("a.txt")
	require.NoError(t, runCLI(t, env, nil, "init").err)

	res := runCLI(t, env, nil, "status", "--format", "json")
	require.NoError(t, res.err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &decoded))
	assert.Equal(t, true, decoded["clean"])
	assert.Equal(t, float64(1), decoded["entries"])
}

func TestConfigCommand(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	t.Setenv("MMV_EXECUTE_STRATEGY", "staged")

	res := runCLI(t, env, nil, "config")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "# workspace file: "+env.WorkspacePath(".mmv.toml"))
	assert.Regexp(t, `strategy = ['"]staged['"]`, res.stdout)

	res = runCLI(t, env, nil, "config", "--defaults")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "[execute]")
}

func TestVersionCommand(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	res := runCLI(t, env, nil, "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "mmv version ")
}

func TestHelpTopics(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	res := runCLI(t, env, nil, "help", "topics")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "workflow")
	assert.Contains(t, res.stdout, "sidecar-format")
	assert.Contains(t, res.stdout, "--dry-run")
}
