package execute_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/mmv/pkg/commands/execute"
	"github.com/arthur-debert/mmv/pkg/commands/initialize"
	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/executor"
	"github.com/arthur-debert/mmv/pkg/testutil"
)

func setup(t *testing.T) *testutil.TestEnvironment {
	t.Helper()
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	env.AddFile("a.txt", "alpha")
	env.AddFile("b.txt", "beta")
	env.AddFile("c.txt", "gamma")
	_, err := initialize.Run(initialize.Options{Dir: env.WorkspaceDir, FS: env.FS})
	require.NoError(t, err)
	return env
}

func TestExecute(t *testing.T) {
	for _, strategy := range []executor.Strategy{executor.Sequential, executor.Staged} {
		t.Run(strategy.String(), func(t *testing.T) {
			env := setup(t)
			env.WriteTargets("renamed/a.txt", "", " c.txt")

			var progress []string
			result, err := execute.Run(context.Background(), execute.Options{
				Dir:      env.WorkspaceDir,
				Target:   env.TargetDir,
				FS:       env.FS,
				Strategy: strategy,
				Progress: func(r executor.Result) { progress = append(progress, r.Source) },
			})
			require.NoError(t, err)

			assert.Equal(t, 1, result.Moved)
			assert.Equal(t, 1, result.Deleted)
			assert.Equal(t, 1, result.Skipped)
			assert.Equal(t, []string{"a.txt", "b.txt", "c.txt"}, progress)

			assert.Equal(t, "alpha", env.ReadFile(env.TargetPath("renamed/a.txt")))
			assert.False(t, env.Exists(env.WorkspacePath("a.txt")))
			assert.False(t, env.Exists(env.WorkspacePath("b.txt")))
			assert.True(t, env.Exists(env.WorkspacePath("c.txt")))
			assert.False(t, env.Exists(env.TargetPath("c.txt")))
		})
	}
}

func TestExecuteDryRun(t *testing.T) {
	env := setup(t)
	env.WriteTargets("x.txt", "", " c.txt")

	result, err := execute.Run(context.Background(), execute.Options{
		Dir:    env.WorkspaceDir,
		Target: env.TargetDir,
		FS:     env.FS,
		DryRun: true,
	})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 3, result.Skipped)
	assert.Subset(t, env.Tree(env.WorkspaceDir), []string{"a.txt", "b.txt", "c.txt"})
	assert.False(t, env.Exists(env.TargetPath("x.txt")))
}

func TestExecuteExistingTarget(t *testing.T) {
	env := setup(t)
	env.WriteTargets("x.txt", " b.txt", " c.txt")
	env.AddTargetFile("x.txt", "already here")

	_, err := execute.Run(context.Background(), execute.Options{
		Dir:    env.WorkspaceDir,
		Target: env.TargetDir,
		FS:     env.FS,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))
	assert.Equal(t, "already here", env.ReadFile(env.TargetPath("x.txt")))
	assert.True(t, env.Exists(env.WorkspacePath("a.txt")))

	t.Run("overwrite", func(t *testing.T) {
		_, err := execute.Run(context.Background(), execute.Options{
			Dir:       env.WorkspaceDir,
			Target:    env.TargetDir,
			FS:        env.FS,
			Overwrite: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "alpha", env.ReadFile(env.TargetPath("x.txt")))
	})
}

func TestExecuteRequiresCleanWorkspace(t *testing.T) {
	env := setup(t)
	env.WriteTargets("x.txt", "y.txt")

	_, err := execute.Run(context.Background(), execute.Options{
		Dir:    env.WorkspaceDir,
		Target: env.TargetDir,
		FS:     env.FS,
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotClean))
	assert.Equal(t, errors.ExitDataErr, errors.ExitCode(err))
	assert.True(t, env.Exists(env.WorkspacePath("a.txt")))
	assert.False(t, env.Exists(env.TargetPath("x.txt")))
}

func TestExecuteErrors(t *testing.T) {
	t.Run("not initialized", func(t *testing.T) {
		env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
		_, err := execute.Run(context.Background(), execute.Options{
			Dir:    env.WorkspaceDir,
			Target: env.TargetDir,
			FS:     env.FS,
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrNotInitialized))
	})

	t.Run("missing target", func(t *testing.T) {
		env := setup(t)
		_, err := execute.Run(context.Background(), execute.Options{Dir: env.WorkspaceDir, FS: env.FS})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	})

	t.Run("duplicate targets", func(t *testing.T) {
		env := setup(t)
		env.WriteTargets("same.txt", "same.txt", " c.txt")
		_, err := execute.Run(context.Background(), execute.Options{
			Dir:    env.WorkspaceDir,
			Target: env.TargetDir,
			FS:     env.FS,
		})
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
		assert.True(t, env.Exists(env.WorkspacePath("a.txt")))
	})
}
