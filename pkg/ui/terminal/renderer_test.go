package terminal

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/mmv/pkg/changeset"
	"github.com/arthur-debert/mmv/pkg/commands/execute"
	"github.com/arthur-debert/mmv/pkg/commands/initialize"
	"github.com/arthur-debert/mmv/pkg/commands/status"
	"github.com/arthur-debert/mmv/pkg/commands/update"
	"github.com/arthur-debert/mmv/pkg/executor"
)

func render(t *testing.T, v interface{}) string {
	t.Helper()
	var buf bytes.Buffer
	assert.NoError(t, New(&buf, false).RenderResult(v))
	return buf.String()
}

func TestRenderInit(t *testing.T) {
	assert.Equal(t, "Initialized (2 files)\n", render(t, &initialize.Result{Files: 2}))
	assert.Equal(t, "Reset (1 file)\n", render(t, &initialize.Result{Files: 1, Reset: true}))
	assert.Equal(t, "Already initialized. Use -f to reset\n", render(t, &initialize.Result{AlreadyInitialized: true}))
}

func TestRenderUpdate(t *testing.T) {
	out := render(t, &update.Result{Added: []string{"c.txt"}, Removed: []string{"b.txt"}})
	assert.Equal(t, "+ c.txt\n- b.txt\n", out)

	assert.Equal(t, "Up to date (3 files)\n", render(t, &update.Result{Files: 3}))
}

func TestRenderStatus(t *testing.T) {
	out := render(t, &status.Result{
		Clean:   true,
		Summary: changeset.Summary{Moves: 1, Deletes: 1, Ignores: 2},
		Changes: []status.Change{
			{Source: "a.txt", Action: "move", Target: "x.txt"},
			{Source: "b.txt", Action: "delete"},
		},
	})
	assert.Equal(t, "➤ a.txt -> x.txt\n✕ b.txt\nWorkspace is clean\n1 to move, 1 to delete, 2 ignored\n", out)

	out = render(t, &status.Result{UnmappedSources: []string{"c.txt"}, UnmappedTargets: []string{""}})
	assert.Contains(t, out, "unmapped source: c.txt\n")
	assert.Contains(t, out, "unmapped target: \"\"\n")
	assert.Contains(t, out, "Workspace is not clean\n")
	assert.Contains(t, out, "0 to move, 0 to delete, 0 ignored, 2 unmapped\n")
}

func TestRenderExecute(t *testing.T) {
	t.Run("entries without streaming", func(t *testing.T) {
		out := render(t, &execute.Result{
			Moved:   1,
			Deleted: 1,
			Entries: []execute.Outcome{
				{Source: "/w/a", Action: "move", Target: "/t/x"},
				{Source: "/w/b", Action: "delete"},
				{Source: "/w/c", Action: "ignore", Skipped: true},
			},
		})
		assert.Equal(t, "➤ /t/x ✓\n✕ /w/b ✓\n1 moved, 1 deleted\n", out)
	})

	t.Run("streamed entries are not repeated", func(t *testing.T) {
		var buf bytes.Buffer
		r := New(&buf, false)
		r.Progress(executor.Result{
			Action:     changeset.Move("x"),
			SourcePath: "/w/a",
			TargetPath: "/t/x",
			Success:    true,
		})
		r.Progress(executor.Result{Action: changeset.Ignore("c"), Skipped: true, Success: true})
		r.Progress(executor.Result{
			Action:     changeset.Delete(),
			SourcePath: "/w/b",
			Error:      stderrors.New("boom"),
		})
		assert.NoError(t, r.RenderResult(&execute.Result{Moved: 1, Entries: []execute.Outcome{{Action: "move"}}}))
		assert.Equal(t, "➤ /t/x ✓\n✕ /w/b ✗\n1 moved, 0 deleted\n", buf.String())
	})

	t.Run("dry run", func(t *testing.T) {
		out := render(t, &execute.Result{
			DryRun:  true,
			Skipped: 1,
			Entries: []execute.Outcome{{Action: "move", Target: "/t/x", Skipped: true, Message: "dry run - no changes made"}},
		})
		assert.Equal(t, "➤ /t/x (dry run - no changes made)\nDry run: 1 entries checked, nothing changed\n", out)
	})
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, New(&buf, false).RenderError(stderrors.New("bad")))
	assert.Equal(t, "Error: bad\n", buf.String())
}
