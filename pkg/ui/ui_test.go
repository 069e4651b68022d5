package ui_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/mmv/pkg/commands/status"
	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/ui"
)

func TestNewRenderer(t *testing.T) {
	for _, f := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON, ui.FormatYAML} {
		t.Run(f.String(), func(t *testing.T) {
			r, err := ui.NewRenderer(f, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, r)
		})
	}

	_, err := ui.NewRenderer(ui.Format(999), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestProgressOnlyForHumanFormats(t *testing.T) {
	r, err := ui.NewRenderer(ui.FormatText, &bytes.Buffer{})
	require.NoError(t, err)
	_, ok := r.(ui.ProgressRenderer)
	assert.True(t, ok)

	r, err = ui.NewRenderer(ui.FormatJSON, &bytes.Buffer{})
	require.NoError(t, err)
	_, ok = r.(ui.ProgressRenderer)
	assert.False(t, ok)
}

func TestStructuredOutput(t *testing.T) {
	result := &status.Result{
		Dir:     "/w",
		Clean:   true,
		Changes: []status.Change{{Source: "a", Action: "move", Target: "b"}},
	}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		r, _ := ui.NewRenderer(ui.FormatJSON, &buf)
		require.NoError(t, r.RenderResult(result))

		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, true, decoded["clean"])
		assert.Len(t, decoded["changes"], 1)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		r, _ := ui.NewRenderer(ui.FormatYAML, &buf)
		require.NoError(t, r.RenderResult(result))

		var decoded map[string]interface{}
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "/w", decoded["dir"])
	})

	t.Run("json error carries code", func(t *testing.T) {
		var buf bytes.Buffer
		r, _ := ui.NewRenderer(ui.FormatJSON, &buf)
		require.NoError(t, r.RenderError(errors.New(errors.ErrNotClean, "not clean")))

		var decoded map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, "NOT_CLEAN", decoded["code"])
	})
}
