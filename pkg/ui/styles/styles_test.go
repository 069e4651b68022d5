package styles

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDefinesEveryStyle(t *testing.T) {
	reg := Default(lipgloss.NewRenderer(&bytes.Buffer{}))

	for _, name := range []string{Added, Removed, Move, Delete, Success, Error, Warning, Clean, Dirty, Muted, Bold} {
		assert.True(t, reg.Has(name), name)
	}
}

func TestRenderWithoutColor(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(termenv.Ascii)
	reg := Default(r)

	assert.Equal(t, "✓", reg.Render(Success, "✓"))
	assert.Equal(t, "text", reg.Render("Unknown", "text"))
}

func TestRenderWithColor(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)
	reg := Default(r)

	out := reg.Render(Success, "ok")
	assert.Contains(t, out, "ok")
	assert.NotEqual(t, "ok", out)
}

func TestParseErrors(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})

	_, err := Parse([]byte("styles: ["), r)
	assert.Error(t, err)

	_, err = Parse([]byte("styles:\n  X:\n    foreground: nope\n"), r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown color")
}
