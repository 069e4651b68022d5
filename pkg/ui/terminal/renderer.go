// Package terminal renders command results for people: styled when the
// output is a color terminal, plain otherwise.
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/mmv/pkg/commands/edit"
	"github.com/arthur-debert/mmv/pkg/commands/execute"
	"github.com/arthur-debert/mmv/pkg/commands/initialize"
	"github.com/arthur-debert/mmv/pkg/commands/status"
	"github.com/arthur-debert/mmv/pkg/commands/update"
	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/executor"
	"github.com/arthur-debert/mmv/pkg/ui/styles"
)

// Glyphs
const (
	MoveMark   = "➤"
	DeleteMark = "✕"
	OkMark     = "✓"
	FailMark   = "✗"
)

// Renderer writes human-readable output
type Renderer struct {
	output   io.Writer
	styles   *styles.Registry
	streamed bool
}

// New creates a terminal renderer. With color false every style renders
// as plain text.
func New(w io.Writer, color bool) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if color {
		if lr.ColorProfile() == termenv.Ascii {
			lr.SetColorProfile(termenv.ANSI256)
		}
	} else {
		lr.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{output: w, styles: styles.Default(lr)}
}

func (r *Renderer) style(name, text string) string {
	return r.styles.Render(name, text)
}

func (r *Renderer) println(parts ...string) error {
	_, err := fmt.Fprintln(r.output, strings.Join(parts, " "))
	return err
}

// RenderResult renders the result of an mmv command
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *initialize.Result:
		return r.renderInit(v)
	case *update.Result:
		return r.renderUpdate(v)
	case *status.Result:
		return r.renderStatus(v)
	case *edit.Result:
		return r.renderStatus(v.Status)
	case *execute.Result:
		return r.renderExecute(v)
	case fmt.Stringer:
		return r.println(v.String())
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", v)
		return err
	}
}

// RenderError renders an error message with appropriate styling
func (r *Renderer) RenderError(err error) error {
	return r.println(r.style(styles.Error, "Error:"), errors.UserMessage(err))
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.println(msg)
}

// Progress prints one execute entry as it completes. Ignored entries are
// silent.
func (r *Renderer) Progress(res executor.Result) {
	r.streamed = true
	if line := r.entryLine(res.Action.IsMove(), res.Action.IsDelete(), res.SourcePath, res.TargetPath,
		res.Skipped, res.Message, res.Error == nil); line != "" {
		_ = r.println(line)
	}
}

func (r *Renderer) entryLine(move, del bool, source, target string, skipped bool, message string, ok bool) string {
	var head string
	switch {
	case move:
		head = r.style(styles.Move, MoveMark) + " " + target
	case del:
		head = r.style(styles.Delete, DeleteMark) + " " + source
	default:
		return ""
	}

	switch {
	case !ok:
		return head + " " + r.style(styles.Error, FailMark)
	case skipped:
		return head + " " + r.style(styles.Muted, "("+message+")")
	default:
		return head + " " + r.style(styles.Success, OkMark)
	}
}

func (r *Renderer) renderInit(res *initialize.Result) error {
	if res.AlreadyInitialized {
		return r.println(r.style(styles.Error, "Already initialized."), "Use -f to reset")
	}
	label := "Initialized"
	if res.Reset {
		label = "Reset"
	}
	return r.println(r.style(styles.Success, label), r.style(styles.Muted, files(res.Files)))
}

func (r *Renderer) renderUpdate(res *update.Result) error {
	for _, p := range res.Added {
		if err := r.println(r.style(styles.Added, "+"), p); err != nil {
			return err
		}
	}
	for _, p := range res.Removed {
		if err := r.println(r.style(styles.Removed, "-"), p); err != nil {
			return err
		}
	}
	if len(res.Added) == 0 && len(res.Removed) == 0 {
		return r.println(r.style(styles.Muted, "Up to date"), r.style(styles.Muted, files(res.Files)))
	}
	return nil
}

func (r *Renderer) renderStatus(res *status.Result) error {
	if res == nil {
		return nil
	}
	for _, c := range res.Changes {
		var line string
		switch c.Action {
		case "move":
			line = r.style(styles.Move, MoveMark) + " " + c.Source + " " + r.style(styles.Muted, "->") + " " + c.Target
		case "delete":
			line = r.style(styles.Delete, DeleteMark) + " " + c.Source
		}
		if err := r.println(line); err != nil {
			return err
		}
	}
	for _, s := range res.UnmappedSources {
		if err := r.println(r.style(styles.Warning, "unmapped source:"), s); err != nil {
			return err
		}
	}
	for _, t := range res.UnmappedTargets {
		if err := r.println(r.style(styles.Warning, "unmapped target:"), fmt.Sprintf("%q", t)); err != nil {
			return err
		}
	}

	if res.Clean {
		if err := r.println(r.style(styles.Clean, "Workspace is clean")); err != nil {
			return err
		}
	} else {
		if err := r.println(r.style(styles.Dirty, "Workspace is not clean")); err != nil {
			return err
		}
	}
	counts := fmt.Sprintf("%d to move, %d to delete, %d ignored",
		res.Summary.Moves, res.Summary.Deletes, res.Summary.Ignores)
	if unmapped := len(res.UnmappedSources) + len(res.UnmappedTargets); unmapped > 0 {
		counts += fmt.Sprintf(", %d unmapped", unmapped)
	}
	return r.println(r.style(styles.Muted, counts))
}

func (r *Renderer) renderExecute(res *execute.Result) error {
	if !r.streamed {
		for _, e := range res.Entries {
			line := r.entryLine(e.Action == "move", e.Action == "delete", e.Source, e.Target,
				e.Skipped, e.Message, e.Error == "")
			if line == "" {
				continue
			}
			if err := r.println(line); err != nil {
				return err
			}
		}
	}

	summary := fmt.Sprintf("%d moved, %d deleted", res.Moved, res.Deleted)
	if res.DryRun {
		summary = fmt.Sprintf("Dry run: %d entries checked, nothing changed", res.Skipped)
	}
	return r.println(r.style(styles.Bold, summary))
}

func files(n int) string {
	if n == 1 {
		return "(1 file)"
	}
	return fmt.Sprintf("(%d files)", n)
}
