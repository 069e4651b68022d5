package mmv

import (
	"context"
	"io"
	"os"

	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/ui"
	"github.com/arthur-debert/mmv/pkg/ui/terminal"
)

// Execute runs the command tree with args and reports a failure on
// stderr. It returns the process exit code.
func Execute(ctx context.Context, args []string, stderr io.Writer) int {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ReportError(stderr, err, a.errorColor(stderr))
		return errors.ExitCode(err)
	}
	return 0
}

// ReportError prints err for a person reading w
func ReportError(w io.Writer, err error, color bool) {
	_ = terminal.New(w, color).RenderError(err)
}

// errorColor decides whether errors written to w are styled. --no-color
// and output.color win over terminal detection; setup may have failed
// before the configuration was loaded.
func (a *app) errorColor(w io.Writer) bool {
	color := ""
	if a.cfg != nil {
		color = a.cfg.Output.Color
	}
	if a.noColor {
		color = "never"
	}

	switch color {
	case "never":
		return false
	case "always":
		return true
	}

	if format, err := ui.ParseFormat(a.format); err == nil {
		switch format {
		case ui.FormatText:
			return false
		case ui.FormatTerminal:
			return true
		}
	}

	f, ok := w.(*os.File)
	return ok && ui.DetectFormat(f) == ui.FormatTerminal
}
