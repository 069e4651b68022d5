// Package editor launches the user's editor over the two sidecar files.
package editor

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/mmv/pkg/config"
	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/logging"
)

// Argument placeholders expanded in editor.args
const (
	SourcesPlaceholder = "{sources}"
	TargetsPlaceholder = "{targets}"
)

// DefaultCommand is used when neither the config nor the environment names an editor
const DefaultCommand = "vim"

// vimArgs opens both files side by side with scroll binding, the sources
// window read-only.
var vimArgs = []string{
	"-O", SourcesPlaceholder, TargetsPlaceholder,
	"-c", "setlocal readonly | setlocal nobuflisted | windo set scb | set cursorline",
}

var plainArgs = []string{SourcesPlaceholder, TargetsPlaceholder}

// Runner runs a command attached to the terminal and waits for it
type Runner interface {
	Run(ctx context.Context, name string, args []string) error
}

// ExecRunner runs commands with os/exec. Nil streams default to the
// process's own stdin, stdout and stderr.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (r ExecRunner) Run(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

// Invocation is a resolved editor command line
type Invocation struct {
	Name string
	Args []string
}

// Resolve builds the command line for cfg. getenv is os.Getenv outside
// tests. The command may carry its own flags ("code --wait"); they come
// before the configured arguments.
func Resolve(cfg config.Editor, sources, targets string, getenv func(string) string) Invocation {
	command := strings.TrimSpace(cfg.Command)
	if command == "" {
		command = strings.TrimSpace(getenv("VISUAL"))
	}
	if command == "" {
		command = strings.TrimSpace(getenv("EDITOR"))
	}
	if command == "" {
		command = DefaultCommand
	}

	fields := strings.Fields(command)
	name, extra := fields[0], fields[1:]

	args := cfg.Args
	if len(args) == 0 {
		args = defaultArgs(name)
	}

	expanded := make([]string, 0, len(extra)+len(args))
	expanded = append(expanded, extra...)
	for _, arg := range args {
		arg = strings.ReplaceAll(arg, SourcesPlaceholder, sources)
		arg = strings.ReplaceAll(arg, TargetsPlaceholder, targets)
		expanded = append(expanded, arg)
	}

	return Invocation{Name: name, Args: expanded}
}

func defaultArgs(name string) []string {
	switch filepath.Base(name) {
	case "vim", "nvim", "gvim", "vi", "mvim":
		return vimArgs
	default:
		return plainArgs
	}
}

// Launch resolves the editor and runs it to completion.
func Launch(ctx context.Context, runner Runner, cfg config.Editor, sources, targets string) error {
	logger := logging.GetLogger("editor")

	inv := Resolve(cfg, sources, targets, os.Getenv)
	logging.LogCommand(inv.Name, inv.Args)

	if err := runner.Run(ctx, inv.Name, inv.Args); err != nil {
		logger.Error().Err(err).Str("editor", inv.Name).Msg("Editor failed")
		return errors.Wrapf(err, errors.ErrEditor, "editor %s failed", inv.Name).
			WithDetail("command", inv.Name)
	}
	return nil
}
