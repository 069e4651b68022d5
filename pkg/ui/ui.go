// Package ui renders command results. It supports terminal (rich), text
// (plain), JSON and YAML output.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/mmv/pkg/errors"
	"github.com/arthur-debert/mmv/pkg/executor"
	"github.com/arthur-debert/mmv/pkg/ui/json"
	"github.com/arthur-debert/mmv/pkg/ui/terminal"
	"github.com/arthur-debert/mmv/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers.
type Renderer interface {
	// RenderResult renders a command result
	RenderResult(result interface{}) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// ProgressRenderer is implemented by renderers that report execute
// entries as they complete. Structured formats only render the final
// result.
type ProgressRenderer interface {
	Progress(result executor.Result)
}

// NewRenderer creates a new renderer based on the specified format.
// It automatically detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output, true), nil
	case FormatText:
		return terminal.New(output, false), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return yaml.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
