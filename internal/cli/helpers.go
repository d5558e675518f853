package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/jaa/musicorg/internal/config"
	"github.com/jaa/musicorg/internal/output"
)

func loadConfig(app *AppContext) (config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve working directory: %w", err)
	}

	cfg, err := config.Load(config.LoadOptions{
		ExplicitPath: strings.TrimSpace(app.Opts.ConfigPath),
		WorkingDir:   wd,
	})
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func isTTY(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// promptsAllowed is false for --no-input and for a stdin that is a
// non-terminal file such as a pipe or /dev/null. Readers that are not files
// are scripted input and count as interactive.
func promptsAllowed(app *AppContext) bool {
	if app.Opts.NoInput {
		return false
	}
	if _, ok := app.IO.In.(*os.File); ok {
		return isTTY(app.IO.In)
	}
	return app.IO.In != nil
}

// promptWriter keeps prompts off stdout when stdout carries JSON.
func promptWriter(app *AppContext) io.Writer {
	if app.Opts.JSON {
		return app.IO.ErrOut
	}
	return app.IO.Out
}

func newEmitter(app *AppContext, verbose bool, progress *output.Progress) output.EventEmitter {
	if app.Opts.JSON {
		return output.NewJSONEmitter(app.IO.Out)
	}
	return output.NewHumanEmitter(app.IO.Out, app.IO.ErrOut, app.Opts.Quiet, verbose).WithProgress(progress)
}

func progressStyle(app *AppContext, verbose bool, mode config.ProgressMode) output.ProgressStyle {
	switch {
	case app.Opts.JSON || app.Opts.Quiet:
		return output.ProgressOff
	case verbose:
		return output.ProgressLines
	}
	switch mode {
	case config.ProgressAlways:
		return output.ProgressInPlace
	case config.ProgressNever:
		return output.ProgressOff
	default:
		if output.SupportsInPlaceUpdates(app.IO.Out) {
			return output.ProgressInPlace
		}
		return output.ProgressOff
	}
}
