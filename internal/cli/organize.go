package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"

	"github.com/jaa/musicorg/internal/config"
	"github.com/jaa/musicorg/internal/engine"
	"github.com/jaa/musicorg/internal/exitcode"
	"github.com/jaa/musicorg/internal/library"
	"github.com/jaa/musicorg/internal/output"
	"github.com/jaa/musicorg/internal/relocate"
)

type organizeFlags struct {
	copy      bool
	assumeYes bool
	dryRun    bool
	progress  string
}

// organizeSetup is everything an organize or plan run needs, with flags
// already layered over the config.
type organizeSetup struct {
	opts      engine.Options
	organizer *engine.Organizer
	progress  *output.Progress
}

func prepareOrganize(app *AppContext, flags organizeFlags) (organizeSetup, error) {
	progressMode, err := parseProgressMode(flags.progress)
	if err != nil {
		return organizeSetup{}, withExitCode(exitcode.InvalidUsage, err)
	}

	cfg, err := loadConfig(app)
	if err != nil {
		return organizeSetup{}, withExitCode(exitcode.InvalidConfig, err)
	}
	if err := config.Validate(cfg); err != nil {
		return organizeSetup{}, withExitCode(exitcode.InvalidConfig, err)
	}
	if progressMode == "" {
		progressMode = cfg.Defaults.Progress
	}

	outputDir := strings.TrimSpace(app.Opts.OutputDir)
	if outputDir == "" && cfg.Defaults.OutputDir != "" {
		outputDir, err = config.ExpandPath(cfg.Defaults.OutputDir)
		if err != nil {
			return organizeSetup{}, withExitCode(exitcode.InvalidConfig, err)
		}
	}

	mode := relocate.Mode(cfg.Defaults.Mode)
	if flags.copy {
		mode = relocate.ModeCopy
	}
	if mode == relocate.ModeCopy && outputDir == "" {
		return organizeSetup{}, withExitCode(exitcode.InvalidUsage, errors.New("--copy requires --output-dir"))
	}

	verbose := app.Opts.Verbose || cfg.Defaults.Verbose
	progress := output.NewProgress(app.IO.Out, progressStyle(app, verbose, progressMode))
	organizer := engine.NewOrganizer(newEmitter(app, verbose, progress), progress)

	assumeYes := flags.assumeYes || cfg.Defaults.AssumeYes
	if promptsAllowed(app) {
		prompter := newConsolePrompter(app)
		organizer.Ask = prompter
		organizer.Confirm = prompter.Confirm
	}

	return organizeSetup{
		opts: engine.Options{
			MusicDir:   app.Opts.MusicDir,
			OutputDir:  outputDir,
			Mode:       mode,
			AssumeYes:  assumeYes,
			DryRun:     flags.dryRun,
			UnknownDir: cfg.Defaults.UnknownDir,
			Extensions: cfg.Defaults.Extensions,
		},
		organizer: organizer,
		progress:  progress,
	}, nil
}

func runOrganize(app *AppContext, flags organizeFlags) error {
	setup, err := prepareOrganize(app, flags)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), interruptSignals()...)
	defer stop()

	result, err := setup.organizer.Run(ctx, setup.opts)
	if err != nil {
		return organizeError(err)
	}
	if setup.opts.DryRun && !app.Opts.JSON {
		fmt.Fprintf(app.IO.Out, "dry run: %d file(s) would be %s; run `musicorg plan` to list them\n", result.Pending, verbFor(setup.opts.Mode))
	}

	relocated := result.Relocated
	if relocated.Failed > 0 || relocated.DirFailures > 0 {
		return withExitCode(exitcode.PartialSuccess, fmt.Errorf(
			"organize finished with %d failed file(s) and %d failed directory(ies)",
			relocated.Failed, relocated.DirFailures,
		))
	}
	return nil
}

func organizeError(err error) error {
	switch {
	case errors.Is(err, library.ErrInvalidRoot):
		return withExitCode(exitcode.InvalidInput, err)
	case errors.Is(err, engine.ErrAborted):
		return withExitCode(exitcode.Aborted, err)
	case errors.Is(err, engine.ErrInterrupted):
		return withExitCode(exitcode.Interrupted, err)
	case errors.Is(err, engine.ErrConfirmationRequired):
		return withExitCode(exitcode.InvalidUsage, err)
	default:
		return withExitCode(exitcode.RuntimeFailure, err)
	}
}

func parseProgressMode(raw string) (config.ProgressMode, error) {
	mode := config.ProgressMode(strings.TrimSpace(strings.ToLower(raw)))
	switch mode {
	case "", config.ProgressAuto, config.ProgressAlways, config.ProgressNever:
		return mode, nil
	default:
		return "", fmt.Errorf("invalid --progress mode %q (expected: auto, always, never)", raw)
	}
}

func verbFor(mode relocate.Mode) string {
	if mode == relocate.ModeCopy {
		return "copied"
	}
	return "moved"
}
