package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jaa/musicorg/internal/library"
	"github.com/jaa/musicorg/internal/output"
	"github.com/jaa/musicorg/internal/planner"
	"github.com/jaa/musicorg/internal/relocate"
	"github.com/jaa/musicorg/internal/resolve"
	"github.com/jaa/musicorg/internal/tags"
)

var (
	ErrAborted              = errors.New("organize aborted by operator")
	ErrInterrupted          = errors.New("organize interrupted")
	ErrConfirmationRequired = errors.New("confirmation required: rerun with --assume-yes")
)

// Organizer runs the whole pipeline: index, resolve artist conflicts, plan
// destinations, confirm and relocate. Only relocation touches the disk.
type Organizer struct {
	Reader   tags.Reader
	Emitter  output.EventEmitter
	Progress Progress
	// Ask settles artist conflicts. When nil, conflicts are reported and
	// both artists are kept.
	Ask resolve.Asker
	// Confirm is asked before relocating unless AssumeYes is set.
	Confirm func(prompt string) (bool, error)
	Now     func() time.Time
}

func NewOrganizer(emitter output.EventEmitter, progress Progress) *Organizer {
	if emitter == nil {
		emitter = noOpEmitter{}
	}
	if progress == nil {
		progress = noOpProgress{}
	}
	return &Organizer{
		Reader:   tags.Read,
		Emitter:  emitter,
		Progress: progress,
		Now:      time.Now,
	}
}

type noOpEmitter struct{}

func (noOpEmitter) Emit(event output.Event) error {
	return nil
}

type noOpProgress struct{}

func (noOpProgress) Update(string) {}

func (noOpProgress) Step(int, int, string) {}

func (noOpProgress) Break() {}

// Plan indexes opts.MusicDir, settles conflicts and computes destinations
// without touching the filesystem.
func (o *Organizer) Plan(ctx context.Context, opts Options) (*library.Library, planner.Plan, Result, error) {
	o.defaults()
	result := Result{DryRun: opts.DryRun}

	root, err := library.ResolveRoot(opts.MusicDir)
	if err != nil {
		return nil, planner.Plan{}, result, err
	}
	outputRoot := root
	if opts.OutputDir != "" {
		if outputRoot, err = library.ResolveOutputRoot(opts.OutputDir); err != nil {
			return nil, planner.Plan{}, result, err
		}
	}
	result.MusicRoot, result.OutputRoot = root, outputRoot

	o.emit(output.Event{
		Level:   output.LevelInfo,
		Event:   output.EventIndexStarted,
		Path:    root,
		Message: fmt.Sprintf("indexing %s", root),
	})
	lib, err := library.Scan(root, library.ScanOptions{
		Reader:     o.Reader,
		Extensions: opts.Extensions,
		Progress:   o.Progress,
		Warner:     o,
	})
	o.Progress.Break()
	if err != nil {
		return nil, planner.Plan{}, result, err
	}
	result.Songs = len(lib.Songs)
	result.Unknown = len(lib.Unknown)
	o.emit(output.Event{
		Level:   output.LevelInfo,
		Event:   output.EventIndexFinished,
		Path:    root,
		Message: fmt.Sprintf("indexed %d song(s) by %d artist(s), %d without artist", len(lib.Songs), len(lib.Artists), len(lib.Unknown)),
		Details: map[string]any{
			"songs":   len(lib.Songs),
			"artists": len(lib.Artists),
			"unknown": len(lib.Unknown),
		},
	})

	if err := ctx.Err(); err != nil {
		return nil, planner.Plan{}, result, interrupted(err)
	}
	if err := o.resolve(lib, &result); err != nil {
		return nil, planner.Plan{}, result, err
	}
	result.Artists = len(lib.Artists)
	if err := lib.Validate(); err != nil {
		return nil, planner.Plan{}, result, err
	}

	plan := planner.Build(lib, planner.Options{
		OutputRoot:  outputRoot,
		UnknownDir:  opts.UnknownDir,
		KeepSources: opts.Mode == relocate.ModeCopy,
	})
	result.Planned = len(plan.Moves)
	result.Pending = plan.Pending()
	o.emit(output.Event{
		Level:   output.LevelInfo,
		Event:   output.EventPlanReady,
		Path:    outputRoot,
		Message: fmt.Sprintf("%d file(s) planned, %d to be %s", result.Planned, result.Pending, verbFor(opts.Mode)),
		Details: map[string]any{
			"planned":     result.Planned,
			"pending":     result.Pending,
			"directories": len(plan.Dirs),
			"dry_run":     opts.DryRun,
		},
	})
	return lib, plan, result, nil
}

// Run plans and then relocates. A declined confirmation returns ErrAborted
// before anything is written.
func (o *Organizer) Run(ctx context.Context, opts Options) (Result, error) {
	_, plan, result, err := o.Plan(ctx, opts)
	if err != nil {
		return result, err
	}
	if opts.DryRun {
		return result, nil
	}

	if result.Pending > 0 && !opts.AssumeYes {
		if o.Confirm == nil {
			return result, ErrConfirmationRequired
		}
		ok, err := o.Confirm(fmt.Sprintf("%d files will be %s. Continue", result.Pending, verbFor(opts.Mode)))
		if err != nil {
			return result, err
		}
		if !ok {
			o.emit(output.Event{
				Level:   output.LevelWarn,
				Event:   output.EventOrganizeCancelled,
				Message: "nothing was changed",
			})
			return result, ErrAborted
		}
	}

	relocator := &relocate.Relocator{
		Mode:     opts.Mode,
		Emitter:  o.Emitter,
		Progress: o.Progress,
		Now:      o.Now,
	}
	relocated, err := relocator.Run(ctx, plan)
	o.Progress.Break()
	result.Relocated = relocated
	if err != nil {
		if ctx.Err() != nil {
			return result, interrupted(err)
		}
		return result, err
	}

	o.emit(output.Event{
		Level: output.LevelInfo,
		Event: output.EventOrganizeFinished,
		Message: fmt.Sprintf(
			"done: %d %s (%s), %d already in place, %d failed",
			relocated.Transferred, verbFor(opts.Mode), humanize.Bytes(uint64(relocated.Bytes)), relocated.Skipped, relocated.Failed,
		),
		Details: map[string]any{
			"total":        relocated.Total,
			"transferred":  relocated.Transferred,
			"skipped":      relocated.Skipped,
			"failed":       relocated.Failed,
			"dir_failures": relocated.DirFailures,
			"bytes":        relocated.Bytes,
		},
	})
	return result, nil
}

func (o *Organizer) resolve(lib *library.Library, result *Result) error {
	conflicts := resolve.FindConflicts(lib)
	if len(conflicts) == 0 {
		return nil
	}

	if o.Ask == nil {
		for _, pair := range conflicts {
			result.Conflicts++
			o.emit(output.Event{
				Level:   output.LevelWarn,
				Event:   output.EventConflictFound,
				Message: fmt.Sprintf("artists %q and %q differ only by case; keeping both", pair.FirstName, pair.SecondName),
				Details: map[string]any{"first": pair.FirstName, "second": pair.SecondName},
			})
		}
		return nil
	}

	resolver := &resolve.Resolver{
		Ask: o.Ask,
		OnConflict: func(pair resolve.Pair) {
			result.Conflicts++
			o.emit(output.Event{
				Level:   output.LevelInfo,
				Event:   output.EventConflictFound,
				Message: fmt.Sprintf("artists %q and %q differ only by case", pair.FirstName, pair.SecondName),
				Details: map[string]any{"first": pair.FirstName, "second": pair.SecondName},
			})
		},
		OnDecision: func(d resolve.Decision) {
			if d.Merged() {
				result.Merges++
			}
			o.emit(output.Event{
				Level:   output.LevelInfo,
				Event:   output.EventConflictResolved,
				Message: describeDecision(d),
				Details: map[string]any{
					"first":  d.Pair.FirstName,
					"second": d.Pair.SecondName,
					"action": string(d.Action),
					"name":   d.Name,
				},
			})
		},
	}
	if _, err := resolver.Run(lib); err != nil {
		return fmt.Errorf("resolve artist conflicts: %w", err)
	}
	return nil
}

// Warn reports an entry the indexer could not read.
func (o *Organizer) Warn(path string, err error) {
	o.emit(output.Event{
		Level:   output.LevelWarn,
		Event:   output.EventFileUnreadable,
		Path:    path,
		Message: fmt.Sprintf("skipping %s: %v", path, err),
		Details: map[string]any{"error": err.Error()},
	})
}

func (o *Organizer) defaults() {
	if o.Emitter == nil {
		o.Emitter = noOpEmitter{}
	}
	if o.Progress == nil {
		o.Progress = noOpProgress{}
	}
	if o.Reader == nil {
		o.Reader = tags.Read
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

func (o *Organizer) emit(event output.Event) {
	event.Timestamp = o.Now()
	_ = o.Emitter.Emit(event)
}

func describeDecision(d resolve.Decision) string {
	switch d.Action {
	case resolve.ActionMergeFirst, resolve.ActionMergeSecond:
		return fmt.Sprintf("merged %q and %q as %q", d.Pair.FirstName, d.Pair.SecondName, d.Name)
	case resolve.ActionRename:
		return fmt.Sprintf("merged %q and %q under new name %q", d.Pair.FirstName, d.Pair.SecondName, d.Name)
	default:
		return fmt.Sprintf("kept %q and %q apart", d.Pair.FirstName, d.Pair.SecondName)
	}
}

func verbFor(mode relocate.Mode) string {
	if mode == relocate.ModeCopy {
		return "copied"
	}
	return "moved"
}

func interrupted(err error) error {
	return fmt.Errorf("%w: %v", ErrInterrupted, err)
}
