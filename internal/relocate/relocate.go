// Package relocate carries out a plan on disk.
package relocate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jaa/musicorg/internal/fileops"
	"github.com/jaa/musicorg/internal/output"
	"github.com/jaa/musicorg/internal/planner"
)

type Mode string

const (
	ModeMove Mode = "move"
	ModeCopy Mode = "copy"
)

// Progress receives one line per handled song.
type Progress interface {
	Step(index, total int, line string)
}

type Result struct {
	Total       int
	Transferred int
	Skipped     int
	Failed      int
	DirFailures int
	Bytes       int64
}

var errDestinationOccupied = errors.New("destination is still occupied by another song")

// Relocator creates the planned directories and then transfers songs one by
// one. A failure is reported and the batch keeps going; the failed file stays
// where it was.
type Relocator struct {
	Mode     Mode
	Emitter  output.EventEmitter
	Progress Progress
	Now      func() time.Time

	ensureDir func(string) error
	transfer  func(src, dst string) (int64, error)
}

func (r *Relocator) Run(ctx context.Context, plan planner.Plan) (Result, error) {
	result := Result{Total: len(plan.Moves)}
	transfer, verb, err := r.transferFunc()
	if err != nil {
		return result, err
	}
	ensureDir := r.ensureDir
	if ensureDir == nil {
		ensureDir = fileops.EnsureDir
	}

	for _, dir := range plan.Dirs {
		if err := ensureDir(dir); err != nil {
			result.DirFailures++
			r.emit(output.Event{
				Level:   output.LevelWarn,
				Event:   output.EventDirFailed,
				Path:    dir,
				Message: fmt.Sprintf("cannot create directory %s: %v", dir, err),
				Details: map[string]any{"error": err.Error()},
			})
		}
	}

	// Sources still on disk. A move never lands on one of them, so a failed
	// move cannot be overwritten by the move that was waiting for it.
	occupied := make(map[string]bool, len(plan.Moves))
	for _, move := range plan.Moves {
		occupied[move.Source] = true
	}

	for i, move := range plan.Moves {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		r.step(i+1, result.Total, filepath.Base(move.Dest))

		if move.Unchanged() {
			result.Skipped++
			r.emit(output.Event{
				Level:   output.LevelInfo,
				Event:   output.EventFileSkipped,
				Path:    move.Source,
				Message: fmt.Sprintf("already in place: %s", move.Dest),
			})
			continue
		}

		var n int64
		var err error
		if occupied[move.Dest] {
			err = errDestinationOccupied
		} else {
			n, err = transfer(move.Source, move.Dest)
		}
		if err != nil {
			result.Failed++
			r.emit(output.Event{
				Level:   output.LevelError,
				Event:   output.EventFileFailed,
				Path:    move.Source,
				Message: fmt.Sprintf("cannot %s %s to %s: %v", r.mode(), move.Source, move.Dest, err),
				Details: map[string]any{"dest": move.Dest, "error": err.Error()},
			})
			continue
		}

		if r.mode() == ModeMove {
			delete(occupied, move.Source)
		}
		result.Transferred++
		result.Bytes += n
		r.emit(output.Event{
			Level:   output.LevelInfo,
			Event:   output.EventFileTransferred,
			Path:    move.Source,
			Message: fmt.Sprintf("%s %s -> %s", verb, move.Source, move.Dest),
			Details: map[string]any{"dest": move.Dest, "bytes": n, "mode": string(r.mode())},
		})
	}
	return result, nil
}

func (r *Relocator) mode() Mode {
	if r.Mode == "" {
		return ModeMove
	}
	return r.Mode
}

func (r *Relocator) transferFunc() (func(string, string) (int64, error), string, error) {
	switch r.mode() {
	case ModeMove:
		if r.transfer != nil {
			return r.transfer, "moved", nil
		}
		return fileops.MoveFile, "moved", nil
	case ModeCopy:
		if r.transfer != nil {
			return r.transfer, "copied", nil
		}
		return fileops.CopyFile, "copied", nil
	default:
		return nil, "", fmt.Errorf("unknown relocation mode %q", r.Mode)
	}
}

func (r *Relocator) step(index, total int, line string) {
	if r.Progress != nil {
		r.Progress.Step(index, total, line)
	}
}

func (r *Relocator) emit(event output.Event) {
	if r.Emitter == nil {
		return
	}
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	event.Timestamp = now()
	_ = r.Emitter.Emit(event)
}
