package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

type EventEmitter interface {
	Emit(event Event) error
}

type JSONEmitter struct {
	enc *json.Encoder
	mu  sync.Mutex
}

func NewJSONEmitter(w io.Writer) *JSONEmitter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return &JSONEmitter{enc: enc}
}

func (e *JSONEmitter) Emit(event Event) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.enc.Encode(event)
}

// HumanEmitter prints messages for a person at a terminal. Per-file events
// only show up in verbose mode; otherwise the progress line covers them.
type HumanEmitter struct {
	stdout   io.Writer
	stderr   io.Writer
	quiet    bool
	verbose  bool
	progress *Progress
}

func NewHumanEmitter(stdout, stderr io.Writer, quiet, verbose bool) *HumanEmitter {
	return &HumanEmitter{stdout: stdout, stderr: stderr, quiet: quiet, verbose: verbose}
}

// WithProgress makes the emitter end an active status line before printing.
func (e *HumanEmitter) WithProgress(p *Progress) *HumanEmitter {
	e.progress = p
	return e
}

func (e *HumanEmitter) Emit(event Event) error {
	line := event.Message
	if line == "" {
		line = string(event.Event)
	}

	switch event.Level {
	case LevelError:
		e.breakProgress()
		_, err := fmt.Fprintln(e.stderr, "ERROR:", line)
		return err
	case LevelWarn:
		if e.quiet {
			return nil
		}
		e.breakProgress()
		_, err := fmt.Fprintln(e.stderr, "WARN:", line)
		return err
	default:
		if e.quiet && event.Event != EventOrganizeFinished {
			return nil
		}
		if !e.verbose && perFile(event.Event) {
			return nil
		}
		e.breakProgress()
		_, err := fmt.Fprintln(e.stdout, line)
		return err
	}
}

func (e *HumanEmitter) breakProgress() {
	if e.progress != nil {
		e.progress.Break()
	}
}

func perFile(name EventName) bool {
	switch name {
	case EventFileSkipped, EventFileTransferred, EventIndexStarted:
		return true
	default:
		return false
	}
}

type MultiEmitter struct {
	emitters []EventEmitter
}

func NewMultiEmitter(emitters ...EventEmitter) *MultiEmitter {
	return &MultiEmitter{emitters: emitters}
}

func (e *MultiEmitter) Emit(event Event) error {
	for _, emitter := range e.emitters {
		if err := emitter.Emit(event); err != nil {
			return err
		}
	}
	return nil
}
