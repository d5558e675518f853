package engine

import (
	"github.com/jaa/musicorg/internal/relocate"
)

type Options struct {
	MusicDir   string
	OutputDir  string
	Mode       relocate.Mode
	AssumeYes  bool
	DryRun     bool
	UnknownDir string
	Extensions []string
}

type Result struct {
	// MusicRoot and OutputRoot are the resolved roots the plan is built on.
	MusicRoot  string
	OutputRoot string
	Songs      int
	Unknown    int
	Artists    int
	Conflicts  int
	Merges     int
	Planned    int
	Pending    int
	DryRun     bool
	Relocated  relocate.Result
}

// Progress is the status line the organizer hands to each phase.
type Progress interface {
	Update(line string)
	Step(index, total int, line string)
	Break()
}
