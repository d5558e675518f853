// Package planner maps an indexed library onto destination paths. It never
// touches the filesystem, so a plan can be rendered, inspected or executed.
package planner

import (
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jaa/musicorg/internal/library"
	"github.com/jaa/musicorg/internal/naming"
)

const DefaultUnknownDir = "unknown"

type Kind string

const (
	KindTrack   Kind = "track"
	KindSingle  Kind = "single"
	KindUnknown Kind = "unknown"
)

// Move relocates one song.
type Move struct {
	Song   int
	Kind   Kind
	Source string
	Dest   string
}

// Unchanged reports whether the song already sits at its destination.
func (m Move) Unchanged() bool {
	return m.Source == m.Dest
}

// Plan lists directories to create, parents first, followed by moves in
// hierarchy order: artists, their albums, their songs, then unknown songs.
// A move whose destination is the current path of another moving song comes
// right after that song's move.
type Plan struct {
	Dirs  []string
	Moves []Move
}

// Pending counts moves whose source differs from the destination.
func (p Plan) Pending() int {
	n := 0
	for _, m := range p.Moves {
		if !m.Unchanged() {
			n++
		}
	}
	return n
}

var lower = cases.Lower(language.Und)

// IsSingle reports whether a song of album titled title is filed as a single.
func IsSingle(album, title string) bool {
	if album == "" {
		return true
	}
	return lower.String(album) == lower.String(title)+" - single"
}

// Options places a plan.
type Options struct {
	OutputRoot string
	// UnknownDir names the directory below OutputRoot for songs without any
	// artist. Empty means DefaultUnknownDir.
	UnknownDir string
	// KeepSources is set when sources stay on disk after relocation, as in
	// copy mode. No destination then lands on another song's source.
	KeepSources bool
}

// Build computes destinations for every song in lib below opts.OutputRoot.
// Songs without any artist go to the unknown dir under their original file
// name. Two songs asking for the same destination are split with a numbered
// suffix; a song already in place keeps its path.
func Build(lib *library.Library, opts Options) Plan {
	unknownDir := opts.UnknownDir
	if unknownDir == "" {
		unknownDir = DefaultUnknownDir
	}
	outputRoot := filepath.Clean(opts.OutputRoot)

	var plan Plan
	dirSeen := map[string]bool{}
	addDir := func(dir string) {
		if !dirSeen[dir] {
			dirSeen[dir] = true
			plan.Dirs = append(plan.Dirs, dir)
		}
	}

	var requests []Move
	for _, artist := range lib.Artists {
		artistDir := filepath.Join(outputRoot, naming.Segment(artist.Name))
		addDir(artistDir)

		for _, album := range artist.Albums {
			albumDir := filepath.Join(artistDir, naming.Segment(album.Name))
			for _, index := range album.Songs {
				song := lib.Songs[index]
				ext := filepath.Ext(song.Path)
				if IsSingle(album.Name, song.Title) {
					requests = append(requests, Move{
						Song:   index,
						Kind:   KindSingle,
						Source: song.Path,
						Dest:   filepath.Join(artistDir, naming.SingleFile(song.DisplayArtist(), song.Title, ext)),
					})
					continue
				}
				addDir(albumDir)
				requests = append(requests, Move{
					Song:   index,
					Kind:   KindTrack,
					Source: song.Path,
					Dest:   filepath.Join(albumDir, naming.TrackFile(song.TrackNumber, song.DisplayArtist(), song.Title, ext)),
				})
			}
		}
	}

	if len(lib.Unknown) > 0 {
		unknownRoot := filepath.Join(outputRoot, unknownDir)
		addDir(unknownRoot)
		for _, index := range lib.Unknown {
			song := lib.Songs[index]
			requests = append(requests, Move{
				Song:   index,
				Kind:   KindUnknown,
				Source: song.Path,
				Dest:   filepath.Join(unknownRoot, filepath.Base(song.Path)),
			})
		}
	}

	plan.Moves = order(settleCollisions(requests, opts.KeepSources))
	return plan
}

// settleCollisions gives every move a unique destination. Songs already in
// place are served first and then first claimants in hierarchy order. The
// remaining claimants take numbered variants that no song currently
// occupies, or keep the numbered variant they already sit at. Unless sources
// are kept, a first claimant may take the path of a song that is about to
// move away; cycles of such claims are broken with a numbered variant.
func settleCollisions(requests []Move, keepSources bool) []Move {
	resolver := naming.NewCollisionResolver()
	block := func() {
		for _, m := range requests {
			resolver.Block(m.Source, m.Source)
		}
	}

	moves := make([]Move, len(requests))
	settled := make([]bool, len(requests))
	for i, m := range requests {
		moves[i] = m
		if m.Unchanged() {
			settled[i] = resolver.Reserve(m.Source, m.Dest)
		}
	}
	if keepSources {
		block()
	}
	for i, m := range requests {
		if !settled[i] {
			settled[i] = resolver.Reserve(m.Source, m.Dest)
		}
	}
	if !keepSources {
		block()
	}
	for i, m := range requests {
		if !settled[i] {
			moves[i].Dest = resolver.Resolve(m.Source, m.Dest)
		}
	}

	if !keepSources {
		for _, cycle := range blockerCycles(moves) {
			first := cycle[0]
			moves[first].Dest = resolver.Numbered(moves[first].Source, requests[first].Dest)
		}
	}
	return moves
}

// blockers maps each move to the pending move whose source it targets.
func blockers(moves []Move) map[int]int {
	bySource := make(map[string]int, len(moves))
	for i, m := range moves {
		bySource[m.Source] = i
	}
	blockedBy := make(map[int]int)
	for i, m := range moves {
		if j, ok := bySource[m.Dest]; ok && j != i && !moves[j].Unchanged() {
			blockedBy[i] = j
		}
	}
	return blockedBy
}

// blockerCycles returns every cycle of blocked moves, each starting at its
// lowest index. Destinations are unique, so every move lies on at most one
// chain and every chain ends or loops.
func blockerCycles(moves []Move) [][]int {
	blockedBy := blockers(moves)
	const (
		unseen = iota
		visiting
		done
	)
	state := make([]int, len(moves))
	var cycles [][]int
	for start := range moves {
		if state[start] != unseen {
			continue
		}
		var path []int
		i, ok := start, true
		for ok && state[i] == unseen {
			state[i] = visiting
			path = append(path, i)
			i, ok = blockedBy[i]
		}
		if ok && state[i] == visiting {
			for k, node := range path {
				if node == i {
					cycle := append([]int(nil), path[k:]...)
					lowest := 0
					for n := range cycle {
						if cycle[n] < cycle[lowest] {
							lowest = n
						}
					}
					cycles = append(cycles, append(cycle[lowest:], cycle[:lowest]...))
					break
				}
			}
		}
		for _, node := range path {
			state[node] = done
		}
	}
	return cycles
}

// order keeps hierarchy order but pulls every blocking move in front of the
// move waiting for its source.
func order(moves []Move) []Move {
	blockedBy := blockers(moves)
	placed := make([]bool, len(moves))
	ordered := make([]Move, 0, len(moves))

	var place func(int)
	place = func(i int) {
		if placed[i] {
			return
		}
		placed[i] = true
		if j, ok := blockedBy[i]; ok {
			place(j)
		}
		ordered = append(ordered, moves[i])
	}
	for i := range moves {
		place(i)
	}
	return ordered
}
