// Package resolve finds artists whose names differ only by case and lets an
// operator merge or rename them before any file is moved.
package resolve

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jaa/musicorg/internal/library"
)

// Asker is the operator. Choose returns an index into options; validating
// and re-prompting on bad input is the implementation's job.
type Asker interface {
	Choose(prompt string, options []string) (int, error)
	Line(prompt string) (string, error)
}

// Pair is two artists whose names are equal once lower-cased.
type Pair struct {
	First      int
	Second     int
	FirstName  string
	SecondName string
}

type Action string

const (
	ActionKeep        Action = "keep"
	ActionMergeFirst  Action = "merge_first"
	ActionMergeSecond Action = "merge_second"
	ActionRename      Action = "rename"
	ActionDismiss     Action = "dismiss"
)

// Decision records how one pair was settled.
type Decision struct {
	Pair   Pair
	Action Action
	Name   string
}

// Merged reports whether the decision changed the library.
func (d Decision) Merged() bool {
	switch d.Action {
	case ActionMergeFirst, ActionMergeSecond, ActionRename:
		return true
	default:
		return false
	}
}

// Fold lower-cases a name for similarity checks.
func Fold(name string) string {
	return cases.Lower(language.Und).String(name)
}

// FindConflicts returns every similar artist pair, each once, ordered by
// the position of the first artist and then the second.
func FindConflicts(lib *library.Library) []Pair {
	folded := make([]string, len(lib.Artists))
	for i, artist := range lib.Artists {
		folded[i] = Fold(artist.Name)
	}

	var pairs []Pair
	for i := range lib.Artists {
		for j := i + 1; j < len(lib.Artists); j++ {
			if folded[i] == folded[j] && lib.Artists[i].Name != lib.Artists[j].Name {
				pairs = append(pairs, Pair{
					First:      i,
					Second:     j,
					FirstName:  lib.Artists[i].Name,
					SecondName: lib.Artists[j].Name,
				})
			}
		}
	}
	return pairs
}

// Resolver settles conflicts one pair at a time. After every merge the
// artist list is rescanned, so three-way collisions converge over several
// rounds. Pairs the operator keeps or dismisses are not asked again within
// one run.
type Resolver struct {
	Ask        Asker
	OnConflict func(Pair)
	OnDecision func(Decision)
}

func (r *Resolver) Run(lib *library.Library) ([]Decision, error) {
	if r.Ask == nil {
		return nil, fmt.Errorf("resolve conflicts: no operator prompt configured")
	}

	settled := map[[2]string]bool{}
	var decisions []Decision
	for {
		pair, ok := nextPair(FindConflicts(lib), settled)
		if !ok {
			return decisions, nil
		}
		if r.OnConflict != nil {
			r.OnConflict(pair)
		}

		decision, err := r.settle(pair)
		if err != nil {
			return decisions, err
		}
		if decision.Merged() {
			if _, err := lib.Merge(pair.First, pair.Second, decision.Name); err != nil {
				return decisions, err
			}
		} else {
			settled[pairKey(pair)] = true
		}

		decisions = append(decisions, decision)
		if r.OnDecision != nil {
			r.OnDecision(decision)
		}
	}
}

func nextPair(pairs []Pair, settled map[[2]string]bool) (Pair, bool) {
	for _, pair := range pairs {
		if !settled[pairKey(pair)] {
			return pair, true
		}
	}
	return Pair{}, false
}

func pairKey(p Pair) [2]string {
	return [2]string{p.FirstName, p.SecondName}
}
