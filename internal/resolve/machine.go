package resolve

import (
	"fmt"
	"strings"
)

type state int

const (
	statePrompt state = iota
	stateNameEntry
	stateDone
)

var (
	promptOptions = []string{
		"don't do anything",
		"merge using first",
		"merge using second",
		"enter new name",
	}
	nameOptions = []string{
		"ok",
		"reenter name",
		"dismiss",
	}
)

// settle drives the per-pair state machine until it reaches stateDone.
func (r *Resolver) settle(pair Pair) (Decision, error) {
	decision := Decision{Pair: pair}
	current := statePrompt

	for current != stateDone {
		switch current {
		case statePrompt:
			choice, err := r.Ask.Choose(
				fmt.Sprintf("These two artists are named similarly:\n%s\n%s", pair.FirstName, pair.SecondName),
				promptOptions,
			)
			if err != nil {
				return decision, fmt.Errorf("resolve %q/%q: %w", pair.FirstName, pair.SecondName, err)
			}
			switch choice {
			case 0:
				decision.Action = ActionKeep
				current = stateDone
			case 1:
				decision.Action = ActionMergeFirst
				decision.Name = pair.FirstName
				current = stateDone
			case 2:
				decision.Action = ActionMergeSecond
				decision.Name = pair.SecondName
				current = stateDone
			case 3:
				current = stateNameEntry
			default:
				return decision, fmt.Errorf("resolve %q/%q: choice %d out of range", pair.FirstName, pair.SecondName, choice)
			}

		case stateNameEntry:
			name, err := r.Ask.Line("enter new name:")
			if err != nil {
				return decision, fmt.Errorf("resolve %q/%q: %w", pair.FirstName, pair.SecondName, err)
			}
			name = strings.TrimSpace(name)

			choice, err := r.Ask.Choose(fmt.Sprintf("new name: '%s'", name), nameOptions)
			if err != nil {
				return decision, fmt.Errorf("resolve %q/%q: %w", pair.FirstName, pair.SecondName, err)
			}
			switch choice {
			case 0:
				if name == "" {
					continue
				}
				decision.Action = ActionRename
				decision.Name = name
				current = stateDone
			case 1:
				continue
			case 2:
				decision.Action = ActionDismiss
				current = stateDone
			default:
				return decision, fmt.Errorf("resolve %q/%q: choice %d out of range", pair.FirstName, pair.SecondName, choice)
			}
		}
	}
	return decision, nil
}
