package config

import (
	"fmt"
	"regexp"
	"strings"
)

var extensionPattern = regexp.MustCompile(`^[a-z0-9]+$`)

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid config"
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(e.Problems, "; "))
}

func Validate(cfg Config) error {
	problems := []string{}

	if cfg.Version != 1 {
		problems = append(problems, "version must be 1")
	}

	switch cfg.Defaults.Mode {
	case ModeMove, ModeCopy:
	default:
		problems = append(problems, fmt.Sprintf("defaults.mode must be move or copy, got %q", cfg.Defaults.Mode))
	}

	switch cfg.Defaults.Progress {
	case ProgressAuto, ProgressAlways, ProgressNever:
	default:
		problems = append(problems, fmt.Sprintf("defaults.progress must be auto, always or never, got %q", cfg.Defaults.Progress))
	}

	if strings.TrimSpace(cfg.Defaults.OutputDir) != "" {
		if _, err := ExpandPath(cfg.Defaults.OutputDir); err != nil {
			problems = append(problems, "defaults.output_dir must be a valid path")
		}
	}

	unknown := cfg.Defaults.UnknownDir
	switch {
	case strings.TrimSpace(unknown) == "":
		problems = append(problems, "defaults.unknown_dir must be set")
	case strings.ContainsAny(unknown, `/\`) || unknown == "." || unknown == "..":
		problems = append(problems, fmt.Sprintf("defaults.unknown_dir must be a single directory name, got %q", unknown))
	case strings.HasPrefix(unknown, "."):
		problems = append(problems, fmt.Sprintf("defaults.unknown_dir must not be hidden, got %q", unknown))
	}

	if len(cfg.Defaults.Extensions) == 0 {
		problems = append(problems, "defaults.extensions must list at least one extension")
	}
	for _, ext := range cfg.Defaults.Extensions {
		if !extensionPattern.MatchString(ext) {
			problems = append(problems, fmt.Sprintf("defaults.extensions has invalid entry %q", ext))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
