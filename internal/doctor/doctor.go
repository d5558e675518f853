// Package doctor checks that a configuration and a pair of directories are
// ready for an organize run.
package doctor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaa/musicorg/internal/config"
	"github.com/jaa/musicorg/internal/library"
)

type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

type Check struct {
	Severity Severity `json:"severity"`
	Name     string   `json:"name"`
	Message  string   `json:"message"`
}

type Report struct {
	Checks []Check `json:"checks"`
}

func (r Report) HasErrors() bool {
	return r.ErrorCount() > 0
}

func (r Report) ErrorCount() int {
	count := 0
	for _, check := range r.Checks {
		if check.Severity == SeverityError {
			count++
		}
	}
	return count
}

func (r *Report) add(severity Severity, name, format string, args ...any) {
	r.Checks = append(r.Checks, Check{Severity: severity, Name: name, Message: fmt.Sprintf(format, args...)})
}

type Target struct {
	MusicDir  string
	OutputDir string
}

type Checker struct {
	ResolveRoot   func(string) (string, error)
	Stat          func(string) (os.FileInfo, error)
	CheckWritable func(string) error
}

func NewChecker() *Checker {
	return &Checker{
		ResolveRoot:   library.ResolveRoot,
		Stat:          os.Stat,
		CheckWritable: checkDirWritable,
	}
}

func (c *Checker) Check(cfg config.Config, target Target) Report {
	report := Report{Checks: []Check{}}

	if err := config.Validate(cfg); err != nil {
		report.add(SeverityError, "config", "%v", err)
	} else {
		report.add(SeverityInfo, "config", "config is valid")
	}

	if strings.TrimSpace(target.MusicDir) == "" {
		report.add(SeverityWarn, "music_dir", "no music dir given; pass --music-dir to check it")
		return report
	}
	root, err := c.ResolveRoot(target.MusicDir)
	if err != nil {
		report.add(SeverityError, "music_dir", "%v", err)
		return report
	}
	report.add(SeverityInfo, "music_dir", "%s is readable", root)

	out := root
	if strings.TrimSpace(target.OutputDir) != "" {
		out, err = filepath.Abs(target.OutputDir)
		if err != nil {
			report.add(SeverityError, "output_dir", "cannot resolve %s: %v", target.OutputDir, err)
			return report
		}
	}

	existing, err := c.nearestExisting(out)
	if err != nil {
		report.add(SeverityError, "output_dir", "%v", err)
		return report
	}
	if err := c.CheckWritable(existing); err != nil {
		report.add(SeverityError, "output_dir", "%s is not writable: %v", existing, err)
	} else if existing != out {
		report.add(SeverityInfo, "output_dir", "%s will be created below %s", out, existing)
	} else {
		report.add(SeverityInfo, "output_dir", "%s is writable", out)
	}

	unknown := filepath.Join(out, cfg.Defaults.UnknownDir)
	if info, err := c.Stat(unknown); err == nil && !info.IsDir() {
		report.add(SeverityError, "unknown_dir", "%s exists and is not a directory", unknown)
	}

	if cfg.Defaults.Mode == config.ModeCopy && out == root {
		report.add(SeverityWarn, "mode", "copy mode into the music dir duplicates every song")
	}
	return report
}

// nearestExisting walks up from path to the first entry that exists.
func (c *Checker) nearestExisting(path string) (string, error) {
	current := filepath.Clean(path)
	for {
		info, err := c.Stat(current)
		if err == nil {
			if !info.IsDir() {
				return "", fmt.Errorf("%s is not a directory", current)
			}
			return current, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("no existing parent for %s", path)
		}
		current = parent
	}
}

func checkDirWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	file, err := os.CreateTemp(path, ".musicorg-write-check-*")
	if err != nil {
		return err
	}
	name := file.Name()
	_ = file.Close()
	_ = os.Remove(name)
	return nil
}
