package doctor

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jaa/musicorg/internal/config"
)

func findCheck(report Report, name string) (Check, bool) {
	for _, check := range report.Checks {
		if check.Name == name {
			return check, true
		}
	}
	return Check{}, false
}

func TestDoctorHealthyDirectories(t *testing.T) {
	music := t.TempDir()
	out := filepath.Join(t.TempDir(), "sorted", "library")

	report := NewChecker().Check(config.DefaultConfig(), Target{MusicDir: music, OutputDir: out})
	if report.HasErrors() {
		t.Fatalf("expected no errors, got %+v", report.Checks)
	}
	check, ok := findCheck(report, "output_dir")
	if !ok || !strings.Contains(check.Message, "will be created") {
		t.Fatalf("expected output dir creation note, got %+v", check)
	}
}

func TestDoctorInvalidConfigAndMissingMusicDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.Mode = "link"

	report := NewChecker().Check(cfg, Target{MusicDir: filepath.Join(t.TempDir(), "missing")})
	if report.ErrorCount() != 2 {
		t.Fatalf("expected 2 errors, got %+v", report.Checks)
	}
}

func TestDoctorWithoutMusicDirWarns(t *testing.T) {
	report := NewChecker().Check(config.DefaultConfig(), Target{})
	check, ok := findCheck(report, "music_dir")
	if !ok || check.Severity != SeverityWarn {
		t.Fatalf("expected music_dir warning, got %+v", report.Checks)
	}
}

func TestDoctorUnwritableOutput(t *testing.T) {
	music := t.TempDir()
	checker := NewChecker()
	checker.CheckWritable = func(string) error { return errors.New("read-only file system") }

	report := checker.Check(config.DefaultConfig(), Target{MusicDir: music})
	check, ok := findCheck(report, "output_dir")
	if !ok || check.Severity != SeverityError {
		t.Fatalf("expected output_dir error, got %+v", report.Checks)
	}
}

func TestDoctorUnknownDirBlockedByFile(t *testing.T) {
	music := t.TempDir()
	if err := os.WriteFile(filepath.Join(music, "unknown"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	report := NewChecker().Check(config.DefaultConfig(), Target{MusicDir: music})
	check, ok := findCheck(report, "unknown_dir")
	if !ok || check.Severity != SeverityError {
		t.Fatalf("expected unknown_dir error, got %+v", report.Checks)
	}
}

func TestDoctorOutputBelowFile(t *testing.T) {
	music := t.TempDir()
	blocker := filepath.Join(music, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}

	report := NewChecker().Check(config.DefaultConfig(), Target{MusicDir: music, OutputDir: filepath.Join(blocker, "out")})
	check, ok := findCheck(report, "output_dir")
	if !ok || check.Severity != SeverityError {
		t.Fatalf("expected output_dir error, got %+v", report.Checks)
	}
}

func TestDoctorWarnsOnCopyIntoMusicDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Defaults.Mode = config.ModeCopy

	report := NewChecker().Check(cfg, Target{MusicDir: t.TempDir()})
	check, ok := findCheck(report, "mode")
	if !ok || check.Severity != SeverityWarn {
		t.Fatalf("expected mode warning, got %+v", report.Checks)
	}
}
