package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type LoadOptions struct {
	ExplicitPath string
	WorkingDir   string
}

type fileConfig struct {
	Version  *int         `yaml:"version"`
	Defaults fileDefaults `yaml:"defaults"`
}

type fileDefaults struct {
	OutputDir  *string   `yaml:"output_dir"`
	Mode       *string   `yaml:"mode"`
	AssumeYes  *bool     `yaml:"assume_yes"`
	Verbose    *bool     `yaml:"verbose"`
	UnknownDir *string   `yaml:"unknown_dir"`
	Progress   *string   `yaml:"progress"`
	Extensions *[]string `yaml:"extensions"`
}

// Load merges the user config and then the project config over the
// defaults. An explicit path replaces both and must exist.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	cwd := opts.WorkingDir
	if strings.TrimSpace(cwd) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		cwd = wd
	}

	if explicit := strings.TrimSpace(opts.ExplicitPath); explicit != "" {
		if err := mergeFile(&cfg, explicit, true); err != nil {
			return Config{}, err
		}
	} else {
		userPath, err := UserConfigPath()
		if err != nil {
			return Config{}, err
		}
		if err := mergeFile(&cfg, userPath, false); err != nil {
			return Config{}, err
		}
		if err := mergeFile(&cfg, ProjectConfigPath(cwd), false); err != nil {
			return Config{}, err
		}
	}

	normalize(&cfg)
	return cfg, nil
}

func mergeFile(cfg *Config, path string, required bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file does not exist: %s", path)
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Version != nil {
		cfg.Version = *fc.Version
	}
	d := fc.Defaults
	if d.OutputDir != nil {
		cfg.Defaults.OutputDir = strings.TrimSpace(*d.OutputDir)
	}
	if d.Mode != nil {
		cfg.Defaults.Mode = Mode(strings.ToLower(strings.TrimSpace(*d.Mode)))
	}
	if d.AssumeYes != nil {
		cfg.Defaults.AssumeYes = *d.AssumeYes
	}
	if d.Verbose != nil {
		cfg.Defaults.Verbose = *d.Verbose
	}
	if d.UnknownDir != nil {
		cfg.Defaults.UnknownDir = strings.TrimSpace(*d.UnknownDir)
	}
	if d.Progress != nil {
		cfg.Defaults.Progress = ProgressMode(strings.ToLower(strings.TrimSpace(*d.Progress)))
	}
	if d.Extensions != nil {
		cfg.Defaults.Extensions = append([]string{}, (*d.Extensions)...)
	}
	return nil
}

func normalize(cfg *Config) {
	exts := make([]string, 0, len(cfg.Defaults.Extensions))
	for _, ext := range cfg.Defaults.Extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	cfg.Defaults.Extensions = exts
}

func EnsureConfigDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory %s: %w", dir, err)
	}
	return nil
}
