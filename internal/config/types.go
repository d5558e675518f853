package config

type Mode string

const (
	ModeMove Mode = "move"
	ModeCopy Mode = "copy"
)

type ProgressMode string

const (
	ProgressAuto   ProgressMode = "auto"
	ProgressAlways ProgressMode = "always"
	ProgressNever  ProgressMode = "never"
)

var DefaultExtensions = []string{"m4a", "mp3", "m4b", "m4p", "m4v"}

type Config struct {
	Version  int      `yaml:"version"`
	Defaults Defaults `yaml:"defaults"`
}

type Defaults struct {
	OutputDir  string       `yaml:"output_dir"`
	Mode       Mode         `yaml:"mode"`
	AssumeYes  bool         `yaml:"assume_yes"`
	Verbose    bool         `yaml:"verbose"`
	UnknownDir string       `yaml:"unknown_dir"`
	Progress   ProgressMode `yaml:"progress"`
	Extensions []string     `yaml:"extensions"`
}

func DefaultConfig() Config {
	return Config{
		Version: 1,
		Defaults: Defaults{
			Mode:       ModeMove,
			UnknownDir: "unknown",
			Progress:   ProgressAuto,
			Extensions: append([]string{}, DefaultExtensions...),
		},
	}
}
