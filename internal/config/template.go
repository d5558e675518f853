package config

import (
	"fmt"
	"strings"
)

func DefaultTemplate() string {
	return fmt.Sprintf(`version: 1
defaults:
  # where organized files go; empty means the music dir itself
  output_dir: ""
  # move or copy
  mode: %q
  assume_yes: false
  verbose: false
  # songs without any artist tag land here, below output_dir
  unknown_dir: %q
  # auto, always or never
  progress: %q
  extensions: [%s]
`, ModeMove, "unknown", ProgressAuto, quoteAll(DefaultExtensions))
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
