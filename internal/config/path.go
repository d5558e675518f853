package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

const appName = "musicorg"

func UserConfigPath() (string, error) {
	if strings.TrimSpace(xdg.ConfigHome) == "" {
		return "", fmt.Errorf("resolve config home: XDG config directory unknown")
	}
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml"), nil
}

func ProjectConfigPath(cwd string) string {
	return filepath.Join(cwd, appName+".yaml")
}

// ExpandPath resolves a leading ~ and $VARS in a configured path.
func ExpandPath(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}

	expanded := os.ExpandEnv(strings.TrimSpace(raw))
	if expanded == "~" || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		expanded = filepath.Join(home, strings.TrimPrefix(expanded, "~/"))
	}

	return filepath.Clean(expanded), nil
}
