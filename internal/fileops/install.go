// Package fileops holds the filesystem primitives the relocator builds on.
package fileops

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

var (
	statFile   = os.Stat
	renameFile = os.Rename
	removeFile = os.Remove
)

const backupSuffix = ".musicorg.bak"

// Install moves a fully written temp file onto target. An existing target is
// parked under a backup name first and put back if the final rename fails.
func Install(tempPath, targetPath string) error {
	temp := strings.TrimSpace(tempPath)
	target := strings.TrimSpace(targetPath)
	switch {
	case temp == "":
		return fmt.Errorf("install: temp path is empty")
	case target == "":
		return fmt.Errorf("install: target path is empty")
	case temp == target:
		return fmt.Errorf("install: temp and target paths must differ")
	}

	info, err := statFile(temp)
	if err != nil {
		return fmt.Errorf("stat temp %q: %w", temp, err)
	}
	if info.IsDir() {
		return fmt.Errorf("install: temp path is a directory: %s", temp)
	}

	backup := target + backupSuffix
	if err := clearStale(backup); err != nil {
		return err
	}

	parked := false
	if _, err := statFile(target); err == nil {
		if err := renameFile(target, backup); err != nil {
			return fmt.Errorf("park existing %q: %w", target, err)
		}
		parked = true
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat target %q: %w", target, err)
	}

	if err := renameFile(temp, target); err != nil {
		if parked {
			if restoreErr := renameFile(backup, target); restoreErr != nil {
				return fmt.Errorf("install %q failed (%v) and restore failed: %w", target, err, restoreErr)
			}
		}
		return fmt.Errorf("install %q: %w", target, err)
	}

	if parked {
		if err := removeFile(backup); err != nil {
			return fmt.Errorf("remove backup %q: %w", backup, err)
		}
	}
	return nil
}

func clearStale(path string) error {
	_, err := statFile(path)
	switch {
	case err == nil:
		if err := removeFile(path); err != nil {
			return fmt.Errorf("remove stale backup %q: %w", path, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat backup %q: %w", path, err)
	}
	return nil
}
