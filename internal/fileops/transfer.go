package fileops

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// EnsureDir creates dir and its parents. An existing directory is fine.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// CopyFile copies src to dst through a temp file in dst's directory, so a
// failed copy never leaves a truncated dst behind. It returns the bytes copied.
func CopyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".musicorg-*.part")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	n, err := io.Copy(tmp, in)
	if err != nil {
		tmp.Close()
		cleanup()
		return n, fmt.Errorf("copy %q: %w", src, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return n, fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return n, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		cleanup()
		return n, fmt.Errorf("chmod temp file: %w", err)
	}

	if err := Install(tmpPath, dst); err != nil {
		cleanup()
		return n, err
	}
	return n, nil
}

// MoveFile renames src to dst. When the two sit on different filesystems it
// falls back to a copy followed by removing src.
func MoveFile(src, dst string) (int64, error) {
	info, err := statFile(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}

	err = renameFile(src, dst)
	if err == nil {
		return info.Size(), nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return 0, fmt.Errorf("move %q: %w", src, err)
	}

	n, err := CopyFile(src, dst)
	if err != nil {
		return n, err
	}
	if err := removeFile(src); err != nil {
		return n, fmt.Errorf("remove source after copy: %w", err)
	}
	return n, nil
}
