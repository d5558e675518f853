package library

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jaa/musicorg/internal/tags"
)

// DefaultExtensions are the audio extensions indexed when none are configured.
var DefaultExtensions = []string{"m4a", "mp3", "m4b", "m4p", "m4v"}

// ErrInvalidRoot marks a music directory that does not exist or cannot be
// resolved. Nothing is scanned when it is returned.
var ErrInvalidRoot = errors.New("invalid music directory")

// Progress receives a status line per indexed file.
type Progress interface {
	Update(line string)
}

// Warner receives non-fatal problems hit while walking.
type Warner interface {
	Warn(path string, err error)
}

type ScanOptions struct {
	Reader     tags.Reader
	Extensions []string
	Progress   Progress
	Warner     Warner
}

// ResolveRoot makes root absolute and resolves symlinks.
func ResolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}
	return resolved, nil
}

// ResolveOutputRoot makes dir absolute and resolves symlinks in its nearest
// existing ancestor, so paths below it compare equal to paths produced by
// ResolveRoot. dir itself need not exist yet.
func ResolveOutputRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output dir %s: %w", dir, err)
	}

	existing, rest := abs, ""
	for {
		resolved, err := filepath.EvalSymlinks(existing)
		if err == nil {
			return filepath.Join(resolved, rest), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("resolve output dir %s: %w", dir, err)
		}
		parent := filepath.Dir(existing)
		if parent == existing {
			return abs, nil
		}
		rest = filepath.Join(filepath.Base(existing), rest)
		existing = parent
	}
}

// Scan walks root in lexical order, skipping hidden entries, non-regular
// files and unsupported extensions, and indexes every remaining file.
// Unreadable entries below root are reported through opts.Warner and skipped.
func Scan(root string, opts ScanOptions) (*Library, error) {
	resolved, err := ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	reader := opts.Reader
	if reader == nil {
		reader = tags.Read
	}
	exts := extensionSet(opts.Extensions)

	lib := &Library{}
	err = filepath.WalkDir(resolved, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == resolved {
				return fmt.Errorf("%w: %s: %v", ErrInvalidRoot, root, walkErr)
			}
			warn(opts.Warner, path, walkErr)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == resolved {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !exts[extensionOf(path)] {
			return nil
		}

		var size int64
		if info, infoErr := d.Info(); infoErr == nil {
			size = info.Size()
		}

		index := lib.Add(NewSong(path, size, reader(path)))
		if opts.Progress != nil {
			song := lib.Songs[index]
			opts.Progress.Update(fmt.Sprintf("%d %s - %s", index+1, song.DisplayArtist(), song.Title))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lib, nil
}

func warn(w Warner, path string, err error) {
	if w != nil {
		w.Warn(path, err)
	}
}

func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))] = true
	}
	return set
}

func extensionOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
