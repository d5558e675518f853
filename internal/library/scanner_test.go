package library

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaa/musicorg/internal/tags"
)

// fakeTags serves metadata keyed by file base name.
type fakeTags map[string]tags.Metadata

func (f fakeTags) read(path string) tags.Metadata {
	return f[filepath.Base(path)]
}

type recordingProgress struct {
	lines []string
}

func (p *recordingProgress) Update(line string) {
	p.lines = append(p.lines, line)
}

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
	}
}

func meta(artist, album, title string, track int) tags.Metadata {
	m := tags.Metadata{Release: album, Title: title, TrackNumber: track}
	if artist != "" {
		m.Artists = []string{artist}
	}
	return m
}

func TestScanFiltersAndIndexes(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"a.mp3",
		"sub/b.m4a",
		"sub/c.txt",
		".hidden.mp3",
		".cache/d.mp3",
		"e.M4B",
		"f.flac",
	)

	reader := fakeTags{
		"a.mp3":  meta("X", "Hits", "A", 1),
		"b.m4a":  meta("X", "Hits", "B", 2),
		"d.mp3":  meta("Hidden", "", "D", 0),
		"e.M4B":  meta("", "", "Book", 0),
		"f.flac": meta("Y", "", "F", 0),
	}
	progress := &recordingProgress{}

	lib, err := Scan(root, ScanOptions{Reader: reader.read, Progress: progress})
	require.NoError(t, err)

	require.Len(t, lib.Songs, 3)
	require.Len(t, lib.Artists, 1)
	assert.Equal(t, "X", lib.Artists[0].Name)
	assert.Equal(t, []Album{{Name: "Hits", Songs: []int{0, 2}}}, lib.Artists[0].Albums)
	assert.Equal(t, []int{1}, lib.Unknown)
	assert.Equal(t, int64(len("audio")), lib.Songs[0].Size)
	assert.Len(t, progress.lines, 3)
	assert.True(t, strings.HasPrefix(progress.lines[0], "1 X - A"))
	assert.NoError(t, lib.Validate())
}

func TestScanSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "real.mp3")
	if err := os.Symlink(filepath.Join(root, "real.mp3"), filepath.Join(root, "link.mp3")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	lib, err := Scan(root, ScanOptions{Reader: fakeTags{}.read})
	require.NoError(t, err)
	require.Len(t, lib.Songs, 1)
	assert.Equal(t, "real.mp3", filepath.Base(lib.Songs[0].Path))
}

func TestScanCustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.mp3", "b.ogg")

	lib, err := Scan(root, ScanOptions{Reader: fakeTags{}.read, Extensions: []string{".OGG"}})
	require.NoError(t, err)
	require.Len(t, lib.Songs, 1)
	assert.Equal(t, "b.ogg", filepath.Base(lib.Songs[0].Path))
}

func TestScanInvalidRoot(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"), ScanOptions{})
	assert.True(t, errors.Is(err, ErrInvalidRoot))

	file := filepath.Join(t.TempDir(), "file.mp3")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = Scan(file, ScanOptions{})
	assert.True(t, errors.Is(err, ErrInvalidRoot))
}

func TestScanIsDeterministicAcrossCreationOrder(t *testing.T) {
	names := []string{"c.mp3", "a.mp3", "d/b.mp3", "e.mp3"}
	reader := fakeTags{
		"a.mp3": meta("X", "One", "A", 1),
		"b.mp3": meta("Y", "Two", "B", 1),
		"c.mp3": meta("X", "One", "C", 2),
		"e.mp3": meta("X", "", "E", 0),
	}

	first := t.TempDir()
	writeFiles(t, first, names...)
	second := t.TempDir()
	for i := len(names) - 1; i >= 0; i-- {
		writeFiles(t, second, names[i])
	}

	libA, err := Scan(first, ScanOptions{Reader: reader.read})
	require.NoError(t, err)
	libB, err := Scan(second, ScanOptions{Reader: reader.read})
	require.NoError(t, err)

	assert.Equal(t, libA.Artists, libB.Artists)
	assert.Equal(t, libA.Unknown, libB.Unknown)
	rootA, err := ResolveRoot(first)
	require.NoError(t, err)
	rootB, err := ResolveRoot(second)
	require.NoError(t, err)
	require.Len(t, libB.Songs, len(libA.Songs))
	for i := range libA.Songs {
		relA, _ := filepath.Rel(rootA, libA.Songs[i].Path)
		relB, _ := filepath.Rel(rootB, libB.Songs[i].Path)
		assert.Equal(t, relA, relB)
	}
}

func TestResolveOutputRootFollowsExistingAncestor(t *testing.T) {
	target := t.TempDir()
	link := filepath.Join(t.TempDir(), "link")
	require.NoError(t, os.Symlink(target, link))
	resolvedTarget, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)

	got, err := ResolveOutputRoot(link)
	require.NoError(t, err)
	assert.Equal(t, resolvedTarget, got)

	got, err = ResolveOutputRoot(filepath.Join(link, "a", "b"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(resolvedTarget, "a", "b"), got)

	root, err := ResolveRoot(link)
	require.NoError(t, err)
	assert.Equal(t, root, resolvedTarget)
}
