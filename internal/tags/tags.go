// Package tags reads the subset of embedded audio metadata needed to
// organize a library. Each supported container is one variant of the same
// read capability, selected by file extension.
package tags

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Metadata is the extraction result for one file. Zero numbers mean the
// value is absent.
type Metadata struct {
	TrackNumber    int
	TotalTracks    int
	DiscNumber     int
	TotalDiscs     int
	Artists        []string
	ReleaseArtists []string
	Release        string
	Title          string
	HasArtwork     bool
}

// Reader extracts metadata for a path. Implementations never fail; they
// return the zero Metadata instead.
type Reader func(path string) Metadata

type format int

const (
	formatUnsupported format = iota
	formatMP3
	formatMP4
)

func formatFor(path string) format {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "mp3":
		return formatMP3
	case "m4a", "m4b", "m4p", "m4v":
		return formatMP4
	default:
		return formatUnsupported
	}
}

// Read dispatches to the container-specific reader for path.
func Read(path string) Metadata {
	var (
		m  Metadata
		ok bool
	)
	switch formatFor(path) {
	case formatMP3:
		m, ok = readMP3(path)
	case formatMP4:
		m, ok = readMP4(path)
	}
	if !ok {
		return Metadata{}
	}
	return m
}

// splitNames splits a multi-valued text tag. ID3v2.4 separates values with NUL.
func splitNames(values ...string) []string {
	var names []string
	for _, value := range values {
		for _, part := range strings.Split(value, "\x00") {
			part = strings.TrimSpace(part)
			if part != "" {
				names = append(names, part)
			}
		}
	}
	return names
}

// parseNumberPair parses "N" or "N/M".
func parseNumberPair(s string) (num, total int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num = positive(parts[0])
	if len(parts) == 2 {
		total = positive(parts[1])
	}
	return num, total
}

func positive(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func clampNumber(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
