package library

import (
	"fmt"
	"strings"

	"github.com/jaa/musicorg/internal/tags"
)

// NameSeparator joins multi-valued artist fields into one display name.
const NameSeparator = ", "

type Song struct {
	Path           string
	Size           int64
	TrackNumber    int
	TotalTracks    int
	DiscNumber     int
	TotalDiscs     int
	ReleaseArtists []string
	Artists        []string
	Release        string
	Title          string
	HasArtwork     bool
}

// NewSong builds a Song from the extraction result for path.
func NewSong(path string, size int64, m tags.Metadata) Song {
	return Song{
		Path:           path,
		Size:           size,
		TrackNumber:    m.TrackNumber,
		TotalTracks:    m.TotalTracks,
		DiscNumber:     m.DiscNumber,
		TotalDiscs:     m.TotalDiscs,
		ReleaseArtists: append([]string(nil), m.ReleaseArtists...),
		Artists:        append([]string(nil), m.Artists...),
		Release:        m.Release,
		Title:          m.Title,
		HasArtwork:     m.HasArtwork,
	}
}

func (s Song) ArtistsString() string {
	return joinNames(s.Artists)
}

func (s Song) ReleaseArtistsString() string {
	return joinNames(s.ReleaseArtists)
}

// joinNames drops blank entries so a list of empty names reads as no name.
func joinNames(names []string) string {
	kept := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			kept = append(kept, name)
		}
	}
	return strings.Join(kept, NameSeparator)
}

// GroupingArtist is the name the song is filed under: release artists first,
// then track artists. Empty means the song belongs in the unknown bucket.
func (s Song) GroupingArtist() string {
	if name := s.ReleaseArtistsString(); name != "" {
		return name
	}
	return s.ArtistsString()
}

// DisplayArtist is the artist shown in file names: track artists first, then
// release artists.
func (s Song) DisplayArtist() string {
	if name := s.ArtistsString(); name != "" {
		return name
	}
	return s.ReleaseArtistsString()
}

type Album struct {
	Name  string
	Songs []int
}

type Artist struct {
	Name   string
	Albums []Album
}

type Library struct {
	Songs   []Song
	Artists []Artist
	Unknown []int
}

// Add appends song and files it under its grouping artist and release.
// It returns the new song index.
func (l *Library) Add(song Song) int {
	index := len(l.Songs)
	l.Songs = append(l.Songs, song)

	artist := song.GroupingArtist()
	if artist == "" {
		l.Unknown = append(l.Unknown, index)
		return index
	}
	l.insert(artist, song.Release, index)
	return index
}

func (l *Library) insert(artistName, albumName string, songs ...int) {
	for i := range l.Artists {
		if l.Artists[i].Name == artistName {
			l.Artists[i].addSongs(albumName, songs...)
			return
		}
	}
	l.Artists = append(l.Artists, Artist{
		Name:   artistName,
		Albums: []Album{{Name: albumName, Songs: append([]int(nil), songs...)}},
	})
}

func (a *Artist) addSongs(albumName string, songs ...int) {
	for i := range a.Albums {
		if a.Albums[i].Name == albumName {
			a.Albums[i].Songs = append(a.Albums[i].Songs, songs...)
			return
		}
	}
	a.Albums = append(a.Albums, Album{Name: albumName, Songs: append([]int(nil), songs...)})
}

// Merge combines the artists at positions keep and drop under name. Albums
// of drop are folded into keep with the same exact-name rule used when
// indexing. If another artist already carries name exactly, it is folded in
// too so artist names stay unique. Merge returns the final position of the
// merged artist.
func (l *Library) Merge(keep, drop int, name string) (int, error) {
	if keep < 0 || keep >= len(l.Artists) || drop < 0 || drop >= len(l.Artists) {
		return -1, fmt.Errorf("merge artists %d and %d: index out of range (%d artists)", keep, drop, len(l.Artists))
	}
	if keep == drop {
		return -1, fmt.Errorf("merge artists: cannot merge artist %d with itself", keep)
	}

	l.absorb(keep, drop)
	if drop < keep {
		keep--
	}
	l.Artists[keep].Name = name

	for i := 0; i < len(l.Artists); i++ {
		if i != keep && l.Artists[i].Name == name {
			l.absorb(keep, i)
			if i < keep {
				keep--
			}
			i--
		}
	}
	return keep, nil
}

// absorb moves every album of artist drop into artist keep and removes drop.
func (l *Library) absorb(keep, drop int) {
	for _, album := range l.Artists[drop].Albums {
		l.Artists[keep].addSongs(album.Name, album.Songs...)
	}
	l.Artists = append(l.Artists[:drop], l.Artists[drop+1:]...)
}

// PartitionError lists violations of the one-place-per-song invariant.
type PartitionError struct {
	Problems []string
}

func (e *PartitionError) Error() string {
	return fmt.Sprintf("library partition broken: %s", strings.Join(e.Problems, "; "))
}

// Validate checks that every song index appears exactly once across all
// albums and the unknown bucket, and that artist and album names are unique.
func (l *Library) Validate() error {
	problems := []string{}
	seen := make([]int, len(l.Songs))

	count := func(index int, where string) {
		if index < 0 || index >= len(l.Songs) {
			problems = append(problems, fmt.Sprintf("%s references unknown song %d", where, index))
			return
		}
		seen[index]++
	}

	artistNames := map[string]struct{}{}
	for _, artist := range l.Artists {
		if _, dup := artistNames[artist.Name]; dup {
			problems = append(problems, fmt.Sprintf("duplicate artist %q", artist.Name))
		}
		artistNames[artist.Name] = struct{}{}

		albumNames := map[string]struct{}{}
		for _, album := range artist.Albums {
			if _, dup := albumNames[album.Name]; dup {
				problems = append(problems, fmt.Sprintf("duplicate album %q under %q", album.Name, artist.Name))
			}
			albumNames[album.Name] = struct{}{}
			for _, index := range album.Songs {
				count(index, fmt.Sprintf("album %q of %q", album.Name, artist.Name))
			}
		}
	}
	for _, index := range l.Unknown {
		count(index, "unknown bucket")
	}

	for index, n := range seen {
		switch {
		case n == 0:
			problems = append(problems, fmt.Sprintf("song %d (%s) is not filed", index, l.Songs[index].Path))
		case n > 1:
			problems = append(problems, fmt.Sprintf("song %d (%s) is filed %d times", index, l.Songs[index].Path, n))
		}
	}

	if len(problems) > 0 {
		return &PartitionError{Problems: problems}
	}
	return nil
}
