package tags

import (
	"os"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
)

// readMP3 reads ID3v2 frames directly and falls back to dhowden/tag, which
// also understands ID3v1.
func readMP3(path string) (Metadata, bool) {
	if m, ok := readID3v2(path); ok {
		return m, true
	}
	return readGeneric(path)
}

func readID3v2(path string) (Metadata, bool) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return Metadata{}, false
	}
	defer id3tag.Close()

	if !id3tag.HasFrames() {
		return Metadata{}, false
	}

	track, totalTracks := parseNumberPair(textFrame(id3tag, "TRCK"))
	disc, totalDiscs := parseNumberPair(textFrame(id3tag, "TPOS"))

	return Metadata{
		TrackNumber:    track,
		TotalTracks:    totalTracks,
		DiscNumber:     disc,
		TotalDiscs:     totalDiscs,
		Artists:        splitNames(textFrame(id3tag, "TPE1")),
		ReleaseArtists: splitNames(textFrame(id3tag, "TPE2")),
		Release:        textFrame(id3tag, "TALB"),
		Title:          textFrame(id3tag, "TIT2"),
		HasArtwork:     len(id3tag.GetFrames("APIC")) > 0,
	}, true
}

func textFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// readGeneric uses dhowden/tag, which handles ID3 and MP4 atoms alike.
func readGeneric(path string) (Metadata, bool) {
	f, err := os.Open(path)
	if err != nil {
		return Metadata{}, false
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Metadata{}, false
	}

	track, totalTracks := m.Track()
	disc, totalDiscs := m.Disc()

	return Metadata{
		TrackNumber:    clampNumber(track),
		TotalTracks:    clampNumber(totalTracks),
		DiscNumber:     clampNumber(disc),
		TotalDiscs:     clampNumber(totalDiscs),
		Artists:        splitNames(m.Artist()),
		ReleaseArtists: splitNames(m.AlbumArtist()),
		Release:        m.Album(),
		Title:          m.Title(),
		HasArtwork:     m.Picture() != nil,
	}, true
}
