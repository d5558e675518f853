package tags

import (
	"go.senan.xyz/taglib"
)

// readMP4 tries dhowden/tag first; TagLib handles files it cannot parse,
// such as some ffmpeg-written M4A containers.
func readMP4(path string) (Metadata, bool) {
	if m, ok := readGeneric(path); ok {
		return m, true
	}
	return readMP4WithTaglib(path)
}

var (
	taglibReadTags       = taglib.ReadTags
	taglibReadProperties = taglib.ReadProperties
)

func readMP4WithTaglib(path string) (Metadata, bool) {
	raw, err := taglibReadTags(path)
	if err != nil {
		return Metadata{}, false
	}
	values := taglibTags(raw)

	track, totalTracks := parseNumberPair(values.get(taglib.TrackNumber))
	disc, totalDiscs := parseNumberPair(values.get(taglib.DiscNumber))
	if totalTracks == 0 {
		totalTracks = positive(values.get("TOTALTRACKS"))
	}
	if totalDiscs == 0 {
		totalDiscs = positive(values.get("TOTALDISCS"))
	}

	return Metadata{
		TrackNumber:    track,
		TotalTracks:    totalTracks,
		DiscNumber:     disc,
		TotalDiscs:     totalDiscs,
		Artists:        splitNames(raw[taglib.Artist]...),
		ReleaseArtists: splitNames(raw[taglib.AlbumArtist]...),
		Release:        values.get(taglib.Album),
		Title:          values.get(taglib.Title),
		HasArtwork:     hasTaglibArtwork(path),
	}, true
}

// hasTaglibArtwork only looks at the image descriptions, not the image data.
func hasTaglibArtwork(path string) bool {
	props, err := taglibReadProperties(path)
	if err != nil {
		return false
	}
	return len(props.Images) > 0
}

type taglibTags map[string][]string

// get returns the first value for any of the given keys.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}
