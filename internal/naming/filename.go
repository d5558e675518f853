package naming

import "fmt"

// SingleFile names a track that is filed directly under its artist.
//
//	<Artist> - <Title><ext>
func SingleFile(artist, title, ext string) string {
	return fmt.Sprintf("%s - %s%s", Segment(artist), Segment(title), ext)
}

// TrackFile names a track inside an album directory. A zero track number
// renders as 00.
//
//	<NN> - <Artist> - <Title><ext>
func TrackFile(track int, artist, title, ext string) string {
	if track < 0 {
		track = 0
	}
	return fmt.Sprintf("%02d - %s - %s%s", track, Segment(artist), Segment(title), ext)
}
