package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Prince", "Prince"},
		{"AC/DC", "ACDC"},
		{`What? "Now": <a|b>*\`, "What Now ab"},
		{".hidden", "_hidden"},
		{"Jr.", "Jr_"},
		{".", "_"},
		{"..", "__"},
		{"...And Justice", "_..And Justice"},
		{"///", Placeholder},
		{"", Placeholder},
		{"tab\there", "tabhere"},
		{"Sigur Rós", "Sigur Rós"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Segment(tt.input))
		})
	}
}

func TestSegmentProperties(t *testing.T) {
	inputs := []string{
		"", ".", "..", "...", "a.", ".a.", "a..", "/.", "./", ".:.", ":.:", "?.?",
		"Mr. Big.", "<>:\"/\\|?*", "..//..", "  . ", "Ω.", ".Ω", "x/y\\z",
	}

	for _, in := range inputs {
		once := Segment(in)
		assert.Equal(t, once, Segment(once), "idempotence for %q", in)
		assert.NotEmpty(t, once, "non-empty for %q", in)
		assert.False(t, strings.ContainsAny(once, `<>:"/\|?*`), "forbidden chars in %q", once)
		assert.False(t, strings.HasPrefix(once, "."), "leading dot in %q", once)
		assert.False(t, strings.HasSuffix(once, "."), "trailing dot in %q", once)
	}
}

func TestFileNames(t *testing.T) {
	if got := SingleFile("Björk", "Army of Me", ".mp3"); got != "Björk - Army of Me.mp3" {
		t.Fatalf("SingleFile = %q", got)
	}
	if got := TrackFile(7, "AC/DC", "T.N.T.", ".m4a"); got != "07 - ACDC - T.N.T_.m4a" {
		t.Fatalf("TrackFile = %q", got)
	}
	if got := TrackFile(0, "", "", ".mp3"); got != "00 - _ - _.mp3" {
		t.Fatalf("TrackFile empty = %q", got)
	}
	if got := TrackFile(123, "A", "B", ""); got != "123 - A - B" {
		t.Fatalf("TrackFile wide = %q", got)
	}
}

func TestCollisionResolver(t *testing.T) {
	cr := NewCollisionResolver()

	if got := cr.Resolve("/in/a.mp3", "/out/X/song.mp3"); got != "/out/X/song.mp3" {
		t.Fatalf("first claim = %q", got)
	}
	if got := cr.Resolve("/in/a.mp3", "/out/X/song.mp3"); got != "/out/X/song.mp3" {
		t.Fatalf("repeat claim by owner = %q", got)
	}
	if got := cr.Resolve("/in/b.mp3", "/out/X/song.mp3"); got != "/out/X/song (2).mp3" {
		t.Fatalf("second claim = %q", got)
	}
	if got := cr.Resolve("/in/c.mp3", "/out/X/song.mp3"); got != "/out/X/song (3).mp3" {
		t.Fatalf("third claim = %q", got)
	}
}

func TestCollisionResolverSkipsReservedSuffix(t *testing.T) {
	cr := NewCollisionResolver()
	if !cr.Reserve("/out/X/song (2).mp3", "/out/X/song (2).mp3") {
		t.Fatal("reserve of free path failed")
	}
	cr.Resolve("/in/a.mp3", "/out/X/song.mp3")

	if got := cr.Resolve("/in/b.mp3", "/out/X/song.mp3"); got != "/out/X/song (3).mp3" {
		t.Fatalf("claim past reserved suffix = %q", got)
	}
	if cr.Reserve("/in/c.mp3", "/out/X/song.mp3") {
		t.Fatal("reserve of owned path succeeded")
	}
}

func TestCollisionResolverRespectsBlockedPaths(t *testing.T) {
	cr := NewCollisionResolver()
	cr.Block("/out/X/song (2).mp3", "/out/X/song (2).mp3")
	cr.Block("/out/X/song.mp3", "/out/X/song.mp3")

	if cr.Reserve("/in/a.mp3", "/out/X/song.mp3") {
		t.Fatal("reserve of a path occupied by another source succeeded")
	}
	if got := cr.Resolve("/in/a.mp3", "/out/X/song.mp3"); got != "/out/X/song (3).mp3" {
		t.Fatalf("claim past occupied paths = %q", got)
	}
	if !cr.Reserve("/out/X/song.mp3", "/out/X/song.mp3") {
		t.Fatal("occupant could not claim its own path")
	}
}

func TestCollisionResolverKeepsNumberedSource(t *testing.T) {
	cr := NewCollisionResolver()
	cr.Reserve("/out/X/song.mp3", "/out/X/song.mp3")

	if got := cr.Resolve("/out/X/song (4).mp3", "/out/X/song.mp3"); got != "/out/X/song (4).mp3" {
		t.Fatalf("numbered source moved to %q", got)
	}
	if got := cr.Resolve("/in/new.mp3", "/out/X/song.mp3"); got != "/out/X/song (2).mp3" {
		t.Fatalf("new claim = %q", got)
	}
	if got := cr.Resolve("/out/Y/song (3).mp3", "/out/X/song.mp3"); got != "/out/X/song (3).mp3" {
		t.Fatalf("numbered source in another dir = %q", got)
	}
}

func TestIsNumberedVariant(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/out/X/song (2).mp3", true},
		{"/out/X/song (12).mp3", true},
		{"/out/X/song.mp3", false},
		{"/out/X/song (1).mp3", false},
		{"/out/X/song (02).mp3", false},
		{"/out/X/song (x).mp3", false},
		{"/out/X/song (2).m4a", false},
		{"/out/Y/song (2).mp3", false},
	}
	for _, tc := range tests {
		if got := IsNumberedVariant("/out/X/song.mp3", tc.path); got != tc.want {
			t.Fatalf("IsNumberedVariant(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}
