// Package naming turns free-form tag text into path segments that are valid
// on Windows, macOS and Linux.
package naming

import (
	"regexp"
	"strings"
)

// Placeholder replaces a segment that would otherwise be empty.
const Placeholder = "_"

// Characters rejected by at least one common filesystem, plus control codes.
var reForbidden = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

// Segment strips forbidden characters from s and neutralizes a leading or
// trailing dot. The result is never empty and Segment(Segment(s)) == Segment(s).
func Segment(s string) string {
	s = reForbidden.ReplaceAllString(s, "")

	if strings.HasPrefix(s, ".") {
		s = Placeholder + s[1:]
	}
	if strings.HasSuffix(s, ".") {
		s = s[:len(s)-1] + Placeholder
	}

	if s == "" {
		return Placeholder
	}
	return s
}
