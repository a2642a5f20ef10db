package parsing

import "regexp"

// exampleMarkers matches the "e.g." and "i.e." abbreviations with an optional trailing comma.
var exampleMarkers = regexp.MustCompile(`(?i)(?:e\.g\.|i\.e\.),?`)

// Normalize removes "e.g." and "i.e." markers from text and changes nothing else.
// Removal repeats until no marker is left, so a deletion that exposes a new marker
// (as in "e.e.g.g.") is handled and Normalize(Normalize(x)) == Normalize(x).
func Normalize(text string) string {
	for {
		next := exampleMarkers.ReplaceAllString(text, "")
		if next == text {
			return text
		}
		text = next
	}
}
