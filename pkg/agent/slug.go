package agent

import "strings"

// maxSlugLen caps slugs so they stay usable as filename stems.
const maxSlugLen = 60

// Slugify derives the merge key and output filename stem from a display name.
// It lower-cases the input, collapses every run of non-alphanumeric
// characters into a single hyphen, trims leading/trailing hyphens, and caps
// the result at 60 characters (re-trimming if the cut lands on a hyphen).
//
// Slugify is lossy: unrelated names can normalize to the same slug, in which
// case the merge stage conflates them. Callers that need a stronger identity
// must disambiguate before merging.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	s := strings.TrimRight(b.String(), "-")
	if len(s) > maxSlugLen {
		s = strings.TrimRight(s[:maxSlugLen], "-")
	}
	return s
}
