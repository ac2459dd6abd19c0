package service

import "strings"

// Slugify derives a URL-safe slug from a display name: lower-cased,
// trimmed, with everything outside [a-z0-9 -] dropped, and runs of
// whitespace or hyphens collapsed to a single hyphen. The result never
// starts or ends with a hyphen.
//
// Names with no sluggable characters (e.g. all-Hangul names) yield the
// empty string; uniqueness resolution then degrades to purely numeric
// suffixes, matching the store's unique constraint semantics.
func Slugify(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))

	var b strings.Builder
	b.Grow(len(lower))
	lastHyphen := false
	for _, r := range lower {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		// every other rune is dropped
	}

	return strings.TrimRight(b.String(), "-")
}
