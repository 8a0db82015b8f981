package services

import (
	"strings"

	"mekanlist/internal/utils"
)

// Turkish characters mapped to their ASCII base form for slugs.
var turkishASCII = map[rune]rune{
	'ç': 'c', 'ğ': 'g', 'ı': 'i', 'İ': 'i', 'ö': 'o', 'ş': 's', 'ü': 'u',
	'Ç': 'c', 'Ğ': 'g', 'Ö': 'o', 'Ş': 's', 'Ü': 'u',
}

const slugSuffixLen = 4

// Slugify lowercases, transliterates Turkish characters, collapses runs of
// anything outside [a-z0-9] into single hyphens and trims the edges. The
// result can be empty when the input has no mappable characters.
func Slugify(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range text {
		if mapped, ok := turkishASCII[r]; ok {
			r = mapped
		}
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// NewSlug builds a slug for a new entity: the transliterated base plus a
// short random suffix, avoiding collisions without an existence round-trip.
// When the base degenerates to empty the suffix alone becomes the slug.
// Existing slugs are never regenerated; edits reuse them unconditionally.
func NewSlug(name string) string {
	base := Slugify(name)
	suffix := utils.RandStringBytesMaskImpr(slugSuffixLen)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
