package service

import (
	"strings"
	"unicode"
)

// Slugify builds a URL-safe slug: lowercase, runs of anything that is
// not a letter or digit collapse into a single hyphen.
func Slugify(parts ...string) string {
	joined := strings.Join(parts, " ")

	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(joined) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// NormalizeTags lowercases, trims and dedupes a tag list, preserving
// first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}
