// Package sanitize normalizes model output before it reaches a caller.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

// EmojiRanges is the exact set of Unicode ranges stripped from replies:
// emoticons, symbols and pictographs, transport symbols, regional
// indicators, miscellaneous symbols, and dingbats. The table is fixed so the
// behavior is reproducible.
var EmojiRanges = [...][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2600, 0x26FF},
	{0x2700, 0x27BF},
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Clean strips every literal asterisk, drops emoji and pictographic symbols
// per EmojiRanges, and trims surrounding whitespace. Idempotent.
func Clean(text string) string {
	out := strings.Map(func(r rune) rune {
		if r == '*' || isEmoji(r) {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(out)
}

func isEmoji(r rune) bool {
	for _, rng := range EmojiRanges {
		if r >= rng[0] && r <= rng[1] {
			return true
		}
	}
	return false
}

// StripHTML removes markup so only plain text is stored in a transcript.
func StripHTML(text string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(text, "")))
}
