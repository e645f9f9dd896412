// Package sanitize cleans untrusted text (stdin lines, clipboard rows)
// before it reaches the matcher or the terminal, and provides
// display-width-aware truncation for rendering.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ansiRE matches ANSI escape sequences:
//   - CSI sequences: ESC [ ... final_byte  (covers SGR like \x1b[31m)
//   - OSC sequences: ESC ] ... (ST | BEL)
//   - Charset sequences: ESC ( B, ESC ) B, etc.
//   - Other two-byte escapes: ESC followed by a single byte in [#()*+\-./]
var ansiRE = regexp.MustCompile(`\x1b(?:` +
	`\[[0-9;]*[A-Za-z]` +
	`|` +
	`\].*?(?:\x1b\\|\x07)` +
	`|` +
	`[()][A-B0-2]` +
	`|` +
	`[#()*+\-./][A-Za-z0-9]` +
	`)`)

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// ValidateUTF8 replaces invalid UTF-8 byte sequences with the Unicode
// replacement character (U+FFFD).
func ValidateUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			b.WriteRune(utf8.RuneError)
			i++
		} else {
			b.WriteRune(r)
			i += size
		}
	}
	return b.String()
}

// Line strips escape sequences, repairs invalid UTF-8 and flattens tabs,
// producing text safe to match against and echo to a terminal.
func Line(s string) string {
	s = ValidateUTF8(StripANSI(s))
	return strings.ReplaceAll(s, "\t", "  ")
}

// MiddleTruncate truncates a string in the middle with an ellipsis if its
// display width exceeds maxWidth. It is display-width-aware, correctly
// handling CJK characters and emoji that occupy two columns.
func MiddleTruncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	sw := runewidth.StringWidth(s)
	if sw <= maxWidth {
		return s
	}

	const ellipsis = "…"
	const ellipsisWidth = 1

	// Not enough room for head + ellipsis + tail: just hard-truncate.
	if maxWidth < 3 {
		return truncateLeft(s, maxWidth)
	}

	remaining := maxWidth - ellipsisWidth
	headWidth := (remaining + 1) / 2
	tailWidth := remaining / 2

	return truncateLeft(s, headWidth) + ellipsis + truncateRight(s, tailWidth)
}

// truncateLeft returns the longest prefix of s whose display width does not
// exceed maxWidth.
func truncateLeft(s string, maxWidth int) string {
	w := 0
	for i, r := range s {
		rw := runewidth.RuneWidth(r)
		if w+rw > maxWidth {
			return s[:i]
		}
		w += rw
	}
	return s
}

// truncateRight returns the longest suffix of s whose display width does
// not exceed maxWidth.
func truncateRight(s string, maxWidth int) string {
	runes := []rune(s)
	w := 0
	start := len(runes)
	for i := len(runes) - 1; i >= 0; i-- {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > maxWidth {
			break
		}
		w += rw
		start = i
	}
	return string(runes[start:])
}
