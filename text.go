package htmlpatch

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Normalize collapses every run of whitespace to a single space and trims
// the ends. All text comparisons between stored sections and live documents
// happen on normalized text.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Truncate returns the first n characters of s. Characters are runes, not
// bytes, so multi-byte text is never cut mid-character.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// Len returns the number of characters in s.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}

var blankLineRe = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

// SplitRewritten splits a rewritten content block into paragraphs.
// Paragraphs are separated by one or more blank lines; a line holding only
// spaces or tabs counts as blank. Each paragraph is trimmed and empty
// paragraphs are dropped.
func SplitRewritten(content string) []string {
	if strings.TrimSpace(content) == "" {
		return nil
	}

	parts := blankLineRe.Split(content, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paragraphs = append(paragraphs, p)
	}
	return paragraphs
}
