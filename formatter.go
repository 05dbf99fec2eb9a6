package htmlpatch

import (
	"fmt"
	"strings"
)

// FormatSections formats sections for the external editor.
// If only is non-empty, sections whose index is not in it are left out.
// Paragraph text is shortened to 100 characters. Sections are separated by
// blank lines.
func FormatSections(sections []Section, only map[int]bool) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		if len(only) > 0 && !only[s.Index] {
			continue
		}

		tag := s.HeadingTag
		if tag == "" {
			tag = "intro"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "### Section [%d] - %s\n", s.Index, tag)
		fmt.Fprintf(&b, "**Heading:** %s\n", s.HeadingText)
		b.WriteString("**Content:**")
		for _, p := range s.Paragraphs {
			b.WriteString("\n  - ")
			b.WriteString(Ellipsize(p.Text, 100))
		}
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}

// FormatPreview describes what an update of meta would change without
// touching the document.
func FormatPreview(meta *DocumentMeta) string {
	var b strings.Builder

	title := meta.RewrittenTitle
	if title == "" {
		title = "(unchanged)"
	}
	description := meta.RewrittenDescription
	if description == "" {
		description = "(unchanged)"
	}

	rewritten := meta.RewrittenSections()
	fmt.Fprintf(&b, "Title: %s\n", Ellipsize(title, 50))
	fmt.Fprintf(&b, "Description: %s\n", Ellipsize(description, 60))
	fmt.Fprintf(&b, "Sections: %d/%d", len(rewritten), len(meta.Sections))

	for i, s := range rewritten {
		if i == 5 {
			fmt.Fprintf(&b, "\n  ... and %d more sections", len(rewritten)-5)
			break
		}
		heading := Ellipsize(s.HeadingText, 40)
		newHeading := heading
		if s.RewrittenHeading != "" {
			newHeading = Ellipsize(s.RewrittenHeading, 40)
		}
		fmt.Fprintf(&b, "\n  [%d] %s -> %s (%d paragraphs)", s.Index, heading, newHeading, len(s.RewrittenParagraphs()))
	}

	return b.String()
}

// Ellipsize shortens s to n characters, marking the cut with "...".
func Ellipsize(s string, n int) string {
	if Len(s) <= n {
		return s
	}
	return Truncate(s, n) + "..."
}
