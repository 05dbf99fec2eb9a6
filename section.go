package htmlpatch

import (
	"encoding/json"
	"strconv"
)

// IntroHeading is the heading text of the synthetic section holding the
// paragraphs that precede the first heading of a document.
const IntroHeading = "[Intro]"

// MinTextLength is the shortest normalized text, in characters, that counts
// as content. Shorter headings and paragraphs are decorative noise.
const MinTextLength = 10

// Paragraph is a paragraph captured at extraction time. It is the basis for
// matching at update time and is never mutated after extraction.
type Paragraph struct {
	Text    string   `json:"text"`
	Classes []string `json:"classes"`
	Marker  string   `json:"marker,omitempty"`
}

// Section is a heading plus the paragraphs following it up to the next
// heading, or the introductory block of a document that has no heading.
// It is the unit of exchange with the external editing step.
type Section struct {
	Index          int         `json:"index"`
	HeadingTag     string      `json:"heading_tag"`
	HeadingLevel   int         `json:"heading_level"`
	HeadingText    string      `json:"heading_text"`
	HeadingClasses []string    `json:"heading_classes"`
	HeadingMarker  string      `json:"heading_marker,omitempty"`
	Paragraphs     []Paragraph `json:"paragraphs"`

	// Populated by the external editor.
	RewrittenHeading string `json:"rewritten_heading,omitempty"`
	RewrittenContent string `json:"rewritten_content,omitempty"`
}

// MarshalJSON writes the heading tag of an intro section as null.
func (s Section) MarshalJSON() ([]byte, error) {
	var tag *string
	if s.HeadingTag != "" {
		tag = &s.HeadingTag
	}
	return json.Marshal(struct {
		Index            int         `json:"index"`
		HeadingTag       *string     `json:"heading_tag"`
		HeadingLevel     int         `json:"heading_level"`
		HeadingText      string      `json:"heading_text"`
		HeadingClasses   []string    `json:"heading_classes"`
		HeadingMarker    string      `json:"heading_marker,omitempty"`
		Paragraphs       []Paragraph `json:"paragraphs"`
		RewrittenHeading string      `json:"rewritten_heading,omitempty"`
		RewrittenContent string      `json:"rewritten_content,omitempty"`
	}{
		Index:            s.Index,
		HeadingTag:       tag,
		HeadingLevel:     s.HeadingLevel,
		HeadingText:      s.HeadingText,
		HeadingClasses:   s.HeadingClasses,
		HeadingMarker:    s.HeadingMarker,
		Paragraphs:       s.Paragraphs,
		RewrittenHeading: s.RewrittenHeading,
		RewrittenContent: s.RewrittenContent,
	})
}

// Validate returns an error if the section contains invalid fields.
func (s *Section) Validate() error {
	if s.Index < 0 {
		return Errorf(EINVALID, "section index must not be negative")
	}
	if s.HeadingText == "" {
		return Errorf(EINVALID, "section %d: heading text required", s.Index)
	}
	if s.IsIntro() && s.HeadingTag != "" {
		return Errorf(EINVALID, "section %d: intro section cannot carry heading tag %q", s.Index, s.HeadingTag)
	}
	if !s.IsIntro() && HeadingLevel(s.HeadingTag) == 0 {
		return Errorf(EINVALID, "section %d: invalid heading tag %q", s.Index, s.HeadingTag)
	}
	if len(s.Paragraphs) == 0 {
		return Errorf(EINVALID, "section %d: at least one paragraph required", s.Index)
	}
	return nil
}

// IsIntro reports whether s is the synthetic introductory section.
func (s *Section) IsIntro() bool {
	return s.HeadingText == IntroHeading
}

// HasRewrite reports whether the editor supplied replacement content.
func (s *Section) HasRewrite() bool {
	return len(s.RewrittenParagraphs()) > 0
}

// RewrittenParagraphs splits the rewritten content into paragraphs.
func (s *Section) RewrittenParagraphs() []string {
	return SplitRewritten(s.RewrittenContent)
}

// Marked reports whether every paragraph of s carries a stable marker.
func (s *Section) Marked() bool {
	if len(s.Paragraphs) == 0 {
		return false
	}
	for _, p := range s.Paragraphs {
		if p.Marker == "" {
			return false
		}
	}
	return true
}

// HeadingLevel returns the level of a heading tag (h1=1 ... h6=6), or 0 if
// tag is not a heading.
func HeadingLevel(tag string) int {
	if len(tag) != 2 || tag[0] != 'h' {
		return 0
	}
	level, err := strconv.Atoi(tag[1:])
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}

// ValidateSections checks every section and the ordering invariant: indexes
// run 0..n-1 without gaps.
func ValidateSections(sections []Section) error {
	for i := range sections {
		if err := sections[i].Validate(); err != nil {
			return err
		}
		if sections[i].Index != i {
			return Errorf(EINVALID, "section at position %d has index %d", i, sections[i].Index)
		}
	}
	return nil
}
