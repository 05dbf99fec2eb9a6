package goquery

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlpatch"
)

// Ensure Segmenter implements htmlpatch.Segmenter at compile time.
var _ htmlpatch.Segmenter = (*Segmenter)(nil)

// noiseSelector matches subtrees that never hold page content.
const noiseSelector = "script, style, nav, footer, aside, noscript, iframe, header"

// containerTokens are class substrings identifying a content container.
var containerTokens = []string{"content", "entry", "post"}

// Segmenter partitions a document into heading + paragraph sections.
type Segmenter struct {
	markers bool
}

// SegmenterOption configures a Segmenter.
type SegmenterOption func(*Segmenter)

// WithMarkers makes the Segmenter stamp every heading and paragraph of the
// live document with a stable marker attribute. The annotated document is
// returned in Extraction.HTML and markers are recorded in the sections.
func WithMarkers() SegmenterOption {
	return func(s *Segmenter) {
		s.markers = true
	}
}

// NewSegmenter creates a new Segmenter.
func NewSegmenter(opts ...SegmenterOption) *Segmenter {
	s := &Segmenter{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment parses html and returns its sections in document order.
func (s *Segmenter) Segment(content string) (*htmlpatch.Extraction, error) {
	doc, err := parse(content)
	if err != nil {
		return nil, err
	}

	result := &htmlpatch.Extraction{
		Title: textOf(doc.Find("title")),
	}
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		result.Description = desc
	}

	if s.markers {
		stampMarkers(doc)
		if result.HTML, err = render(doc); err != nil {
			return nil, fmt.Errorf("render annotated document: %w", err)
		}
	}

	// Noise is stripped from a working copy so the live document is untouched.
	work := goquery.NewDocumentFromNode(doc.Selection.Clone().Nodes[0])
	work.Find(noiseSelector).Remove()

	container := contentContainer(work)
	if container == nil {
		result.Sections = []htmlpatch.Section{}
		return result, nil
	}

	st := &segmentation{}
	container.Find(headingSelector + ", p").Each(func(_ int, sel *goquery.Selection) {
		text := textOf(sel)
		if htmlpatch.Len(text) < htmlpatch.MinTextLength {
			return
		}
		marker, _ := sel.Attr(MarkerAttr)

		if tag := goquery.NodeName(sel); htmlpatch.HeadingLevel(tag) > 0 {
			st.heading(tag, text, classList(sel), marker)
			return
		}
		st.paragraph(htmlpatch.Paragraph{
			Text:    text,
			Classes: classList(sel),
			Marker:  marker,
		})
	})
	st.flush()

	result.Sections = st.sections
	return result, nil
}

// segmentation is the state of one traversal.
type segmentation struct {
	sections []htmlpatch.Section
	current  *htmlpatch.Section
	index    int

	// introOpened is set once the [Intro] section exists; a document never
	// gets a second one.
	introOpened bool
}

func (st *segmentation) heading(tag, text string, classes []string, marker string) {
	if st.current != nil && len(st.current.Paragraphs) > 0 {
		st.sections = append(st.sections, *st.current)
		st.index++
	}
	// A heading that never receives a paragraph is replaced here and
	// silently dropped.
	st.current = &htmlpatch.Section{
		Index:          st.index,
		HeadingTag:     tag,
		HeadingLevel:   htmlpatch.HeadingLevel(tag),
		HeadingText:    text,
		HeadingClasses: classes,
		HeadingMarker:  marker,
		Paragraphs:     []htmlpatch.Paragraph{},
	}
}

func (st *segmentation) paragraph(p htmlpatch.Paragraph) {
	if st.current == nil && !st.introOpened {
		st.introOpened = true
		st.current = &htmlpatch.Section{
			Index:          st.index,
			HeadingText:    htmlpatch.IntroHeading,
			HeadingClasses: []string{},
			Paragraphs:     []htmlpatch.Paragraph{},
		}
	}
	if st.current != nil {
		st.current.Paragraphs = append(st.current.Paragraphs, p)
	}
}

func (st *segmentation) flush() {
	if st.current != nil && len(st.current.Paragraphs) > 0 {
		st.sections = append(st.sections, *st.current)
	}
	st.current = nil
	if st.sections == nil {
		st.sections = []htmlpatch.Section{}
	}
}

// contentContainer picks the most specific content container of doc:
// <main>, then <article>, then an element whose class names a content
// area, then <body>. Returns nil if doc has no body.
func contentContainer(doc *goquery.Document) *goquery.Selection {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return nil
	}
	if main := body.Find("main").First(); main.Length() > 0 {
		return main
	}
	if article := body.Find("article").First(); article.Length() > 0 {
		return article
	}
	classed := body.Find("[class]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return classMentions(sel, containerTokens...)
	}).First()
	if classed.Length() > 0 {
		return classed
	}
	return body
}

// ExtractContent returns the content container of a document as HTML, with
// noise subtrees removed. It is the region the Segmenter reads from.
func ExtractContent(content string) (string, error) {
	doc, err := parse(content)
	if err != nil {
		return "", err
	}
	doc.Find(noiseSelector).Remove()

	container := contentContainer(doc)
	if container == nil {
		return "", htmlpatch.Errorf(htmlpatch.ENOTFOUND, "document has no body")
	}
	return goquery.OuterHtml(container)
}

// stampMarkers gives every heading and paragraph without a marker a new one.
// Existing markers are kept and new keys never collide with them.
func stampMarkers(doc *goquery.Document) {
	used := make(map[string]bool)
	doc.Find("[" + MarkerAttr + "]").Each(func(_ int, sel *goquery.Selection) {
		key, _ := sel.Attr(MarkerAttr)
		used[key] = true
	})

	next := 0
	doc.Find(headingSelector + ", p").Each(func(_ int, sel *goquery.Selection) {
		if _, ok := sel.Attr(MarkerAttr); ok {
			return
		}
		for {
			key := fmt.Sprintf("hp-%d", next)
			next++
			if !used[key] {
				used[key] = true
				sel.SetAttr(MarkerAttr, key)
				return
			}
		}
	})
}
