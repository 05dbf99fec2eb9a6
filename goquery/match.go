package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlpatch"
)

// Matching thresholds, in characters.
const (
	headingPrefixLen   = 30
	overlapRatio       = 0.8
	paragraphWindow    = 100
	paragraphPrefixLen = 50
	paragraphProbeLen  = 30
	paragraphProbeMin  = 20
	introMinLen        = 50
)

// FindHeading locates the live heading element for a stored heading.
// Returns nil for the intro section or when nothing matches.
//
// Candidates are all elements of headingTag in document order. The rules
// are tried as separate passes, so a verbatim match always wins over an
// earlier element that only matches loosely:
//   - exact normalized text
//   - both texts longer than 30 characters with the same first 30
//   - one text contains the other and the shorter is over 80% of the longer
func FindHeading(doc *goquery.Document, headingText, headingTag string) *goquery.Selection {
	if headingTag == "" || headingText == htmlpatch.IntroHeading {
		return nil
	}
	if htmlpatch.HeadingLevel(headingTag) == 0 {
		return nil
	}

	target := htmlpatch.Normalize(headingText)
	if target == "" {
		return nil
	}

	candidates := doc.Find(headingTag)
	rules := []func(live string) bool{
		func(live string) bool {
			return live == target
		},
		func(live string) bool {
			return htmlpatch.Len(target) > headingPrefixLen && htmlpatch.Len(live) > headingPrefixLen &&
				htmlpatch.Truncate(live, headingPrefixLen) == htmlpatch.Truncate(target, headingPrefixLen)
		},
		func(live string) bool {
			return overlaps(live, target)
		},
	}

	for _, rule := range rules {
		match := candidates.FilterFunction(func(_ int, sel *goquery.Selection) bool {
			return rule(textOf(sel))
		}).First()
		if match.Length() > 0 {
			return match
		}
	}
	return nil
}

// overlaps reports whether one text contains the other and the two are of
// comparable length. The ratio guard keeps short strings from matching
// anything that happens to contain them.
func overlaps(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if !strings.Contains(a, b) && !strings.Contains(b, a) {
		return false
	}
	la, lb := htmlpatch.Len(a), htmlpatch.Len(b)
	shorter, longer := min(la, lb), max(la, lb)
	return float64(shorter)/float64(longer) > overlapRatio
}

// SectionParagraphs returns the paragraphs belonging to a heading: every <p>
// between it and the next heading sibling. Paragraphs wrapped in a
// div/section/article sibling are collected too; a wrapper that holds a
// heading of its own contributes only its first paragraph.
func SectionParagraphs(heading *goquery.Selection) []*goquery.Selection {
	var paragraphs []*goquery.Selection
	if heading == nil || heading.Length() == 0 {
		return paragraphs
	}

	for sib := heading.First().Next(); sib.Length() > 0; sib = sib.Next() {
		if isHeading(sib.Get(0)) {
			break
		}
		switch goquery.NodeName(sib) {
		case "p":
			paragraphs = append(paragraphs, sib)
		case "div", "section", "article":
			paragraphs = append(paragraphs, wrappedParagraphs(sib)...)
		}
	}
	return paragraphs
}

// wrappedParagraphs collects the <p> descendants of a wrapper in document
// order. When the wrapper nests a heading anywhere, only the first <p> is
// taken, wherever it sits relative to that heading.
func wrappedParagraphs(wrapper *goquery.Selection) []*goquery.Selection {
	ps := wrapper.Find("p")
	if ps.Length() == 0 {
		return nil
	}
	if wrapper.Find(headingSelector).Length() > 0 {
		return []*goquery.Selection{ps.First()}
	}
	paragraphs := make([]*goquery.Selection, 0, ps.Length())
	ps.Each(func(_ int, sel *goquery.Selection) {
		paragraphs = append(paragraphs, sel)
	})
	return paragraphs
}

// FindParagraphByText returns the index of the first candidate whose text
// fuzzily matches target, or -1. Both texts are normalized and cut to 100
// characters; they match when their first 50 characters are equal, or when
// a target longer than 20 characters has its first 30 characters somewhere
// in the candidate.
func FindParagraphByText(candidates []*goquery.Selection, target string) int {
	want := htmlpatch.Truncate(htmlpatch.Normalize(target), paragraphWindow)
	if want == "" {
		return -1
	}
	wantPrefix := htmlpatch.Truncate(want, paragraphPrefixLen)
	wantProbe := htmlpatch.Truncate(want, paragraphProbeLen)

	for i, sel := range candidates {
		got := htmlpatch.Truncate(textOf(sel), paragraphWindow)
		if htmlpatch.Truncate(got, paragraphPrefixLen) == wantPrefix {
			return i
		}
		if htmlpatch.Len(want) > paragraphProbeMin && strings.Contains(got, wantProbe) {
			return i
		}
	}
	return -1
}

// FindFirstContentParagraph guesses the first paragraph of a document's
// main copy, for intro sections that have no heading to anchor on. It
// tries, in order: the first <p> of the first div whose class mentions
// "text"; the first <p> of a div.j-scrollbox; the first <p> longer than 50
// characters inside main/article, or body when neither exists.
func FindFirstContentParagraph(doc *goquery.Document) *goquery.Selection {
	textDiv := doc.Find("div[class]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return classMentions(sel, "text")
	}).First()
	if p := textDiv.Find("p").First(); p.Length() > 0 {
		return p
	}

	if p := doc.Find("div.j-scrollbox").First().Find("p").First(); p.Length() > 0 {
		return p
	}

	root := doc.Find("main, article").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	p := root.Find("p").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return htmlpatch.Len(textOf(sel)) > introMinLen
	}).First()
	if p.Length() > 0 {
		return p
	}
	return nil
}

// FindMarked returns the element carrying the given stable marker, or nil.
func FindMarked(doc *goquery.Document, marker string) *goquery.Selection {
	if marker == "" {
		return nil
	}
	sel := doc.Find("[" + MarkerAttr + "]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr(MarkerAttr)
		return v == marker
	}).First()
	if sel.Length() == 0 {
		return nil
	}
	return sel
}
