package goquery

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlpatch"
	"golang.org/x/net/html"
)

// Ensure Patcher implements htmlpatch.Patcher at compile time.
var _ htmlpatch.Patcher = (*Patcher)(nil)

// Patcher applies rewritten sections to a document.
type Patcher struct {
	notice    *Notice
	sanitizer htmlpatch.Sanitizer
}

// PatcherOption configures a Patcher.
type PatcherOption func(*Patcher)

// WithNotice replaces the default disclosure notice.
func WithNotice(n Notice) PatcherOption {
	return func(p *Patcher) {
		p.notice = &n
	}
}

// WithoutNotice drops the disclosure notice. Only tests use it.
func WithoutNotice() PatcherOption {
	return func(p *Patcher) {
		p.notice = nil
	}
}

// WithSanitizer cleans every rewritten string before insertion.
func WithSanitizer(s htmlpatch.Sanitizer) PatcherOption {
	return func(p *Patcher) {
		p.sanitizer = s
	}
}

// NewPatcher creates a new Patcher that appends DefaultNotice.
func NewPatcher(opts ...PatcherOption) *Patcher {
	n := DefaultNotice()
	p := &Patcher{notice: &n}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Patch applies the rewritten title, description and sections of meta to
// the document and returns the updated document.
func (p *Patcher) Patch(content string, meta *htmlpatch.DocumentMeta) (string, *htmlpatch.UpdateStats, error) {
	if meta == nil {
		return "", nil, htmlpatch.Errorf(htmlpatch.EINVALID, "metadata required")
	}

	doc, err := parse(content)
	if err != nil {
		return "", nil, err
	}

	stats := &htmlpatch.UpdateStats{}

	if title := p.clean(meta.RewrittenTitle); title != "" {
		if sel := doc.Find("title").First(); sel.Length() > 0 {
			sel.SetText(title)
			stats.Title = true
		}
	}
	if desc := p.clean(meta.RewrittenDescription); desc != "" {
		if sel := doc.Find(`meta[name="description"]`).First(); sel.Length() > 0 {
			sel.SetAttr("content", desc)
			stats.Description = true
		}
	}

	sections := slices.Clone(meta.Sections)
	slices.SortStableFunc(sections, func(a, b htmlpatch.Section) int {
		return cmp.Compare(a.Index, b.Index)
	})

	for i := range sections {
		s := &sections[i]
		if !s.HasRewrite() {
			continue
		}
		res := p.patchSection(doc, s)
		if !res.heading && res.paragraphs == 0 {
			stats.Skipped = append(stats.Skipped, s.Index)
			continue
		}
		stats.Sections++
		if res.heading {
			stats.Headings++
		}
		stats.Paragraphs += res.paragraphs
		stats.LowConfidence += res.lowConfidence
	}

	if p.notice != nil {
		ensureNotice(doc, *p.notice)
	}

	out, err := render(doc)
	if err != nil {
		return "", nil, fmt.Errorf("render document: %w", err)
	}
	return out, stats, nil
}

// sectionResult is what patching one section changed.
type sectionResult struct {
	heading       bool
	paragraphs    int
	lowConfidence int

	touched map[*html.Node]bool
}

// replace applies newText to sel unless this section already wrote to it.
func (r *sectionResult) replace(sel *goquery.Selection, newText string, rebuild bool) {
	if sel == nil || sel.Length() == 0 || r.touched[sel.Get(0)] {
		return
	}
	var rep Replacement
	if rebuild {
		rep = rebuildText(sel, newText)
	} else {
		rep = ReplaceText(sel, newText)
	}
	if !rep.Applied {
		return
	}
	r.touched[sel.Get(0)] = true
	r.paragraphs++
	if rep.LowConfidence() {
		r.lowConfidence++
	}
}

func (p *Patcher) patchSection(doc *goquery.Document, s *htmlpatch.Section) *sectionResult {
	res := &sectionResult{touched: make(map[*html.Node]bool)}

	var heading *goquery.Selection
	if !s.IsIntro() && s.HeadingTag != "" {
		heading = FindMarked(doc, s.HeadingMarker)
		if heading == nil {
			heading = FindHeading(doc, s.HeadingText, s.HeadingTag)
		}
		if heading != nil {
			if h := p.clean(s.RewrittenHeading); h != "" && h != s.HeadingText {
				rep := ReplaceText(heading, h)
				res.heading = rep.Applied
				if rep.LowConfidence() {
					res.lowConfidence++
				}
			}
		}
	}

	rewritten := p.cleanAll(s.RewrittenParagraphs())
	if len(rewritten) == 0 {
		return res
	}

	if s.Marked() && p.patchMarked(doc, s, rewritten, res) {
		return res
	}

	// Rewritten paragraph i always belongs to original paragraph i. When the
	// intro heuristic consumes the first one, matching resumes at 1.
	start := 0
	var claimed *html.Node
	if s.Index == 0 {
		if intro := FindFirstContentParagraph(doc); intro != nil {
			res.replace(intro, rewritten[0], true)
			claimed = intro.Get(0)
			start = 1
		}
	}

	if heading != nil {
		pool := SectionParagraphs(heading)
		offset := 0
		if claimed != nil {
			if j := slices.IndexFunc(pool, func(sel *goquery.Selection) bool { return sel.Get(0) == claimed }); j >= 0 {
				pool = slices.Delete(pool, j, j+1)
				offset = 1
			}
		}

		for i := start; i < len(s.Paragraphs) && i < len(rewritten); i++ {
			if j := FindParagraphByText(pool, s.Paragraphs[i].Text); j >= 0 {
				res.replace(pool[j], rewritten[i], false)
				pool = slices.Delete(pool, j, j+1)
				continue
			}
			// Positional fallback. If the document structure drifted this
			// can pair unrelated paragraphs.
			if k := i - offset; k >= 0 && k < len(pool) {
				res.replace(pool[k], rewritten[i], false)
			}
		}

		if s.HeadingTag == "h5" && start < len(rewritten) {
			excerpt := heading.ParentsFiltered("div, article, section").First().
				Find("p[class]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
				return classMentions(sel, "excerpt")
			}).First()
			if excerpt.Length() > 0 {
				res.replace(excerpt, rewritten[start], false)
			}
		}
	}

	return res
}

// patchMarked replaces paragraphs by their stable markers. Returns false,
// leaving the document untouched, if any marker is missing from doc.
func (p *Patcher) patchMarked(doc *goquery.Document, s *htmlpatch.Section, rewritten []string, res *sectionResult) bool {
	nodes := make([]*goquery.Selection, 0, len(s.Paragraphs))
	for _, para := range s.Paragraphs {
		sel := FindMarked(doc, para.Marker)
		if sel == nil {
			return false
		}
		nodes = append(nodes, sel)
	}

	for i, sel := range nodes {
		if i >= len(rewritten) {
			break
		}
		res.replace(sel, rewritten[i], false)
	}
	return true
}

func (p *Patcher) clean(s string) string {
	if p.sanitizer != nil {
		s = p.sanitizer.Sanitize(s)
	}
	return strings.TrimSpace(s)
}

func (p *Patcher) cleanAll(paragraphs []string) []string {
	out := make([]string, 0, len(paragraphs))
	for _, para := range paragraphs {
		if para = p.clean(para); para != "" {
			out = append(out, para)
		}
	}
	return out
}
