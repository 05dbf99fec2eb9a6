// Package goquery implements the segmentation, matching and replacement
// engine on top of goquery and golang.org/x/net/html.
package goquery

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlpatch"
	"golang.org/x/net/html"
)

// headingSelector matches every heading level.
const headingSelector = "h1, h2, h3, h4, h5, h6"

// MarkerAttr is the attribute carrying stable section markers.
const MarkerAttr = "data-htmlpatch-key"

// parse parses a full HTML document.
func parse(content string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, htmlpatch.Errorf(htmlpatch.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// render serializes the whole document, doctype included.
func render(doc *goquery.Document) (string, error) {
	var buf bytes.Buffer
	for _, n := range doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// textOf returns the normalized visible text of the first node in sel.
func textOf(sel *goquery.Selection) string {
	return htmlpatch.Normalize(sel.First().Text())
}

// classList returns the class tokens of the first node in sel.
// Never nil, so records always serialize as a JSON array.
func classList(sel *goquery.Selection) []string {
	class, _ := sel.Attr("class")
	fields := strings.Fields(class)
	if fields == nil {
		return []string{}
	}
	return fields
}

// classMentions reports whether the class attribute of the first node in sel
// contains any of the tokens as a case-insensitive substring.
func classMentions(sel *goquery.Selection, tokens ...string) bool {
	class, ok := sel.Attr("class")
	if !ok || class == "" {
		return false
	}
	class = strings.ToLower(class)
	for _, t := range tokens {
		if strings.Contains(class, t) {
			return true
		}
	}
	return false
}

// isHeading reports whether n is an h1..h6 element.
func isHeading(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && htmlpatch.HeadingLevel(n.Data) > 0
}

// directText returns the trimmed text of the direct text-node children of n.
func directText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}
