package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Notice describes the disclosure element appended to every patched page.
type Notice struct {
	Class string
	Style string
	Text  string
}

// DefaultNotice returns the fixed responsible-content footer.
func DefaultNotice() Notice {
	return Notice{
		Class: "responsible-content-notice",
		Style: "position:fixed;bottom:0;left:0;right:0;padding:10px 15px;background:#1a1a1a;" +
			"border-top:3px solid #e74c3c;color:#fff;font-size:12px;z-index:9999;text-align:center;",
		Text: "⚠️ For adults 18+ only | Play responsibly | Set limits on your time and money",
	}
}

// node builds the notice element.
func (n Notice) node() *html.Node {
	div := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr: []html.Attribute{
			{Key: "class", Val: n.Class},
			{Key: "style", Val: n.Style},
		},
	}
	span := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	div.AppendChild(span)
	return div
}

// ensureNotice removes every existing notice from doc and appends a fresh
// one to the end of body, so a document holds exactly one however often it
// is patched. Returns false if doc has no body.
func ensureNotice(doc *goquery.Document, n Notice) bool {
	doc.Find("[class]").FilterFunction(func(_ int, sel *goquery.Selection) bool {
		return sel.HasClass(n.Class)
	}).Remove()

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return false
	}
	body.AppendNodes(n.node())
	return true
}
