package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlpatch"
	"golang.org/x/net/html"
)

// Strategy identifies how ReplaceText swapped a node's text.
type Strategy int

// Replacement strategies, most structure-preserving first.
const (
	StrategyNone Strategy = iota
	StrategyDirect
	StrategyClassTarget
	StrategyTextSpan
	StrategyTextNode
	StrategyClear
)

// String returns the strategy name used in logs and reports.
func (s Strategy) String() string {
	switch s {
	case StrategyDirect:
		return "direct"
	case StrategyClassTarget:
		return "class-target"
	case StrategyTextSpan:
		return "text-span"
	case StrategyTextNode:
		return "text-node"
	case StrategyClear:
		return "clear"
	}
	return "none"
}

// targetTokens are class substrings marking the text-bearing child of a
// wrapper element.
var targetTokens = []string{"title", "main", "text", "content"}

// textSpanMinLen is the direct text a span or link needs before it is
// treated as the text carrier of its parent.
const textSpanMinLen = 10

// Replacement reports the outcome of ReplaceText.
type Replacement struct {
	Applied  bool
	Strategy Strategy
}

// LowConfidence reports whether the replacement had to discard the node's
// children because no safer target existed.
func (r Replacement) LowConfidence() bool {
	return r.Strategy == StrategyClear
}

// ReplaceText sets the visible text of the first node in sel to newText
// while keeping as much of its markup as possible. The first applicable
// strategy wins:
//   - no child elements: set the text directly
//   - a span/a descendant whose class mentions title, main, text or content
//   - any span/a descendant with more than 10 characters of direct text
//   - the first non-blank direct text node, replaced in place
//   - otherwise clear all children and append the text
func ReplaceText(sel *goquery.Selection, newText string) Replacement {
	if sel == nil || sel.Length() == 0 {
		return Replacement{}
	}
	el := sel.First()

	if el.Children().Length() == 0 {
		el.SetText(newText)
		return Replacement{Applied: true, Strategy: StrategyDirect}
	}

	target := el.Find("span[class], a[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return classMentions(s, targetTokens...)
	}).First()
	if target.Length() > 0 {
		target.SetText(newText)
		return Replacement{Applied: true, Strategy: StrategyClassTarget}
	}

	span := el.Find("span, a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return htmlpatch.Len(directText(s.Get(0))) > textSpanMinLen
	}).First()
	if span.Length() > 0 {
		span.SetText(newText)
		return Replacement{Applied: true, Strategy: StrategyTextSpan}
	}

	for c := el.Get(0).FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			c.Data = newText
			return Replacement{Applied: true, Strategy: StrategyTextNode}
		}
	}

	el.SetText(newText)
	return Replacement{Applied: true, Strategy: StrategyClear}
}

// rebuildText replaces all content of sel with newText. Used where the
// original structure is known to be disposable, such as intro paragraphs.
func rebuildText(sel *goquery.Selection, newText string) Replacement {
	if sel == nil || sel.Length() == 0 {
		return Replacement{}
	}
	sel.First().SetText(newText)
	return Replacement{Applied: true, Strategy: StrategyDirect}
}
