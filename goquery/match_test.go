package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlpatch"
	"github.com/fwojciec/htmlpatch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoc(t *testing.T, html string) *gq.Document {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func texts(sels []*gq.Selection) []string {
	out := make([]string, 0, len(sels))
	for _, s := range sels {
		out = append(out, htmlpatch.Normalize(s.Text()))
	}
	return out
}

func TestFindHeading(t *testing.T) {
	t.Parallel()

	t.Run("exact match wins over earlier loose match", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><h2>Best online casino bonuses 2024</h2><h2>Best online casino bonuses</h2></body>`)

		got := goquery.FindHeading(doc, "Best online casino bonuses", "h2")

		require.NotNil(t, got)
		assert.Equal(t, "Best online casino bonuses", got.Text())
	})

	t.Run("normalizes whitespace", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, "<body><h2>  Welcome\n   bonuses </h2></body>")

		got := goquery.FindHeading(doc, "Welcome bonuses", "h2")

		require.NotNil(t, got)
	})

	t.Run("matches long headings by prefix", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><h2>The complete guide to choosing a casino in 2024 edition</h2></body>`)

		got := goquery.FindHeading(doc, "The complete guide to choosing a casino in 2023", "h2")

		require.NotNil(t, got)
	})

	t.Run("matches close overlap", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><h2>Welcome bonus offers</h2></body>`)

		got := goquery.FindHeading(doc, "Welcome bonus offers!", "h2")

		require.NotNil(t, got)
	})

	t.Run("rejects short containment", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><h2>Bonuses and promotions explained in depth</h2></body>`)

		assert.Nil(t, goquery.FindHeading(doc, "Bonuses", "h2"))
	})

	t.Run("only considers the stored tag", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><h3>Welcome bonuses</h3></body>`)

		assert.Nil(t, goquery.FindHeading(doc, "Welcome bonuses", "h2"))
	})

	t.Run("intro section has no heading", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><h2>[Intro]</h2></body>`)

		assert.Nil(t, goquery.FindHeading(doc, htmlpatch.IntroHeading, "h2"))
		assert.Nil(t, goquery.FindHeading(doc, "Anything at all", ""))
	})
}

func TestSectionParagraphs(t *testing.T) {
	t.Parallel()

	t.Run("collects siblings and wrapped paragraphs up to next heading", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body>
<h2>First heading</h2>
<p>One</p>
<div><p>Two</p><h3>Nested</h3><p>Three</p></div>
<span>ignored</span>
<p>Four</p>
<h2>Second heading</h2>
<p>Five</p>
</body>`)

		got := goquery.SectionParagraphs(doc.Find("h2").First())

		assert.Equal(t, []string{"One", "Two", "Four"}, texts(got))
	})

	t.Run("takes first paragraph of wrapper that opens with a heading", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><h2>Heading</h2><div><h3>Sub</h3><p>One</p><p>Two</p></div><p>Three</p></body>`)

		got := goquery.SectionParagraphs(doc.Find("h2").First())

		assert.Equal(t, []string{"One", "Three"}, texts(got))
	})

	t.Run("keeps every paragraph of a wrapper without headings", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><h2>Heading</h2><div><p>One</p><div><p>Two</p></div><p>Three</p></div></body>`)

		got := goquery.SectionParagraphs(doc.Find("h2").First())

		assert.Equal(t, []string{"One", "Two", "Three"}, texts(got))
	})

	t.Run("walks section and article wrappers", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><h2>Heading</h2><section><p>One</p></section><article><div><p>Two</p></div></article></body>`)

		got := goquery.SectionParagraphs(doc.Find("h2").First())

		assert.Equal(t, []string{"One", "Two"}, texts(got))
	})

	t.Run("returns nothing for missing heading", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, goquery.SectionParagraphs(nil))
	})
}

func TestFindParagraphByText(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, `<body>
<p>Unrelated paragraph about payments.</p>
<p>Today, Our welcome package includes free spins.</p>
<p>We   review every casino
carefully before listing it here.</p>
</body>`)
	var candidates []*gq.Selection
	doc.Find("p").Each(func(_ int, s *gq.Selection) {
		candidates = append(candidates, s)
	})

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "matches normalized prefix", target: "We review every casino carefully before listing it here.", want: 2},
		{name: "matches leading text inside candidate", target: "Our welcome package includes", want: 1},
		{name: "short target needs a prefix match", target: "free spins", want: -1},
		{name: "no match", target: "Something that appears nowhere in the page", want: -1},
		{name: "empty target", target: "   ", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, goquery.FindParagraphByText(candidates, tt.target))
		})
	}
}

func TestFindFirstContentParagraph(t *testing.T) {
	t.Parallel()

	long := "This introductory paragraph is comfortably longer than fifty characters."

	t.Run("prefers div whose class mentions text", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><main><p>`+long+`</p></main><div class="entry-Text"><p>Short one</p></div></body>`)

		got := goquery.FindFirstContentParagraph(doc)

		require.NotNil(t, got)
		assert.Equal(t, "Short one", got.Text())
	})

	t.Run("uses scroll box", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><div class="j-scrollbox"><p>Scroll paragraph</p></div></body>`)

		got := goquery.FindFirstContentParagraph(doc)

		require.NotNil(t, got)
		assert.Equal(t, "Scroll paragraph", got.Text())
	})

	t.Run("finds first long paragraph in main", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><p>`+long+` Outside.</p><main><p>Too short here.</p><p>`+long+`</p></main></body>`)

		got := goquery.FindFirstContentParagraph(doc)

		require.NotNil(t, got)
		assert.Equal(t, long, got.Text())
	})

	t.Run("falls back to body", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><p>`+long+`</p></body>`)

		got := goquery.FindFirstContentParagraph(doc)

		require.NotNil(t, got)
		assert.Equal(t, long, got.Text())
	})

	t.Run("returns nil without candidates", func(t *testing.T) {
		t.Parallel()

		doc := newDoc(t, `<body><p>Too short here.</p></body>`)

		assert.Nil(t, goquery.FindFirstContentParagraph(doc))
	})
}

func TestFindMarked(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, `<body><p data-htmlpatch-key="hp-0">Zero</p><p data-htmlpatch-key="hp-1">One</p></body>`)

	got := goquery.FindMarked(doc, "hp-1")
	require.NotNil(t, got)
	assert.Equal(t, "One", got.Text())

	assert.Nil(t, goquery.FindMarked(doc, "hp-9"))
	assert.Nil(t, goquery.FindMarked(doc, ""))
}
