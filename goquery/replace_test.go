package goquery_test

import (
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/htmlpatch"
	"github.com/fwojciec/htmlpatch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		html     string
		want     string
		strategy goquery.Strategy
	}{
		{
			name:     "sets text of leaf element",
			html:     `<p>Old text</p>`,
			want:     `<p>New text</p>`,
			strategy: goquery.StrategyDirect,
		},
		{
			name:     "targets classed text span",
			html:     `<h2><span class="icon"></span><span class="title-text">Old heading</span></h2>`,
			want:     `<h2><span class="icon"></span><span class="title-text">New text</span></h2>`,
			strategy: goquery.StrategyClassTarget,
		},
		{
			name:     "targets link carrying the text",
			html:     `<p><a href="/x">Read the full review here</a></p>`,
			want:     `<p><a href="/x">New text</a></p>`,
			strategy: goquery.StrategyTextSpan,
		},
		{
			name:     "replaces first direct text node",
			html:     `<p>Old lead text <b>bold</b> tail</p>`,
			want:     `<p>New text<b>bold</b> tail</p>`,
			strategy: goquery.StrategyTextNode,
		},
		{
			name:     "clears children as last resort",
			html:     `<p><b>bold</b><i>italic</i></p>`,
			want:     `<p>New text</p>`,
			strategy: goquery.StrategyClear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := newDoc(t, `<body>`+tt.html+`</body>`)
			sel := doc.Find("body").Children().First()

			got := goquery.ReplaceText(sel, "New text")

			assert.True(t, got.Applied)
			assert.Equal(t, tt.strategy, got.Strategy)
			assert.Equal(t, tt.strategy == goquery.StrategyClear, got.LowConfidence())
			html, err := gq.OuterHtml(sel)
			require.NoError(t, err)
			assert.Equal(t, tt.want, html)
		})
	}
}

func TestReplaceText_ReadBack(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, `<body><p>Old text</p></body>`)
	sel := doc.Find("p")

	goquery.ReplaceText(sel, "Fish & <chips>")

	assert.Equal(t, "Fish & <chips>", htmlpatch.Normalize(sel.Text()))
	html, err := gq.OuterHtml(sel)
	require.NoError(t, err)
	assert.Equal(t, `<p>Fish &amp; &lt;chips&gt;</p>`, html)
}

func TestReplaceText_EmptySelection(t *testing.T) {
	t.Parallel()

	doc := newDoc(t, `<body></body>`)

	got := goquery.ReplaceText(doc.Find("p"), "New text")

	assert.False(t, got.Applied)
	assert.Equal(t, goquery.StrategyNone, got.Strategy)
}

func TestStrategy_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", goquery.StrategyNone.String())
	assert.Equal(t, "direct", goquery.StrategyDirect.String())
	assert.Equal(t, "class-target", goquery.StrategyClassTarget.String())
	assert.Equal(t, "text-span", goquery.StrategyTextSpan.String())
	assert.Equal(t, "text-node", goquery.StrategyTextNode.String())
	assert.Equal(t, "clear", goquery.StrategyClear.String())
}
