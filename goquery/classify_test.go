package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/notiondocx"
	"github.com/fwojciec/notiondocx/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// first parses markup and returns the first element inside body.
func first(t *testing.T, markup string) *gq.Selection {
	t.Helper()
	doc, err := gq.NewDocumentFromReader(strings.NewReader("<html><body>" + markup + "</body></html>"))
	require.NoError(t, err)
	sel := doc.Find("body").Children().First()
	require.Equal(t, 1, sel.Length(), "no element in %q", markup)
	return sel
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   notiondocx.BlockKind
	}{
		{"h1 tag", `<h1>Title</h1>`, notiondocx.BlockHeading},
		{"h3 tag", `<h3>Title</h3>`, notiondocx.BlockHeading},
		{"header class", `<div class="notion-header-block">Title</div>`, notiondocx.BlockHeading},
		{"sub header class", `<div class="notion-sub_header-block notion-header-block">T</div>`, notiondocx.BlockHeading},
		{"h4 is not a heading", `<h4>Small</h4>`, notiondocx.BlockNone},
		{"p tag", `<p>Text</p>`, notiondocx.BlockParagraph},
		{"text class", `<div class="notion-text-block">Text</div>`, notiondocx.BlockParagraph},
		{"callout class", `<div class="notion-callout-block"><div>Tip</div></div>`, notiondocx.BlockParagraph},
		{"ul tag", `<ul><li>a</li></ul>`, notiondocx.BlockList},
		{"ol tag", `<ol><li>a</li></ol>`, notiondocx.BlockList},
		{"img tag", `<img src="https://example.com/a.png">`, notiondocx.BlockImage},
		{"descendant img", `<div class="notion-image-block"><div><img src="x.png"></div></div>`, notiondocx.BlockImage},
		{"code class", `<div class="notion-code-block"><span>x := 1</span></div>`, notiondocx.BlockCode},
		{"pre tag", `<pre>x := 1</pre>`, notiondocx.BlockCode},
		{"quote class", `<div class="notion-quote-block">Wise words</div>`, notiondocx.BlockQuote},
		{"blockquote tag", `<blockquote>Wise words</blockquote>`, notiondocx.BlockQuote},
		{"container", `<div><p>inner</p></div>`, notiondocx.BlockContainer},
		{"leaf div", `<div>just text</div>`, notiondocx.BlockNone},
		{"empty span", `<span></span>`, notiondocx.BlockNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.Classify(first(t, tt.markup)))
		})
	}
}

func TestClassify_Precedence(t *testing.T) {
	t.Parallel()

	t.Run("heading wins over a nested image", func(t *testing.T) {
		t.Parallel()
		sel := first(t, `<h2>Logo <img src="https://example.com/logo.png"></h2>`)
		assert.Equal(t, notiondocx.BlockHeading, goquery.Classify(sel))
	})

	t.Run("paragraph wins over a nested image", func(t *testing.T) {
		t.Parallel()
		sel := first(t, `<div class="notion-text-block">See <img src="https://example.com/a.png"></div>`)
		assert.Equal(t, notiondocx.BlockParagraph, goquery.Classify(sel))
	})

	t.Run("image wins over code class", func(t *testing.T) {
		t.Parallel()
		sel := first(t, `<div class="notion-code-block"><img src="https://example.com/a.png"></div>`)
		assert.Equal(t, notiondocx.BlockImage, goquery.Classify(sel))
	})

	t.Run("code wins over quote", func(t *testing.T) {
		t.Parallel()
		sel := first(t, `<blockquote class="notion-code-block">x</blockquote>`)
		assert.Equal(t, notiondocx.BlockCode, goquery.Classify(sel))
	})

	t.Run("empty selection is none", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, notiondocx.BlockNone, goquery.Classify(&gq.Selection{}))
	})
}

func TestHeadingLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   int
	}{
		{"h1", `<h1>T</h1>`, 1},
		{"h2", `<h2>T</h2>`, 2},
		{"h3", `<h3>T</h3>`, 3},
		{"h3 ignores large inline size", `<h3 style="font-size: 40px">T</h3>`, 3},
		{"h1 ignores small inline size", `<h1 style="font-size: 10px">T</h1>`, 1},
		{"32px is level 1", `<div class="notion-header-block" style="font-size: 32px">T</div>`, 1},
		{"30px is level 1", `<div class="notion-header-block" style="font-size:30px">T</div>`, 1},
		{"26px is level 2", `<div class="notion-header-block" style="font-size: 26px">T</div>`, 2},
		{"24px is level 2", `<div class="notion-header-block" style="font-size: 24px">T</div>`, 2},
		{"10px is level 3", `<div class="notion-header-block" style="font-size: 10px">T</div>`, 3},
		{"no style is level 3", `<div class="notion-header-block">T</div>`, 3},
		{"style without size is level 3", `<div class="notion-header-block" style="color: red">T</div>`, 3},
		{"unparseable size is level 3", `<div class="notion-header-block" style="font-size: large">T</div>`, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.HeadingLevel(first(t, tt.markup)))
		})
	}
}

func TestListItems(t *testing.T) {
	t.Parallel()

	t.Run("returns direct items in order", func(t *testing.T) {
		t.Parallel()
		items := goquery.ListItems(first(t, `<ul><li>One</li><li>Two</li></ul>`))
		assert.Equal(t, []string{"One", "Two"}, items)
	})

	t.Run("nested list text stays in the parent item", func(t *testing.T) {
		t.Parallel()
		items := goquery.ListItems(first(t, `<ul><li>One <ul><li>Inner</li></ul></li><li>Two</li></ul>`))
		assert.Equal(t, []string{"One Inner", "Two"}, items)
	})

	t.Run("drops empty items", func(t *testing.T) {
		t.Parallel()
		items := goquery.ListItems(first(t, `<ol><li>  </li><li>Only</li></ol>`))
		assert.Equal(t, []string{"Only"}, items)
	})

	t.Run("collapses whitespace", func(t *testing.T) {
		t.Parallel()
		items := goquery.ListItems(first(t, "<ul><li>\n  Spread\n   out  </li></ul>"))
		assert.Equal(t, []string{"Spread out"}, items)
	})
}
