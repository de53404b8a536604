package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/notiondocx"
	"golang.org/x/net/html"
)

// RenderRuns walks the text inside a block in document order and returns
// one run per non-blank text fragment. A run's style comes only from the
// tag that directly encloses the fragment: strong/b is bold, em/i is
// italic, u is underline and code is monospace. Formatting from further
// up the tree is not merged, so bold inside italic renders as plain bold.
func RenderRuns(sel *goquery.Selection) []notiondocx.Run {
	var runs []notiondocx.Run
	pendingSpace := false

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			text := strings.Join(strings.Fields(n.Data), " ")
			if text == "" {
				if n.Data != "" {
					pendingSpace = true
				}
				return
			}

			run := styleFor(n.Parent)
			run.Text = text
			run.Space = len(runs) > 0 && (pendingSpace || startsWithSpace(n.Data))
			runs = append(runs, run)
			pendingSpace = endsWithSpace(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	return runs
}

// styleFor maps the immediate parent of a text fragment to run flags.
func styleFor(parent *html.Node) notiondocx.Run {
	var run notiondocx.Run
	if parent == nil || parent.Type != html.ElementNode {
		return run
	}
	switch parent.Data {
	case "strong", "b":
		run.Bold = true
	case "em", "i":
		run.Italic = true
	case "u":
		run.Underline = true
	case "code":
		run.Monospace = true
	}
	return run
}

func startsWithSpace(s string) bool {
	for _, r := range s {
		return unicode.IsSpace(r)
	}
	return false
}

func endsWithSpace(s string) bool {
	if s == "" {
		return false
	}
	return unicode.IsSpace(rune(s[len(s)-1]))
}
