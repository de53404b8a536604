package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/notiondocx"
	"github.com/fwojciec/notiondocx/css"
	"golang.org/x/net/html"
)

// Class markers Notion puts on its block elements.
const (
	markerHeader  = "notion-header"
	markerText    = "notion-text"
	markerCallout = "notion-callout"
	markerCode    = "notion-code"
	markerQuote   = "notion-quote"
)

// Classify decides what a node of the page content represents.
// The rules are checked in order and the first match wins:
//
//  1. h1/h2/h3, or a header class           -> heading
//  2. p, or a text or callout class          -> paragraph
//  3. ul/ol                                  -> list
//  4. img, or any descendant img             -> image
//  5. a code class, or pre                   -> code
//  6. a quote class, or blockquote           -> quote
//  7. any direct element child               -> container
//  8. otherwise                              -> none
//
// Non-element nodes are always BlockNone.
func Classify(sel *goquery.Selection) notiondocx.BlockKind {
	if sel.Length() == 0 || sel.Nodes[0].Type != html.ElementNode {
		return notiondocx.BlockNone
	}

	tag := goquery.NodeName(sel)
	class, _ := sel.Attr("class")

	switch {
	case isHeadingTag(tag) || strings.Contains(class, markerHeader):
		return notiondocx.BlockHeading
	case tag == "p" || strings.Contains(class, markerText) || strings.Contains(class, markerCallout):
		return notiondocx.BlockParagraph
	case tag == "ul" || tag == "ol":
		return notiondocx.BlockList
	case tag == "img" || sel.Find("img").Length() > 0:
		return notiondocx.BlockImage
	case strings.Contains(class, markerCode) || tag == "pre":
		return notiondocx.BlockCode
	case strings.Contains(class, markerQuote) || tag == "blockquote":
		return notiondocx.BlockQuote
	case sel.Children().Length() > 0:
		return notiondocx.BlockContainer
	}
	return notiondocx.BlockNone
}

// HeadingLevel returns 1, 2 or 3 for a heading-classified node. Heading
// tags map directly; other nodes are sized by their inline font-size:
// 30px and up is level 1, 24px and up is level 2, anything else level 3.
func HeadingLevel(sel *goquery.Selection) int {
	switch goquery.NodeName(sel) {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	}

	style, _ := sel.Attr("style")
	size, ok := css.PixelSize(style)
	switch {
	case !ok:
		return 3
	case size >= 30:
		return 1
	case size >= 24:
		return 2
	default:
		return 3
	}
}

// ListItems returns the text of the direct li children of a list, in
// source order. Items with no text are dropped. Nested lists are not
// walked separately; their text stays part of the enclosing item.
func ListItems(sel *goquery.Selection) []string {
	var items []string
	sel.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if text := normalizedText(li); text != "" {
			items = append(items, text)
		}
	})
	return items
}

func isHeadingTag(tag string) bool {
	return tag == "h1" || tag == "h2" || tag == "h3"
}

// normalizedText returns the text content with whitespace collapsed.
func normalizedText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
