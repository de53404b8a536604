package goquery

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/notiondocx"
)

// DefaultMaxDepth is how many nested containers the walker descends into
// before it stops treating a container's children as blocks.
const DefaultMaxDepth = 32

// conversion is the state of a single Convert call.
type conversion struct {
	builder  notiondocx.DocumentBuilder
	images   *imageResolver
	logger   *slog.Logger
	maxDepth int
	result   notiondocx.Result
}

// walk dispatches every direct element child of parent in source order.
func (c *conversion) walk(parent *goquery.Selection, depth int) {
	parent.Children().Each(func(_ int, child *goquery.Selection) {
		c.visit(child, depth)
	})
}

func (c *conversion) visit(sel *goquery.Selection, depth int) {
	switch Classify(sel) {
	case notiondocx.BlockHeading:
		if text := normalizedText(sel); text != "" {
			c.append(&notiondocx.Heading{Level: HeadingLevel(sel), Text: text})
		}
	case notiondocx.BlockParagraph:
		if runs := RenderRuns(sel); len(runs) > 0 {
			c.append(&notiondocx.Paragraph{Runs: runs})
		}
	case notiondocx.BlockList:
		if items := ListItems(sel); len(items) > 0 {
			c.append(&notiondocx.List{Ordered: goquery.NodeName(sel) == "ol", Items: items})
		}
	case notiondocx.BlockImage:
		img, src := c.images.resolve(sel)
		if img == nil {
			c.logger.Debug("image skipped", "reason", "no fetchable source")
			return
		}
		if !img.Resolved() {
			c.logger.Debug("image placeholder", "src", src, "placeholder", img.Placeholder)
		}
		c.append(img)
	case notiondocx.BlockCode:
		if text := strings.TrimSpace(sel.Text()); text != "" {
			c.append(&notiondocx.CodeBlock{Text: text})
		}
	case notiondocx.BlockQuote:
		if text := normalizedText(sel); text != "" {
			c.append(&notiondocx.Quote{Text: text})
		}
	case notiondocx.BlockContainer:
		if depth >= c.maxDepth {
			c.logger.Debug("container depth limit reached", "depth", depth)
			return
		}
		c.walk(sel, depth+1)
	}
}

// append hands a block to the builder and updates the counters.
func (c *conversion) append(b notiondocx.Block) {
	switch b := b.(type) {
	case *notiondocx.Heading:
		c.builder.AddHeading(b.Text, b.Level)
	case *notiondocx.Paragraph:
		c.builder.AddParagraph(b.Runs)
	case *notiondocx.List:
		c.builder.AddList(b.Items, b.Ordered)
	case *notiondocx.Image:
		if b.Resolved() {
			if err := c.builder.AddImage(b.Data); err != nil {
				c.logger.Debug("image embed failed", "err", err)
				b = &notiondocx.Image{Placeholder: placeholder(err)}
			}
		}
		if !b.Resolved() {
			c.builder.AddParagraph([]notiondocx.Run{{Text: b.Placeholder}})
			c.result.Placeholders++
			break
		}
		c.result.ImageCount++
	case *notiondocx.CodeBlock:
		c.builder.AddCode(b.Text)
	case *notiondocx.Quote:
		c.builder.AddQuote(b.Text)
	}
	c.result.Blocks++
}
