package md2card

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page-break marker recognition. The Markdown preprocessor normalizes
// explicit break directives into this element; the classifier accepts either
// the class token or the data attribute so hand-written markers also work.
const (
	pageBreakClass = "pagebreak-marker"
	pageBreakAttr  = "data-pagebreak"
)

// classifier turns one HTML fragment into an ordered, measured block list.
// Classification never fails: unparseable or unrecognized content degrades to
// plain-text blocks measured with the generic text formula.
type classifier struct {
	heights HeightConfig
	width   int // available content width in px
}

func newClassifier(preset Preset, heights HeightConfig) *classifier {
	return &classifier{
		heights: heights.sanitize(),
		width:   preset.ContentWidth(),
	}
}

// Classify parses the fragment and emits blocks in source order from a
// single depth-first, left-to-right walk.
func (c *classifier) Classify(fragment string) []Block {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}

	nodes, err := parseFragment(fragment)
	if err != nil {
		// x/net/html only fails on reader errors, which cannot happen with
		// a string reader, but the never-throw contract still wants a
		// best-effort block rather than a dropped document.
		return []Block{c.plainTextBlock(fragment, fragment)}
	}

	var blocks []Block
	for _, n := range nodes {
		blocks = append(blocks, c.classifyNode(n)...)
	}
	return blocks
}

// parseFragment parses an HTML fragment in body context, preserving
// top-level sibling order.
func parseFragment(fragment string) ([]*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     "body",
	}
	return html.ParseFragment(strings.NewReader(fragment), context)
}

// classifyNode dispatches one top-level (or container-nested) node.
// Containers may expand into several blocks, hence the slice return.
func (c *classifier) classifyNode(n *html.Node) []Block {
	switch n.Type {
	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return nil
		}
		return []Block{c.bareTextBlock(text)}
	case html.ElementNode:
		return c.classifyElement(n)
	default:
		// Comments, doctypes: nothing to lay out.
		return nil
	}
}

// classifyElement is the tag dispatch. Every arm ends in a concrete block;
// the default arm preserves unknown markup as plain text so no content is
// ever dropped.
func (c *classifier) classifyElement(n *html.Node) []Block {
	if isPageBreakMarker(n) {
		return []Block{{Kind: KindPageBreak}}
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return []Block{c.headingBlock(n)}
	case atom.P:
		return c.paragraphBlocks(n)
	case atom.Ul, atom.Ol:
		return []Block{c.listBlock(n)}
	case atom.Pre:
		return []Block{c.codeBlock(n)}
	case atom.Blockquote:
		return []Block{c.blockquoteBlock(n)}
	case atom.Table:
		return []Block{c.tableBlock(n)}
	case atom.Hr:
		return []Block{c.ruleBlock(n)}
	case atom.Img:
		return []Block{c.imageBlock(n)}
	case atom.Div, atom.Section, atom.Article, atom.Aside, atom.Main, atom.Figure:
		return c.containerBlocks(n)
	default:
		text := extractText(n)
		if strings.TrimSpace(text) == "" && countImages(n) == 0 {
			return nil
		}
		if countImages(n) > 0 {
			return []Block{c.mixedBlock(n)}
		}
		return []Block{c.plainTextBlock(renderNode(n), text)}
	}
}

// containerBlocks handles div/section/article style wrappers. A container
// holding an image anywhere in its subtree stays one atomic block so the
// image is never separated from its caption or wrapper. Otherwise the walk
// recurses, which also catches page-break markers nested one level down.
func (c *classifier) containerBlocks(n *html.Node) []Block {
	if countImages(n) > 0 {
		return []Block{c.mixedBlock(n)}
	}

	var blocks []Block
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		blocks = append(blocks, c.classifyNode(child)...)
	}
	return blocks
}

// paragraphBlocks classifies a <p>. Markers nested inside prose are honored
// in position: the paragraph splits into runs around each marker, and each
// non-empty run becomes its own paragraph block.
func (c *classifier) paragraphBlocks(n *html.Node) []Block {
	if !containsPageBreakMarker(n) {
		b, ok := c.paragraphBlock(n)
		if !ok {
			return nil
		}
		return []Block{b}
	}

	var blocks []Block
	var run strings.Builder
	flush := func() {
		markup := strings.TrimSpace(run.String())
		run.Reset()
		if markup == "" {
			return
		}
		wrapped := "<p>" + markup + "</p>"
		text := extractTextFromMarkup(wrapped)
		if strings.TrimSpace(text) == "" {
			return
		}
		blocks = append(blocks, c.measuredParagraph(wrapped, text, countImagesInMarkup(wrapped)))
	}

	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if isPageBreakMarker(child) {
			flush()
			blocks = append(blocks, Block{Kind: KindPageBreak})
			continue
		}
		run.WriteString(renderNode(child))
	}
	flush()
	return blocks
}

func (c *classifier) paragraphBlock(n *html.Node) (Block, bool) {
	text := extractText(n)
	images := countImages(n)
	if strings.TrimSpace(text) == "" && images == 0 {
		return Block{}, false
	}
	return c.measuredParagraph(renderNode(n), text, images), true
}

func (c *classifier) measuredParagraph(markup, text string, images int) Block {
	lines := c.estimateLines(text, 0)
	height := c.heights.ParagraphBase + lines*c.heights.ParagraphLine + c.heights.MarginBottom
	kind := KindParagraph
	splittable := true
	if images > 0 {
		kind = KindParagraphWithImages
		height += images * c.heights.Image
		splittable = false
	}
	return Block{
		Kind:       kind,
		HTML:       markup,
		Text:       text,
		Height:     height,
		Splittable: splittable,
		Lines:      lines,
		Images:     images,
	}
}

func (c *classifier) headingBlock(n *html.Node) Block {
	level := int(n.Data[1] - '0')
	return Block{
		Kind:       KindHeading,
		HTML:       renderNode(n),
		Text:       strings.TrimSpace(extractText(n)),
		Height:     c.heights.heading(level) + c.heights.MarginBottom,
		Splittable: false,
		Level:      level,
	}
}

func (c *classifier) listBlock(n *html.Node) Block {
	items := countElements(n, atom.Li)
	images := countImages(n)
	height := items*c.heights.ListItem + c.heights.MarginBottom
	splittable := items > 3
	if images > 0 {
		height += images * c.heights.Image
		splittable = false
	}
	return Block{
		Kind:       KindList,
		HTML:       renderNode(n),
		Text:       strings.TrimSpace(extractText(n)),
		Height:     height,
		Splittable: splittable,
		Items:      items,
		Images:     images,
	}
}

func (c *classifier) codeBlock(n *html.Node) Block {
	// Preserve interior whitespace: line count drives the estimate.
	text := extractText(n)
	lines := strings.Count(text, "\n") + 1
	return Block{
		Kind:       KindCode,
		HTML:       renderNode(n),
		Text:       text,
		Height:     c.heights.CodeBase + lines*c.heights.CodeLine + c.heights.MarginBottom,
		Splittable: lines > 10,
		Lines:      lines,
	}
}

func (c *classifier) blockquoteBlock(n *html.Node) Block {
	text := strings.TrimSpace(extractText(n))
	lines := c.estimateLines(text, c.heights.BlockquoteIndent)
	return Block{
		Kind:       KindBlockquote,
		HTML:       renderNode(n),
		Text:       text,
		Height:     c.heights.BlockquoteBase + lines*c.heights.BlockquoteLine + c.heights.MarginBottom,
		Splittable: true,
		Lines:      lines,
	}
}

func (c *classifier) tableBlock(n *html.Node) Block {
	rows := countElements(n, atom.Tr)
	headerRows := countHeaderRows(n)
	bodyRows := rows - headerRows
	if bodyRows < 0 {
		bodyRows = 0
	}
	return Block{
		Kind:       KindTable,
		HTML:       renderNode(n),
		Text:       strings.TrimSpace(extractText(n)),
		Height:     headerRows*c.heights.TableHeaderRow + bodyRows*c.heights.TableBodyRow + c.heights.MarginBottom,
		Splittable: rows > 5,
		Rows:       rows,
		HeaderRows: headerRows,
	}
}

func (c *classifier) ruleBlock(n *html.Node) Block {
	// Rules carry no bottom margin in the card stylesheets.
	return Block{
		Kind:       KindRule,
		HTML:       renderNode(n),
		Height:     c.heights.Rule,
		Splittable: true,
	}
}

func (c *classifier) imageBlock(n *html.Node) Block {
	return Block{
		Kind:       KindImage,
		HTML:       renderNode(n),
		Height:     c.heights.Image + c.heights.MarginBottom,
		Splittable: false,
		Images:     1,
	}
}

// mixedBlock wraps an image-bearing container (or unknown image-bearing
// markup) as one atomic block.
func (c *classifier) mixedBlock(n *html.Node) Block {
	text := strings.TrimSpace(extractText(n))
	images := countImages(n)
	lines := c.estimateLines(text, 0)
	height := c.heights.ParagraphBase + lines*c.heights.ParagraphLine +
		images*c.heights.Image + c.heights.MarginBottom
	return Block{
		Kind:       KindMixedContainer,
		HTML:       renderNode(n),
		Text:       text,
		Height:     height,
		Splittable: false,
		Lines:      lines,
		Images:     images,
	}
}

// bareTextBlock wraps stray top-level text in a paragraph tag.
// Bare text carries no margin constant.
func (c *classifier) bareTextBlock(text string) Block {
	lines := c.estimateLines(text, 0)
	return Block{
		Kind:       KindPlainText,
		HTML:       "<p>" + html.EscapeString(text) + "</p>",
		Text:       text,
		Height:     c.heights.ParagraphBase + lines*c.heights.ParagraphLine,
		Splittable: true,
		Lines:      lines,
	}
}

// plainTextBlock preserves unrecognized markup verbatim while measuring it
// with the generic text formula.
func (c *classifier) plainTextBlock(markup, text string) Block {
	lines := c.estimateLines(text, 0)
	return Block{
		Kind:       KindPlainText,
		HTML:       markup,
		Text:       text,
		Height:     c.heights.ParagraphBase + lines*c.heights.ParagraphLine,
		Splittable: true,
		Lines:      lines,
	}
}

// estimateLines estimates how many lines the text wraps to at the content
// width minus the given reduction. Wide (double-cell) runes count CharWide
// pixels, everything else CharNarrow; each embedded newline forces a line.
func (c *classifier) estimateLines(text string, widthReduction int) int {
	if text == "" {
		return 1
	}

	available := c.width - widthReduction
	if available <= 0 {
		available = 1
	}

	total := 0
	forced := 0
	for _, r := range text {
		if r == '\n' {
			forced++
			continue
		}
		if runewidth.RuneWidth(r) >= 2 {
			total += c.heights.CharWide
		} else {
			total += c.heights.CharNarrow
		}
	}

	lines := total/available + 1
	if lines < 1 {
		lines = 1
	}
	return lines + forced
}

// ---------------------------------------------------------------------------
// Node helpers
// ---------------------------------------------------------------------------

// renderNode serializes a node back to markup. Render only fails on writer
// errors, which a strings.Builder never produces.
func renderNode(n *html.Node) string {
	var buf strings.Builder
	if err := html.Render(&buf, n); err != nil {
		return ""
	}
	return buf.String()
}

// extractText collects the text content of a subtree. <br> elements become
// newlines so forced line breaks survive into the estimate.
func extractText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		switch node.Type {
		case html.TextNode:
			buf.WriteString(node.Data)
		case html.ElementNode:
			if node.DataAtom == atom.Br {
				buf.WriteString("\n")
				return
			}
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return buf.String()
}

// extractTextFromMarkup parses a small markup snippet and extracts its text.
func extractTextFromMarkup(markup string) string {
	nodes, err := parseFragment(markup)
	if err != nil {
		return markup
	}
	var buf strings.Builder
	for _, n := range nodes {
		buf.WriteString(extractText(n))
	}
	return buf.String()
}

// countImagesInMarkup parses a snippet and counts its <img> tags.
func countImagesInMarkup(markup string) int {
	nodes, err := parseFragment(markup)
	if err != nil {
		return 0
	}
	total := 0
	for _, n := range nodes {
		total += countImages(n)
	}
	return total
}

// countImages counts <img> elements anywhere in the subtree.
func countImages(n *html.Node) int {
	return countElements(n, atom.Img)
}

// countElements counts elements matching the atom anywhere in the subtree,
// the root included.
func countElements(n *html.Node, a atom.Atom) int {
	count := 0
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.DataAtom == a {
			count++
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return count
}

// countHeaderRows counts <tr> rows that contain at least one <th>.
func countHeaderRows(n *html.Node) int {
	count := 0
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.DataAtom == atom.Tr {
			if countElements(node, atom.Th) > 0 {
				count++
			}
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return count
}

// isPageBreakMarker reports whether the node is the normalized page-break
// element. Matching is tolerant: class token or data attribute, any
// attribute order, any attribute case.
func isPageBreakMarker(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode || n.DataAtom != atom.Div {
		return false
	}
	for _, attr := range n.Attr {
		switch strings.ToLower(attr.Key) {
		case "class":
			for _, token := range strings.Fields(attr.Val) {
				if strings.EqualFold(token, pageBreakClass) {
					return true
				}
			}
		case pageBreakAttr:
			if attr.Val == "" || strings.EqualFold(attr.Val, "true") {
				return true
			}
		}
	}
	return false
}

// containsPageBreakMarker reports whether any direct child is a marker.
func containsPageBreakMarker(n *html.Node) bool {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if isPageBreakMarker(child) {
			return true
		}
	}
	return false
}
