package md2card

// BlockKind identifies the layout category of a classified block.
// The set is closed: the classifier maps every HTML node onto one of these,
// with KindPlainText as the catch-all for unrecognized content.
type BlockKind int

// Block kinds, ordered roughly by how often they appear in real notes.
const (
	KindParagraph BlockKind = iota
	KindParagraphWithImages
	KindHeading
	KindList
	KindCode
	KindBlockquote
	KindTable
	KindRule
	KindImage
	KindMixedContainer
	KindPageBreak
	KindPlainText
)

// String returns the kind name for logs and test failure messages.
func (k BlockKind) String() string {
	switch k {
	case KindParagraph:
		return "paragraph"
	case KindParagraphWithImages:
		return "paragraph+images"
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindCode:
		return "code"
	case KindBlockquote:
		return "blockquote"
	case KindTable:
		return "table"
	case KindRule:
		return "rule"
	case KindImage:
		return "image"
	case KindMixedContainer:
		return "container"
	case KindPageBreak:
		return "pagebreak"
	case KindPlainText:
		return "text"
	}
	return "unknown"
}

// Block is one classified, measured unit of page content.
// HTML is re-emitted verbatim into the output page; Text is the plain-text
// extraction used only for height estimation.
type Block struct {
	Kind BlockKind

	// HTML markup for this block exactly as it will appear in the output.
	HTML string

	// Text is the extracted plain text, never emitted.
	Text string

	// Height is the estimated pixel height, computed once at
	// classification time against the active preset's content width.
	// Always zero for KindPageBreak.
	Height int

	// Splittable reports whether the partitioner may push this block whole
	// to the next page without keeping it glued to a preceding heading.
	// Image-bearing blocks are never splittable.
	Splittable bool

	// Level is the heading level (1-6) for KindHeading, zero otherwise.
	Level int

	// Items is the item count for KindList.
	Items int

	// Lines is the estimated or counted line count for text-bearing kinds.
	Lines int

	// Rows and HeaderRows describe KindTable dimensions.
	Rows       int
	HeaderRows int

	// Images is the number of <img> tags contained anywhere in the block.
	Images int
}

// IsPageBreak reports whether the block is an explicit page-break marker.
func (b Block) IsPageBreak() bool { return b.Kind == KindPageBreak }
