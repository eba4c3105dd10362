package md2card

// HeightConfig holds the calibrated height constants used to estimate how
// tall a block renders inside a card. The numbers are tied to the default
// card stylesheets and Chrome's default image scaling; they are configuration,
// not derived metrics. All values are pixels.
type HeightConfig struct {
	// Heading base heights by level, h1 through h6.
	H1 int `yaml:"h1"`
	H2 int `yaml:"h2"`
	H3 int `yaml:"h3"`
	H4 int `yaml:"h4"`
	H5 int `yaml:"h5"`
	H6 int `yaml:"h6"`

	// Paragraph and plain-text estimation.
	ParagraphBase int `yaml:"paragraphBase"`
	ParagraphLine int `yaml:"paragraphLine"`

	// ListItem is the per-<li> height.
	ListItem int `yaml:"listItem"`

	// Code blocks: base plus per-line.
	CodeBase int `yaml:"codeBase"`
	CodeLine int `yaml:"codeLine"`

	// Blockquotes: base plus per-line, with an indentation deduction
	// applied to the available width when estimating line wraps.
	BlockquoteBase   int `yaml:"blockquoteBase"`
	BlockquoteLine   int `yaml:"blockquoteLine"`
	BlockquoteIndent int `yaml:"blockquoteIndent"`

	// Tables: per header row and per body row.
	TableHeaderRow int `yaml:"tableHeaderRow"`
	TableBodyRow   int `yaml:"tableBodyRow"`

	// Rule is the height of a horizontal rule.
	Rule int `yaml:"rule"`

	// MarginBottom is added once per block (rules and bare text excepted,
	// matching the stylesheet margins).
	MarginBottom int `yaml:"marginBottom"`

	// Image is the fixed per-image contribution. Calibrated against the
	// renderer's default image scaling inside the card content box.
	Image int `yaml:"image"`

	// Character width estimates for line wrapping: wide covers CJK and
	// other double-cell runes, narrow covers Latin and similar.
	CharWide   int `yaml:"charWide"`
	CharNarrow int `yaml:"charNarrow"`
}

// DefaultHeights returns the calibrated defaults.
func DefaultHeights() HeightConfig {
	return HeightConfig{
		H1:               90,
		H2:               70,
		H3:               60,
		H4:               50,
		H5:               45,
		H6:               40,
		ParagraphBase:    25,
		ParagraphLine:    28,
		ListItem:         35,
		CodeBase:         40,
		CodeLine:         24,
		BlockquoteBase:   60,
		BlockquoteLine:   28,
		BlockquoteIndent: 100,
		TableHeaderRow:   45,
		TableBodyRow:     40,
		Rule:             35,
		MarginBottom:     20,
		Image:            350,
		CharWide:         16,
		CharNarrow:       9,
	}
}

// heading returns the base height for a heading level.
// Levels outside 1-6 are clamped to h6.
func (h HeightConfig) heading(level int) int {
	switch level {
	case 1:
		return h.H1
	case 2:
		return h.H2
	case 3:
		return h.H3
	case 4:
		return h.H4
	case 5:
		return h.H5
	default:
		return h.H6
	}
}

// sanitize replaces non-positive calibration values with defaults so a
// partially filled config file cannot produce zero or negative heights.
func (h HeightConfig) sanitize() HeightConfig {
	def := DefaultHeights()
	fix := func(v, d int) int {
		if v <= 0 {
			return d
		}
		return v
	}
	h.H1 = fix(h.H1, def.H1)
	h.H2 = fix(h.H2, def.H2)
	h.H3 = fix(h.H3, def.H3)
	h.H4 = fix(h.H4, def.H4)
	h.H5 = fix(h.H5, def.H5)
	h.H6 = fix(h.H6, def.H6)
	h.ParagraphBase = fix(h.ParagraphBase, def.ParagraphBase)
	h.ParagraphLine = fix(h.ParagraphLine, def.ParagraphLine)
	h.ListItem = fix(h.ListItem, def.ListItem)
	h.CodeBase = fix(h.CodeBase, def.CodeBase)
	h.CodeLine = fix(h.CodeLine, def.CodeLine)
	h.BlockquoteBase = fix(h.BlockquoteBase, def.BlockquoteBase)
	h.BlockquoteLine = fix(h.BlockquoteLine, def.BlockquoteLine)
	h.BlockquoteIndent = fix(h.BlockquoteIndent, def.BlockquoteIndent)
	h.TableHeaderRow = fix(h.TableHeaderRow, def.TableHeaderRow)
	h.TableBodyRow = fix(h.TableBodyRow, def.TableBodyRow)
	h.Rule = fix(h.Rule, def.Rule)
	h.MarginBottom = fix(h.MarginBottom, def.MarginBottom)
	h.Image = fix(h.Image, def.Image)
	h.CharWide = fix(h.CharWide, def.CharWide)
	h.CharNarrow = fix(h.CharNarrow, def.CharNarrow)
	return h
}
