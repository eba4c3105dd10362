package md2card

import (
	"strings"

	"go.uber.org/zap"
)

// oversizedParagraphRatio and minFilledRatio gate the paragraph split
// attempt: a paragraph taller than 30% of the content box, landing on a page
// already 30% full, is a split candidate before being moved whole.
const (
	oversizedParagraphRatio = 0.30
	minFilledRatio          = 0.30
)

// Paginator partitions a classified HTML fragment into card pages.
//
// A Paginator is configured once and is not safe for concurrent use; hosts
// running pagination on an interactive path should debounce and call it off
// that path. A single run is linear in block count.
type Paginator struct {
	preset  Preset
	heights HeightConfig
	log     *zap.Logger
}

// PaginatorOption configures a Paginator.
type PaginatorOption func(*Paginator)

// WithPageSize selects a card size preset by name. Unknown names silently
// fall back to the medium preset, matching the forgiving config contract.
func WithPageSize(name string) PaginatorOption {
	return func(p *Paginator) { p.setPageSize(name) }
}

// WithHeightConfig overrides the height calibration constants.
// Non-positive fields are replaced with defaults.
func WithHeightConfig(h HeightConfig) PaginatorOption {
	return func(p *Paginator) { p.heights = h.sanitize() }
}

// WithPaginationLogger attaches a logger for soft-warning conditions
// (oversized blocks, preset fallback). Defaults to a no-op logger.
func WithPaginationLogger(log *zap.Logger) PaginatorOption {
	return func(p *Paginator) {
		if log != nil {
			p.log = log
		}
	}
}

// NewPaginator creates a Paginator with the medium preset and default
// height calibration.
func NewPaginator(opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		preset:  presets[DefaultPreset],
		heights: DefaultHeights(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preset returns the active card geometry.
func (p *Paginator) Preset() Preset { return p.preset }

// SetPageSize switches the active preset at runtime. Height estimates depend
// on the content width, so the caller must re-run Paginate afterwards;
// classification happens fresh on every call, no cached state survives.
func (p *Paginator) SetPageSize(name string) { p.setPageSize(name) }

func (p *Paginator) setPageSize(name string) {
	preset, ok := LookupPreset(name)
	if !ok && strings.TrimSpace(name) != "" {
		p.log.Warn("unknown page size preset, using default",
			zap.String("preset", name),
			zap.String("fallback", DefaultPreset))
	}
	p.preset = preset
}

// Blocks classifies the fragment without paginating. Useful for callers
// that want to inspect estimated heights. Classifying the same fragment
// twice yields identical ordered results.
func (p *Paginator) Blocks(fragment string) []Block {
	return newClassifier(p.preset, p.heights).Classify(fragment)
}

// Paginate partitions the fragment into an ordered list of page fragments,
// each the concatenated markup of its blocks. It is a total function: it
// never fails, and non-empty input always produces at least one page.
// Empty or whitespace-only input produces an empty (non-nil) list.
func (p *Paginator) Paginate(fragment string) []string {
	if strings.TrimSpace(fragment) == "" {
		return []string{}
	}

	blocks := p.Blocks(fragment)
	if len(blocks) == 0 {
		// Nothing classifiable but the input is non-empty: pass it through
		// as a single page rather than losing content.
		return []string{fragment}
	}

	pages := p.partition(blocks)
	pages = p.optimize(pages)

	out := make([]string, len(pages))
	for i, pg := range pages {
		out[i] = pg.markup()
	}
	return out
}

// pageDraft is one sealed page during partitioning: its blocks, their summed
// estimated height, and whether an explicit break created its boundary.
type pageDraft struct {
	blocks []Block
	height int
	forced bool
}

// markup concatenates the page's block markup in order.
func (pg pageDraft) markup() string {
	var buf strings.Builder
	for _, b := range pg.blocks {
		buf.WriteString(b.HTML)
	}
	return buf.String()
}

// partition runs the greedy accumulation over the block sequence.
// State is exactly one open accumulator; each rule either seals the current
// page or appends to it, so blocks are never dropped or duplicated.
func (p *Paginator) partition(blocks []Block) []pageDraft {
	contentHeight := p.preset.ContentHeight()
	keepWith := p.preset.HeadingKeepWith

	var pages []pageDraft
	var current pageDraft
	prevWasBreak := false

	seal := func(forced bool) {
		pages = append(pages, pageDraft{
			blocks: current.blocks,
			height: current.height,
			forced: forced,
		})
		current = pageDraft{}
	}

	for _, b := range blocks {
		if b.IsPageBreak() {
			// A lone marker hitting an empty accumulator would create a
			// spurious leading empty page; two consecutive markers are an
			// intentional blank page and do seal.
			if len(current.blocks) == 0 && !prevWasBreak {
				prevWasBreak = true
				continue
			}
			seal(true)
			prevWasBreak = true
			continue
		}
		prevWasBreak = false

		// Keep headings glued to the content below them: if the heading
		// cannot guarantee keepWith pixels of body space on this page,
		// it opens the next one instead.
		if b.Kind == KindHeading && len(current.blocks) > 0 &&
			current.height+b.Height+keepWith > contentHeight {
			seal(false)
		}

		if current.height+b.Height > contentHeight {
			if b.Kind == KindParagraph &&
				float64(b.Height) > float64(contentHeight)*oversizedParagraphRatio &&
				float64(current.height) > float64(contentHeight)*minFilledRatio {
				if parts, ok := splitParagraph(b); ok {
					// Unreached today: splitParagraph never splits.
					current.blocks = append(current.blocks, parts[0])
					current.height += parts[0].Height
					seal(false)
					for _, rest := range parts[1:] {
						current.blocks = append(current.blocks, rest)
						current.height += rest.Height
					}
					continue
				}
			}
			if len(current.blocks) > 0 {
				seal(false)
			}
			if b.Height > contentHeight {
				// Taller than the whole box: placed alone, never dropped.
				p.log.Warn("block exceeds content height, placing alone",
					zap.Stringer("kind", b.Kind),
					zap.Int("height", b.Height),
					zap.Int("contentHeight", contentHeight))
			}
		}

		current.blocks = append(current.blocks, b)
		current.height += b.Height
	}

	if len(current.blocks) > 0 {
		seal(false)
	}

	return pages
}

// splitParagraph reports whether a paragraph block can be divided across a
// page boundary. The current policy never splits: the caller falls back to
// moving the whole block, trading occasional overflow for legibility.
func splitParagraph(Block) ([]Block, bool) {
	return nil, false
}
