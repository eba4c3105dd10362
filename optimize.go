package md2card

import (
	"strings"

	"go.uber.org/zap"
)

// optimize is the second pass over the sealed page list: sparse pages merge
// into their successor when the pair fits, empty accidental pages vanish,
// and pages created by explicit breaks pass through untouched.
func (p *Paginator) optimize(pages []pageDraft) []pageDraft {
	if len(pages) <= 1 {
		return pages
	}

	contentHeight := p.preset.ContentHeight()
	threshold := int(float64(contentHeight) * p.preset.MergeThreshold)

	var out []pageDraft
	for i := 0; i < len(pages); i++ {
		current := pages[i]

		if current.forced {
			// Forced pages are authorial intent, including empty ones.
			out = append(out, current)
			continue
		}

		if strings.TrimSpace(current.markup()) == "" {
			// Accidental blank page: drop it.
			continue
		}

		// Re-estimate from the page markup rather than trusting the sums
		// carried through partitioning; merged or re-wrapped content can
		// measure differently.
		currentHeight := p.estimatePageHeight(current)

		if currentHeight < threshold && i < len(pages)-1 && !pages[i+1].forced {
			next := pages[i+1]
			nextHeight := p.estimatePageHeight(next)
			if currentHeight+nextHeight <= contentHeight {
				out = append(out, pageDraft{
					blocks: append(append([]Block{}, current.blocks...), next.blocks...),
					height: currentHeight + nextHeight,
					forced: false,
				})
				i++ // consumed the successor
				continue
			}
		}

		out = append(out, current)
	}

	if len(out) == 0 {
		// Optimization must never erase a whole document.
		p.log.Warn("merge pass removed every page, keeping unoptimized result",
			zap.Int("pages", len(pages)))
		return pages
	}
	return out
}

// estimatePageHeight re-classifies a page's markup and sums block heights.
func (p *Paginator) estimatePageHeight(pg pageDraft) int {
	total := 0
	for _, b := range newClassifier(p.preset, p.heights).Classify(pg.markup()) {
		total += b.Height
	}
	return total
}
