package md2card

import "strings"

// Preset name constants.
const (
	PresetSmall  = "small"
	PresetMedium = "medium"
	PresetLarge  = "large"

	// DefaultPreset is used when no preset or an unknown preset is given.
	DefaultPreset = PresetMedium
)

// Preset is a named card geometry: total pixel dimensions plus the fixed
// padding that frames the content box, and the pagination tuning that goes
// with that geometry.
type Preset struct {
	Name   string
	Width  int
	Height int

	PaddingTop    int
	PaddingBottom int
	PaddingSides  int

	// HeadingKeepWith is the minimum body space guaranteed below a heading
	// before the partitioner pushes the heading to the next page.
	HeadingKeepWith int

	// MergeThreshold is the fill fraction below which the optimizer tries
	// to merge a page with its successor.
	MergeThreshold float64
}

// presets holds the fixed set of card geometries. The keep-with and merge
// numbers scale with the page: smaller cards tolerate tighter headings and
// sparser pages.
var presets = map[string]Preset{
	PresetSmall: {
		Name:            PresetSmall,
		Width:           720,
		Height:          960,
		PaddingTop:      35,
		PaddingBottom:   50,
		PaddingSides:    30,
		HeadingKeepWith: 100,
		MergeThreshold:  0.35,
	},
	PresetMedium: {
		Name:            PresetMedium,
		Width:           1080,
		Height:          1440,
		PaddingTop:      45,
		PaddingBottom:   70,
		PaddingSides:    40,
		HeadingKeepWith: 150,
		MergeThreshold:  0.40,
	},
	PresetLarge: {
		Name:            PresetLarge,
		Width:           1440,
		Height:          1920,
		PaddingTop:      55,
		PaddingBottom:   90,
		PaddingSides:    50,
		HeadingKeepWith: 200,
		MergeThreshold:  0.40,
	},
}

// LookupPreset resolves a preset by name (case-insensitive).
// Unknown or empty names resolve to the medium preset; the second return
// value reports whether the name matched.
func LookupPreset(name string) (Preset, bool) {
	p, ok := presets[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return presets[DefaultPreset], false
	}
	return p, true
}

// PresetNames returns the available preset names in display order.
func PresetNames() []string {
	return []string{PresetSmall, PresetMedium, PresetLarge}
}

// ContentWidth is the horizontal space available to blocks.
func (p Preset) ContentWidth() int {
	return p.Width - 2*p.PaddingSides
}

// ContentHeight is the vertical space available to blocks.
func (p Preset) ContentHeight() int {
	return p.Height - p.PaddingTop - p.PaddingBottom
}
