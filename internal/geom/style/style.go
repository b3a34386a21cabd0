// Package style resolves representation-item colors per spec §4.F.8 and
// §10's open-question precedence: styled item override, then layer
// assignment, then a per-type default.
package style

import "github.com/ifc-lite/ifclite/internal/geom"

// Source is where a resolved color came from, for diagnostics/testing.
type Source uint8

const (
	SourceDefault Source = iota
	SourceLayer
	SourceStyledItem
)

// Resolved is a color plus its provenance.
type Resolved struct {
	Color  geom.RGBA
	Source Source
}

// defaults gives every curated type enum a fallback appearance; entries
// absent here fall back to a neutral gray.
var defaults = map[string]geom.RGBA{
	"IFCWALL":               {R: 0.75, G: 0.70, B: 0.62, A: 1},
	"IFCWALLSTANDARDCASE":   {R: 0.75, G: 0.70, B: 0.62, A: 1},
	"IFCSLAB":               {R: 0.65, G: 0.65, B: 0.65, A: 1},
	"IFCCOLUMN":             {R: 0.55, G: 0.55, B: 0.60, A: 1},
	"IFCBEAM":               {R: 0.55, G: 0.55, B: 0.60, A: 1},
	"IFCDOOR":               {R: 0.55, G: 0.35, B: 0.20, A: 1},
	"IFCWINDOW":             {R: 0.60, G: 0.80, B: 0.90, A: 0.5},
	"IFCROOF":               {R: 0.45, G: 0.30, B: 0.25, A: 1},
	"IFCSTAIR":              {R: 0.60, G: 0.60, B: 0.60, A: 1},
	"IFCRAILING":            {R: 0.40, G: 0.40, B: 0.40, A: 1},
	"IFCCOVERING":           {R: 0.80, G: 0.80, B: 0.75, A: 1},
	"IFCFURNISHINGELEMENT":  {R: 0.60, G: 0.45, B: 0.30, A: 1},
	"IFCPLATE":              {R: 0.70, G: 0.70, B: 0.70, A: 1},
	"IFCMEMBER":             {R: 0.60, G: 0.60, B: 0.60, A: 1},
	"IFCSPACE":              {R: 0.90, G: 0.95, B: 1.00, A: 0.2},
}

var neutral = geom.RGBA{R: 0.7, G: 0.7, B: 0.7, A: 1}

// DefaultFor returns the per-type default color, per §4.F.8.
func DefaultFor(ifcType string) geom.RGBA {
	if c, ok := defaults[ifcType]; ok {
		return c
	}
	return neutral
}

// Resolve applies the precedence order from spec §10 open-question 1:
// styled item first, then layer assignment, then type default.
func Resolve(ifcType string, styledItemColor *geom.RGBA, layerColor *geom.RGBA) Resolved {
	if styledItemColor != nil {
		return Resolved{Color: *styledItemColor, Source: SourceStyledItem}
	}
	if layerColor != nil {
		return Resolved{Color: *layerColor, Source: SourceLayer}
	}
	return Resolved{Color: DefaultFor(ifcType), Source: SourceDefault}
}
