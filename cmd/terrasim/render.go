package main

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mossgrove/terrasim/internal/grid"
	"github.com/mossgrove/terrasim/internal/tiles"
)

// glyphs for the built-in terrain kinds
var baseGlyphs = map[tiles.Kind]rune{
	tiles.Water:  '~',
	tiles.Sand:   '.',
	tiles.Grass:  '"',
	tiles.Forest: 'T',
}

// glyph picks a display rune for a kind: built-ins get fixed glyphs,
// registered extras use the first letter of their name.
func glyph(k tiles.Kind, registry *tiles.Registry) rune {
	if g, ok := baseGlyphs[k]; ok {
		return g
	}
	name := registry.Name(k)
	if name == "unknown" {
		return '?'
	}
	return unicode.ToUpper(rune(name[0]))
}

// renderGrid writes the grid as one rune per cell in row-major order.
func renderGrid(output *strings.Builder, g *grid.Grid, registry *tiles.Registry) {
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			output.WriteRune(glyph(g.At(x, y), registry))
		}
		output.WriteString("\n")
	}
}

// getLegend returns the glyph legend for every registered kind.
func getLegend(registry *tiles.Registry) string {
	var sb strings.Builder
	sb.WriteString("Legend:\n")
	for _, k := range registry.Kinds() {
		sb.WriteString(fmt.Sprintf("  %c  %s\n", glyph(k, registry), registry.Name(k)))
	}
	return sb.String()
}
