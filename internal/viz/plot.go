// Package viz renders motor curves and summaries for the CLI.
package viz

import (
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/motorsim/internal/funcs"
)

// PlotWidth is the resample count used when rendering a curve.
const PlotWidth = 72

// Plot renders a curve across [lo, hi] as an ASCII graph with its y-axis
// label as the caption.
func Plot(c *funcs.Curve, lo, hi float64, height int) string {
	ys := make([]float64, PlotWidth)
	for i := range ys {
		ys[i] = c.At(lo + (hi-lo)*float64(i)/float64(PlotWidth-1))
	}
	_, yLabel := c.Labels()
	graph := asciigraph.Plot(ys,
		asciigraph.Height(height),
		asciigraph.Width(PlotWidth),
	)
	var b strings.Builder
	b.WriteString(graph)
	if yLabel != "" {
		b.WriteString("\n")
		b.WriteString(Caption.Render(yLabel))
	}
	return b.String()
}
