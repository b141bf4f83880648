package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Profile plots values, typically a row or column density profile, as an
// ASCII line chart. Empty input yields an empty string.
func Profile(values []float64, width, height int, caption string) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Width(width),
		asciigraph.Height(height),
		asciigraph.Caption(caption),
	)
}
